package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/workflow"
	"github.com/go-chi/chi/v5"
)

type WorkerHandler struct {
	Store *store.Store
	Sync  workflow.Notifier
}

func (h WorkerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/workers", h.list)
	r.Post("/workers", h.create)
	r.Put("/workers/{id}", h.update)
	r.Delete("/workers/{id}", h.delete)
}

func (h WorkerHandler) list(w http.ResponseWriter, r *http.Request) {
	workers := h.Store.Workers()
	if r.URL.Query().Get("active") == "true" {
		filtered := workers[:0]
		for _, wk := range workers {
			if wk.Active {
				filtered = append(filtered, wk)
			}
		}
		workers = filtered
	}
	writeJSON(w, http.StatusOK, workers)
}

func (h WorkerHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	wk := domain.Worker{ID: store.NewID(), Name: req.Name, Active: true}
	h.Store.AddWorker(wk)
	h.Sync.Enqueue(domain.CollectionWorkers)
	writeJSON(w, http.StatusCreated, wk)
}

func (h WorkerHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   *string `json:"name"`
		Active *bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	wk, err := h.Store.Worker(chi.URLParam(r, "id"))
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	if req.Name != nil {
		if *req.Name == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		wk.Name = *req.Name
	}
	if req.Active != nil {
		wk.Active = *req.Active
	}
	if err := h.Store.UpdateWorker(wk); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.Sync.Enqueue(domain.CollectionWorkers)
	writeJSON(w, http.StatusOK, wk)
}

func (h WorkerHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteWorker(chi.URLParam(r, "id")); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.Sync.Enqueue(domain.CollectionWorkers)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
