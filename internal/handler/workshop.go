package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/workflow"
	"github.com/go-chi/chi/v5"
)

type WorkshopHandler struct {
	Store *store.Store
	Sync  workflow.Notifier
}

func (h WorkshopHandler) RegisterRoutes(r chi.Router) {
	r.Get("/workshops", h.list)
	r.Post("/workshops", h.create)
	r.Put("/workshops/{id}", h.update)
	r.Delete("/workshops/{id}", h.delete)
}

func (h WorkshopHandler) list(w http.ResponseWriter, r *http.Request) {
	workshops := h.Store.Workshops()
	if r.URL.Query().Get("active") == "true" {
		filtered := workshops[:0]
		for _, ws := range workshops {
			if ws.Active {
				filtered = append(filtered, ws)
			}
		}
		workshops = filtered
	}
	writeJSON(w, http.StatusOK, workshops)
}

func (h WorkshopHandler) create(w http.ResponseWriter, r *http.Request) {
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
	ws := domain.Workshop{ID: store.NewID(), Name: req.Name, Active: true}
	h.Store.AddWorkshop(ws)
	h.Sync.Enqueue(domain.CollectionWorkshops)
	writeJSON(w, http.StatusCreated, ws)
}

func (h WorkshopHandler) update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   *string `json:"name"`
		Active *bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	ws, err := h.Store.Workshop(chi.URLParam(r, "id"))
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	if req.Name != nil {
		if *req.Name == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		ws.Name = *req.Name
	}
	if req.Active != nil {
		ws.Active = *req.Active
	}
	if err := h.Store.UpdateWorkshop(ws); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.Sync.Enqueue(domain.CollectionWorkshops)
	writeJSON(w, http.StatusOK, ws)
}

func (h WorkshopHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteWorkshop(chi.URLParam(r, "id")); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.Sync.Enqueue(domain.CollectionWorkshops)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
