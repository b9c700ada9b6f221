package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/workflow"
	"github.com/go-chi/chi/v5"
)

type ServiceHandler struct {
	Store *store.Store
	Sync  workflow.Notifier
}

func (h ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/services", h.list)
	r.Post("/services", h.create)
	r.Put("/services/{id}", h.update)
	r.Delete("/services/{id}", h.delete)
}

type servicePayload struct {
	Name                     string `json:"name"`
	Price                    *int64 `json:"price"`
	WorkshopPrice            *int64 `json:"workshopPrice"`
	WorkerCommission         *int64 `json:"workerCommission"`
	WorkshopWorkerCommission *int64 `json:"workshopWorkerCommission"`
}

func (p servicePayload) validate() string {
	for _, amount := range []*int64{p.Price, p.WorkshopPrice, p.WorkerCommission, p.WorkshopWorkerCommission} {
		if amount != nil && *amount < 0 {
			return "amounts must be non-negative"
		}
	}
	return ""
}

func (h ServiceHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Services())
}

func (h ServiceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req servicePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	svc := domain.Service{
		ID:                       store.NewID(),
		Name:                     req.Name,
		WorkshopWorkerCommission: req.WorkshopWorkerCommission,
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.WorkshopPrice != nil {
		svc.WorkshopPrice = *req.WorkshopPrice
	}
	if req.WorkerCommission != nil {
		svc.WorkerCommission = *req.WorkerCommission
	}
	h.Store.AddService(svc)
	h.Sync.Enqueue(domain.CollectionServices)
	writeJSON(w, http.StatusCreated, svc)
}

func (h ServiceHandler) update(w http.ResponseWriter, r *http.Request) {
	var req servicePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	svc, err := h.Store.Service(chi.URLParam(r, "id"))
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.WorkshopPrice != nil {
		svc.WorkshopPrice = *req.WorkshopPrice
	}
	if req.WorkerCommission != nil {
		svc.WorkerCommission = *req.WorkerCommission
	}
	if req.WorkshopWorkerCommission != nil {
		svc.WorkshopWorkerCommission = req.WorkshopWorkerCommission
	}
	if err := h.Store.UpdateService(svc); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.Sync.Enqueue(domain.CollectionServices)
	writeJSON(w, http.StatusOK, svc)
}

func (h ServiceHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteService(chi.URLParam(r, "id")); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.Sync.Enqueue(domain.CollectionServices)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
