package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/finance"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/workflow"
	"github.com/go-chi/chi/v5"
)

type VehicleHandler struct {
	Engine       *workflow.Engine
	Store        *store.Store
	BusinessName string
	CountryCode  string
}

func (h VehicleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/vehicles", h.list)
	r.Post("/vehicles", h.create)
	r.Get("/vehicles/history", h.history)
	r.Post("/vehicles/{id}/status", h.updateStatus)
	r.Delete("/vehicles/{id}", h.delete)
	r.Post("/vehicles/{id}/assignments", h.propose)
	r.Get("/vehicles/{id}/notify-link", h.notifyLink)
	r.Post("/assignments/{proposalId}/confirm", h.confirm)
	r.Delete("/assignments/{proposalId}", h.cancel)
}

func (h VehicleHandler) list(w http.ResponseWriter, r *http.Request) {
	statusFilter := domain.Status(r.URL.Query().Get("status"))
	if statusFilter != "" && !statusFilter.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status filter")
		return
	}
	vehicles := h.Store.Vehicles()
	resp := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if statusFilter != "" && v.Status != statusFilter {
			continue
		}
		resp = append(resp, v)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h VehicleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plate      string `json:"plate"`
		Phone      string `json:"phone"`
		ServiceID  string `json:"serviceId"`
		WorkshopID string `json:"workshopId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	v, err := h.Engine.CreateVehicle(workflow.CreateVehicleInput{
		Plate:      req.Plate,
		Phone:      req.Phone,
		ServiceID:  req.ServiceID,
		WorkshopID: req.WorkshopID,
	})
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h VehicleHandler) history(w http.ResponseWriter, r *http.Request) {
	limit := parseLimitQuery(r, "limit", 50)
	writeJSON(w, http.StatusOK, finance.History(h.Store.Snapshot(), limit))
}

func (h VehicleHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status   string `json:"status"`
		WorkerID string `json:"workerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Engine.RequestTransition(chi.URLParam(r, "id"), domain.Status(req.Status), req.WorkerID)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionPayload(res))
}

func (h VehicleHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteVehicle(chi.URLParam(r, "id")); err != nil {
		writeWorkflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h VehicleHandler) propose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkerID string `json:"workerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.WorkerID == "" {
		writeError(w, http.StatusUnprocessableEntity, "workerId is required")
		return
	}
	p, err := h.Engine.ProposeAssignment(chi.URLParam(r, "id"), req.WorkerID)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"proposalId": p.ID,
		"vehicleId":  p.VehicleID,
		"workerId":   p.WorkerID,
		"createdAt":  p.CreatedAt.Format(time.RFC3339),
	})
}

func (h VehicleHandler) confirm(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.ConfirmAssignment(chi.URLParam(r, "proposalId"))
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionPayload(res))
}

func (h VehicleHandler) cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.CancelAssignment(chi.URLParam(r, "proposalId")); err != nil {
		writeWorkflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cancelled": true})
}

// notifyLink builds a pre-filled WhatsApp message URL telling the
// customer their motorcycle is ready for pickup.
func (h VehicleHandler) notifyLink(w http.ResponseWriter, r *http.Request) {
	v, err := h.Store.Vehicle(chi.URLParam(r, "id"))
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	if v.Phone == "" {
		writeError(w, http.StatusUnprocessableEntity, "vehicle has no contact phone")
		return
	}
	message := fmt.Sprintf("Hola! Tu moto con placa %s está lista para ser recogida en %s.", v.Plate, h.BusinessName)
	link := fmt.Sprintf("https://wa.me/%s%s?text=%s", h.CountryCode, v.Phone, url.QueryEscape(message))
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func transitionPayload(res workflow.TransitionResult) map[string]any {
	payload := map[string]any{"vehicle": res.Vehicle}
	if res.Warning != "" {
		payload["warning"] = res.Warning
	}
	return payload
}
