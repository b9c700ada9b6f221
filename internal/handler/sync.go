package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/workflow"
	"github.com/go-chi/chi/v5"
)

// SyncHandler speaks the legacy snapshot protocol: one GET returning all
// five collections and one POST overwriting a single collection with a
// full array. Clients never merge server state back in.
type SyncHandler struct {
	Store *store.Store
	Sync  workflow.Notifier
}

func (h SyncHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/data", h.data)
	r.Post("/api/sync", h.sync)
}

func (h SyncHandler) data(w http.ResponseWriter, r *http.Request) {
	writeRawJSON(w, http.StatusOK, h.Store.Snapshot())
}

func (h SyncHandler) sync(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	c := domain.Collection(req.Type)
	if !c.Valid() {
		writeError(w, http.StatusBadRequest, "invalid type")
		return
	}

	var snap domain.Snapshot
	var err error
	switch c {
	case domain.CollectionMotos:
		err = json.Unmarshal(req.Data, &snap.Motos)
	case domain.CollectionWorkers:
		err = json.Unmarshal(req.Data, &snap.Workers)
	case domain.CollectionServices:
		err = json.Unmarshal(req.Data, &snap.Services)
	case domain.CollectionWorkshops:
		err = json.Unmarshal(req.Data, &snap.Workshops)
	case domain.CollectionExpenses:
		err = json.Unmarshal(req.Data, &snap.Expenses)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid data array")
		return
	}
	if err := h.Store.ReplaceCollection(c, snap); err != nil {
		writeError(w, http.StatusBadRequest, "invalid type")
		return
	}
	h.Sync.Enqueue(c)
	writeRawJSON(w, http.StatusOK, map[string]bool{"success": true})
}
