package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Juanchoszs/StarWash/internal/ports"
	"github.com/go-chi/chi/v5"
)

// HealthHandler exposes a readiness probe. The service stays "ok" even
// when the blob store is unreachable: local state carries the session.
type HealthHandler struct {
	Blob ports.HealthChecker
}

func (h HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	sync := "ok"
	if err := h.Blob.Health(ctx); err != nil {
		sync = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"sync":   sync,
	})
}
