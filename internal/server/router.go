package server

import (
	"net/http"
	"time"

	"github.com/Juanchoszs/StarWash/internal/config"
	"github.com/Juanchoszs/StarWash/internal/handler"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	st *store.Store,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	vehicles handler.VehicleHandler,
	workers handler.WorkerHandler,
	services handler.ServiceHandler,
	workshops handler.WorkshopHandler,
	expenses handler.ExpenseHandler,
	reports handler.ReportHandler,
	sync handler.SyncHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	// Everything past the credential gate also waits for the one-shot
	// startup load to finish.
	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.SessionSecret))
		pr.Use(RequireLoaded(st))
		vehicles.RegisterRoutes(pr)
		workers.RegisterRoutes(pr)
		services.RegisterRoutes(pr)
		workshops.RegisterRoutes(pr)
		expenses.RegisterRoutes(pr)
		reports.RegisterRoutes(pr)
		sync.RegisterRoutes(pr)
	})

	return r
}
