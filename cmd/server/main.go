package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Juanchoszs/StarWash/internal/blobstore"
	"github.com/Juanchoszs/StarWash/internal/config"
	"github.com/Juanchoszs/StarWash/internal/handler"
	"github.com/Juanchoszs/StarWash/internal/server"
	"github.com/Juanchoszs/StarWash/internal/service"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/syncer"
	"github.com/Juanchoszs/StarWash/internal/workflow"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	blob := blobstore.NewRedis(cfg)
	defer blob.Close()

	st := store.New()
	sy := syncer.New(st, blob, logger, cfg.PersistTimeout)

	// One-shot hydration. A failed or partial load leaves the affected
	// collections empty; the shop can keep operating offline.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	st.Hydrate(sy.LoadAll(loadCtx))
	cancel()

	go sy.Run(ctx)

	engine := workflow.New(st, sy, logger)
	engine.CompletionRestamp = cfg.CompletionRestamp

	authSvc := service.AuthService{Config: cfg, Logger: logger}

	healthHandler := handler.HealthHandler{Blob: blob}
	authHandler := handler.AuthHandler{Service: &authSvc}
	vehicleHandler := handler.VehicleHandler{
		Engine:       engine,
		Store:        st,
		BusinessName: cfg.BusinessName,
		CountryCode:  cfg.CountryCode,
	}
	workerHandler := handler.WorkerHandler{Store: st, Sync: sy}
	serviceHandler := handler.ServiceHandler{Store: st, Sync: sy}
	workshopHandler := handler.WorkshopHandler{Store: st, Sync: sy}
	expenseHandler := handler.ExpenseHandler{Store: st, Sync: sy}
	reportHandler := handler.ReportHandler{Store: st}
	syncHandler := handler.SyncHandler{Store: st, Sync: sy}

	router := server.NewRouter(cfg, logger, st,
		healthHandler, authHandler, vehicleHandler, workerHandler,
		serviceHandler, workshopHandler, expenseHandler, reportHandler,
		syncHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
