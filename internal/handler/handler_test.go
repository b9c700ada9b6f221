package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type noopNotifier struct{}

func (noopNotifier) Enqueue(domain.Collection) {}

type testEnv struct {
	router *chi.Mux
	store  *store.Store
	engine *workflow.Engine
}

// newTestEnv mounts every handler on a bare router, no auth gate. The
// middleware stack is covered by the server package tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.New()
	st.Hydrate(domain.Snapshot{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := workflow.New(st, noopNotifier{}, logger)

	r := chi.NewRouter()
	VehicleHandler{Engine: engine, Store: st, BusinessName: "StarWash", CountryCode: "57"}.RegisterRoutes(r)
	WorkerHandler{Store: st, Sync: noopNotifier{}}.RegisterRoutes(r)
	ServiceHandler{Store: st, Sync: noopNotifier{}}.RegisterRoutes(r)
	WorkshopHandler{Store: st, Sync: noopNotifier{}}.RegisterRoutes(r)
	ExpenseHandler{Store: st, Sync: noopNotifier{}}.RegisterRoutes(r)
	ReportHandler{Store: st}.RegisterRoutes(r)
	SyncHandler{Store: st, Sync: noopNotifier{}}.RegisterRoutes(r)

	return &testEnv{router: r, store: st, engine: engine}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the response wrapper for decoding in assertions.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "ok", env.Status)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func (e *testEnv) seedCatalog(t *testing.T) (domain.Service, domain.Worker, domain.Workshop) {
	t.Helper()
	commission := int64(3000)
	svc := domain.Service{
		ID: store.NewID(), Name: "Completo", Price: 20000, WorkshopPrice: 15000,
		WorkerCommission: 5000, WorkshopWorkerCommission: &commission,
	}
	wk := domain.Worker{ID: store.NewID(), Name: "Carlos", Active: true}
	ws := domain.Workshop{ID: store.NewID(), Name: "Taller Norte", Active: true}
	e.store.AddService(svc)
	e.store.AddWorker(wk)
	e.store.AddWorkshop(ws)
	return svc, wk, ws
}
