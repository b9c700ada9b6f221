package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBilled puts one delivered walk-in and one delivered workshop
// vehicle on the given day, both washed by the seeded worker.
func seedBilled(t *testing.T, env *testEnv, day time.Time) (domain.Service, domain.Worker, domain.Workshop) {
	t.Helper()
	svc, wk, ws := env.seedCatalog(t)
	env.store.AddVehicle(domain.Vehicle{
		ID: "m-1", Plate: "AAA111", ServiceID: svc.ID, WorkerID: wk.ID,
		Status: domain.StatusDelivered, EntryTime: day,
	})
	env.store.AddVehicle(domain.Vehicle{
		ID: "m-2", Plate: "BBB222", ServiceID: svc.ID, WorkshopID: ws.ID, WorkerID: wk.ID,
		Status: domain.StatusDelivered, EntryTime: day.Add(time.Hour),
	})
	return svc, wk, ws
}

func TestSummaryReport(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	seedBilled(t, env, day)
	env.store.AddExpense(domain.Expense{ID: "e-1", Description: "Jabón", Amount: 4000, Date: day})

	rec := env.do(t, http.MethodGet, "/reports/summary?date=2026-05-10", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var payload struct {
		Date    string          `json:"date"`
		Daily   finance.Summary `json:"daily"`
		Monthly finance.Summary `json:"monthly"`
	}
	decodeData(t, rec, &payload)
	assert.Equal(t, "2026-05-10", payload.Date)
	assert.Equal(t, int64(35000), payload.Daily.Revenue)
	assert.Equal(t, int64(8000), payload.Daily.Commissions)
	assert.Equal(t, int64(23000), payload.Daily.Net)
	assert.Equal(t, payload.Daily, payload.Monthly)

	rec = env.do(t, http.MethodGet, "/reports/summary?date=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalariesReport(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	_, wk, _ := seedBilled(t, env, day)

	rec := env.do(t, http.MethodGet, "/reports/salaries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []finance.WorkerSalary
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, wk.ID, list[0].WorkerID)
	assert.Equal(t, int64(8000), list[0].Salary)

	// A window that excludes the work day zeroes the salary.
	rec = env.do(t, http.MethodGet, "/reports/salaries?startDate=2026-06-01&endDate=2026-06-30", nil)
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	assert.Zero(t, list[0].Salary)

	rec = env.do(t, http.MethodGet, "/reports/salaries?startDate=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalariesExportCSV(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	seedBilled(t, env, day)

	rec := env.do(t, http.MethodGet, "/reports/salaries/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, rec.Body.String(), "worker_id,name,active,vehicles,salary")
	assert.Contains(t, rec.Body.String(), "Carlos")
	assert.Contains(t, rec.Body.String(), "8000")
}

func TestSalariesExportXLSX(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	seedBilled(t, env, day)

	rec := env.do(t, http.MethodGet, "/reports/salaries/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestSalariesExportUnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/reports/salaries/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkshopBillReport(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	_, _, ws := seedBilled(t, env, day)

	rec := env.do(t, http.MethodGet, "/reports/workshops/"+ws.ID+"/bill?date=2026-05-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		WorkshopID string             `json:"workshopId"`
		Name       string             `json:"name"`
		Total      int64              `json:"total"`
		Lines      []finance.BillLine `json:"lines"`
	}
	decodeData(t, rec, &payload)
	assert.Equal(t, ws.Name, payload.Name)
	assert.Equal(t, int64(15000), payload.Total)
	require.Len(t, payload.Lines, 1)
	assert.Equal(t, "BBB222", payload.Lines[0].Plate)

	rec = env.do(t, http.MethodGet, "/reports/workshops/missing/bill", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
