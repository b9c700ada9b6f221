package finance

import (
	"testing"
	"time"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDay = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func int64p(v int64) *int64 { return &v }

// testSnapshot builds the canonical pricing scenario: one service at
// 20000 walk-in / 15000 workshop, worker commission 5000 walk-in / 3000
// workshop; one delivered walk-in and one delivered workshop vehicle,
// both washed by the same worker on the same day.
func testSnapshot() domain.Snapshot {
	svc := domain.Service{
		ID:                       "svc-1",
		Name:                     "Lavado completo",
		Price:                    20000,
		WorkshopPrice:            15000,
		WorkerCommission:         5000,
		WorkshopWorkerCommission: int64p(3000),
	}
	return domain.Snapshot{
		Services:  []domain.Service{svc},
		Workers:   []domain.Worker{{ID: "wk-1", Name: "Carlos", Active: true}},
		Workshops: []domain.Workshop{{ID: "ws-1", Name: "Taller Norte", Active: true}},
		Motos: []domain.Vehicle{
			{ID: "m-1", Plate: "AAA111", ServiceID: "svc-1", WorkerID: "wk-1", Status: domain.StatusDelivered, EntryTime: baseDay},
			{ID: "m-2", Plate: "BBB222", ServiceID: "svc-1", WorkshopID: "ws-1", WorkerID: "wk-1", Status: domain.StatusDelivered, EntryTime: baseDay.Add(time.Hour)},
		},
	}
}

func TestVehicleEconomicsBySource(t *testing.T) {
	snap := testSnapshot()
	idx := ServiceIndex(snap.Services)

	walkIn := VehicleEconomics(snap.Motos[0], idx)
	assert.Equal(t, Economics{Revenue: 20000, Commission: 5000}, walkIn)

	fromWorkshop := VehicleEconomics(snap.Motos[1], idx)
	assert.Equal(t, Economics{Revenue: 15000, Commission: 3000}, fromWorkshop)
}

func TestVehicleEconomicsUnresolvedService(t *testing.T) {
	v := domain.Vehicle{ID: "m-x", ServiceID: "gone", Status: domain.StatusDelivered}
	assert.Equal(t, Economics{}, VehicleEconomics(v, map[string]domain.Service{}))
}

func TestWorkshopCommissionFallback(t *testing.T) {
	svc := domain.Service{Price: 20000, WorkshopPrice: 15000, WorkerCommission: 5000}
	assert.Equal(t, int64(5000), svc.CommissionFor(true), "missing workshop commission falls back")

	svc.WorkshopWorkerCommission = int64p(0)
	assert.Equal(t, int64(0), svc.CommissionFor(true), "explicit zero does not fall back")
}

func TestSummarizeBillableOnly(t *testing.T) {
	snap := testSnapshot()
	// In-progress vehicles never count, regardless of window.
	snap.Motos = append(snap.Motos,
		domain.Vehicle{ID: "m-3", ServiceID: "svc-1", Status: domain.StatusWaiting, EntryTime: baseDay},
		domain.Vehicle{ID: "m-4", ServiceID: "svc-1", WorkerID: "wk-1", Status: domain.StatusWashing, EntryTime: baseDay},
	)
	snap.Expenses = []domain.Expense{
		{ID: "e-1", Description: "Jabón", Amount: 4000, Date: baseDay},
		{ID: "e-2", Description: "Arriendo", Amount: 9000, Date: baseDay.AddDate(0, 0, -3)},
	}

	day := Summarize(snap, Day(baseDay))
	assert.Equal(t, 2, day.Vehicles)
	assert.Equal(t, int64(35000), day.Revenue)
	assert.Equal(t, int64(8000), day.Commissions)
	assert.Equal(t, int64(4000), day.Expenses)
	assert.Equal(t, int64(23000), day.Net)

	month := Summarize(snap, Month(baseDay))
	assert.Equal(t, int64(13000), month.Expenses, "earlier expense lands in the monthly window")
	assert.Equal(t, int64(14000), month.Net)
}

func TestSummarizeLifetime(t *testing.T) {
	snap := testSnapshot()
	snap.Motos[1].EntryTime = baseDay.AddDate(0, -2, 0)

	got := Summarize(snap, nil)
	assert.Equal(t, 2, got.Vehicles)
	assert.Equal(t, int64(35000), got.Revenue)
}

func TestNetCanGoNegative(t *testing.T) {
	snap := testSnapshot()
	snap.Expenses = []domain.Expense{{ID: "e-1", Description: "Compresor", Amount: 50000, Date: baseDay}}

	got := Summarize(snap, Day(baseDay))
	assert.Equal(t, int64(-23000), got.Net)
}

func TestSalaries(t *testing.T) {
	snap := testSnapshot()
	snap.Workers = append(snap.Workers, domain.Worker{ID: "wk-2", Name: "Andrea", Active: false})

	out := Salaries(snap, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "wk-1", out[0].WorkerID)
	assert.Equal(t, int64(8000), out[0].Salary)
	assert.Equal(t, 2, out[0].Vehicles)
	assert.Equal(t, "wk-2", out[1].WorkerID, "inactive workers still listed")
	assert.Zero(t, out[1].Salary)
	assert.False(t, out[1].Active)
}

func TestSalaryExcludesInProgress(t *testing.T) {
	snap := testSnapshot()
	snap.Motos = append(snap.Motos, domain.Vehicle{
		ID: "m-3", ServiceID: "svc-1", WorkerID: "wk-1",
		Status: domain.StatusWashing, EntryTime: baseDay,
	})

	ws, ok := Salary(snap, "wk-1", Day(baseDay))
	require.True(t, ok)
	assert.Equal(t, int64(8000), ws.Salary)
	assert.Equal(t, 2, ws.Vehicles)

	_, ok = Salary(snap, "nobody", nil)
	assert.False(t, ok)
}

func TestBill(t *testing.T) {
	snap := testSnapshot()
	// Second workshop vehicle the day before: outside the bill.
	snap.Motos = append(snap.Motos, domain.Vehicle{
		ID: "m-3", Plate: "CCC333", ServiceID: "svc-1", WorkshopID: "ws-1",
		WorkerID: "wk-1", Status: domain.StatusDelivered, EntryTime: baseDay.AddDate(0, 0, -1),
	})

	bill := Bill(snap, "ws-1", baseDay)
	assert.Equal(t, "ws-1", bill.WorkshopID)
	require.Len(t, bill.Lines, 1)
	assert.Equal(t, int64(15000), bill.Total)
	assert.Equal(t, "BBB222", bill.Lines[0].Plate)
	assert.Equal(t, "Lavado completo", bill.Lines[0].ServiceName)
}

func TestBillEmptyDay(t *testing.T) {
	bill := Bill(testSnapshot(), "ws-1", baseDay.AddDate(0, 1, 0))
	assert.Zero(t, bill.Total)
	assert.NotNil(t, bill.Lines)
	assert.Empty(t, bill.Lines)
}

func TestHistoryNewestFirstCapped(t *testing.T) {
	snap := testSnapshot()
	snap.Motos = append(snap.Motos, domain.Vehicle{
		ID: "m-3", Plate: "CCC333", ServiceID: "svc-1", WorkerID: "wk-1",
		Status: domain.StatusReady, EntryTime: baseDay.Add(2 * time.Hour),
	}, domain.Vehicle{
		ID: "m-4", ServiceID: "svc-1", Status: domain.StatusWaiting, EntryTime: baseDay.Add(3 * time.Hour),
	})

	got := History(snap, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "m-3", got[0].ID)
	assert.Equal(t, "m-2", got[1].ID)
}

func TestWindows(t *testing.T) {
	ref := time.Date(2026, 5, 10, 23, 30, 0, 0, time.UTC)

	assert.True(t, Day(ref)(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, Day(ref)(time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)))

	assert.True(t, Month(ref)(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, Month(ref)(time.Date(2026, 4, 30, 23, 59, 59, 0, time.UTC)))

	w := Between(baseDay, baseDay.AddDate(0, 0, 2))
	assert.True(t, w(baseDay))
	assert.True(t, w(baseDay.AddDate(0, 0, 2)))
	assert.False(t, w(baseDay.Add(-time.Nanosecond)))
}
