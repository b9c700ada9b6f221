// Package finance derives every monetary figure from the entity
// collections: per-vehicle economics, windowed revenue/expense summaries,
// per-worker salaries and per-workshop daily bills. All functions are
// pure; they read a snapshot and a time window and compute in integer
// minor units.
package finance

import (
	"sort"
	"time"

	"github.com/Juanchoszs/StarWash/internal/domain"
)

// Window is a predicate over entity timestamps. A nil Window means
// "lifetime": every timestamp matches.
type Window func(t time.Time) bool

// Day matches timestamps on the same calendar day as ref, in ref's
// location.
func Day(ref time.Time) Window {
	y, m, d := ref.Date()
	loc := ref.Location()
	return func(t time.Time) bool {
		ty, tm, td := t.In(loc).Date()
		return ty == y && tm == m && td == d
	}
}

// Month matches timestamps in the same calendar month as ref, in ref's
// location.
func Month(ref time.Time) Window {
	y, m, _ := ref.Date()
	loc := ref.Location()
	return func(t time.Time) bool {
		ty, tm, _ := t.In(loc).Date()
		return ty == y && tm == m
	}
}

// Between matches timestamps in [start, end] inclusive.
func Between(start, end time.Time) Window {
	return func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}
}

func in(w Window, t time.Time) bool {
	return w == nil || w(t)
}

// Economics is the revenue and commission a single vehicle contributes.
type Economics struct {
	Revenue    int64
	Commission int64
}

// VehicleEconomics resolves the vehicle's service against the index and
// prices it. A vehicle whose service cannot be resolved contributes zero
// to both figures; that is a defensive default, not an error.
func VehicleEconomics(v domain.Vehicle, services map[string]domain.Service) Economics {
	svc, ok := services[v.ServiceID]
	if !ok {
		return Economics{}
	}
	return Economics{
		Revenue:    svc.PriceFor(v.FromWorkshop()),
		Commission: svc.CommissionFor(v.FromWorkshop()),
	}
}

// ServiceIndex builds the id lookup used by the aggregate functions.
func ServiceIndex(services []domain.Service) map[string]domain.Service {
	idx := make(map[string]domain.Service, len(services))
	for _, s := range services {
		idx[s.ID] = s
	}
	return idx
}

// Summary aggregates one time window. Net = revenue - commissions -
// expenses; commissions may exceed revenue under pathological pricing and
// the engine does not special-case that.
type Summary struct {
	Vehicles    int   `json:"vehicles"`
	Revenue     int64 `json:"revenue"`
	Commissions int64 `json:"commissions"`
	Expenses    int64 `json:"expenses"`
	Net         int64 `json:"net"`
}

// Summarize computes the windowed aggregate over billable vehicles
// (status ready or delivered, entry time in the window) and expenses
// dated in the window.
func Summarize(snap domain.Snapshot, w Window) Summary {
	idx := ServiceIndex(snap.Services)
	var sum Summary
	for _, v := range snap.Motos {
		if !v.Status.Billable() || !in(w, v.EntryTime) {
			continue
		}
		eco := VehicleEconomics(v, idx)
		sum.Vehicles++
		sum.Revenue += eco.Revenue
		sum.Commissions += eco.Commission
	}
	for _, e := range snap.Expenses {
		if in(w, e.Date) {
			sum.Expenses += e.Amount
		}
	}
	sum.Net = sum.Revenue - sum.Commissions - sum.Expenses
	return sum
}

// WorkerSalary is a worker's accumulated commission over completed
// vehicles.
type WorkerSalary struct {
	WorkerID string `json:"workerId"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Vehicles int    `json:"vehicles"`
	Salary   int64  `json:"salary"`
}

// Salaries computes per-worker commission totals over billable vehicles
// with entry time in the window (lifetime when w is nil). Inactive
// workers appear: deactivation never forfeits earned commission.
func Salaries(snap domain.Snapshot, w Window) []WorkerSalary {
	idx := ServiceIndex(snap.Services)
	byWorker := make(map[string]*WorkerSalary, len(snap.Workers))
	out := make([]WorkerSalary, 0, len(snap.Workers))
	for _, wk := range snap.Workers {
		out = append(out, WorkerSalary{WorkerID: wk.ID, Name: wk.Name, Active: wk.Active})
	}
	for i := range out {
		byWorker[out[i].WorkerID] = &out[i]
	}
	for _, v := range snap.Motos {
		if v.WorkerID == "" || !v.Status.Billable() || !in(w, v.EntryTime) {
			continue
		}
		ws, ok := byWorker[v.WorkerID]
		if !ok {
			continue
		}
		ws.Vehicles++
		ws.Salary += VehicleEconomics(v, idx).Commission
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Salary > out[j].Salary })
	return out
}

// Salary computes one worker's total; ok is false when the worker id is
// unknown.
func Salary(snap domain.Snapshot, workerID string, w Window) (WorkerSalary, bool) {
	for _, ws := range Salaries(snap, w) {
		if ws.WorkerID == workerID {
			return ws, true
		}
	}
	return WorkerSalary{}, false
}

// BillLine is one vehicle on a workshop's daily bill.
type BillLine struct {
	VehicleID   string    `json:"vehicleId"`
	Plate       string    `json:"plate"`
	ServiceName string    `json:"serviceName"`
	Amount      int64     `json:"amount"`
	EntryTime   time.Time `json:"entryTime"`
}

// WorkshopBill is the invoice a partner workshop owes for one day.
type WorkshopBill struct {
	WorkshopID string     `json:"workshopId"`
	Total      int64      `json:"total"`
	Lines      []BillLine `json:"lines"`
}

// Bill computes a workshop's bill for the day of ref: billable vehicles
// from that workshop whose entry time falls on the day, priced at the
// workshop rate, with line items for display.
func Bill(snap domain.Snapshot, workshopID string, ref time.Time) WorkshopBill {
	idx := ServiceIndex(snap.Services)
	day := Day(ref)
	bill := WorkshopBill{WorkshopID: workshopID, Lines: []BillLine{}}
	for _, v := range snap.Motos {
		if v.WorkshopID != workshopID || !v.Status.Billable() || !day(v.EntryTime) {
			continue
		}
		line := BillLine{VehicleID: v.ID, Plate: v.Plate, EntryTime: v.EntryTime}
		if svc, ok := idx[v.ServiceID]; ok {
			line.ServiceName = svc.Name
			line.Amount = svc.WorkshopPrice
		}
		bill.Total += line.Amount
		bill.Lines = append(bill.Lines, line)
	}
	sort.SliceStable(bill.Lines, func(i, j int) bool {
		return bill.Lines[i].EntryTime.Before(bill.Lines[j].EntryTime)
	})
	return bill
}

// History returns the most recent billable vehicles, newest entry first,
// capped at limit.
func History(snap domain.Snapshot, limit int) []domain.Vehicle {
	out := make([]domain.Vehicle, 0, limit)
	for _, v := range snap.Motos {
		if v.Status.Billable() {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryTime.After(out[j].EntryTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
