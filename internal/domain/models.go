package domain

import "time"

// Enumerations
const (
	StatusWaiting   Status = "waiting"
	StatusWashing   Status = "washing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"

	CollectionMotos     Collection = "motos"
	CollectionWorkers   Collection = "workers"
	CollectionServices  Collection = "services"
	CollectionWorkshops Collection = "workshops"
	CollectionExpenses  Collection = "expenses"
)

type Status string
type Collection string

// Valid reports whether s is one of the four workflow statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusWashing, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// Billable reports whether a vehicle in this status counts toward revenue
// and commission aggregates. Vehicles still waiting or washing have not
// generated committed revenue.
func (s Status) Billable() bool {
	return s == StatusReady || s == StatusDelivered
}

// Valid reports whether c is one of the five synced collections.
func (c Collection) Valid() bool {
	switch c {
	case CollectionMotos, CollectionWorkers, CollectionServices, CollectionWorkshops, CollectionExpenses:
		return true
	}
	return false
}

// Collections lists every synced collection in load order.
func Collections() []Collection {
	return []Collection{
		CollectionMotos,
		CollectionWorkers,
		CollectionServices,
		CollectionWorkshops,
		CollectionExpenses,
	}
}

// Vehicle is a motorcycle intake record tracked through the wash workflow.
// WorkerID is set iff status is washing, ready or delivered; a vehicle in
// the waiting pool has no worker. CompletionTime is stamped the first time
// the vehicle reaches ready and kept afterwards.
type Vehicle struct {
	ID             string     `json:"id"`
	Plate          string     `json:"plate"`
	Phone          string     `json:"phone,omitempty"`
	ServiceID      string     `json:"serviceId"`
	WorkshopID     string     `json:"workshopId,omitempty"`
	WorkerID       string     `json:"workerId,omitempty"`
	Status         Status     `json:"status"`
	EntryTime      time.Time  `json:"entryTime"`
	CompletionTime *time.Time `json:"completionTime,omitempty"`
}

// FromWorkshop reports whether the vehicle was sent in by a partner
// workshop rather than a walk-in customer.
func (v Vehicle) FromWorkshop() bool { return v.WorkshopID != "" }

// Service prices a wash. Amounts are integer minor units in a single
// currency. WorkshopWorkerCommission is optional: when absent, commission
// for workshop vehicles falls back to WorkerCommission. An explicit zero
// does not fall back.
type Service struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Price                    int64  `json:"price"`
	WorkshopPrice            int64  `json:"workshopPrice"`
	WorkerCommission         int64  `json:"workerCommission"`
	WorkshopWorkerCommission *int64 `json:"workshopWorkerCommission,omitempty"`
}

// PriceFor returns the billable price for a vehicle depending on its source.
func (s Service) PriceFor(fromWorkshop bool) int64 {
	if fromWorkshop {
		return s.WorkshopPrice
	}
	return s.Price
}

// CommissionFor returns the worker commission owed for a vehicle
// depending on its source.
func (s Service) CommissionFor(fromWorkshop bool) int64 {
	if fromWorkshop && s.WorkshopWorkerCommission != nil {
		return *s.WorkshopWorkerCommission
	}
	return s.WorkerCommission
}

// Worker performs washes and earns a per-vehicle commission. Inactive
// workers are hidden from assignment but keep their vehicle history for
// salary computation.
type Worker struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Workshop is a partner business that sends vehicles in bulk at a
// negotiated price distinct from walk-in pricing.
type Workshop struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Expense is an operating cost deducted from net profit.
type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
}

// Snapshot is the full persisted state: the five collections exactly as
// they travel over /api/data and into the blob store.
type Snapshot struct {
	Motos     []Vehicle  `json:"motos"`
	Workers   []Worker   `json:"workers"`
	Services  []Service  `json:"services"`
	Workshops []Workshop `json:"workshops"`
	Expenses  []Expense  `json:"expenses"`
}
