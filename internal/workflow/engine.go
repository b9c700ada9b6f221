package workflow

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrNotFound means the referenced vehicle, worker, service or
	// workshop id does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrInvalidTransition means the requested status change is not an
	// edge of the workflow state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrMissingWorker means a transition to washing was requested
	// without a worker id.
	ErrMissingWorker = errors.New("worker id is required")
	// ErrProposalNotFound means the assignment proposal id is unknown or
	// already consumed.
	ErrProposalNotFound = errors.New("assignment proposal not found")
)

var transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "starwash_transitions_total",
	Help: "Accepted vehicle status transitions by target status.",
}, []string{"status"})

// Notifier receives the name of a collection whose post-mutation snapshot
// must be persisted. Enqueue is fire-and-forget.
type Notifier interface {
	Enqueue(c domain.Collection)
}

// Engine enforces the workflow state machine over vehicle records. Every
// accepted mutation goes to the store first and is then queued for
// persistence; persistence failure never rolls the mutation back.
type Engine struct {
	Store  *store.Store
	Sync   Notifier
	Logger *slog.Logger

	// CompletionRestamp controls whether a vehicle that regressed past
	// ready gets a fresh completion timestamp when it reaches ready
	// again. Off by default: the original stamp is kept.
	CompletionRestamp bool

	mu        sync.Mutex
	proposals map[string]Proposal
	now       func() time.Time
}

// TransitionResult is the materialized vehicle after a mutation, plus a
// non-fatal warning the operator should see (e.g. assignment to an
// inactive worker).
type TransitionResult struct {
	Vehicle domain.Vehicle
	Warning string
}

// Proposal is a pending two-phase assignment intent: vehicle X to worker
// Y, awaiting operator confirmation. Confirm re-validates both entities,
// so a stale proposal can never commit against a deleted vehicle.
type Proposal struct {
	ID        string
	VehicleID string
	WorkerID  string
	CreatedAt time.Time
}

type CreateVehicleInput struct {
	Plate      string
	Phone      string
	ServiceID  string
	WorkshopID string
}

func New(st *store.Store, notifier Notifier, logger *slog.Logger) *Engine {
	return &Engine{
		Store:     st,
		Sync:      notifier,
		Logger:    logger,
		proposals: make(map[string]Proposal),
		now:       time.Now,
	}
}

// CreateVehicle registers an intake. New vehicles always enter the
// waiting pool with no worker.
func (e *Engine) CreateVehicle(in CreateVehicleInput) (domain.Vehicle, error) {
	if in.Plate == "" {
		return domain.Vehicle{}, errors.New("plate is required")
	}
	if _, err := e.Store.Service(in.ServiceID); err != nil {
		return domain.Vehicle{}, fmt.Errorf("service %s: %w", in.ServiceID, err)
	}
	if in.WorkshopID != "" {
		if _, err := e.Store.Workshop(in.WorkshopID); err != nil {
			return domain.Vehicle{}, fmt.Errorf("workshop %s: %w", in.WorkshopID, err)
		}
	}
	v := domain.Vehicle{
		ID:         store.NewID(),
		Plate:      in.Plate,
		Phone:      in.Phone,
		ServiceID:  in.ServiceID,
		WorkshopID: in.WorkshopID,
		Status:     domain.StatusWaiting,
		EntryTime:  e.now(),
	}
	e.Store.AddVehicle(v)
	e.Sync.Enqueue(domain.CollectionMotos)
	e.Logger.Info("vehicle intake", "id", v.ID, "plate", v.Plate, "workshop", v.WorkshopID != "")
	return v, nil
}

// RequestTransition validates and applies a status change. workerID is
// required for transitions into washing and ignored otherwise.
func (e *Engine) RequestTransition(vehicleID string, target domain.Status, workerID string) (TransitionResult, error) {
	if !target.Valid() {
		return TransitionResult{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}
	if target == domain.StatusWashing && workerID == "" {
		return TransitionResult{}, ErrMissingWorker
	}

	var warning string
	if target == domain.StatusWashing {
		w, err := e.Store.Worker(workerID)
		if err != nil {
			return TransitionResult{}, fmt.Errorf("worker %s: %w", workerID, err)
		}
		if !w.Active {
			warning = fmt.Sprintf("worker %s is inactive", w.Name)
			e.Logger.Warn("assigning vehicle to inactive worker", "vehicle", vehicleID, "worker", w.ID)
		}
	}

	updated, err := e.Store.UpdateVehicle(vehicleID, func(v *domain.Vehicle) error {
		if !allowed(v.Status, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, v.Status, target)
		}
		from := v.Status
		v.Status = target
		switch target {
		case domain.StatusWaiting:
			v.WorkerID = ""
		case domain.StatusWashing:
			v.WorkerID = workerID
		case domain.StatusReady:
			if v.CompletionTime == nil || (e.CompletionRestamp && from != domain.StatusReady) {
				t := e.now()
				v.CompletionTime = &t
			}
		}
		return nil
	})
	if err != nil {
		return TransitionResult{}, err
	}

	transitionsTotal.WithLabelValues(string(target)).Inc()
	e.Sync.Enqueue(domain.CollectionMotos)
	e.Logger.Info("vehicle transition", "id", updated.ID, "plate", updated.Plate, "status", updated.Status)
	return TransitionResult{Vehicle: updated, Warning: warning}, nil
}

// DeleteVehicle removes a vehicle unconditionally, from any state. The
// record disappears from every subsequent aggregate.
func (e *Engine) DeleteVehicle(id string) error {
	if err := e.Store.DeleteVehicle(id); err != nil {
		return err
	}
	e.Sync.Enqueue(domain.CollectionMotos)
	e.Logger.Info("vehicle deleted", "id", id)
	return nil
}

// ProposeAssignment opens a pending intent to assign a vehicle to a
// worker. The caller gates the actual mutation behind a confirmation
// dialog and commits with ConfirmAssignment.
func (e *Engine) ProposeAssignment(vehicleID, workerID string) (Proposal, error) {
	v, err := e.Store.Vehicle(vehicleID)
	if err != nil {
		return Proposal{}, err
	}
	if !assignable(v.Status) {
		return Proposal{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, v.Status, domain.StatusWashing)
	}
	if _, err := e.Store.Worker(workerID); err != nil {
		return Proposal{}, fmt.Errorf("worker %s: %w", workerID, err)
	}

	p := Proposal{
		ID:        store.NewID(),
		VehicleID: vehicleID,
		WorkerID:  workerID,
		CreatedAt: e.now(),
	}
	e.mu.Lock()
	e.proposals[p.ID] = p
	e.mu.Unlock()
	return p, nil
}

// ConfirmAssignment commits a pending proposal. The vehicle and worker
// are re-validated: the store may have changed between propose and
// confirm. The proposal is consumed either way.
func (e *Engine) ConfirmAssignment(proposalID string) (TransitionResult, error) {
	e.mu.Lock()
	p, ok := e.proposals[proposalID]
	if ok {
		delete(e.proposals, proposalID)
	}
	e.mu.Unlock()
	if !ok {
		return TransitionResult{}, ErrProposalNotFound
	}
	return e.RequestTransition(p.VehicleID, domain.StatusWashing, p.WorkerID)
}

// CancelAssignment drops a pending proposal without mutating anything.
func (e *Engine) CancelAssignment(proposalID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.proposals[proposalID]; !ok {
		return ErrProposalNotFound
	}
	delete(e.proposals, proposalID)
	return nil
}

// allowed is the transition table. Same-status edges are legal where the
// operation is idempotent (re-dropping a card on the pool or a lane).
func allowed(from, to domain.Status) bool {
	switch from {
	case domain.StatusWaiting:
		return to == domain.StatusWashing || to == domain.StatusWaiting
	case domain.StatusWashing:
		return to == domain.StatusReady || to == domain.StatusWaiting || to == domain.StatusWashing
	case domain.StatusReady:
		return to == domain.StatusDelivered || to == domain.StatusWaiting || to == domain.StatusReady
	case domain.StatusDelivered:
		return false
	}
	return false
}

// assignable reports whether a vehicle can be (re)assigned to a worker.
func assignable(s domain.Status) bool {
	return s == domain.StatusWaiting || s == domain.StatusWashing
}
