package store

import (
	"errors"
	"sync"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a referenced entity id does not exist.
var ErrNotFound = errors.New("entity not found")

// Store owns the authoritative in-memory collections for the running
// session. All access goes through its lock; callers receive copies and
// never hold references into the internal slices.
type Store struct {
	mu        sync.RWMutex
	motos     []domain.Vehicle
	workers   []domain.Worker
	services  []domain.Service
	workshops []domain.Workshop
	expenses  []domain.Expense
	loaded    bool
}

func New() *Store {
	return &Store{}
}

// NewID generates a fresh entity identity.
func NewID() string {
	return uuid.NewString()
}

// Hydrate replaces every collection with the loaded snapshot and marks
// the store ready for mutation. Called once at startup.
func (s *Store) Hydrate(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motos = append([]domain.Vehicle(nil), snap.Motos...)
	s.workers = append([]domain.Worker(nil), snap.Workers...)
	s.services = append([]domain.Service(nil), snap.Services...)
	s.workshops = append([]domain.Workshop(nil), snap.Workshops...)
	s.expenses = append([]domain.Expense(nil), snap.Expenses...)
	s.loaded = true
}

// Loaded reports whether the initial load attempt has finished. Mutations
// are rejected until then.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns a copy of all five collections.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Motos:     append([]domain.Vehicle{}, s.motos...),
		Workers:   append([]domain.Worker{}, s.workers...),
		Services:  append([]domain.Service{}, s.services...),
		Workshops: append([]domain.Workshop{}, s.workshops...),
		Expenses:  append([]domain.Expense{}, s.expenses...),
	}
}

// Vehicles

func (s *Store) Vehicles() []domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Vehicle{}, s.motos...)
}

func (s *Store) Vehicle(id string) (domain.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.motos {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Vehicle{}, ErrNotFound
}

func (s *Store) AddVehicle(v domain.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.motos = append(s.motos, v)
}

// UpdateVehicle applies fn to a copy of the vehicle under the store lock
// and writes the result back if fn succeeds. fn observes the current
// state, so validate-then-mutate sequences cannot race another writer.
func (s *Store) UpdateVehicle(id string, fn func(*domain.Vehicle) error) (domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.motos {
		if v.ID != id {
			continue
		}
		if err := fn(&v); err != nil {
			return domain.Vehicle{}, err
		}
		s.motos[i] = v
		return v, nil
	}
	return domain.Vehicle{}, ErrNotFound
}

func (s *Store) DeleteVehicle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.motos {
		if v.ID == id {
			s.motos = append(s.motos[:i], s.motos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Workers

func (s *Store) Workers() []domain.Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Worker{}, s.workers...)
}

func (s *Store) Worker(id string) (domain.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return domain.Worker{}, ErrNotFound
}

func (s *Store) AddWorker(w domain.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, w)
}

func (s *Store) UpdateWorker(w domain.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.workers {
		if cur.ID == w.ID {
			s.workers[i] = w
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteWorker(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.workers {
		if w.ID == id {
			s.workers = append(s.workers[:i], s.workers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Services

func (s *Store) Services() []domain.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Service{}, s.services...)
}

func (s *Store) Service(id string) (domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return domain.Service{}, ErrNotFound
}

func (s *Store) AddService(svc domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append(s.services, svc)
}

func (s *Store) UpdateService(svc domain.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.services {
		if cur.ID == svc.ID {
			s.services[i] = svc
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteService(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, svc := range s.services {
		if svc.ID == id {
			s.services = append(s.services[:i], s.services[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Workshops

func (s *Store) Workshops() []domain.Workshop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Workshop{}, s.workshops...)
}

func (s *Store) Workshop(id string) (domain.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ws := range s.workshops {
		if ws.ID == id {
			return ws, nil
		}
	}
	return domain.Workshop{}, ErrNotFound
}

func (s *Store) AddWorkshop(ws domain.Workshop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workshops = append(s.workshops, ws)
}

func (s *Store) UpdateWorkshop(ws domain.Workshop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.workshops {
		if cur.ID == ws.ID {
			s.workshops[i] = ws
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteWorkshop(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ws := range s.workshops {
		if ws.ID == id {
			s.workshops = append(s.workshops[:i], s.workshops[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Expenses

func (s *Store) Expenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Expense{}, s.expenses...)
}

func (s *Store) AddExpense(e domain.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
}

func (s *Store) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ReplaceCollection overwrites one collection with a full snapshot array,
// the legacy /api/sync write path.
func (s *Store) ReplaceCollection(c domain.Collection, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch c {
	case domain.CollectionMotos:
		s.motos = append([]domain.Vehicle(nil), snap.Motos...)
	case domain.CollectionWorkers:
		s.workers = append([]domain.Worker(nil), snap.Workers...)
	case domain.CollectionServices:
		s.services = append([]domain.Service(nil), snap.Services...)
	case domain.CollectionWorkshops:
		s.workshops = append([]domain.Workshop(nil), snap.Workshops...)
	case domain.CollectionExpenses:
		s.expenses = append([]domain.Expense(nil), snap.Expenses...)
	default:
		return ErrNotFound
	}
	return nil
}
