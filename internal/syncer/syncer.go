// Package syncer propagates accepted mutations to the blob store and
// rehydrates the entity store at startup. Persistence is optimistic and
// fire-and-forget: the in-memory state is always written first and a
// failed remote write is logged, counted and dropped, never rolled back.
package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var syncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "starwash_sync_failures_total",
	Help: "Snapshot persistence attempts that failed, by collection.",
}, []string{"collection"})

// BlobStore is the persistence boundary: whole-collection JSON snapshots
// keyed by collection name.
type BlobStore interface {
	Load(ctx context.Context, c domain.Collection) ([]byte, error)
	Save(ctx context.Context, c domain.Collection, data []byte) error
}

// Syncer drains an outbox of dirty collection names. The snapshot is
// taken when the task is processed, so bursts of mutations against the
// same collection coalesce into one write.
type Syncer struct {
	Store          *store.Store
	Blob           BlobStore
	Logger         *slog.Logger
	PersistTimeout time.Duration

	tasks chan domain.Collection
}

func New(st *store.Store, blob BlobStore, logger *slog.Logger, persistTimeout time.Duration) *Syncer {
	return &Syncer{
		Store:          st,
		Blob:           blob,
		Logger:         logger,
		PersistTimeout: persistTimeout,
		tasks:          make(chan domain.Collection, 64),
	}
}

// LoadAll fetches every collection once. A collection that fails to load
// or decode comes back empty: the application must stay usable with no
// remote store at all.
func (s *Syncer) LoadAll(ctx context.Context) domain.Snapshot {
	var snap domain.Snapshot
	for _, c := range domain.Collections() {
		data, err := s.Blob.Load(ctx, c)
		if err != nil {
			s.Logger.Error("blob store load failed, starting empty", "collection", c, "err", err)
			continue
		}
		if data == nil {
			continue
		}
		if err := unmarshalInto(&snap, c, data); err != nil {
			s.Logger.Error("stored snapshot is corrupt, starting empty", "collection", c, "err", err)
		}
	}
	return snap
}

// Enqueue marks a collection dirty. Never blocks: when the outbox is
// full the task is dropped and counted, the same contract as a failed
// remote write.
func (s *Syncer) Enqueue(c domain.Collection) {
	select {
	case s.tasks <- c:
	default:
		syncFailures.WithLabelValues(string(c)).Inc()
		s.Logger.Error("sync outbox full, snapshot dropped", "collection", c)
	}
}

// Run drains the outbox until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-s.tasks:
			s.persist(ctx, c)
		}
	}
}

func (s *Syncer) persist(ctx context.Context, c domain.Collection) {
	data, err := marshalCollection(s.Store.Snapshot(), c)
	if err != nil {
		syncFailures.WithLabelValues(string(c)).Inc()
		s.Logger.Error("snapshot encode failed", "collection", c, "err", err)
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, s.PersistTimeout)
	defer cancel()
	if err := s.Blob.Save(saveCtx, c, data); err != nil {
		syncFailures.WithLabelValues(string(c)).Inc()
		s.Logger.Error("snapshot persist failed", "collection", c, "err", err)
		return
	}
	s.Logger.Debug("snapshot persisted", "collection", c, "bytes", len(data))
}

func marshalCollection(snap domain.Snapshot, c domain.Collection) ([]byte, error) {
	switch c {
	case domain.CollectionMotos:
		return json.Marshal(snap.Motos)
	case domain.CollectionWorkers:
		return json.Marshal(snap.Workers)
	case domain.CollectionServices:
		return json.Marshal(snap.Services)
	case domain.CollectionWorkshops:
		return json.Marshal(snap.Workshops)
	case domain.CollectionExpenses:
		return json.Marshal(snap.Expenses)
	}
	return nil, fmt.Errorf("unknown collection %q", c)
}

func unmarshalInto(snap *domain.Snapshot, c domain.Collection, data []byte) error {
	switch c {
	case domain.CollectionMotos:
		return json.Unmarshal(data, &snap.Motos)
	case domain.CollectionWorkers:
		return json.Unmarshal(data, &snap.Workers)
	case domain.CollectionServices:
		return json.Unmarshal(data, &snap.Services)
	case domain.CollectionWorkshops:
		return json.Unmarshal(data, &snap.Workshops)
	case domain.CollectionExpenses:
		return json.Unmarshal(data, &snap.Expenses)
	}
	return fmt.Errorf("unknown collection %q", c)
}
