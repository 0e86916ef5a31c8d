// Package repository holds the current immutable observation snapshot.
//
// Readers call Current and keep using the returned snapshot for the whole request.
// Reload builds a new table and publishes it with a single pointer swap, so a
// reader never sees a partially loaded table.
package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okian/wagegap/internal/domain/model"
	"github.com/okian/wagegap/pkg/metrics"
)

// Snapshot is one published version of the table.
type Snapshot struct {
	Table    *model.Table
	Source   string
	Version  uint64
	LoadedAt time.Time
}

// Store provides read access to the current snapshot and atomic replacement.
type Store interface {
	// Current returns the latest published snapshot. It is never nil.
	Current(ctx context.Context) *Snapshot
	// Swap publishes tbl as the new snapshot and returns it.
	// Returns ErrNilTable if tbl is nil.
	Swap(ctx context.Context, tbl *model.Table, source string) (*Snapshot, error)
}

// SnapshotStore is the atomic.Pointer backed Store.
type SnapshotStore struct {
	cur            atomic.Pointer[Snapshot]
	now            func() time.Time
	publishMetrics bool
}

// NewSnapshotStore returns a store whose initial snapshot is an empty table at version 0.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{now: time.Now, publishMetrics: true}
	for _, opt := range opts {
		opt(s)
	}
	s.cur.Store(&Snapshot{Table: model.NewTable(nil), Source: "none", LoadedAt: s.now()})
	return s
}

// Current implements Store.
func (s *SnapshotStore) Current(_ context.Context) *Snapshot {
	return s.cur.Load()
}

// Swap implements Store. Versions increase by one per successful swap.
func (s *SnapshotStore) Swap(_ context.Context, tbl *model.Table, source string) (*Snapshot, error) {
	if tbl == nil {
		return nil, ErrNilTable
	}
	for {
		old := s.cur.Load()
		next := &Snapshot{Table: tbl, Source: source, Version: old.Version + 1, LoadedAt: s.now()}
		if s.cur.CompareAndSwap(old, next) {
			if s.publishMetrics {
				metrics.UpdateSnapshot(tbl.Len(), len(tbl.Codes()), source != "file", next.Version)
			}
			return next, nil
		}
	}
}
