// Package ledger implements the owner-scoped contract between callers and
// the ledger store: create, list newest-first, delete.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// ErrNoOwner is returned when an operation is attempted without a
// resolved owner identity. Callers must authenticate before reaching the
// service.
var ErrNoOwner = errors.New("no authenticated owner")

const (
	snapshotTTL       = 5 * time.Minute
	snapshotMaxOwners = 256
)

// Service is the thin contract over the ledger store. It validates drafts
// before they reach the store, normalizes list ordering, and keeps a
// per-owner snapshot of the last confirmed listing. The snapshot is only
// ever replaced after the store confirms an operation; a failed mutation
// leaves it untouched.
type Service struct {
	store     storage.Store
	snapshots *snapshotCache
}

func NewService(store storage.Store) *Service {
	return &Service{
		store:     store,
		snapshots: newSnapshotCache(snapshotMaxOwners, snapshotTTL),
	}
}

// List returns all of the owner's transactions ordered by creation time
// descending, id ascending on ties. An owner with no transactions gets an
// empty slice.
func (s *Service) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	if owner == "" {
		return nil, ErrNoOwner
	}

	if cached, ok := s.snapshots.get(owner); ok {
		slog.DebugContext(ctx, "Ledger snapshot hit", "count", len(cached))
		return cached, nil
	}

	list, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if list == nil {
		list = []core.Transaction{}
	}

	// Ordering is normalized here so it is deterministic regardless of
	// what the backend guarantees.
	core.SortNewestFirst(list)

	s.snapshots.set(owner, list)
	return list, nil
}

// Create validates the draft and submits it to the store in a single
// synchronous round-trip. Validation failures never reach the store; store
// failures are surfaced as-is with no retry, so a create is never applied
// twice.
func (s *Service) Create(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error) {
	if owner == "" {
		return core.Transaction{}, ErrNoOwner
	}
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.store.Insert(ctx, owner, draft)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	// Confirmed write: the stale snapshot goes, the next List re-reads.
	s.snapshots.invalidate(owner)

	slog.InfoContext(ctx, "Transaction created",
		"id", created.ID,
		"kind", created.Kind,
		"category", created.Category,
		"amount", created.Amount.String())

	return created, nil
}

// Delete removes the owner's transaction with the given id. An id that
// does not exist, or belongs to another owner, reports
// storage.ErrNotFound; the distinction is never exposed.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if owner == "" {
		return ErrNoOwner
	}

	if err := s.store.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.snapshots.invalidate(owner)

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}
