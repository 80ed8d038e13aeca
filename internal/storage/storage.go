// Package storage provides the ledger store port and its backends.
//
// Every backend exposes the same owner-scoped contract and classifies its
// failures into the shared sentinel errors below, so callers never see
// backend-specific error types.
package storage

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

var (
	// ErrNotFound is returned by Delete when no transaction with the
	// given id exists for the owner. A row owned by someone else reports
	// the same error so existence is never leaked.
	ErrNotFound = errors.New("transaction not found")

	// ErrStoreUnavailable marks transient reachability failures. Safe to
	// retry; the store was never confirmed to have applied the operation.
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrStoreRejected marks a write the backend refused, e.g. a
	// constraint or authorization failure. Not retried automatically.
	ErrStoreRejected = errors.New("ledger store rejected the operation")
)

// Store is the ledger store port. All operations are scoped to a single
// owner and block for at most one round-trip to the backend.
type Store interface {
	// ListByOwner returns all transactions for the owner. An owner with
	// no transactions yields an empty slice, not an error.
	ListByOwner(ctx context.Context, owner string) ([]core.Transaction, error)

	// Insert persists a validated draft and returns the fully-populated
	// record with store-assigned id and creation time.
	Insert(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error)

	// Delete removes the transaction only if it belongs to the owner.
	Delete(ctx context.Context, owner, id string) error
}
