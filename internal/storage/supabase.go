package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"

	"github.com/supabase-community/supabase-go"

	"fintrack/internal/core"
)

const transactionsTable = "transactions"

// SupabaseStore is the remote managed backend, speaking PostgREST against
// a transactions table. Ids and creation times are assigned by column
// defaults on the server; inserts ask for the created representation back.
type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabaseStore(projectURL, key string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(projectURL, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

func (s *SupabaseStore) ListByOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	data, _, err := s.client.From(transactionsTable).
		Select("*", "", false).
		Eq("owner_id", owner).
		Order("created_at.desc", nil).
		Execute()
	if err != nil {
		return nil, classifyRemoteErr("select transactions", err)
	}

	var rows []transactionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: parse transactions response: %v", ErrStoreRejected, err)
	}
	return rowsToDomain(rows)
}

func (s *SupabaseStore) Insert(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error) {
	record := map[string]any{
		"owner_id":    owner,
		"amount":      draft.Amount,
		"description": draft.Description,
		"category":    string(draft.Category),
		"kind":        string(draft.Kind),
	}

	data, _, err := s.client.From(transactionsTable).
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return core.Transaction{}, classifyRemoteErr("insert transaction", err)
	}

	var created []transactionRow
	if err := json.Unmarshal(data, &created); err != nil {
		return core.Transaction{}, fmt.Errorf("%w: parse insert response: %v", ErrStoreRejected, err)
	}
	if len(created) == 0 {
		return core.Transaction{}, fmt.Errorf("%w: insert returned no record", ErrStoreRejected)
	}

	t, err := created[0].toDomain()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %v", ErrStoreRejected, err)
	}

	slog.InfoContext(ctx, "Transaction saved to Supabase",
		"id", t.ID,
		"kind", t.Kind,
		"amount", t.Amount.String())

	return t, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, owner, id string) error {
	// Returning representation makes the deleted rows visible, which is
	// the only way PostgREST reports "nothing matched".
	data, _, err := s.client.From(transactionsTable).
		Delete("representation", "").
		Eq("id", id).
		Eq("owner_id", owner).
		Execute()
	if err != nil {
		return classifyRemoteErr("delete transaction", err)
	}

	var deleted []transactionRow
	if err := json.Unmarshal(data, &deleted); err != nil {
		return fmt.Errorf("%w: parse delete response: %v", ErrStoreRejected, err)
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted from Supabase", "id", id)
	return nil
}

// classifyRemoteErr folds transport-level failures into ErrStoreUnavailable
// and everything the backend answered with into ErrStoreRejected.
func classifyRemoteErr(op string, err error) error {
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrStoreRejected, op, err)
}
