package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the local relational backend. Ids are uuids assigned at
// insert; creation times are stored as RFC 3339 UTC strings so the
// ordering key sorts lexicographically too.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", ErrStoreUnavailable, err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ListByOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, amount, description, category, kind, created_at
		 FROM transactions
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: select transactions: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var parsed []transactionRow
	for rows.Next() {
		var r transactionRow
		var amount, createdAt string
		if err := rows.Scan(&r.ID, &r.OwnerID, &amount, &r.Description, &r.Category, &r.Kind, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %v", ErrStoreRejected, err)
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("%w: row %s has malformed amount %q", ErrStoreRejected, r.ID, amount)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("%w: row %s has malformed timestamp %q", ErrStoreRejected, r.ID, createdAt)
		}
		parsed = append(parsed, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %v", ErrStoreUnavailable, err)
	}

	return rowsToDomain(parsed)
}

func (s *SQLiteStore) Insert(ctx context.Context, owner string, draft core.Draft) (core.Transaction, error) {
	t := core.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Amount:      draft.Amount,
		Description: draft.Description,
		Category:    draft.Category,
		Kind:        draft.Kind,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, owner_id, amount, description, category, kind, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Amount.String(), t.Description, string(t.Category), string(t.Kind),
		t.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("%w: insert transaction: %v", ErrStoreRejected, err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"kind", t.Kind,
		"amount", t.Amount.String())

	return t, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner_id = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("%w: delete transaction: %v", ErrStoreUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrStoreRejected, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted from SQLite", "id", id)
	return nil
}
