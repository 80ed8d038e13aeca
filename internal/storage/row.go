package storage

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// transactionRow is the loosely-typed shape of a stored transaction as it
// comes off a backend (a JSON row from PostgREST or a scanned sqlite row).
// It is converted to the strict domain shape in exactly one place, toDomain,
// which rejects rows missing required fields.
type transactionRow struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Kind        string          `json:"kind"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (r transactionRow) toDomain() (core.Transaction, error) {
	if r.ID == "" {
		return core.Transaction{}, fmt.Errorf("row missing id")
	}
	if r.OwnerID == "" {
		return core.Transaction{}, fmt.Errorf("row %s missing owner", r.ID)
	}
	if r.CreatedAt.IsZero() {
		return core.Transaction{}, fmt.Errorf("row %s missing creation time", r.ID)
	}
	kind := core.Kind(r.Kind)
	if !kind.Valid() {
		return core.Transaction{}, fmt.Errorf("row %s has unknown kind %q", r.ID, r.Kind)
	}
	return core.Transaction{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Amount:      r.Amount,
		Description: r.Description,
		Category:    core.Category(r.Category),
		Kind:        kind,
		CreatedAt:   r.CreatedAt,
	}, nil
}

// rowsToDomain converts a batch of rows, failing on the first malformed one.
func rowsToDomain(rows []transactionRow) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(rows))
	for _, r := range rows {
		t, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreRejected, err)
		}
		out = append(out, t)
	}
	return out, nil
}
