package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

type (
	// Kind is the direction of a transaction: money flowing out or in.
	Kind string

	// Category is one value from the fixed category set.
	Category string

	// Transaction is a single dated ledger entry. ID and CreatedAt are
	// assigned by the store on creation and never change afterwards.
	Transaction struct {
		ID          string          `json:"id"`
		OwnerID     string          `json:"owner_id"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Category    Category        `json:"category"`
		Kind        Kind            `json:"kind"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	// Draft holds the client-supplied fields of a transaction before it
	// is submitted to the store.
	Draft struct {
		Amount      decimal.Decimal
		Description string
		Category    Category
		Kind        Kind
	}
)

// Categories is the closed set of transaction categories.
var Categories = []Category{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Other",
}

// ValidationError reports the first field of a draft that failed
// validation. Fields are checked in a fixed order: amount, description,
// category, kind.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return "invalid " + e.Field
}

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NewDraft builds a validated draft from raw form values. The amount is
// parsed as a decimal; the description is trimmed. Returns the first
// failing field as a ValidationError.
func NewDraft(amount, description, category, kind string) (Draft, error) {
	parsed, err := ParseAmount(amount)
	if err != nil {
		return Draft{}, err
	}
	d := Draft{
		Amount:      parsed,
		Description: strings.TrimSpace(description),
		Category:    Category(category),
		Kind:        Kind(kind),
	}
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (d Draft) Validate() error {
	if !d.Amount.IsPositive() {
		return ValidationError{Field: "amount"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return ValidationError{Field: "description"}
	}
	if !d.Category.Valid() {
		return ValidationError{Field: "category"}
	}
	if !d.Kind.Valid() {
		return ValidationError{Field: "kind"}
	}
	return nil
}
