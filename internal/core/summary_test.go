package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(id string, amount string, kind Kind, created time.Time) Transaction {
	return Transaction{
		ID:          id,
		OwnerID:     "owner-1",
		Amount:      decimal.RequireFromString(amount),
		Description: "entry " + id,
		Category:    "Other",
		Kind:        kind,
		CreatedAt:   created,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.TotalIncome.IsZero() || !s.TotalExpenses.IsZero() || !s.Balance.IsZero() {
		t.Fatalf("empty sequence must aggregate to zero, got %+v", s)
	}
	if s.IncomeCount != 0 || s.ExpenseCount != 0 {
		t.Fatalf("empty sequence must count zero, got %+v", s)
	}
}

func TestSummarizeScenario(t *testing.T) {
	now := time.Now()
	ts := []Transaction{
		tx("a", "50", KindExpense, now),
		tx("b", "200", KindIncome, now),
	}

	if got := TotalExpenses(ts); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expenses: expected 50, got %s", got)
	}
	if got := TotalIncome(ts); !got.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("income: expected 200, got %s", got)
	}
	if got := Balance(ts); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("balance: expected 150, got %s", got)
	}
	if got := CountByKind(ts, KindExpense); got != 1 {
		t.Fatalf("expense count: expected 1, got %d", got)
	}
	if got := CountByKind(ts, KindIncome); got != 1 {
		t.Fatalf("income count: expected 1, got %d", got)
	}
}

func TestBalanceInvariant(t *testing.T) {
	now := time.Now()
	sequences := [][]Transaction{
		nil,
		{tx("a", "0.10", KindExpense, now)},
		{tx("a", "0.10", KindExpense, now), tx("b", "0.20", KindExpense, now), tx("c", "0.30", KindIncome, now)},
		{tx("a", "99999999.99", KindIncome, now), tx("b", "0.01", KindExpense, now)},
	}
	for i, ts := range sequences {
		want := TotalIncome(ts).Sub(TotalExpenses(ts))
		if got := Balance(ts); !got.Equal(want) {
			t.Fatalf("sequence %d: balance %s != income-expenses %s", i, got, want)
		}
		s := Summarize(ts)
		if !s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpenses)) {
			t.Fatalf("sequence %d: summary balance inconsistent: %+v", i, s)
		}
	}
}

func TestDecimalAccumulationNoDrift(t *testing.T) {
	// 0.1 added ten times must be exactly 1, not 0.9999999999999999.
	now := time.Now()
	var ts []Transaction
	for i := 0; i < 10; i++ {
		ts = append(ts, tx(string(rune('a'+i)), "0.1", KindIncome, now))
	}
	if got := TotalIncome(ts); !got.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected exactly 1, got %s", got)
	}
}

func TestExpensesByCategory(t *testing.T) {
	now := time.Now()
	ts := []Transaction{
		tx("a", "10", KindExpense, now),
		tx("b", "5", KindIncome, now),
	}
	ts[0].Category = "Travel"

	byCat := ExpensesByCategory(ts)
	if len(byCat) != 1 {
		t.Fatalf("expected one category, got %d", len(byCat))
	}
	if byCat[0].Category != "Travel" || !byCat[0].Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected aggregation: %+v", byCat[0])
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := []Transaction{
		tx("c", "1", KindExpense, base),
		tx("a", "1", KindExpense, base.Add(time.Second)),
		tx("b", "1", KindExpense, base),
	}
	SortNewestFirst(ts)

	if ts[0].ID != "a" {
		t.Fatalf("newest entry must come first, got %q", ts[0].ID)
	}
	// Identical timestamps: id ascending keeps the order total.
	if ts[1].ID != "b" || ts[2].ID != "c" {
		t.Fatalf("tie-break by id failed: %q, %q", ts[1].ID, ts[2].ID)
	}
}
