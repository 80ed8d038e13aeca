package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Summary holds the aggregate view of a transaction sequence. For every
// sequence, TotalIncome - TotalExpenses equals Balance exactly; all values
// are zero for an empty sequence.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
	IncomeCount   int             `json:"income_count"`
	ExpenseCount  int             `json:"expense_count"`
}

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   decimal.Decimal
}

// TotalIncome sums the amounts of all income transactions.
func TotalIncome(ts []Transaction) decimal.Decimal {
	return sumByKind(ts, KindIncome)
}

// TotalExpenses sums the amounts of all expense transactions.
func TotalExpenses(ts []Transaction) decimal.Decimal {
	return sumByKind(ts, KindExpense)
}

// Balance is total income minus total expenses.
func Balance(ts []Transaction) decimal.Decimal {
	return TotalIncome(ts).Sub(TotalExpenses(ts))
}

// CountByKind returns the number of transactions with the given kind.
func CountByKind(ts []Transaction, kind Kind) int {
	n := 0
	for _, t := range ts {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// Summarize computes all aggregates in a single pass.
func Summarize(ts []Transaction) Summary {
	s := Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, t := range ts {
		switch t.Kind {
		case KindIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
			s.IncomeCount++
		case KindExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
			s.ExpenseCount++
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// ExpensesByCategory sums expense amounts per category, in the fixed
// category order. Categories without expenses are omitted.
func ExpensesByCategory(ts []Transaction) []CategoryAmount {
	byCat := make(map[Category]decimal.Decimal)
	for _, t := range ts {
		if t.Kind != KindExpense {
			continue
		}
		byCat[t.Category] = byCat[t.Category].Add(t.Amount)
	}

	var out []CategoryAmount
	for _, c := range Categories {
		if total, ok := byCat[c]; ok {
			out = append(out, CategoryAmount{Category: c, Amount: total})
		}
	}
	return out
}

// SortNewestFirst orders transactions by creation time descending; entries
// with identical timestamps are tie-broken by id ascending so that the
// order is total and stable across repeated calls.
func SortNewestFirst(ts []Transaction) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].ID < ts[j].ID
		}
		return ts[i].CreatedAt.After(ts[j].CreatedAt)
	})
}

func sumByKind(ts []Transaction, kind Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range ts {
		if t.Kind == kind {
			total = total.Add(t.Amount)
		}
	}
	return total
}
