package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func draft(amount string, kind core.Kind) core.Draft {
	return core.Draft{
		Amount:      decimal.RequireFromString(amount),
		Description: "test entry",
		Category:    "Other",
		Kind:        kind,
	}
}

// flakyStore wraps a real store and fails mutations on demand, counting
// every call that reaches it.
type flakyStore struct {
	inner      storage.Store
	failWith   error
	insertCall int
	deleteCall int
}

func (f *flakyStore) ListByOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	return f.inner.ListByOwner(ctx, owner)
}

func (f *flakyStore) Insert(ctx context.Context, owner string, d core.Draft) (core.Transaction, error) {
	f.insertCall++
	if f.failWith != nil {
		return core.Transaction{}, f.failWith
	}
	return f.inner.Insert(ctx, owner, d)
}

func (f *flakyStore) Delete(ctx context.Context, owner, id string) error {
	f.deleteCall++
	if f.failWith != nil {
		return f.failWith
	}
	return f.inner.Delete(ctx, owner, id)
}

func TestCreateThenList(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-a", draft("42.10", core.KindIncome))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("create must return the store-populated record: %+v", created)
	}

	list, err := svc.List(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(list))
	}
	got := list[0]
	if got.ID != created.ID || !got.Amount.Equal(decimal.RequireFromString("42.10")) {
		t.Fatalf("submitted fields not preserved: %+v", got)
	}
}

func TestListEmptyOwner(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())

	list, err := svc.List(context.Background(), "owner-a")
	if err != nil {
		t.Fatalf("empty ledger must not error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty slice, got %#v", list)
	}
}

func TestCreateValidatesBeforeStore(t *testing.T) {
	store := &flakyStore{inner: storage.NewMemoryStore()}
	svc := NewService(store)
	ctx := context.Background()

	cases := []struct {
		name  string
		d     core.Draft
		field string
	}{
		{"zero amount", core.Draft{Amount: decimal.Zero, Description: "a", Category: "Other", Kind: core.KindExpense}, "amount"},
		{"negative amount", core.Draft{Amount: decimal.NewFromInt(-5), Description: "a", Category: "Other", Kind: core.KindExpense}, "amount"},
		{"empty description", core.Draft{Amount: decimal.NewFromInt(1), Description: "", Category: "Other", Kind: core.KindExpense}, "description"},
		{"bad category", core.Draft{Amount: decimal.NewFromInt(1), Description: "a", Category: "Nonexistent", Kind: core.KindExpense}, "category"},
		{"bad kind", core.Draft{Amount: decimal.NewFromInt(1), Description: "a", Category: "Other", Kind: "transfer"}, "kind"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "owner-a", tc.d)
			var ve core.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("expected ValidationError{%s}, got %v", tc.field, err)
			}
		})
	}
	if store.insertCall != 0 {
		t.Fatalf("validation failures must not reach the store, got %d calls", store.insertCall)
	}
}

func TestDeleteThenList(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-a", draft("5", core.KindExpense))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	keep, err := svc.Create(ctx, "owner-a", draft("7", core.KindExpense))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, "owner-a", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, err := svc.List(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, tx := range list {
		if tx.ID == created.ID {
			t.Fatalf("deleted id still listed")
		}
	}

	// Deleting again is NotFound and the list is unchanged.
	if err := svc.Delete(ctx, "owner-a", created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	again, err := svc.List(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(again) != 1 || again[0].ID != keep.ID {
		t.Fatalf("failed delete must leave the listing unchanged: %+v", again)
	}
}

func TestOwnerIsolation(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())
	ctx := context.Background()

	foreign, err := svc.Create(ctx, "owner-b", draft("9.99", core.KindExpense))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("owner A must never see owner B's records")
	}

	if err := svc.Delete(ctx, "owner-a", foreign.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("foreign delete must report NotFound, got %v", err)
	}
}

func TestNoOwnerPrecondition(t *testing.T) {
	svc := NewService(storage.NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.List(ctx, ""); !errors.Is(err, ErrNoOwner) {
		t.Fatalf("expected ErrNoOwner, got %v", err)
	}
	if _, err := svc.Create(ctx, "", draft("1", core.KindExpense)); !errors.Is(err, ErrNoOwner) {
		t.Fatalf("expected ErrNoOwner, got %v", err)
	}
	if err := svc.Delete(ctx, "", "some-id"); !errors.Is(err, ErrNoOwner) {
		t.Fatalf("expected ErrNoOwner, got %v", err)
	}
}

func TestFailedMutationLeavesSnapshotUntouched(t *testing.T) {
	store := &flakyStore{inner: storage.NewMemoryStore()}
	svc := NewService(store)
	ctx := context.Background()

	before, err := svc.Create(ctx, "owner-a", draft("10", core.KindIncome))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.List(ctx, "owner-a"); err != nil {
		t.Fatalf("list: %v", err)
	}

	store.failWith = storage.ErrStoreUnavailable

	if _, err := svc.Create(ctx, "owner-a", draft("20", core.KindIncome)); !errors.Is(err, storage.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := svc.Delete(ctx, "owner-a", before.ID); !errors.Is(err, storage.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	list, err := svc.List(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list after failure: %v", err)
	}
	if len(list) != 1 || list[0].ID != before.ID {
		t.Fatalf("failed mutations must leave the view exactly as before: %+v", list)
	}
}

func TestListTotalOrderOnIdenticalTimestamps(t *testing.T) {
	store := storage.NewMemoryStore()
	frozen := time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return frozen })

	svc := NewService(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, "owner-a", draft("1", core.KindExpense)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	first, err := svc.List(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].ID >= first[i].ID {
			t.Fatalf("identical timestamps must order by id ascending: %s before %s", first[i-1].ID, first[i].ID)
		}
	}

	// Repeated calls return the same order.
	second, err := svc.List(ctx, "owner-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order not deterministic across calls")
		}
	}
}
