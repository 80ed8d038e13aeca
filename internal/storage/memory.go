package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// MemoryStore keeps transactions in process memory. It backs local
// development and tests; the contract matches the relational backends,
// including server-assigned ids and creation times.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]core.Transaction // keyed by owner

	// now is swappable so tests can force identical timestamps.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]core.Transaction),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) ListByOwner(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]core.Transaction(nil), s.items[owner]...)
	core.SortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, owner string, draft core.Draft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := core.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Amount:      draft.Amount,
		Description: draft.Description,
		Category:    draft.Category,
		Kind:        draft.Kind,
		CreatedAt:   s.now(),
	}
	s.items[owner] = append(s.items[owner], t)
	return t, nil
}

func (s *MemoryStore) Delete(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.items[owner]
	for i, t := range list {
		if t.ID == id {
			s.items[owner] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// SetClock overrides the timestamp source. Test helper.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
