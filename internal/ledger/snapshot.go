package ledger

import (
	"container/list"
	"sync"
	"time"

	"fintrack/internal/core"
)

// snapshotCache holds the last confirmed transaction listing per owner,
// with TTL expiry and least-recently-used eviction once too many owners
// are tracked. Listings are copied on the way in and out so callers can
// never mutate a cached snapshot.
type snapshotCache struct {
	mu        sync.Mutex
	maxOwners int
	ttl       time.Duration
	owners    map[string]*list.Element
	lru       *list.List
}

type snapshotEntry struct {
	owner     string
	listing   []core.Transaction
	expiresAt time.Time
}

func newSnapshotCache(maxOwners int, ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		maxOwners: maxOwners,
		ttl:       ttl,
		owners:    make(map[string]*list.Element),
		lru:       list.New(),
	}
}

func (c *snapshotCache) get(owner string) ([]core.Transaction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.owners[owner]
	if !exists {
		return nil, false
	}

	entry := elem.Value.(*snapshotEntry)
	if time.Now().After(entry.expiresAt) {
		c.remove(elem)
		return nil, false
	}

	c.lru.MoveToFront(elem)
	return append([]core.Transaction(nil), entry.listing...), true
}

// set replaces the owner's snapshot wholesale.
func (c *snapshotCache) set(owner string, listing []core.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &snapshotEntry{
		owner:     owner,
		listing:   append([]core.Transaction(nil), listing...),
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.owners[owner]; exists {
		elem.Value = entry
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(entry)
	c.owners[owner] = elem

	if c.lru.Len() > c.maxOwners {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *snapshotCache) invalidate(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.owners[owner]; exists {
		c.remove(elem)
	}
}

func (c *snapshotCache) remove(elem *list.Element) {
	entry := elem.Value.(*snapshotEntry)
	delete(c.owners, entry.owner)
	c.lru.Remove(elem)
}
