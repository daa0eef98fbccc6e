package memory

import (
	"sync"

	"github.com/patrickmn/go-cache"
)

// Store holds every collection of the in-memory backend. Repositories built
// on the same Store see each other's writes.
type Store struct {
	documents   *cache.Cache
	snapshots   *cache.Cache
	preferences *cache.Cache

	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		documents:   cache.New(cache.NoExpiration, 0),
		snapshots:   cache.New(cache.NoExpiration, 0),
		preferences: cache.New(cache.NoExpiration, 0),
	}
}

// undo is the value a key held before a transaction first wrote it.
type undo struct {
	cache *cache.Cache
	key   string
	value interface{}
	found bool
}

// Tx serializes transactional writers on the store until Commit or Rollback.
// Rollback restores only the keys written through the transaction, so writes
// made outside it while it was open survive.
type Tx struct {
	store *Store
	log   []undo
	seen  map[*cache.Cache]map[string]struct{}
	done  bool
}

func (s *Store) Begin() *Tx {
	s.txMu.Lock()
	return &Tx{store: s, seen: make(map[*cache.Cache]map[string]struct{})}
}

// touch records the current value of key before its first write in the tx.
// A nil tx records nothing.
func (t *Tx) touch(c *cache.Cache, key string) {
	if t == nil || t.done {
		return
	}
	keys, ok := t.seen[c]
	if !ok {
		keys = make(map[string]struct{})
		t.seen[c] = keys
	}
	if _, ok := keys[key]; ok {
		return
	}
	keys[key] = struct{}{}

	value, found := c.Get(key)
	t.log = append(t.log, undo{cache: c, key: key, value: value, found: found})
}

func (t *Tx) Commit() {
	if t.done {
		return
	}
	t.done = true
	t.store.txMu.Unlock()
}

func (t *Tx) Rollback() {
	if t.done {
		return
	}
	for i := len(t.log) - 1; i >= 0; i-- {
		u := t.log[i]
		if u.found {
			u.cache.Set(u.key, u.value, cache.NoExpiration)
		} else {
			u.cache.Delete(u.key)
		}
	}
	t.done = true
	t.store.txMu.Unlock()
}
