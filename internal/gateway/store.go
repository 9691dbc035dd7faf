package gateway

import (
	"net/http"
	"sync"
	"time"
)

// Entry is a cached response, keyed by request URL in a Store.
type Entry struct {
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

// Store is a single named cache of responses. Writes are
// last-write-wins per key, entries are disposable derived data and
// never a source of truth.
type Store struct {
	name string

	mu      sync.RWMutex
	entries map[string]*Entry
}

func newStore(name string) *Store {
	return &Store{
		name:    name,
		entries: make(map[string]*Entry),
	}
}

// Get returns the entry for the key, if one exists.
func (s *Store) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry, ok
}

// Put stores the entry under the key, replacing any previous entry.
func (s *Store) Put(key string, entry *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Storage is the registry of named stores, shared by all requests.
type Storage struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewStorage returns an empty store registry.
func NewStorage() *Storage {
	return &Storage{
		stores: make(map[string]*Store),
	}
}

// Open returns the store with the given name, creating it if needed.
func (s *Storage) Open(name string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[name]
	if !ok {
		store = newStore(name)
		s.stores[name] = store
	}

	return store
}

// Delete removes the store with the given name and all its entries.
func (s *Storage) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.stores[name]
	delete(s.stores, name)
	return ok
}

// Names returns the names of all stores.
func (s *Storage) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.stores))
	for name := range s.stores {
		names = append(names, name)
	}

	return names
}
