package cluster

import "sync"

// Store holds the most recently built catalog, rebuilt once per settled
// viewport or marker change and read by every consumer (HTTP handlers,
// the websocket hub, tap routing) until the next rebuild.
//
// It provides a thread-safe way to store and retrieve the catalog.
// It ensures that multiple goroutines can safely read the same catalog
// after it is set once.
type Store struct {
	mu      sync.RWMutex
	catalog Catalog
	ok      bool
}

// NewStore creates and returns a new empty Store instance.
func NewStore() *Store {
	return &Store{}
}

// Set stores the latest built catalog in a thread-safe way. It is
// typically called once per recomputation by the collector.
func (s *Store) Set(c Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.ok = true
}

// Get retrieves the most recently stored catalog in a thread-safe way.
// The boolean is false until the first clustering pass has completed.
func (s *Store) Get() (Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.ok
}

// Find looks up a record by ID in the latest catalog. Record IDs are
// only meaningful for the catalog currently rendered; a stale ID simply
// misses.
func (s *Store) Find(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ok {
		return Record{}, false
	}
	return s.catalog.Find(id)
}
