package geo

import "sync"

// ViewportStore holds the most recent settled viewport reported by the
// host map UI, with concurrency safety. The map widget reports a new
// snapshot only once a pan/zoom gesture settles, never per intermediate
// frame, so readers always see a final viewport description.
type ViewportStore struct {
	mu sync.RWMutex
	vp Viewport
	ok bool
}

// NewViewportStore creates and returns a new empty ViewportStore.
func NewViewportStore() *ViewportStore {
	return &ViewportStore{}
}

// Set stores the latest settled viewport snapshot.
func (s *ViewportStore) Set(vp Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp = vp
	s.ok = true
}

// Get retrieves the most recent viewport snapshot. The boolean is false
// until the host UI has reported its first settled viewport.
func (s *ViewportStore) Get() (Viewport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vp, s.ok
}
