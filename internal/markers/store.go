package markers

import (
	"math"
	"sync"

	"fleetmap.opentransit.org/internal/cluster"
)

// Store holds the most recently fetched marker list with concurrency
// safety. Set reports whether the new list differs from the stored one
// by membership or position, so the collector can skip recomputing the
// catalog when a poll returned the same fleet in the same places.
type Store struct {
	mu      sync.RWMutex
	markers []cluster.Marker
}

// NewStore creates and returns a new empty Store instance.
func NewStore() *Store {
	return &Store{}
}

// Set stores the latest marker list and reports whether it changed.
func (s *Store) Set(markers []cluster.Marker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := !sameMarkers(s.markers, markers)
	s.markers = append([]cluster.Marker(nil), markers...)
	return changed
}

// Get retrieves a copy of the most recent marker list.
func (s *Store) Get() []cluster.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]cluster.Marker(nil), s.markers...)
}

// sameMarkers compares two marker lists by identity, order and
// coordinates. Payload fields such as speed or bearing do not affect
// clustering, so they do not count as a change here.
func sameMarkers(a, b []cluster.Marker) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || !sameCoord(a[i].Lat, b[i].Lat) || !sameCoord(a[i].Lon, b[i].Lon) {
			return false
		}
	}
	return true
}

// sameCoord treats two NaNs as equal so a vehicle that keeps reporting
// a missing coordinate does not register as a position change on every
// poll.
func sameCoord(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}
