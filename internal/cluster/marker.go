package cluster

import (
	"math"

	"fleetmap.opentransit.org/internal/models"
)

// Marker is one candidate point for clustering: a stable identifier, a
// coordinate pair, and the vehicle payload carried through unchanged.
// A feed that omits a coordinate represents it as NaN; such markers are
// silently filtered before partitioning and never appear in any output
// record.
type Marker struct {
	ID      string         `json:"id"`
	Lat     float64        `json:"latitude"`
	Lon     float64        `json:"longitude"`
	Vehicle models.Vehicle `json:"vehicle"`
}

// HasFiniteCoordinates reports whether both coordinates are present and
// finite. This is the only validity the builder enforces; range checks
// against real-world coordinate bounds belong to the marker source.
func (m Marker) HasFiniteCoordinates() bool {
	return !math.IsNaN(m.Lat) && !math.IsInf(m.Lat, 0) &&
		!math.IsNaN(m.Lon) && !math.IsInf(m.Lon, 0)
}
