package cluster

import (
	"fmt"

	"github.com/golang/geo/s2"

	"fleetmap.opentransit.org/internal/geo"
)

const s2Level = 18 // ~tens of meters, fine enough to keep centroid IDs distinct

// s2RecordID generates an S2-based record ID for a cluster centroid.
// Record IDs only need to be unique within one catalog; consumers must
// not assume stability across recomputations.
func s2RecordID(lat, lon float64, count int) string {
	ll := s2.LatLngFromDegrees(lat, lon)
	cellID := s2.CellIDFromLatLng(ll).Parent(s2Level)
	return fmt.Sprintf("s2_%d_%d", uint64(cellID), count)
}

// Record is one entry of the catalog: either an aggregate cluster of
// two or more markers or a singleton rendered as an individual marker.
// The IsCluster discriminant is the tag consumers dispatch on.
//
// Invariants:
//   - Count == len(Members)
//   - IsCluster false: Count == 1 and the coordinates equal the sole
//     member's coordinates.
//   - IsCluster true: Count >= the builder's MinClusterSize and the
//     coordinates are the arithmetic mean of the members' coordinates.
type Record struct {
	ID        string   `json:"id"`
	Lat       float64  `json:"latitude"`
	Lon       float64  `json:"longitude"`
	Members   []Marker `json:"members"`
	Count     int      `json:"count"`
	IsCluster bool     `json:"isCluster"`

	// RadiusMeters is the great-circle distance from the record's
	// coordinates to its farthest member, zero for singletons. Hosts use
	// it as a zoom heuristic when animating to a tapped cluster.
	RadiusMeters float64 `json:"radiusMeters"`
}

// Catalog is the ordered output of one clustering pass. Every marker
// with finite coordinates appears in the Members of exactly one record;
// Skipped counts the markers dropped for non-finite coordinates.
type Catalog struct {
	Records []Record `json:"records"`
	Skipped int      `json:"skipped"`
}

// TotalCount returns the sum of Count across all records, which by the
// partition property equals the number of valid input markers.
func (c Catalog) TotalCount() int {
	total := 0
	for _, r := range c.Records {
		total += r.Count
	}
	return total
}

// Find returns the record with the given ID, if present.
func (c Catalog) Find(id string) (Record, bool) {
	for _, r := range c.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// newClusterRecord builds an aggregate record whose coordinates are the
// arithmetic mean of the members' coordinates.
func newClusterRecord(members []Marker) Record {
	var sumLat, sumLon float64
	for _, m := range members {
		sumLat += m.Lat
		sumLon += m.Lon
	}
	n := float64(len(members))
	lat := sumLat / n
	lon := sumLon / n

	var radius float64
	for _, m := range members {
		if d := geo.HaversineDistance(lat, lon, m.Lat, m.Lon); d > radius {
			radius = d
		}
	}

	return Record{
		ID:           s2RecordID(lat, lon, len(members)),
		Lat:          lat,
		Lon:          lon,
		Members:      members,
		Count:        len(members),
		IsCluster:    true,
		RadiusMeters: radius,
	}
}

// newSingletonRecord builds a record for one individual marker, placed
// at the marker's own coordinates.
func newSingletonRecord(m Marker) Record {
	return Record{
		ID:        m.ID,
		Lat:       m.Lat,
		Lon:       m.Lon,
		Members:   []Marker{m},
		Count:     1,
		IsCluster: false,
	}
}
