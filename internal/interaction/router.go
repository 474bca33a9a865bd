// Package interaction maps taps on catalog records to host-UI intents.
// The router performs no side effects: the host map executes the camera
// animation or detail navigation the returned intent describes.
package interaction

import (
	"fmt"

	"fleetmap.opentransit.org/internal/cluster"
	"fleetmap.opentransit.org/internal/geo"
	"fleetmap.opentransit.org/internal/models"
)

// Intent kinds. The Kind field is the tag consumers dispatch on; exactly
// one of Region or Vehicle is populated for a given kind.
const (
	KindZoomToRegion  = "zoomToRegion"
	KindSelectVehicle = "selectVehicle"
)

// Intent is the outcome of a tap: zoom the camera to fit a region
// (cluster tapped) or select a single vehicle (singleton tapped).
type Intent struct {
	Kind    string           `json:"kind"`
	Region  *geo.BoundingBox `json:"region,omitempty"`
	Vehicle *models.Vehicle  `json:"vehicle,omitempty"`
}

// DefaultPadding expands the fitted region by 20% of its span on every
// side so the outermost cluster members do not land on the screen edge.
const DefaultPadding = 0.2

// Router turns a tapped record into an Intent.
type Router struct {
	Padding float64
}

// NewRouter creates a Router with the given region padding factor. A
// negative padding falls back to DefaultPadding.
func NewRouter(padding float64) *Router {
	if padding < 0 {
		padding = DefaultPadding
	}
	return &Router{Padding: padding}
}

// OnTap routes a tap on a catalog record. For a cluster it computes the
// smallest rectangle covering every member coordinate, expands it by the
// padding factor, and returns a zoomToRegion intent. For a singleton it
// returns selectVehicle with the sole member's payload.
//
// A record with no members cannot come out of the builder; it is treated
// as a programming error rather than silently producing an empty region.
func (rt *Router) OnTap(rec cluster.Record) (Intent, error) {
	if len(rec.Members) == 0 {
		return Intent{}, fmt.Errorf("record %s has no members", rec.ID)
	}

	if !rec.IsCluster {
		vehicle := rec.Members[0].Vehicle
		return Intent{Kind: KindSelectVehicle, Vehicle: &vehicle}, nil
	}

	coords := make([][2]float64, 0, len(rec.Members))
	for _, m := range rec.Members {
		coords = append(coords, [2]float64{m.Lat, m.Lon})
	}
	box, err := geo.ComputeBoundingBox(coords)
	if err != nil {
		return Intent{}, fmt.Errorf("failed to compute region for record %s: %w", rec.ID, err)
	}

	padded := box.WithPadding(rt.Padding)
	return Intent{Kind: KindZoomToRegion, Region: &padded}, nil
}
