// Package markers supplies the marker lists the clustering engine
// consumes. Sources fetch vehicle positions from external feeds and
// convert them to markers; the engine itself never fetches anything.
package markers

import (
	"context"

	"fleetmap.opentransit.org/internal/cluster"
)

// Source supplies the current marker list for one feed.
type Source interface {
	Fetch(ctx context.Context) ([]cluster.Marker, error)
}
