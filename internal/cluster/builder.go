package cluster

import (
	"fmt"

	"fleetmap.opentransit.org/internal/geo"
)

// ConfigError indicates an invalid clustering configuration passed to
// Build. It is a programming error on the caller's side: it is raised
// synchronously, never retried, and the host is responsible for
// validating user-adjustable clustering settings before they reach the
// builder.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid clustering configuration: %s %s", e.Field, e.Reason)
}

// Options holds the clustering parameters for one builder.
//
// RadiusPixels == 0 and MinClusterSize == 1 are valid degenerate
// configurations: a zero radius makes every marker its own singleton
// (no positive distance satisfies < 0), and a minimum size of one makes
// every group, including groups of one, an aggregate cluster record.
type Options struct {
	RadiusPixels   float64
	MinClusterSize int
}

// Validate rejects configurations the builder must not run with.
func (o Options) Validate() error {
	if o.RadiusPixels < 0 {
		return &ConfigError{Field: "RadiusPixels", Reason: "must not be negative"}
	}
	if o.MinClusterSize < 1 {
		return &ConfigError{Field: "MinClusterSize", Reason: "must be a positive integer"}
	}
	return nil
}

// Builder partitions a marker set into a catalog of cluster and
// singleton records under a screen-relative distance metric. It holds
// no state between calls: Build is a pure, deterministic function of
// its inputs, safe to invoke repeatedly and redundantly.
type Builder struct {
	projector geo.Projector
	opts      Options
}

// NewBuilder creates a Builder with the given distance metric and
// clustering parameters. A nil projector falls back to the linear
// degree-to-pixel approximation.
func NewBuilder(projector geo.Projector, opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if projector == nil {
		projector = geo.LinearProjector{}
	}
	return &Builder{projector: projector, opts: opts}, nil
}

// Options returns the builder's clustering parameters.
func (b *Builder) Options() Options {
	return b.opts
}

// Build partitions markers into the cluster/marker catalog for the given
// viewport. Markers with non-finite coordinates are filtered out first,
// preserving the relative order of the rest. A viewport that is not
// ready, or an empty filtered set, yields an empty catalog with a nil
// error: that is a not-ready condition, not a failure.
//
// The partitioning is single-link and seed-anchored: the first
// unprocessed marker in scan order seeds a group, and every later
// unprocessed marker within RadiusPixels of the seed joins it. Distance
// is always measured against the seed, never against other accumulated
// members or a running centroid, so group shape is order-dependent and
// a chain's extremities can end up more than RadiusPixels apart. That
// asymmetry is deliberate and must be preserved; see DESIGN.md.
//
// Complexity is O(n²) in the number of valid markers, which is fine for
// fleet-sized inputs (low hundreds) and is the documented trade-off for
// keeping the core free of spatial indexing.
func (b *Builder) Build(markers []Marker, vp geo.Viewport) (Catalog, error) {
	if err := b.opts.Validate(); err != nil {
		return Catalog{}, err
	}

	valid := make([]Marker, 0, len(markers))
	for _, m := range markers {
		if m.HasFiniteCoordinates() {
			valid = append(valid, m)
		}
	}
	skipped := len(markers) - len(valid)

	if len(valid) == 0 || !vp.Ready() {
		return Catalog{Skipped: skipped}, nil
	}

	records := make([]Record, 0, len(valid))
	processed := make([]bool, len(valid))

	for i := range valid {
		if processed[i] {
			continue
		}
		seed := valid[i]
		group := []Marker{seed}
		processed[i] = true

		for j := i + 1; j < len(valid); j++ {
			if processed[j] {
				continue
			}
			d := b.projector.PixelDistance(seed.Lat, seed.Lon, valid[j].Lat, valid[j].Lon, vp)
			if d < b.opts.RadiusPixels {
				group = append(group, valid[j])
				processed[j] = true
			}
		}

		if len(group) >= b.opts.MinClusterSize {
			records = append(records, newClusterRecord(group))
		} else {
			for _, m := range group {
				records = append(records, newSingletonRecord(m))
			}
		}
	}

	return Catalog{Records: records, Skipped: skipped}, nil
}
