package geo

import (
	"fmt"
	"math"
)

// BoundingBox defines the corners of a lat/lon box
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// Contains checks whether the given latitude and longitude are within the bounding box
func (b *BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Extend expands the bounding box to include the given coordinate.
func (b *BoundingBox) Extend(lat, lon float64) {
	b.MinLat = math.Min(b.MinLat, lat)
	b.MaxLat = math.Max(b.MaxLat, lat)
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLon = math.Max(b.MaxLon, lon)
}

// Center returns the midpoint of the bounding box.
func (b *BoundingBox) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// WithPadding returns a copy of the box expanded on every side by the
// given factor of its own span, so a "fit region" camera command leaves
// breathing room around the outermost markers. A degenerate box (all
// members at one coordinate) is returned unchanged when factor is zero.
func (b BoundingBox) WithPadding(factor float64) BoundingBox {
	latPad := (b.MaxLat - b.MinLat) * factor
	lonPad := (b.MaxLon - b.MinLon) * factor
	return BoundingBox{
		MinLat: b.MinLat - latPad,
		MaxLat: b.MaxLat + latPad,
		MinLon: b.MinLon - lonPad,
		MaxLon: b.MaxLon + lonPad,
	}
}

// ComputeBoundingBox computes the smallest box enclosing all the given
// lat/lon pairs. Non-finite coordinates are skipped.
func ComputeBoundingBox(coords [][2]float64) (BoundingBox, error) {
	if len(coords) == 0 {
		return BoundingBox{}, fmt.Errorf("no coordinates to compute bounding box")
	}

	minLat := math.MaxFloat64
	maxLat := -math.MaxFloat64
	minLon := math.MaxFloat64
	maxLon := -math.MaxFloat64

	for _, c := range coords {
		lat, lon := c[0], c[1]
		if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
			continue
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
	}

	if minLat == math.MaxFloat64 || maxLat == -math.MaxFloat64 ||
		minLon == math.MaxFloat64 || maxLon == -math.MaxFloat64 {
		return BoundingBox{}, fmt.Errorf("no valid latitude/longitude found in coordinates")
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, nil
}
