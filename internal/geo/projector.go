package geo

import "math"

// Projector converts a pair of geographic coordinates into a scalar
// screen distance under a given viewport. It is an interface so hosts
// targeting latitude ranges where the linear approximation breaks down
// can substitute a geodesic metric without touching the clustering code.
type Projector interface {
	PixelDistance(aLat, aLon, bLat, bLon float64, vp Viewport) float64
}

// LinearProjector maps degrees to pixels with a constant scale per axis:
// pixels-per-degree is derived from the viewport's pixel dimensions and
// geographic spans, and the result is the Euclidean norm of the two axis
// deltas.
//
// This is a linear approximation. It ignores longitude compression at
// non-equatorial latitudes (a true projection would scale longitude by
// cos(latitude)), which is acceptable at city scale but inaccurate near
// the poles.
type LinearProjector struct{}

// PixelDistance returns the screen-space distance in pixels between two
// coordinates. It is symmetric and returns zero for coincident points.
// The viewport must be Ready; callers are responsible for checking, as
// the span divisions are unguarded here.
func (LinearProjector) PixelDistance(aLat, aLon, bLat, bLon float64, vp Viewport) float64 {
	latPixelsPerDegree := vp.PixelH / vp.LatSpan
	lonPixelsPerDegree := vp.PixelW / vp.LonSpan

	dLat := math.Abs(aLat-bLat) * latPixelsPerDegree
	dLon := math.Abs(aLon-bLon) * lonPixelsPerDegree

	return math.Sqrt(dLat*dLat + dLon*dLon)
}
