package geo

// Viewport is an immutable snapshot of the visible map region together
// with its pixel dimensions. It parameterizes every distance computation
// for one clustering pass; the host map UI supplies a fresh snapshot on
// each settled region change, never per gesture frame.
type Viewport struct {
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	LatSpan   float64 `json:"latSpan"`
	LonSpan   float64 `json:"lonSpan"`
	PixelW    float64 `json:"pixelWidth"`
	PixelH    float64 `json:"pixelHeight"`
}

// Ready reports whether the viewport can parameterize a clustering pass.
// A map that has not finished layout reports zero spans or zero pixel
// dimensions; clustering against such a viewport must short-circuit to
// an empty catalog instead of dividing by zero.
func (vp Viewport) Ready() bool {
	return vp.LatSpan > 0 && vp.LonSpan > 0 && vp.PixelW > 0 && vp.PixelH > 0
}

// Bounds returns the geographic rectangle covered by the viewport.
func (vp Viewport) Bounds() BoundingBox {
	return BoundingBox{
		MinLat: vp.CenterLat - vp.LatSpan/2,
		MaxLat: vp.CenterLat + vp.LatSpan/2,
		MinLon: vp.CenterLon - vp.LonSpan/2,
		MaxLon: vp.CenterLon + vp.LonSpan/2,
	}
}
