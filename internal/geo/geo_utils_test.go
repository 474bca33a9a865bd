package geo

import (
	"math"
	"testing"
)

func TestIsValidLatLon(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"Seattle", 47.61, -122.33, true},
		{"NullIsland", 0, 0, false},
		{"LatTooHigh", 90.1, 0, false},
		{"LatTooLow", -90.1, 0, false},
		{"LonTooHigh", 0, 180.1, false},
		{"LonTooLow", 0, -180.1, false},
		{"Poles", 90, 0, true},
		{"Antimeridian", 0, -180, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidLatLon(tc.lat, tc.lon); got != tc.want {
				t.Errorf("IsValidLatLon(%v, %v) = %v, want %v", tc.lat, tc.lon, got, tc.want)
			}
		})
	}
}

func TestHaversineDistance(t *testing.T) {
	// One degree of latitude is roughly 111 km everywhere.
	d := HaversineDistance(47.0, -122.0, 48.0, -122.0)
	if math.Abs(d-111000) > 500 {
		t.Errorf("expected ~111km for one degree of latitude, got %v m", d)
	}

	if got := HaversineDistance(47.61, -122.33, 47.61, -122.33); got != 0 {
		t.Errorf("expected 0 for identical points, got %v", got)
	}
}
