package interaction

import (
	"math"
	"testing"

	"fleetmap.opentransit.org/internal/cluster"
	"fleetmap.opentransit.org/internal/models"
)

func TestOnTapCluster(t *testing.T) {
	router := NewRouter(0.2)

	rec := cluster.Record{
		ID:        "s2_123_3",
		IsCluster: true,
		Count:     3,
		Members: []cluster.Marker{
			{ID: "v1", Lat: 47.60, Lon: -122.40},
			{ID: "v2", Lat: 47.70, Lon: -122.30},
			{ID: "v3", Lat: 47.65, Lon: -122.35},
		},
	}

	intent, err := router.OnTap(rec)
	if err != nil {
		t.Fatalf("OnTap failed: %v", err)
	}

	if intent.Kind != KindZoomToRegion {
		t.Errorf("expected kind %q, got %q", KindZoomToRegion, intent.Kind)
	}
	if intent.Vehicle != nil {
		t.Error("expected no vehicle payload for a cluster tap")
	}
	if intent.Region == nil {
		t.Fatal("expected a region for a cluster tap")
	}

	// The raw extent is 0.1 degrees on both axes; 20% padding per side
	// widens each axis by 0.02 on each end.
	region := *intent.Region
	if math.Abs(region.MinLat-47.58) > 1e-9 || math.Abs(region.MaxLat-47.72) > 1e-9 {
		t.Errorf("unexpected latitude padding: %+v", region)
	}
	if math.Abs(region.MinLon-(-122.42)) > 1e-9 || math.Abs(region.MaxLon-(-122.28)) > 1e-9 {
		t.Errorf("unexpected longitude padding: %+v", region)
	}

	// Every member must remain inside the padded region.
	for _, m := range rec.Members {
		if !region.Contains(m.Lat, m.Lon) {
			t.Errorf("member %s at (%v, %v) outside padded region %+v", m.ID, m.Lat, m.Lon, region)
		}
	}
}

func TestOnTapSingleton(t *testing.T) {
	router := NewRouter(0.2)

	vehicle := models.Vehicle{ID: "v7", RouteID: "44", Latitude: 47.66, Longitude: -122.31}
	rec := cluster.Record{
		ID:    "v7",
		Count: 1,
		Members: []cluster.Marker{
			{ID: "v7", Lat: 47.66, Lon: -122.31, Vehicle: vehicle},
		},
	}

	intent, err := router.OnTap(rec)
	if err != nil {
		t.Fatalf("OnTap failed: %v", err)
	}

	if intent.Kind != KindSelectVehicle {
		t.Errorf("expected kind %q, got %q", KindSelectVehicle, intent.Kind)
	}
	if intent.Region != nil {
		t.Error("expected no region for a singleton tap")
	}
	if intent.Vehicle == nil {
		t.Fatal("expected a vehicle payload for a singleton tap")
	}
	if intent.Vehicle.ID != "v7" || intent.Vehicle.RouteID != "44" {
		t.Errorf("unexpected vehicle payload: %+v", intent.Vehicle)
	}
}

func TestOnTapEmptyRecord(t *testing.T) {
	router := NewRouter(0.2)

	if _, err := router.OnTap(cluster.Record{ID: "broken"}); err == nil {
		t.Error("expected error for a record with no members")
	}
}

func TestNewRouterPaddingFallback(t *testing.T) {
	if got := NewRouter(-1).Padding; got != DefaultPadding {
		t.Errorf("expected fallback to DefaultPadding, got %v", got)
	}
	if got := NewRouter(0).Padding; got != 0 {
		t.Errorf("expected zero padding to be respected, got %v", got)
	}
}
