package cluster

import "testing"

func TestStore(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get(); ok {
		t.Error("expected empty store before first Set")
	}
	if _, ok := store.Find("anything"); ok {
		t.Error("expected Find to miss before first Set")
	}

	catalog := Catalog{
		Records: []Record{
			newSingletonRecord(Marker{ID: "v1", Lat: 47.6, Lon: -122.3}),
			newClusterRecord([]Marker{
				{ID: "v2", Lat: 47.61, Lon: -122.31},
				{ID: "v3", Lat: 47.62, Lon: -122.32},
			}),
		},
	}
	store.Set(catalog)

	got, ok := store.Get()
	if !ok {
		t.Fatal("expected stored catalog after Set")
	}
	if len(got.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got.Records))
	}

	rec, ok := store.Find("v1")
	if !ok {
		t.Fatal("expected to find singleton record v1")
	}
	if rec.IsCluster {
		t.Errorf("expected singleton, got cluster %+v", rec)
	}

	if _, ok := store.Find("stale-id"); ok {
		t.Error("expected Find to miss on unknown ID")
	}
}

func TestClusterRecordRadius(t *testing.T) {
	rec := newClusterRecord([]Marker{
		{ID: "v1", Lat: 47.60, Lon: -122.30},
		{ID: "v2", Lat: 47.62, Lon: -122.30},
	})

	// Centroid sits at 47.61; each member is 0.01 degrees (~1.1 km) away.
	if rec.RadiusMeters < 1000 || rec.RadiusMeters > 1300 {
		t.Errorf("expected radius around 1.1km, got %v m", rec.RadiusMeters)
	}
}
