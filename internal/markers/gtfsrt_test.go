package markers

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfsrt "github.com/jamespfennell/gtfs/proto"
	"google.golang.org/protobuf/proto"

	"fleetmap.opentransit.org/internal/models"
)

type fixtureVehicle struct {
	id       string
	label    string
	lat, lon float32
	noPos    bool
	tripID   string
	routeID  string
}

// buildFeed marshals a GTFS-RT vehicle positions feed from the given
// vehicles. An empty id produces an entity whose vehicle descriptor is
// absent, which real feeds occasionally emit.
func buildFeed(t *testing.T, vehicles []fixtureVehicle) []byte {
	t.Helper()

	feed := &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
		},
	}

	for i, v := range vehicles {
		vp := &gtfsrt.VehiclePosition{}
		if v.id != "" {
			vp.Vehicle = &gtfsrt.VehicleDescriptor{
				Id:    proto.String(v.id),
				Label: proto.String(v.label),
			}
		}
		if !v.noPos {
			vp.Position = &gtfsrt.Position{
				Latitude:  proto.Float32(v.lat),
				Longitude: proto.Float32(v.lon),
			}
		}
		if v.tripID != "" {
			vp.Trip = &gtfsrt.TripDescriptor{
				TripId:  proto.String(v.tripID),
				RouteId: proto.String(v.routeID),
			}
		}
		feed.Entity = append(feed.Entity, &gtfsrt.FeedEntity{
			Id:      proto.String(string(rune('a' + i))),
			Vehicle: vp,
		})
	}

	data, err := proto.Marshal(feed)
	if err != nil {
		t.Fatalf("failed to marshal fixture feed: %v", err)
	}
	return data
}

func feedServer(t *testing.T, data []byte, wantHeader, wantValue string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantHeader != "" && r.Header.Get(wantHeader) != wantValue {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/x-protobuf")
		w.Write(data)
	}))
}

func TestGTFSRTSourceFetch(t *testing.T) {
	data := buildFeed(t, []fixtureVehicle{
		{id: "bus-1", label: "Route 44", lat: 47.61, lon: -122.33, tripID: "trip-9001", routeID: "44"},
		{id: "bus-2", label: "Route 8", lat: 47.62, lon: -122.34},
		{id: "bus-3", noPos: true},               // missing position: carried with NaN coordinates
		{id: "bus-4", lat: 0, lon: 0},            // placeholder (0,0): dropped
		{id: "", lat: 47.63, lon: -122.35},       // no vehicle ID: dropped
		{id: "bus-5", lat: 91.0, lon: -122.33},   // out of range: dropped
	})

	ts := feedServer(t, data, "X-Test-Header", "test-value")
	defer ts.Close()

	feed := models.FeedSource{
		ID:                 1,
		Name:               "Test Feed",
		VehiclePositionUrl: ts.URL,
		GtfsRtApiKey:       "X-Test-Header",
		GtfsRtApiValue:     "test-value",
	}

	source := NewGTFSRTSource(feed, &http.Client{Timeout: 5 * time.Second})

	fetched, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(fetched) != 3 {
		t.Fatalf("expected 3 markers (2 positioned, 1 NaN), got %d: %+v", len(fetched), fetched)
	}

	byID := make(map[string]int)
	for i, m := range fetched {
		byID[m.ID] = i
	}

	i, ok := byID["bus-1"]
	if !ok {
		t.Fatal("expected bus-1 in fetched markers")
	}
	if math.Abs(fetched[i].Lat-47.61) > 1e-4 || math.Abs(fetched[i].Lon-(-122.33)) > 1e-4 {
		t.Errorf("bus-1 coordinates wrong: %+v", fetched[i])
	}
	if fetched[i].Vehicle.Label != "Route 44" {
		t.Errorf("bus-1 label wrong: %+v", fetched[i].Vehicle)
	}
	if fetched[i].Vehicle.TripID != "trip-9001" || fetched[i].Vehicle.RouteID != "44" {
		t.Errorf("bus-1 trip data wrong: %+v", fetched[i].Vehicle)
	}
	if fetched[i].Vehicle.FeedSource != 1 {
		t.Errorf("bus-1 feed source wrong: %+v", fetched[i].Vehicle)
	}

	if j, ok := byID["bus-2"]; ok {
		if fetched[j].Vehicle.TripID != "" || fetched[j].Vehicle.RouteID != "" {
			t.Errorf("bus-2 has no trip descriptor, got %+v", fetched[j].Vehicle)
		}
	} else {
		t.Fatal("expected bus-2 in fetched markers")
	}

	i, ok = byID["bus-3"]
	if !ok {
		t.Fatal("expected bus-3 in fetched markers")
	}
	if !math.IsNaN(fetched[i].Lat) || !math.IsNaN(fetched[i].Lon) {
		t.Errorf("expected NaN coordinates for positionless vehicle, got %+v", fetched[i])
	}
	if fetched[i].HasFiniteCoordinates() {
		t.Error("positionless marker should not report finite coordinates")
	}

	for _, dropped := range []string{"bus-4", "bus-5"} {
		if _, ok := byID[dropped]; ok {
			t.Errorf("expected %s to be dropped", dropped)
		}
	}
}

func TestGTFSRTSourceFetchErrors(t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}

	t.Run("ServerError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		source := NewGTFSRTSource(models.FeedSource{ID: 1, VehiclePositionUrl: ts.URL}, client)
		if _, err := source.Fetch(context.Background()); err == nil {
			t.Error("expected error for 500 response")
		}
	})

	t.Run("MissingAPIKeyRejected", func(t *testing.T) {
		ts := feedServer(t, buildFeed(t, nil), "X-Test-Header", "test-value")
		defer ts.Close()

		// No API key configured on the feed: the server answers 401.
		source := NewGTFSRTSource(models.FeedSource{ID: 1, VehiclePositionUrl: ts.URL}, client)
		if _, err := source.Fetch(context.Background()); err == nil {
			t.Error("expected error when the feed rejects the request")
		}
	})

	t.Run("GarbageBody", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not a protobuf feed at all, definitely not"))
		}))
		defer ts.Close()

		source := NewGTFSRTSource(models.FeedSource{ID: 1, VehiclePositionUrl: ts.URL}, client)
		if _, err := source.Fetch(context.Background()); err == nil {
			t.Error("expected error for unparseable body")
		}
	})

	t.Run("UnreachableHost", func(t *testing.T) {
		source := NewGTFSRTSource(models.FeedSource{ID: 1, VehiclePositionUrl: "http://127.0.0.1:1"}, client)
		if _, err := source.Fetch(context.Background()); err == nil {
			t.Error("expected error for unreachable host")
		}
	})
}

func TestGTFSRTSourceEmptyFeed(t *testing.T) {
	ts := feedServer(t, buildFeed(t, nil), "", "")
	defer ts.Close()

	source := NewGTFSRTSource(models.FeedSource{ID: 1, VehiclePositionUrl: ts.URL}, nil)

	fetched, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(fetched) != 0 {
		t.Errorf("expected no markers from an empty feed, got %d", len(fetched))
	}
}
