package markers

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jamespfennell/gtfs"

	"fleetmap.opentransit.org/internal/cluster"
	"fleetmap.opentransit.org/internal/geo"
	"fleetmap.opentransit.org/internal/metrics"
	"fleetmap.opentransit.org/internal/models"
	"fleetmap.opentransit.org/internal/report"
	"fleetmap.opentransit.org/internal/utils"
)

// GTFSRTSource fetches a GTFS-RT vehicle-positions feed and converts it
// to markers. Vehicles without an ID are dropped; vehicles with a
// missing position get NaN coordinates so the clustering engine filters
// them without this layer deciding for it; vehicles with out-of-range or
// placeholder (0,0) coordinates are dropped here and counted, since they
// indicate feed problems rather than markers worth carrying.
type GTFSRTSource struct {
	Feed   models.FeedSource
	Client *http.Client
}

// NewGTFSRTSource creates a marker source for one feed. A nil client
// falls back to a default with a 10 second timeout.
func NewGTFSRTSource(feed models.FeedSource, client *http.Client) *GTFSRTSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GTFSRTSource{Feed: feed, Client: client}
}

// Fetch downloads and parses the feed, returning the current marker list.
func (s *GTFSRTSource) Fetch(ctx context.Context) ([]cluster.Marker, error) {
	data, err := s.fetchFeed(ctx)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("feed_id", strconv.Itoa(s.Feed.ID)),
			ExtraContext: map[string]interface{}{
				"vehicle_position_url": s.Feed.VehiclePositionUrl,
			},
		})
		return nil, err
	}

	realtime, err := gtfs.ParseRealtime(data, &gtfs.ParseRealtimeOptions{})
	if err != nil {
		err = fmt.Errorf("failed to parse GTFS-RT feed: %v", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("feed_id", strconv.Itoa(s.Feed.ID)),
			ExtraContext: map[string]interface{}{
				"vehicle_position_url": s.Feed.VehiclePositionUrl,
			},
		})
		return nil, err
	}

	feedID := strconv.Itoa(s.Feed.ID)
	out := make([]cluster.Marker, 0, len(realtime.Vehicles))
	invalid := 0

	for _, v := range realtime.Vehicles {
		if v.ID == nil || v.ID.ID == "" {
			invalid++
			continue
		}

		lat, lon := math.NaN(), math.NaN()
		if v.Position != nil && v.Position.Latitude != nil && v.Position.Longitude != nil {
			lat = float64(*v.Position.Latitude)
			lon = float64(*v.Position.Longitude)
			if !geo.IsValidLatLon(lat, lon) {
				invalid++
				continue
			}
		}

		out = append(out, cluster.Marker{
			ID:      v.ID.ID,
			Lat:     lat,
			Lon:     lon,
			Vehicle: vehiclePayload(v, lat, lon, s.Feed.ID),
		})
	}

	metrics.RealtimeVehiclePositions.WithLabelValues(s.Feed.VehiclePositionUrl, feedID).Set(float64(len(out)))
	metrics.InvalidVehicleCoordinates.WithLabelValues(feedID).Set(float64(invalid))

	return out, nil
}

// fetchFeed performs the HTTP request with the feed's API key header.
func (s *GTFSRTSource) fetchFeed(ctx context.Context) ([]byte, error) {
	parsedURL, err := url.Parse(s.Feed.VehiclePositionUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS-RT URL: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", parsedURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %v", err)
	}
	if s.Feed.GtfsRtApiKey != "" && s.Feed.GtfsRtApiValue != "" {
		req.Header.Set(s.Feed.GtfsRtApiKey, s.Feed.GtfsRtApiValue)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GTFS-RT feed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from %s: %d", parsedURL.String(), resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GTFS-RT feed: %v", err)
	}
	return data, nil
}

// vehiclePayload copies the fields the map UI renders into the opaque
// payload carried through clustering.
func vehiclePayload(v gtfs.Vehicle, lat, lon float64, feedID int) models.Vehicle {
	payload := models.Vehicle{
		ID:         v.ID.ID,
		Label:      v.ID.Label,
		TripID:     v.GetTrip().ID.ID,
		RouteID:    v.GetTrip().ID.RouteID,
		Latitude:   lat,
		Longitude:  lon,
		FeedSource: feedID,
	}
	if v.Position != nil {
		if v.Position.Bearing != nil {
			payload.Bearing = float64(*v.Position.Bearing)
		}
		if v.Position.Speed != nil {
			payload.Speed = float64(*v.Position.Speed)
		}
	}
	if v.Timestamp != nil {
		payload.UpdatedAt = *v.Timestamp
	}
	return payload
}
