package markers

import (
	"context"
	"net/http"
	"strconv"

	onebusaway "github.com/OneBusAway/go-sdk"
	"github.com/OneBusAway/go-sdk/option"

	"fleetmap.opentransit.org/internal/metrics"
	"fleetmap.opentransit.org/internal/models"
	"fleetmap.opentransit.org/internal/report"
	"fleetmap.opentransit.org/internal/utils"
)

// vehiclesForAgencyAPI calls the OneBusAway VehiclesForAgency API for the
// given feed and reports the returned vehicle count to Prometheus. A nil
// httpClient uses the SDK default; tests inject one.
func vehiclesForAgencyAPI(ctx context.Context, feed models.FeedSource, httpClient *http.Client) (int, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(feed.ObaApiKey),
		option.WithBaseURL(feed.ObaBaseURL),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	client := onebusaway.NewClient(opts...)

	response, err := client.VehiclesForAgency.List(ctx, feed.AgencyID, onebusaway.VehiclesForAgencyListParams{})
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: map[string]string{
				"feed_id":   strconv.Itoa(feed.ID),
				"agency_id": feed.AgencyID,
			},
		})
		return 0, err
	}

	if response == nil {
		return 0, nil
	}

	metrics.VehicleCountAPI.WithLabelValues(feed.AgencyID, strconv.Itoa(feed.ID)).Set(float64(len(response.Data.List)))

	return len(response.Data.List), nil
}

// CheckVehicleCountMatch compares the number of markers produced from
// the GTFS-RT feed with the vehicle count the OneBusAway API reports for
// the same agency. A mismatch means the map is showing a different fleet
// than the agency believes it is running; the result goes to the
// VehicleCountMatch metric rather than blocking clustering.
//
// Feeds with no OBA endpoint configured are skipped. A nil httpClient
// uses the SDK default.
func CheckVehicleCountMatch(ctx context.Context, feed models.FeedSource, markerCount int, httpClient *http.Client) error {
	if feed.ObaBaseURL == "" {
		return nil
	}

	apiVehicleCount, err := vehiclesForAgencyAPI(ctx, feed, httpClient)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("feed_id", strconv.Itoa(feed.ID)),
		})
		return err
	}

	match := 0
	if markerCount == apiVehicleCount {
		match = 1
	}

	metrics.VehicleCountMatch.WithLabelValues(feed.AgencyID, strconv.Itoa(feed.ID)).Set(float64(match))

	return nil
}
