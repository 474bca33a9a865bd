package app

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"fleetmap.opentransit.org/internal/cluster"
	"fleetmap.opentransit.org/internal/config"
	"fleetmap.opentransit.org/internal/markers"
	"fleetmap.opentransit.org/internal/metrics"
	"fleetmap.opentransit.org/internal/models"
	"fleetmap.opentransit.org/internal/report"
)

// StartCollector launches the background poll loop that keeps the marker
// store current. Every interval it fetches vehicle positions from each
// configured feed, and reclusters only when the fleet actually moved or
// the clustering settings changed since the last pass.
//
// Feeds that fail are backed off individually, so one broken feed does
// not delay the others. The loop stops when the context is canceled.
func (app *Application) StartCollector(ctx context.Context, interval time.Duration) {
	backoffs := config.NewBackoffStore()
	lastSettings := app.ConfigService.Config.GetClustering()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				app.Logger.Info("Stopping marker collector")
				return
			case <-ticker.C:
				changed := app.collectMarkers(ctx, backoffs)

				settings := app.ConfigService.Config.GetClustering()
				if settings != lastSettings {
					lastSettings = settings
					changed = true
				}

				if !changed {
					continue
				}
				if _, err := app.RebuildCatalog(); err != nil {
					app.Logger.Error("Failed to rebuild catalog", "error", err)
				}
			}
		}
	}()
}

// collectMarkers polls every configured feed that is due for a fetch,
// merges the results in feed order, and stores the combined list. It
// reports whether the stored list changed.
func (app *Application) collectMarkers(ctx context.Context, backoffs *config.BackoffStore) bool {
	feeds := app.ConfigService.Config.GetFeeds()

	all := make([]cluster.Marker, 0)
	for _, feed := range feeds {
		if retryAt, ok := backoffs.NextRetryAt(feed.ID); ok && time.Now().UTC().Before(retryAt) {
			// Still backing off: reuse the last stored positions for this feed.
			all = append(all, feedMarkers(app.Markers.Get(), feed.ID)...)
			continue
		}

		fetched, err := app.collectMarkersForFeed(ctx, feed)
		if err != nil {
			backoffs.UpdateBackoff(feed.ID)
			metrics.FeedStatus.WithLabelValues(fmt.Sprintf("%d", feed.ID), feed.VehiclePositionUrl).Set(0)
			app.Logger.Error("Failed to fetch vehicle positions", "feed", feed.Name, "error", err)
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Tags: map[string]string{
					"feed_id":   fmt.Sprintf("%d", feed.ID),
					"feed_name": feed.Name,
				},
				Level: sentry.LevelError,
			})
			all = append(all, feedMarkers(app.Markers.Get(), feed.ID)...)
			continue
		}

		backoffs.ResetBackoff(feed.ID)
		metrics.FeedStatus.WithLabelValues(fmt.Sprintf("%d", feed.ID), feed.VehiclePositionUrl).Set(1)
		all = append(all, fetched...)
	}

	return app.Markers.Set(all)
}

// collectMarkersForFeed fetches one feed and cross-checks the fetched
// vehicle count against the OBA API when the feed has one configured.
func (app *Application) collectMarkersForFeed(ctx context.Context, feed models.FeedSource) ([]cluster.Marker, error) {
	source := markers.NewGTFSRTSource(feed, app.Client)
	fetched, err := source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := markers.CheckVehicleCountMatch(ctx, feed, len(fetched), app.Client); err != nil {
		app.Logger.Error("Failed to check vehicle count match", "feed", feed.Name, "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: map[string]string{
				"feed_id":   fmt.Sprintf("%d", feed.ID),
				"feed_name": feed.Name,
			},
			ExtraContext: map[string]interface{}{
				"oba_base_url": feed.ObaBaseURL,
			},
			Level: sentry.LevelError,
		})
	}

	return fetched, nil
}

// feedMarkers filters a combined marker list down to one feed's markers,
// preserving order.
func feedMarkers(all []cluster.Marker, feedID int) []cluster.Marker {
	out := make([]cluster.Marker, 0)
	for _, m := range all {
		if m.Vehicle.FeedSource == feedID {
			out = append(out, m)
		}
	}
	return out
}
