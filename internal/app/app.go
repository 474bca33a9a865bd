package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"fleetmap.opentransit.org/internal/cluster"
	"fleetmap.opentransit.org/internal/config"
	"fleetmap.opentransit.org/internal/geo"
	"fleetmap.opentransit.org/internal/markers"
	"fleetmap.opentransit.org/internal/metrics"
	"fleetmap.opentransit.org/internal/report"
	"fleetmap.opentransit.org/internal/utils"
	"fleetmap.opentransit.org/internal/ws"
)

// Application wires the clustering engine to its inputs and outputs: the
// configuration service, the marker, viewport and catalog stores, the
// websocket hub, the shared HTTP client, the logger, and the application
// version.
type Application struct {
	ConfigService *config.ConfigService
	Markers       *markers.Store
	Viewport      *geo.ViewportStore
	Catalog       *cluster.Store
	Hub           *ws.Hub
	Client        *http.Client
	Logger        *slog.Logger
	Version       string
}

// New creates and wires all dependencies for the Application.
// Accepts config, logger, client, and version as arguments.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	configService := config.NewConfigService(logger, client, cfg)

	return &Application{
		ConfigService: configService,
		Markers:       markers.NewStore(),
		Viewport:      geo.NewViewportStore(),
		Catalog:       cluster.NewStore(),
		Hub:           ws.NewHub(logger),
		Client:        client,
		Logger:        logger,
		Version:       version,
	}
}

// RebuildCatalog runs a clustering pass over the current marker list and
// viewport using the current clustering settings, publishes the result to
// the catalog store and the websocket hub, and reports catalog metrics.
//
// It is called by the collector after a marker or settings change and by
// the viewport handler after the map reports a new settled viewport. An
// unset viewport clusters against the zero value, which is not ready and
// yields an empty catalog.
func (app *Application) RebuildCatalog() (cluster.Catalog, error) {
	settings := app.ConfigService.Config.GetClustering()

	builder, err := cluster.NewBuilder(nil, cluster.Options{
		RadiusPixels:   settings.RadiusPixels,
		MinClusterSize: settings.MinClusterSize,
	})
	if err != nil {
		return cluster.Catalog{}, err
	}

	vp, _ := app.Viewport.Get()

	start := time.Now()
	catalog, err := builder.Build(app.Markers.Get(), vp)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("component", "cluster_builder"),
			Level: sentry.LevelError,
		})
		return cluster.Catalog{}, err
	}

	app.Catalog.Set(catalog)
	metrics.ReportCatalog(catalog, time.Since(start))
	app.Hub.Broadcast(catalog)

	return catalog, nil
}
