package app

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fleetmap.opentransit.org/internal/cluster"
	"fleetmap.opentransit.org/internal/geo"
	"fleetmap.opentransit.org/internal/interaction"
	"fleetmap.opentransit.org/internal/metrics"
)

// HealthStatus defines the structure of the JSON response returned by the
// application's health check endpoint (/v1/healthcheck).
//
// It provides metadata about the application's current operational status,
// including availability, deployment context, versioning, and runtime readiness.
// This structure is used to inform load balancers, orchestration tools (e.g., Kubernetes),
// monitoring systems, and operators about the application's health and deployability.
//
// Fields:
//   - Status: A high-level indicator of service availability (e.g., "available").
//   - Environment: The current environment in which the app is running (e.g., "development", "staging","production").
//   - Version: The application version string, useful for deployment tracking.
//   - Feeds: The number of vehicle position feeds currently configured and polled.
//   - Ready: A boolean flag indicating whether the application is ready to serve traffic.
//     The application is considered "ready" if at least one feed is configured.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Feeds       int    `json:"feeds"`
	Ready       bool   `json:"ready"`
}

// healthcheckHandler responds with a JSON representation of the application's health status.
//
// The response includes the application's availability status, environment, version,
// number of configured feeds, and readiness (true if at least one feed is configured).
// If no feeds are configured (i.e., the application is not ready), the handler responds
// with HTTP 500 Internal Server Error; otherwise, it responds with HTTP 200 OK.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	numFeeds := len(app.ConfigService.Config.GetFeeds())

	ready := numFeeds > 0 // Consider ready if at least one feed is configured

	status := HealthStatus{
		Status:      "available",
		Environment: app.ConfigService.Config.Env,
		Version:     app.Version,
		Feeds:       numFeeds,
		Ready:       ready,
	}

	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(status)
}

// clustersHandler returns the most recently built cluster catalog as JSON.
// Before the first clustering pass (or while the viewport is not ready)
// the catalog is empty rather than an error.
func (app *Application) clustersHandler(w http.ResponseWriter, r *http.Request) {
	catalog, ok := app.Catalog.Get()
	if !ok {
		catalog = cluster.Catalog{Records: []cluster.Record{}}
	}
	if catalog.Records == nil {
		catalog.Records = []cluster.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalog)
}

// viewportHandler accepts a settled viewport snapshot from the host map,
// stores it, and immediately reclusters so the response carries the
// catalog for the new viewport.
//
// A snapshot with a non-positive span or pixel dimension is accepted (the
// map may not have laid out yet); it simply yields an empty catalog until
// a usable snapshot arrives.
func (app *Application) viewportHandler(w http.ResponseWriter, r *http.Request) {
	var vp geo.Viewport
	if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
		http.Error(w, `{"error":"invalid viewport payload"}`, http.StatusBadRequest)
		return
	}

	app.Viewport.Set(vp)

	catalog, err := app.RebuildCatalog()
	if err != nil {
		app.Logger.Error("Failed to rebuild catalog after viewport update", "error", err)
		http.Error(w, `{"error":"failed to rebuild catalog"}`, http.StatusInternalServerError)
		return
	}
	if catalog.Records == nil {
		catalog.Records = []cluster.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalog)
}

// tapHandler routes a tap on a catalog record to an interaction intent:
// zoomToRegion for clusters, selectVehicle for singletons. Record IDs are
// only valid for the catalog currently rendered; an unknown ID is a 404,
// which the host treats as a no-op (the catalog has since been rebuilt).
func (app *Application) tapHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	id := params.ByName("id")

	rec, ok := app.Catalog.Find(id)
	if !ok {
		metrics.TapMisses.Inc()
		http.Error(w, `{"error":"record not found"}`, http.StatusNotFound)
		return
	}

	// The router is built per request from the current settings; clustering
	// settings can be refreshed at any time and the router must not be
	// shared mutable state between the refresh loop and handler goroutines.
	router := interaction.NewRouter(app.ConfigService.Config.GetClustering().PaddingFactor)
	intent, err := router.OnTap(rec)
	if err != nil {
		app.Logger.Error("Failed to route tap", "record_id", id, "error", err)
		http.Error(w, `{"error":"failed to route tap"}`, http.StatusInternalServerError)
		return
	}

	metrics.TapIntents.WithLabelValues(intent.Kind).Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(intent)
}

// streamHandler upgrades the connection to a websocket and subscribes the
// client to catalog rebuilds, seeding it with the current catalog.
func (app *Application) streamHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := app.Catalog.Get()
	app.Hub.HandleStream(w, r, snapshot, ok)
}
