package app

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"fleetmap.opentransit.org/internal/middleware"

	"github.com/julienschmidt/httprouter"
)

// Routes sets up the HTTP routing configuration for the application and returns the final http.Handler.
//
// This function initializes a new `httprouter.Router`, registers all application routes
// with their corresponding handler functions and HTTP methods, and wraps the entire router
// with Sentry middleware for centralized error tracking and performance monitoring.
//
// Registered Routes:
//   - GET /v1/healthcheck:
//     Provides a JSON-formatted snapshot of the application's current health and readiness status.
//   - GET /v1/clusters:
//     Returns the most recently built cluster catalog.
//   - PUT /v1/viewport:
//     Accepts a settled viewport snapshot from the host map and returns the reclustered catalog.
//   - POST /v1/records/:id/tap:
//     Routes a tap on a catalog record to an interaction intent.
//   - GET /v1/stream:
//     Websocket stream of catalog rebuilds.
//   - GET /metrics:
//     Exposes all Prometheus metrics collected by the application for scraping by Prometheus.
//     Handled by a cached Prometheus handler (`middleware.NewCachedPromHandler`), which
//     reduces collection overhead by caching exposition output for a configurable duration.
//
// Middleware:
//   - `middleware.SentryMiddleware`:
//     Wraps the router to automatically capture any panics, errors, or performance issues
//     and report them to Sentry with contextual request data.
//   - `middleware.SecurityHeaders`:
//     Adds standard security headers to every response.
//
// Returns:
//   - An `http.Handler` instance that the server can use to handle incoming HTTP requests.
func (app *Application) Routes(ctx context.Context) http.Handler {
	// Initialize a new httprouter router instance.
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/clusters", app.clustersHandler)
	router.HandlerFunc(http.MethodPut, "/v1/viewport", app.viewportHandler)
	router.HandlerFunc(http.MethodPost, "/v1/records/:id/tap", app.tapHandler)
	router.HandlerFunc(http.MethodGet, "/v1/stream", app.streamHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	// Wrap router with Sentry and securityHeaders middlewares
	// Return wrapped httprouter instance.
	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
