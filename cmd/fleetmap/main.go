package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"fleetmap.opentransit.org/internal/app"
	"fleetmap.opentransit.org/internal/config"
	"fleetmap.opentransit.org/internal/models"
	"fleetmap.opentransit.org/internal/report"
)

// Declare a string containing the application version number. For now we
// store the version number as a hard-coded global constant.
const version = "1.0.0"

// Remote config fetches retry transient transport errors a few times
// before giving up and waiting for the next refresh tick.
const configMaxRetries = 3

func main() {
	var (
		port          = flag.Int("port", 4000, "API server port")
		env           = flag.String("env", "development", "Environment (development|staging|production)")
		configFile    = flag.String("config-file", "", "Path to a local JSON configuration file")
		configURL     = flag.String("config-url", "", "URL to a remote JSON configuration file")
		fetchInterval = flag.Int("fetch-interval", 30, "Vehicle position fetch interval in seconds")
	)

	flag.Parse()

	configAuthUser := os.Getenv("CONFIG_AUTH_USER")
	configAuthPass := os.Getenv("CONFIG_AUTH_PASS")

	if err := config.ValidateConfigFlags(configFile, configURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	report.SetupSentry()
	defer report.FlushSentry()
	report.ConfigureScope(*env, version)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := app.NewPooledClient()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		clustering config.ClusteringSettings
		feeds      []models.FeedSource
		err        error
	)

	if *configFile != "" {
		clustering, feeds, err = config.LoadConfigFromFile(*configFile)
	} else {
		clustering, feeds, err = config.LoadConfigFromURL(ctx, client, *configURL, configAuthUser, configAuthPass, configMaxRetries)
	}

	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if len(feeds) == 0 {
		fmt.Println("Error: No feeds found in configuration.")
		os.Exit(1)
	}

	cfg := config.NewConfig(*port, *env, clustering, feeds)
	cfg.FetchInterval = *fetchInterval

	application := app.New(cfg, logger, client, version)

	application.StartCollector(ctx, time.Duration(*fetchInterval)*time.Second)

	// If a remote URL is specified, refresh the configuration every minute
	if *configURL != "" {
		go application.ConfigService.RefreshConfig(ctx, *configURL, configAuthUser, configAuthPass, time.Minute, configMaxRetries)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}
