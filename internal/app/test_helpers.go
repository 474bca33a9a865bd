package app

import (
	"io"
	"log/slog"
	"testing"

	"fleetmap.opentransit.org/internal/config"
	"fleetmap.opentransit.org/internal/models"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	feed := models.NewFeedSource(
		"Test Feed",
		1,
		"https://vehicle.example.com",
		"",
		"",
		"https://test.example.com",
		"test-key",
		"agency-1",
	)

	cfg := config.NewConfig(
		4000,
		"testing",
		config.DefaultClusteringSettings(),
		[]models.FeedSource{*feed},
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(cfg, logger, nil, "test-version")
}
