package config

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"fleetmap.opentransit.org/internal/models"
	"fleetmap.opentransit.org/internal/report"
	"fleetmap.opentransit.org/internal/utils"
)

// FileConfig is the on-disk (or remote) configuration document: the
// vehicle feeds to poll plus optional clustering overrides. Missing
// clustering fields fall back to defaults before validation.
type FileConfig struct {
	Clustering *ClusteringSettings `json:"clustering,omitempty"`
	Feeds      []models.FeedSource `json:"feeds"`
}

// ValidateConfigFlags ensures that only one configuration source is specified:
// either a config file "--config-file", a remote config URL "--config-url".
//
// Returns an error if more than one input method is specified.
func ValidateConfigFlags(configFile, configURL *string) error {
	if *configFile == "" && *configURL == "" {
		return fmt.Errorf("no configuration provided, either --config-file or --config-url must be specified")
	}
	if (*configFile != "" && *configURL != "") || (*configFile != "" && len(flag.Args()) > 0) || (*configURL != "" && len(flag.Args()) > 0) {
		return fmt.Errorf("only one of --config-file or --config-url can be specified")
	}
	return nil
}

// resolve fills in defaults and validates the parsed document.
func (fc *FileConfig) resolve() (ClusteringSettings, []models.FeedSource, error) {
	clustering := DefaultClusteringSettings()
	if fc.Clustering != nil {
		clustering = *fc.Clustering
	}
	if err := clustering.Validate(); err != nil {
		return ClusteringSettings{}, nil, err
	}
	return clustering, fc.Feeds, nil
}

// refreshConfig starts a background loop that periodically fetches
// configuration from a remote URL and updates the application's feed
// list and clustering settings.
//
// Errors during fetch or parse are logged and reported to Sentry, but the loop continues,
// ensuring resiliency in the presence of transient issues.
//
// The routine stops gracefully when the context is canceled.
func refreshConfig(ctx context.Context, client *http.Client, configURL, configAuthUser, configAuthPass string, cfg *Config, logger *slog.Logger, interval time.Duration, maxRetries int) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping config refresh routine")
			return
		default:
			clustering, feeds, err := loadConfigFromURL(ctx, client, configURL, configAuthUser, configAuthPass, maxRetries)
			if err != nil {
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Tags:  utils.MakeMap("config_url", configURL),
					Level: sentry.LevelError,
				})
				logger.Error("Failed to refresh remote config", "error", err)
			} else {
				cfg.UpdateConfig(feeds, clustering)
				logger.Info("Successfully refreshed feed configuration")
			}
			time.Sleep(interval)
		}
	}
}

// loadConfigFromFile reads a JSON configuration file from disk and
// resolves it into clustering settings and a feed list.
//
// This function is used when the application is configured to load its
// configuration from a static file using the --config-file flag.
func loadConfigFromFile(filePath string) (ClusteringSettings, []models.FeedSource, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return ClusteringSettings{}, nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return ClusteringSettings{}, nil, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	return fc.resolve()
}

// loadConfigFromURL fetches a JSON configuration from a remote HTTP(S) endpoint,
// using the provided client and optional basic authentication.
//
// It validates the response status, reads the body, and resolves the
// configuration document into clustering settings and a feed list.
//
// Errors are logged and reported to Sentry for observability.
func loadConfigFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) (ClusteringSettings, []models.FeedSource, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return ClusteringSettings{}, nil, fmt.Errorf("failed to create request: %v", err)
	}

	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return ClusteringSettings{}, nil, fmt.Errorf("failed to fetch remote config: %v", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("remote config returned status: %d", resp.StatusCode)
		report.ReportErrorWithSentryOptions(statusErr, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return ClusteringSettings{}, nil, statusErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return ClusteringSettings{}, nil, fmt.Errorf("failed to read remote config: %v", err)
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return ClusteringSettings{}, nil, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	return fc.resolve()
}
