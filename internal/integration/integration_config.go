//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"os"

	"fleetmap.opentransit.org/internal/models"
)

const integrationConfigPath = "./integration_feeds.json"

// loadIntegrationFeeds loads feed data from the integration_feeds.json file.
func loadIntegrationFeeds() ([]models.FeedSource, error) {
	data, err := os.ReadFile(integrationConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var feeds []models.FeedSource
	if err := json.Unmarshal(data, &feeds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	return feeds, nil
}
