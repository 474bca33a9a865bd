package config

import (
	"fmt"
	"sync"

	"fleetmap.opentransit.org/internal/models"
)

// ClusteringSettings are the user-adjustable parameters of the marker
// clustering engine. They are validated at the configuration boundary
// so an invalid radius or group size never reaches the builder.
type ClusteringSettings struct {
	RadiusPixels   float64 `json:"radius_pixels"`
	MinClusterSize int     `json:"min_cluster_size"`
	PaddingFactor  float64 `json:"padding_factor"`
}

// DefaultClusteringSettings mirror what the map UI ships with: a 50px
// grouping radius and clusters of two or more, with 20% region padding.
func DefaultClusteringSettings() ClusteringSettings {
	return ClusteringSettings{
		RadiusPixels:   50,
		MinClusterSize: 2,
		PaddingFactor:  0.2,
	}
}

// Validate rejects settings the clustering engine would refuse. A zero
// radius and a minimum size of one are valid degenerate configurations.
func (s ClusteringSettings) Validate() error {
	if s.RadiusPixels < 0 {
		return fmt.Errorf("clustering radius_pixels must not be negative, got %v", s.RadiusPixels)
	}
	if s.MinClusterSize < 1 {
		return fmt.Errorf("clustering min_cluster_size must be a positive integer, got %d", s.MinClusterSize)
	}
	if s.PaddingFactor < 0 {
		return fmt.Errorf("clustering padding_factor must not be negative, got %v", s.PaddingFactor)
	}
	return nil
}

// Config holds all the configuration settings for our application.
type Config struct {
	Port          int
	Env           string
	FetchInterval int
	Mu            sync.RWMutex
	Clustering    ClusteringSettings
	Feeds         []models.FeedSource
}

// NewConfig creates a new instance of a Config struct.
func NewConfig(port int, env string, clustering ClusteringSettings, feeds []models.FeedSource) *Config {
	return &Config{
		Port:       port,
		Env:        env,
		Clustering: clustering,
		Feeds:      feeds,
	}
}

// UpdateConfig safely updates the feeds and clustering settings.
func (cfg *Config) UpdateConfig(newFeeds []models.FeedSource, newClustering ClusteringSettings) {
	cfg.Mu.Lock()
	defer cfg.Mu.Unlock()
	cfg.Feeds = newFeeds
	cfg.Clustering = newClustering
}

// GetFeeds safely returns a copy of the feeds slice to avoid
// concurrent modification issues.
// This method should be used to access the feeds from other parts of the application.
func (cfg *Config) GetFeeds() []models.FeedSource {
	cfg.Mu.RLock()
	defer cfg.Mu.RUnlock()
	return append([]models.FeedSource(nil), cfg.Feeds...)
}

// GetClustering safely returns the current clustering settings.
func (cfg *Config) GetClustering() ClusteringSettings {
	cfg.Mu.RLock()
	defer cfg.Mu.RUnlock()
	return cfg.Clustering
}
