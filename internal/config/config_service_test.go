package config

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"
)

func TestLoadConfigFromURL_WithVCR(t *testing.T) {
	rec, err := recorder.New(filepath.Join("testdata", "vcr", "remote_config"))
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	defer rec.Stop()

	client := &http.Client{
		Transport: rec,
		Timeout:   10 * time.Second,
	}

	clustering, feeds, err := LoadConfigFromURL(context.Background(), client, "https://config.example.com/fleetmap.json", "", "", 0)
	if err != nil {
		t.Fatalf("LoadConfigFromURL failed: %v", err)
	}

	if len(feeds) != 1 {
		t.Fatalf("Expected 1 feed, got %d", len(feeds))
	}
	if feeds[0].Name != "Puget Sound" || feeds[0].AgencyID != "1" {
		t.Errorf("Unexpected feed: %+v", feeds[0])
	}
	if feeds[0].VehiclePositionUrl == "" {
		t.Error("Expected a vehicle position URL")
	}

	if clustering.RadiusPixels != 64 {
		t.Errorf("Expected radius 64, got %v", clustering.RadiusPixels)
	}
	if clustering.MinClusterSize != 2 {
		t.Errorf("Expected min cluster size 2, got %v", clustering.MinClusterSize)
	}
	if clustering.PaddingFactor != 0.25 {
		t.Errorf("Expected padding factor 0.25, got %v", clustering.PaddingFactor)
	}
}
