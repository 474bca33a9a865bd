//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	onebusaway "github.com/OneBusAway/go-sdk"
	"github.com/OneBusAway/go-sdk/option"
)

// TestOBAConnection verifies that the OBA API is reachable and responds with valid
// current time data for all configured feeds. It runs a subtest for each feed
// in parallel, using a context with timeout to avoid hanging on unresponsive servers.
func TestOBAConnection(t *testing.T) {
	if len(integrationFeeds) == 0 {
		t.Skip("No feeds found in config")
	}

	for _, feed := range integrationFeeds {
		f := feed
		t.Run(fmt.Sprintf("FeedID_%d", f.ID), func(t *testing.T) {
			t.Parallel()

			if f.ObaApiKey == "" || f.ObaBaseURL == "" {
				t.Skipf("Skipping feed ID %d: missing API key or BaseURL", f.ID)
			}

			client := onebusaway.NewClient(
				option.WithAPIKey(f.ObaApiKey),
				option.WithBaseURL(f.ObaBaseURL),
			)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			resp, err := client.CurrentTime.Get(ctx)
			if err != nil {
				t.Errorf("Feed ID %d (%s): Failed to connect to OBA API: %v", f.ID, f.ObaBaseURL, err)
				return
			}

			if resp.Data.Entry.ReadableTime == "" {
				t.Errorf("Feed ID %d (%s): Expected non-empty ReadableTime from OBA API", f.ID, f.ObaBaseURL)
			} else {
				t.Logf("Feed ID %d (%s): Successfully retrieved current time: %s",
					f.ID, f.ObaBaseURL, resp.Data.Entry.ReadableTime)
			}
		})
	}
}
