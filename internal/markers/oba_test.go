package markers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetmap.opentransit.org/internal/models"
)

// setupObaServer creates a new httptest.Server that responds with the given JSON string and status code.
// Used to simulate an OBA API server for testing.
func setupObaServer(t *testing.T, response string, statusCode int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		// Writing to ResponseWriter in tests, error can be safely ignored.
		// #nosec G104
		w.Write([]byte(response))
	}))
}

func testFeed(baseURL string) models.FeedSource {
	return models.FeedSource{
		Name:       "Test Feed",
		ID:         999,
		ObaBaseURL: baseURL,
		ObaApiKey:  "test-key",
		AgencyID:   "test-agency",
	}
}

func TestVehiclesForAgencyAPI(t *testing.T) {
	t.Run("EmptyList", func(t *testing.T) {
		ts := setupObaServer(t, `{"data": {"list": []}}`, http.StatusOK)
		defer ts.Close()

		count, err := vehiclesForAgencyAPI(context.Background(), testFeed(ts.URL), nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if count != 0 {
			t.Fatalf("Expected count to be 0, got %d", count)
		}
	})

	t.Run("SuccessfulResponse", func(t *testing.T) {
		ts := setupObaServer(t, `{"data": {"list": [{"vehicleId": "1"}, {"vehicleId": "2"}]}}`, http.StatusOK)
		defer ts.Close()

		count, err := vehiclesForAgencyAPI(context.Background(), testFeed(ts.URL), nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if count != 2 {
			t.Fatalf("Expected count to be 2, got %d", count)
		}
	})

	t.Run("ErrorResponse", func(t *testing.T) {
		ts := setupObaServer(t, `{"error": "Internal Server Error"}`, http.StatusInternalServerError)
		defer ts.Close()

		_, err := vehiclesForAgencyAPI(context.Background(), testFeed(ts.URL), nil)
		if err == nil {
			t.Fatal("Expected an error but got nil")
		}
	})
}

func TestCheckVehicleCountMatch(t *testing.T) {
	t.Run("Match", func(t *testing.T) {
		ts := setupObaServer(t, `{"data": {"list": [{"vehicleId": "1"}, {"vehicleId": "2"}]}}`, http.StatusOK)
		defer ts.Close()

		if err := CheckVehicleCountMatch(context.Background(), testFeed(ts.URL), 2, nil); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("Mismatch", func(t *testing.T) {
		ts := setupObaServer(t, `{"data": {"list": [{"vehicleId": "1"}]}}`, http.StatusOK)
		defer ts.Close()

		if err := CheckVehicleCountMatch(context.Background(), testFeed(ts.URL), 5, nil); err != nil {
			t.Fatalf("Expected no error on mismatch, got %v", err)
		}
	})

	t.Run("SkippedWithoutBaseURL", func(t *testing.T) {
		feed := testFeed("")
		if err := CheckVehicleCountMatch(context.Background(), feed, 3, nil); err != nil {
			t.Fatalf("Expected feeds without an OBA endpoint to be skipped, got %v", err)
		}
	})

	t.Run("APIError", func(t *testing.T) {
		ts := setupObaServer(t, `{"error": "boom"}`, http.StatusInternalServerError)
		defer ts.Close()

		if err := CheckVehicleCountMatch(context.Background(), testFeed(ts.URL), 2, nil); err == nil {
			t.Fatal("Expected an error but got nil")
		}
	})
}
