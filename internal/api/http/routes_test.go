package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coastkeepers/shorecast/internal/cache"
	"github.com/coastkeepers/shorecast/internal/weather"
)

func newTestApp(t *testing.T, multiDayBody string, multiDayStatus int) *fiber.App {
	t.Helper()

	mdSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if multiDayStatus != http.StatusOK {
			w.WriteHeader(multiDayStatus)
			return
		}
		w.Write([]byte(multiDayBody))
	}))
	t.Cleanup(mdSrv.Close)

	curSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"update_timestamp":"2025-01-01T09:00:00+08:00","forecasts":[{"forecast":"Cloudy"}]}]}`))
	}))
	t.Cleanup(curSrv.Close)

	svc := weather.NewService(cache.NewMemory(), &http.Client{}, weather.Endpoints{
		MultiDay: mdSrv.URL,
		Current:  curSrv.URL,
	}, time.Second, time.Hour)

	app := fiber.New()
	RegisterRoutes(app, svc)
	return app
}

const testMultiDayBody = `{"items":[{"forecasts":[
	{"date": "2025-01-01", "forecast": "Light Rain"},
	{"date": "2025-01-02", "forecast": "Fair"},
	{"date": "2025-01-03", "forecast": "Cloudy"}
]}]}`

// TestForecastDaysValidation verifies that the forecast endpoint enforces the
// expected 1-4 range for the `days` query parameter.
func TestForecastDaysValidation(t *testing.T) {
	app := newTestApp(t, testMultiDayBody, http.StatusOK)

	for _, q := range []string{"days=0", "days=5", "days=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast?"+q, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", q, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestForecastReturnsDaysAndCurrent(t *testing.T) {
	app := newTestApp(t, testMultiDayBody, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast?days=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Available {
		t.Fatal("expected available=true")
	}
	if len(body.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(body.Days))
	}
	if body.Current == nil || body.Current.Condition != "Cloudy" {
		t.Fatalf("unexpected current conditions: %+v", body.Current)
	}
}

// An unreachable multi-day feed must yield an unavailable body, never a 5xx.
func TestForecastUpstreamFailureIsUnavailableNotError(t *testing.T) {
	app := newTestApp(t, "", http.StatusServiceUnavailable)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Available {
		t.Fatal("expected available=false")
	}
	if len(body.Days) != 0 {
		t.Fatalf("expected no days, got %d", len(body.Days))
	}
	if body.Current != nil {
		t.Fatal("current overlay must be absent when the multi-day feed failed")
	}
}

func TestStaticSiteEndpoints(t *testing.T) {
	app := newTestApp(t, testMultiDayBody, http.StatusOK)

	for _, path := range []string{"/api/v1/locations", "/api/v1/crew", "/api/v1/events"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, resp.StatusCode)
		}

		var items []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			t.Fatalf("%s: failed to decode response: %v", path, err)
		}
		if len(items) == 0 {
			t.Fatalf("%s: expected non-empty list", path)
		}
	}
}

func TestEventsDateValidation(t *testing.T) {
	app := newTestApp(t, testMultiDayBody, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?date=next-saturday", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// A well-formed date with no events returns an empty list, not an error.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/events?date=2030-01-01", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}
