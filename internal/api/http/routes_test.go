package httpapi

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/weather-exporter/internal/metrics"
	"github.com/i474232898/weather-exporter/internal/weather"
)

func newTestApp(t *testing.T) (*fiber.App, *metrics.Exporter) {
	t.Helper()
	exp, err := metrics.NewExporter(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	app := fiber.New()
	RegisterRoutes(app, exp.Registry(), "weather-exporter")
	return app, exp
}

// TestMetricsEndpointExposesCityGauges verifies that published readings are
// scrapeable in the text exposition format with a city label.
func TestMetricsEndpointExposesCityGauges(t *testing.T) {
	app, exp := newTestApp(t)
	exp.Publish(weather.Reading{
		City: "Paris", Source: weather.SourceAPI,
		Temperature: 9.5, Humidity: 70,
		FeelsLike: math.NaN(), Pressure: math.NaN(), WindSpeed: math.NaN(), WindDeg: math.NaN(),
		Cloudiness: math.NaN(), Visibility: math.NaN(),
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	text := string(body)

	for _, line := range []string{
		`weather_temp_celsius{city="Paris"} 9.5`,
		`weather_humidity_percent{city="Paris"} 70`,
		`weather_pressure_hpa{city="Paris"} NaN`,
		`weather_rain_1h_mm{city="Paris"} 0`,
		`weather_sunset_time{city="Paris"} 0`,
		`weather_readings_total{source="api"} 1`,
	} {
		if !strings.Contains(text, line) {
			t.Errorf("expected %q in exposition:\n%s", line, text)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "weather-exporter" {
		t.Fatalf("unexpected body: %v", body)
	}
}
