// Package metrics exposes weather readings as Prometheus gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/weather-exporter/internal/weather"
)

const cityLabel = "city"

// Exporter owns the weather gauge set. It is created once at startup and
// every Publish overwrites the current values.
type Exporter struct {
	registry *prometheus.Registry

	Temperature *prometheus.GaugeVec
	FeelsLike   *prometheus.GaugeVec
	Pressure    *prometheus.GaugeVec
	Humidity    *prometheus.GaugeVec
	WindSpeed   *prometheus.GaugeVec
	WindDir     *prometheus.GaugeVec
	Cloudiness  *prometheus.GaugeVec
	Visibility  *prometheus.GaugeVec
	Rain1h      *prometheus.GaugeVec
	Snow1h      *prometheus.GaugeVec
	Sunrise     *prometheus.GaugeVec
	Sunset      *prometheus.GaugeVec

	// Operational counters alongside the weather gauges.
	FetchFailures *prometheus.CounterVec
	Readings      *prometheus.CounterVec
}

// NewExporter creates the gauges and registers them on registry.
func NewExporter(registry *prometheus.Registry) (*Exporter, error) {
	e := &Exporter{
		registry:    registry,
		Temperature: newGauge("weather_temp_celsius", "Current air temperature"),
		FeelsLike:   newGauge("weather_feelslike_celsius", "Feels-like temperature"),
		Pressure:    newGauge("weather_pressure_hpa", "Atmospheric pressure"),
		Humidity:    newGauge("weather_humidity_percent", "Relative humidity"),
		WindSpeed:   newGauge("weather_wind_speed_ms", "Wind speed (m/s)"),
		WindDir:     newGauge("weather_wind_dir_deg", "Wind direction (degrees)"),
		Cloudiness:  newGauge("weather_cloudiness_percent", "Cloud cover (%)"),
		Visibility:  newGauge("weather_visibility_m", "Visibility in meters"),
		Rain1h:      newGauge("weather_rain_1h_mm", "Rainfall in the last hour (mm)"),
		Snow1h:      newGauge("weather_snow_1h_mm", "Snowfall in the last hour (mm)"),
		Sunrise:     newGauge("weather_sunrise_time", "Sunrise timestamp (UNIX)"),
		Sunset:      newGauge("weather_sunset_time", "Sunset timestamp (UNIX)"),
		FetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_fetch_failures_total",
				Help: "Poll cycles that fell back to synthetic data, by reason",
			},
			[]string{"reason"},
		),
		Readings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_readings_total",
				Help: "Published readings by source (api, synthetic)",
			},
			[]string{"source"},
		),
	}

	for _, c := range e.collectors() {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Registry returns the registry the exporter's collectors live on.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Publish sets all gauges for the reading's city.
func (e *Exporter) Publish(r weather.Reading) {
	city := r.City

	e.Temperature.WithLabelValues(city).Set(r.Temperature)
	e.FeelsLike.WithLabelValues(city).Set(r.FeelsLike)
	e.Pressure.WithLabelValues(city).Set(r.Pressure)
	e.Humidity.WithLabelValues(city).Set(r.Humidity)
	e.WindSpeed.WithLabelValues(city).Set(r.WindSpeed)
	e.WindDir.WithLabelValues(city).Set(r.WindDeg)
	e.Cloudiness.WithLabelValues(city).Set(r.Cloudiness)
	e.Visibility.WithLabelValues(city).Set(r.Visibility)
	e.Rain1h.WithLabelValues(city).Set(r.Rain1h)
	e.Snow1h.WithLabelValues(city).Set(r.Snow1h)
	e.Sunrise.WithLabelValues(city).Set(float64(r.Sunrise))
	e.Sunset.WithLabelValues(city).Set(float64(r.Sunset))

	if r.Source != "" {
		e.Readings.WithLabelValues(string(r.Source)).Inc()
	}
}

// RecordFailure counts a cycle that did not get a usable API reading.
func (e *Exporter) RecordFailure(reason weather.FailureReason) {
	e.FetchFailures.WithLabelValues(string(reason)).Inc()
}

func (e *Exporter) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		e.Temperature, e.FeelsLike, e.Pressure, e.Humidity,
		e.WindSpeed, e.WindDir, e.Cloudiness, e.Visibility,
		e.Rain1h, e.Snow1h, e.Sunrise, e.Sunset,
		e.FetchFailures, e.Readings,
	}
}

func newGauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, []string{cityLabel})
}
