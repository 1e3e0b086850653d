package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-exporter/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	// OpenWeatherAPIKey is optional; without it every cycle is synthetic.
	OpenWeatherAPIKey string

	City  string        `validate:"required"`
	Units weather.Units `validate:"oneof=metric imperial"`

	// UpdateInterval controls how often the poller runs.
	UpdateInterval time.Duration `validate:"gt=0"`
	HTTPTimeout    time.Duration `validate:"gt=0"`

	// BreakerFailures is the number of consecutive fetch failures
	// before outbound calls are skipped for a while. 0 disables the breaker.
	BreakerFailures int `validate:"gte=0"`

	Port     string `validate:"required"`
	AppEnv   string `validate:"oneof=dev prod"`
	LogLevel slog.Level
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = strings.TrimSpace(os.Getenv("OWM_API_KEY"))
	cfg.City = getenvDefault("CITY_NAME", "Astana")
	cfg.Units = weather.Units(strings.ToLower(getenvDefault("UNIT_SYSTEM", string(weather.UnitsMetric))))

	seconds, err := strconv.Atoi(getenvDefault("UPDATE_INTERVAL", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPDATE_INTERVAL: %w", err)
	}
	cfg.UpdateInterval = time.Duration(seconds) * time.Second

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	failures, err := strconv.Atoi(getenvDefault("BREAKER_FAILURES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_FAILURES: %w", err)
	}
	cfg.BreakerFailures = failures
	cfg.Port = getenvDefault("PORT", "8000")
	cfg.AppEnv = getenvDefault("APP_ENV", "dev")

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
