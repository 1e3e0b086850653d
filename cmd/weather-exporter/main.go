package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/i474232898/weather-exporter/internal/api/http"
	"github.com/i474232898/weather-exporter/internal/config"
	"github.com/i474232898/weather-exporter/internal/logging"
	"github.com/i474232898/weather-exporter/internal/metrics"
	"github.com/i474232898/weather-exporter/internal/scheduler"
	"github.com/i474232898/weather-exporter/internal/weather"
	"github.com/i474232898/weather-exporter/internal/weather/providers"
)

const appName = "weather-exporter"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slogger := logging.New(cfg, appName)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	exporter, err := metrics.NewExporter(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	// Without a key the poller never touches the network.
	var provider weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		provider = providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.BreakerFailures)
	} else {
		slogger.Info("OWM_API_KEY not set; publishing synthetic weather")
	}

	poller := weather.NewPoller(
		weather.Query{City: cfg.City, Units: cfg.Units},
		provider,
		weather.NewSynthesizer(nil, nil),
		exporter,
		slogger,
	)

	sched := scheduler.New(cfg.UpdateInterval, cfg.HTTPTimeout, poller, slogger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, registry, appName)

	listenErr := make(chan error, 1)
	go func() {
		slogger.Info("weather exporter running",
			"url", "http://localhost:"+cfg.Port+"/metrics",
			"city", cfg.City,
			"units", cfg.Units,
		)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-listenErr:
		slogger.Error("fiber server stopped", "error", err)
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slogger.Error("error during shutdown", "error", err)
	}
}
