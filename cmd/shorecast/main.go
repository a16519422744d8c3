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

	httpapi "github.com/coastkeepers/shorecast/internal/api/http"
	"github.com/coastkeepers/shorecast/internal/cache"
	"github.com/coastkeepers/shorecast/internal/config"
	"github.com/coastkeepers/shorecast/internal/scheduler"
	"github.com/coastkeepers/shorecast/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound forecast calls.
	httpClient := &http.Client{
		Timeout: cfg.FetchTimeout,
	}

	// Cache backend per configuration.
	forecastCache, cleanup, err := openCache(cfg)
	if err != nil {
		log.Fatalf("failed to open cache backend: %v", err)
	}
	defer cleanup()

	// Core service orchestrating fetch, normalization, and caching.
	service := weather.NewService(forecastCache, httpClient, weather.Endpoints{
		MultiDay: cfg.MultiDayURL,
		Current:  cfg.CurrentURL,
	}, cfg.FetchTimeout, cfg.CacheTTL)

	// Scheduler that keeps the forecast cache warm.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "shorecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "shorecast",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// openCache builds the configured cache backend and a cleanup func.
func openCache(cfg *config.AppConfig) (cache.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheBackendSQLite:
		c, err := cache.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case config.CacheBackendRedis:
		return cache.NewRedis(cfg.RedisAddr), func() {}, nil
	default:
		return cache.NewMemory(), func() {}, nil
	}
}
