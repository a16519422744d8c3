package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Cache backend names accepted by CACHE_BACKEND.
const (
	CacheBackendMemory = "memory"
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
)

type AppConfig struct {
	// Upstream forecast feeds. Both are fixed-location national forecasts;
	// no coordinates parameterize them.
	MultiDayURL string
	CurrentURL  string

	// FetchTimeout bounds each outbound forecast request.
	FetchTimeout time.Duration

	// CacheTTL is how long a fetched payload stays fresh.
	CacheTTL time.Duration

	// Cache backend selection.
	CacheBackend string
	SQLitePath   string
	RedisAddr    string

	// RefreshInterval controls the cache prewarm job.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.MultiDayURL = getenvDefault("FORECAST_MULTIDAY_URL",
		"https://api.data.gov.sg/v1/environment/4-day-weather-forecast")
	cfg.CurrentURL = getenvDefault("FORECAST_CURRENT_URL",
		"https://api.data.gov.sg/v1/environment/2-hour-weather-forecast")

	timeout, err := getenvDuration("FETCH_TIMEOUT", "5s")
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.FetchTimeout = timeout

	ttl, err := getenvDuration("CACHE_TTL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	cfg.CacheBackend = getenvDefault("CACHE_BACKEND", CacheBackendSQLite)
	switch cfg.CacheBackend {
	case CacheBackendMemory, CacheBackendSQLite, CacheBackendRedis:
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND: %q", cfg.CacheBackend)
	}
	cfg.SQLitePath = getenvDefault("CACHE_SQLITE_PATH", "shorecast-cache.db")
	cfg.RedisAddr = getenvDefault("CACHE_REDIS_ADDR", "localhost:6379")

	refresh, err := getenvDuration("REFRESH_INTERVAL", "30m")
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
