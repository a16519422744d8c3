package weather

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/coastkeepers/shorecast/internal/cache"
)

// Cache keys for the two forecast feeds.
const (
	CacheKeyMultiDay = "forecast:multiday"
	CacheKeyCurrent  = "forecast:current"
)

// Endpoints holds the two upstream forecast resources.
type Endpoints struct {
	MultiDay string
	Current  string
}

// Service orchestrates cache lookup, bounded fetch, normalization, and
// cache store for the two forecast feeds. The raw upstream payload is what
// gets cached; normalization runs on every read, so a cached payload and a
// fresh one go through the same code path.
type Service struct {
	cache     cache.Cache
	endpoints Endpoints
	timeout   time.Duration
	ttl       time.Duration

	multiDayFetcher *Fetcher
	currentFetcher  *Fetcher
}

// NewService creates a Service using the shared outbound HTTP client.
func NewService(c cache.Cache, client *http.Client, endpoints Endpoints, timeout, ttl time.Duration) *Service {
	return &Service{
		cache:           c,
		endpoints:       endpoints,
		timeout:         timeout,
		ttl:             ttl,
		multiDayFetcher: NewFetcher(client, "forecast-multiday"),
		currentFetcher:  NewFetcher(client, "forecast-current"),
	}
}

// MultiDayForecast returns up to MaxForecastDays normalized day summaries.
// On any fetch failure it returns the typed fetch error; callers render an
// unavailable state rather than treating this as fatal.
func (s *Service) MultiDayForecast(ctx context.Context) ([]DailySummary, error) {
	raw, err := s.payload(ctx, CacheKeyMultiDay, s.endpoints.MultiDay, s.multiDayFetcher)
	if err != nil {
		return nil, err
	}
	return NormalizeMultiDay(raw), nil
}

// CurrentConditions returns the near-term snapshot, or (nil, nil) when the
// feed responds with no usable items.
func (s *Service) CurrentConditions(ctx context.Context) (*CurrentConditions, error) {
	raw, err := s.payload(ctx, CacheKeyCurrent, s.endpoints.Current, s.currentFetcher)
	if err != nil {
		return nil, err
	}
	return NormalizeCurrent(raw), nil
}

// payload returns the raw feed body from cache, fetching and caching it on
// a miss. Failed fetches cache nothing, so the next caller retries.
func (s *Service) payload(ctx context.Context, key, url string, f *Fetcher) ([]byte, error) {
	if raw, ok := s.cache.Get(ctx, key); ok {
		return raw, nil
	}

	raw, err := f.FetchJSON(ctx, url, s.timeout)
	if err != nil {
		log.Printf("weather: fetch failed for %s: %v", key, err)
		return nil, err
	}

	s.cache.Set(ctx, key, raw, s.ttl)
	return raw, nil
}

// Refresh reads both feeds so any expired cache entry gets refetched.
// Used by the scheduler; failures are logged and dropped.
func (s *Service) Refresh(ctx context.Context) {
	if _, err := s.MultiDayForecast(ctx); err != nil {
		log.Printf("weather: refresh of multi-day forecast failed: %v", err)
	}
	if _, err := s.CurrentConditions(ctx); err != nil {
		log.Printf("weather: refresh of current conditions failed: %v", err)
	}
}
