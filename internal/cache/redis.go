package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisEnvelope is the JSON record stored under each key. The expiry is
// recorded alongside the value even though Redis evicts on TTL itself, so
// the lazy-expiry contract holds regardless of server clock behaviour.
type redisEnvelope struct {
	Value  []byte    `json:"value"`
	Expiry time.Time `json:"expiry"`
}

// Redis is a Cache backed by a Redis server, for deployments where several
// instances should share one warm forecast cache.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedis connects to the Redis server at addr.
func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		now:    time.Now,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: redis read failed for %q: %v", key, err)
		}
		return nil, false
	}

	var env redisEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Corrupt entry: remove and report absent rather than failing.
		log.Printf("cache: corrupt redis entry %q, removing: %v", key, err)
		r.Clear(ctx, key)
		return nil, false
	}

	if !r.now().Before(env.Expiry) {
		r.Clear(ctx, key)
		return nil, false
	}
	return env.Value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	env := redisEnvelope{
		Value:  value,
		Expiry: r.now().Add(ttl),
	}
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("cache: failed to encode entry %q: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("cache: redis write failed for %q: %v", key, err)
	}
}

func (r *Redis) Clear(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Printf("cache: redis delete failed for %q: %v", key, err)
	}
}
