// Package cache is a JSON cache on top of Redis. Every method is fail-open:
// when Redis is not configured or unreachable the cache behaves as a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	logger *log.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects to url (redis://...). An empty url, a bad url or a failed
// ping yields a Redis with no client, which bypasses every call.
func NewRedis(url string, ttl time.Duration, logger *log.Logger) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if url == "" {
		if logger != nil {
			logger.Printf("[Cache] REDIS_URL not set, cache disabled")
		}
		return &Redis{ttl: ttl, logger: logger}
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		if logger != nil {
			logger.Printf("[Cache] invalid REDIS_URL, cache disabled: %v", err)
		}
		return &Redis{ttl: ttl, logger: logger}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{ttl: ttl, logger: logger}
	}
	return &Redis{client: client, logger: logger, ttl: ttl}
}

// NewWithClient wraps an existing client; used by tests and by callers that
// manage the client themselves.
func NewWithClient(client *redis.Client, ttl time.Duration, logger *log.Logger) *Redis {
	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
	}
}

func (r *Redis) Enabled() bool { return !r.isUnavailable() }

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON decodes the cached value into out. A miss, a disabled cache and a
// Redis error all report false; only the error case returns a non-nil error.
// A value that does not decode is evicted and reported as a miss.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		if r.logger != nil {
			r.logger.Printf("[Cache] evicting undecodable key %s: %v", key, err)
		}
		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.warnUnavailableOnce(err)
		}
		return false, nil
	}
	return true, nil
}

// SetJSON stores value with ttl, or with the cache default when ttl <= 0.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if r.isUnavailable() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
