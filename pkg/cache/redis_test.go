package cache

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, logger *log.Logger) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client, time.Minute, logger), mr
}

func TestRoundTrip(t *testing.T) {
	r, mr := newTestRedis(t, nil)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "jobs:all", []string{"a", "b"}, 0))
	assert.Equal(t, time.Minute, mr.TTL("jobs:all"))

	var out []string
	hit, err := r.GetJSON(ctx, "jobs:all", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out)

	require.NoError(t, r.Delete(ctx, "jobs:all"))
	hit, err = r.GetJSON(ctx, "jobs:all", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestUndecodableValueIsEvicted(t *testing.T) {
	var buf bytes.Buffer
	r, mr := newTestRedis(t, log.New(&buf, "", 0))
	ctx := context.Background()
	require.NoError(t, mr.Set("jobs:all", "{not json"))

	var out []string
	hit, err := r.GetJSON(ctx, "jobs:all", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists("jobs:all"))
	assert.Contains(t, buf.String(), "[Cache] evicting undecodable key jobs:all")
}

func TestDisabledCacheIsAMiss(t *testing.T) {
	var buf bytes.Buffer
	r := NewRedis("", time.Minute, log.New(&buf, "", 0))
	ctx := context.Background()

	assert.False(t, r.Enabled())
	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, 0))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)

	require.NoError(t, r.Delete(ctx, "k"))
	assert.Error(t, r.Ping(ctx))
	assert.Contains(t, buf.String(), "[Cache]")
}

func TestNilCacheIsSafe(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.Close())
}

func TestInvalidURLDisablesCache(t *testing.T) {
	r := NewRedis("://not-a-url", 0, nil)
	assert.False(t, r.Enabled())
	assert.Equal(t, 5*time.Minute, r.ttl)
}
