package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, ttl), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", sample{Name: "Pizza", Price: 200}))

	var got sample
	hit, err := c.GetJSON(ctx, "k", &got)
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sample{Name: "Pizza", Price: 200}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var got sample
	hit, err := c.GetJSON(context.Background(), "missing", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", sample{Name: "Pizza"}))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)

	var got sample
	hit, err := c.GetJSON(ctx, "k", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "a", 1))
	require.NoError(t, c.SetJSON(ctx, "b", 2))

	assert.NoError(t, c.Delete(ctx, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	assert.NoError(t, c.Delete(ctx))
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("k", "{not json"))

	var got sample
	hit, err := c.GetJSON(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), addr)
	assert.Error(t, err)
}
