package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/mustyfdn/app-portal/pkg/cache"
	"github.com/stretchr/testify/assert"
)

func prepareMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	return s, client
}

func TestNewRedis(t *testing.T) {
	t.Run("bad dep", func(t *testing.T) {
		c, err := cache.NewRedis(cache.RedisConfig{})
		assert.Nil(t, c)
		assert.Error(t, err)
	})

	t.Run("ok", func(t *testing.T) {
		_, redisConn := prepareMiniRedis(t)
		c, err := cache.NewRedis(cache.RedisConfig{DB: redisConn})
		assert.NotNil(t, c)
		assert.NoError(t, err)
	})
}

func TestRedisSetGetDelete(t *testing.T) {
	_, redisConn := prepareMiniRedis(t)
	c, err := cache.NewRedis(cache.RedisConfig{DB: redisConn})
	assert.NoError(t, err)

	ctx := context.Background()
	err = c.SetExp(ctx, "key", payload{Value: "abc"}, time.Hour)
	assert.NoError(t, err)

	var out payload
	assert.NoError(t, c.GetAs(ctx, "key", &out))
	assert.Equal(t, "abc", out.Value)

	assert.NoError(t, c.Delete(ctx, "key"))
	assert.ErrorIs(t, c.GetAs(ctx, "key", &out), cache.ErrKeyNotExist)
}

func TestRedisExpiry(t *testing.T) {
	s, redisConn := prepareMiniRedis(t)
	c, err := cache.NewRedis(cache.RedisConfig{DB: redisConn})
	assert.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, c.SetExp(ctx, "key", payload{Value: "abc"}, time.Minute))

	s.FastForward(2 * time.Minute)

	var out payload
	assert.ErrorIs(t, c.GetAs(ctx, "key", &out), cache.ErrKeyNotExist)
}
