package sessionrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/mustyfdn/app-portal/internal/svc/sessionrepo"
	"github.com/mustyfdn/app-portal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(token string) sessionrepo.Session {
	now := time.Now().UTC()
	return sessionrepo.Session{
		Token:         token,
		Username:      "admin",
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     now.Add(time.Hour),
	}
}

func TestRepoCacheInMemory(t *testing.T) {
	backend, err := cache.NewInMemory()
	require.NoError(t, err)

	repo, err := sessionrepo.NewCache(sessionrepo.RepoCacheConfig{Cache: backend})
	require.NoError(t, err)

	ctx := context.Background()

	_, err = repo.Save(ctx, sessionrepo.InputSave{
		Session: session("tok-1"),
		TTL:     time.Hour,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, sessionrepo.InputGet{Token: "tok-1"})
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.True(t, got.Session.Authenticated)
	assert.Equal(t, "admin", got.Session.Username)

	miss, err := repo.Get(ctx, sessionrepo.InputGet{Token: "unknown"})
	require.NoError(t, err)
	assert.False(t, miss.Found)

	del, err := repo.Delete(ctx, sessionrepo.InputDelete{Token: "tok-1"})
	require.NoError(t, err)
	assert.True(t, del.Success)

	gone, err := repo.Get(ctx, sessionrepo.InputGet{Token: "tok-1"})
	require.NoError(t, err)
	assert.False(t, gone.Found)
}

func TestRepoCacheRedisExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	backend, err := cache.NewRedis(cache.RedisConfig{
		DB: redis.NewClient(&redis.Options{Addr: s.Addr()}),
	})
	require.NoError(t, err)

	repo, err := sessionrepo.NewCache(sessionrepo.RepoCacheConfig{Cache: backend})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Save(ctx, sessionrepo.InputSave{
		Session: session("tok-2"),
		TTL:     time.Minute,
	})
	require.NoError(t, err)

	s.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, sessionrepo.InputGet{Token: "tok-2"})
	require.NoError(t, err)
	assert.False(t, got.Found)
}

func TestRepoCacheValidation(t *testing.T) {
	repo, err := sessionrepo.NewCache(sessionrepo.RepoCacheConfig{})
	assert.Nil(t, repo)
	assert.Error(t, err)
}
