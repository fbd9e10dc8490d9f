package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastianmoiras/movie-FE/internal/models"
	"github.com/sebastianmoiras/movie-FE/internal/navigator"
)

func sampleSession() navigator.Session {
	s, _ := navigator.Reduce(navigator.NewSession(), navigator.LoginSucceeded{Token: "t1", Name: "Ann", UserID: 7})
	s, _ = navigator.Reduce(s, navigator.CatalogLoaded{Movies: []models.Movie{{MovieID: 1, Title: "Heat"}}})
	s, _ = navigator.Reduce(s, navigator.SelectMovie{MovieID: 1})
	return s
}

// setupMiniRedis creates a repository backed by a test Redis server.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisSessionRepository) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisSessionRepository(client, "")
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	_, ok, err := repo.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleSession()
	require.NoError(t, repo.Save(ctx, "sid", want, time.Minute))

	got, ok, err := repo.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Delete(ctx, "sid"))
	_, ok, _ = repo.Get(ctx, "sid")
	assert.False(t, ok)
}

func TestMemorySessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, "a", navigator.NewSession(), time.Minute))
	require.NoError(t, repo.Save(ctx, "b", navigator.NewSession(), time.Hour))

	now = now.Add(2 * time.Minute)
	_, ok, _ := repo.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = repo.Get(ctx, "b")
	assert.True(t, ok)

	n, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisSessionRepository(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupMiniRedis(t)

	_, ok, err := repo.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleSession()
	require.NoError(t, repo.Save(ctx, "sid", want, 30*time.Minute))
	assert.True(t, mr.Exists(DefaultRedisKeyPrefix+"sid"))
	assert.Equal(t, 30*time.Minute, mr.TTL(DefaultRedisKeyPrefix+"sid"))

	got, ok, err := repo.Get(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Delete(ctx, "sid"))
	assert.False(t, mr.Exists(DefaultRedisKeyPrefix+"sid"))
}

func TestRedisSessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupMiniRedis(t)

	require.NoError(t, repo.Save(ctx, "sid", navigator.NewSession(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := repo.Get(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSessionRepositoryCorruptValue(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupMiniRedis(t)

	require.NoError(t, mr.Set(DefaultRedisKeyPrefix+"sid", "not json"))
	_, _, err := repo.Get(ctx, "sid")
	assert.Error(t, err)
}
