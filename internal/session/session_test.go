package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/models"
)

func TestSession_ThemeDefaultsToLight(t *testing.T) {
	var nilSession *Session
	assert.Equal(t, models.ThemeLight, nilSession.Theme())
	assert.Equal(t, models.ThemeLight, New().Theme())

	s := New()
	s.SetTheme(models.ThemeDark)
	assert.Equal(t, models.ThemeDark, s.Theme())
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id := uuid.New()

	_, err := store.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, id, Data{Theme: models.ThemeDark}, time.Hour))
	data, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, data.Theme)

	// Saving the same value again overwrites rather than accumulates.
	require.NoError(t, store.Save(ctx, id, Data{Theme: models.ThemeDark}, time.Hour))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	stale, fresh := uuid.New(), uuid.New()
	require.NoError(t, store.Save(ctx, stale, Data{Theme: models.ThemeDark}, time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := store.Load(ctx, stale)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, fresh, Data{Theme: models.ThemeLight}, time.Minute))
	assert.Equal(t, 1, store.Len())
}

func TestRedisStore_SaveLoad(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	store := NewRedisStore(client)
	ctx := context.Background()
	id := uuid.New()
	defer client.Del(ctx, redisKeyPrefix+id.String())

	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, id, Data{Theme: models.ThemeDark}, time.Minute))
	data, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, data.Theme)

	ttl, err := client.TTL(ctx, redisKeyPrefix+id.String()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
