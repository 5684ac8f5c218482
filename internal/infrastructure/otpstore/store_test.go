package otpstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"scholarship-portal/internal/domain/otp"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, time.Minute), mr
}

func TestStores_Contract(t *testing.T) {
	redisStore, _ := newRedisStore(t)

	stores := map[string]otp.Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "a@b.com")
			assert.True(t, errors.Is(err, otp.ErrOTPNotFound))

			first := &otp.Record{Email: "a@b.com", Code: "111111", ExpiresAt: time.Now().Add(5 * time.Minute)}
			require.NoError(t, store.Set(ctx, first))

			second := &otp.Record{Email: "a@b.com", Code: "222222", ExpiresAt: time.Now().Add(5 * time.Minute), Verified: true}
			require.NoError(t, store.Set(ctx, second))

			got, err := store.Get(ctx, "a@b.com")
			require.NoError(t, err)
			assert.Equal(t, "222222", got.Code)
			assert.True(t, got.Verified)
			assert.WithinDuration(t, second.ExpiresAt, got.ExpiresAt, time.Millisecond)

			require.NoError(t, store.Delete(ctx, "a@b.com"))
			_, err = store.Get(ctx, "a@b.com")
			assert.True(t, errors.Is(err, otp.ErrOTPNotFound))

			assert.NoError(t, store.Delete(ctx, "missing@b.com"))
		})
	}
}

func TestRedisStore_KeyOutlivesExpiryByRetention(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	record := &otp.Record{Email: "a@b.com", Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}
	require.NoError(t, store.Set(ctx, record))

	ttl := mr.TTL(redisKey("a@b.com"))
	assert.Greater(t, ttl, 5*time.Minute)
	assert.LessOrEqual(t, ttl, 6*time.Minute)

	mr.FastForward(7 * time.Minute)
	_, err := store.Get(ctx, "a@b.com")
	assert.True(t, errors.Is(err, otp.ErrOTPNotFound))
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Set(ctx, &otp.Record{Email: "old@b.com", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, store.Set(ctx, &otp.Record{Email: "new@b.com", ExpiresAt: now.Add(time.Minute)}))

	removed, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, "new@b.com")
	assert.NoError(t, err)
}
