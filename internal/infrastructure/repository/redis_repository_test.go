package repository

import (
	"context"
	"testing"

	"mate-storefront-layer/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCartRoundTripPreservesOrder(t *testing.T) {
	repo := NewRedisCartRepository(newTestRedis(t))
	ctx := context.Background()

	cart := &domain.Cart{Items: []domain.CartItem{
		{ProductID: 3, Color: "Black", Size: "L", Quantity: 1},
		{ProductID: 1, Color: "White", Size: "S", Quantity: 2},
		{ProductID: 2, Color: "Black", Size: "M", Quantity: 1},
	}}
	require.NoError(t, repo.Save(ctx, "dev-1", cart))

	loaded, err := repo.Get(ctx, "dev-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 3)
	assert.EqualValues(t, 3, loaded.Items[0].ProductID)
	assert.EqualValues(t, 1, loaded.Items[1].ProductID)
	assert.EqualValues(t, 2, loaded.Items[2].ProductID)
}

func TestCartMissingKeyReadsEmpty(t *testing.T) {
	repo := NewRedisCartRepository(newTestRedis(t))

	cart, err := repo.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartCorruptEntryReadsEmpty(t *testing.T) {
	client := newTestRedis(t)
	require.NoError(t, client.Set(context.Background(), "cart:dev-1", "not-json", 0).Err())

	repo := NewRedisCartRepository(client)
	cart, err := repo.Get(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartClear(t *testing.T) {
	repo := NewRedisCartRepository(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "dev-1", &domain.Cart{Items: []domain.CartItem{{ProductID: 1, Quantity: 1}}}))
	require.NoError(t, repo.Clear(ctx, "dev-1"))

	cart, err := repo.Get(ctx, "dev-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestPreferencesDefaultAndRoundTrip(t *testing.T) {
	repo := NewRedisPreferenceRepository(newTestRedis(t))
	ctx := context.Background()

	prefs, err := repo.Get(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "daily", prefs.Type)

	require.NoError(t, repo.Save(ctx, "dev-1", &domain.ReportPrefs{Type: "monthly", Year: "2025", Month: "3"}))

	prefs, err = repo.Get(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "monthly", prefs.Type)
	assert.Equal(t, "2025", prefs.Year)
	assert.Equal(t, "3", prefs.Month)
}
