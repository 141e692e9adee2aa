package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Carts are kept for 30 days of inactivity before redis drops them.
const cartTTL = 30 * 24 * time.Hour

// RedisCartRepository persists carts as JSON arrays keyed by device, the
// storage-side equivalent of the storefront's local cart entry. Line
// order is preserved exactly as written.
type RedisCartRepository struct {
	client *redis.Client
}

// NewRedisCartRepository creates a redis-backed cart repository.
func NewRedisCartRepository(client *redis.Client) ports.CartRepository {
	return &RedisCartRepository{client: client}
}

func cartKey(deviceID string) string {
	return "cart:" + deviceID
}

// Get retrieves the device's cart. A missing key is an empty cart.
func (r *RedisCartRepository) Get(ctx context.Context, deviceID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(deviceID)).Bytes()
	if err == redis.Nil {
		return &domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt entry reads back as an empty cart rather than
		// wedging the device.
		return &domain.Cart{}, nil
	}
	return &domain.Cart{Items: items}, nil
}

// Save writes the cart, resetting its TTL.
func (r *RedisCartRepository) Save(ctx context.Context, deviceID string, cart *domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(deviceID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear removes the device's cart.
func (r *RedisCartRepository) Clear(ctx context.Context, deviceID string) error {
	if err := r.client.Del(ctx, cartKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
