package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisPreferenceRepository persists report filter preferences per
// device, replacing the storefront's reportType/reportDate/reportYear/
// reportMonth local entries.
type RedisPreferenceRepository struct {
	client *redis.Client
}

// NewRedisPreferenceRepository creates a redis-backed preference repository.
func NewRedisPreferenceRepository(client *redis.Client) ports.PreferenceRepository {
	return &RedisPreferenceRepository{client: client}
}

func prefsKey(deviceID string) string {
	return "report_prefs:" + deviceID
}

// Get retrieves the device's report preferences, defaulting to a daily
// report when none are stored.
func (r *RedisPreferenceRepository) Get(ctx context.Context, deviceID string) (*domain.ReportPrefs, error) {
	data, err := r.client.Get(ctx, prefsKey(deviceID)).Bytes()
	if err == redis.Nil {
		return &domain.ReportPrefs{Type: "daily"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report preferences: %w", err)
	}

	var prefs domain.ReportPrefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		return &domain.ReportPrefs{Type: "daily"}, nil
	}
	return &prefs, nil
}

// Save writes the device's report preferences. Preferences never expire.
func (r *RedisPreferenceRepository) Save(ctx context.Context, deviceID string, prefs *domain.ReportPrefs) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode report preferences: %w", err)
	}
	if err := r.client.Set(ctx, prefsKey(deviceID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save report preferences: %w", err)
	}
	return nil
}
