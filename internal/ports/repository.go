package ports

import (
	"context"

	"mate-storefront-layer/internal/domain"
)

// CartRepository persists each device's cart as an ordered line-item
// sequence. A missing cart reads back as an empty one.
type CartRepository interface {
	Get(ctx context.Context, deviceID string) (*domain.Cart, error)
	Save(ctx context.Context, deviceID string, cart *domain.Cart) error
	Clear(ctx context.Context, deviceID string) error
}

// SessionRepository persists credential snapshots per device.
type SessionRepository interface {
	Get(ctx context.Context, deviceID string) (*domain.DeviceSession, error)
	Save(ctx context.Context, session *domain.DeviceSession) error
	Delete(ctx context.Context, deviceID string) error
}

// PreferenceRepository persists report filter preferences per device.
type PreferenceRepository interface {
	Get(ctx context.Context, deviceID string) (*domain.ReportPrefs, error)
	Save(ctx context.Context, deviceID string, prefs *domain.ReportPrefs) error
}
