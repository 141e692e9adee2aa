package domain

import "context"

type contextKey string

const deviceIDKey contextKey = "device_id"

// WithDeviceID returns a context carrying the device ID.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey, deviceID)
}

// DeviceIDFromContext extracts the device ID from the context, or "".
func DeviceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(deviceIDKey).(string); ok {
		return v
	}
	return ""
}
