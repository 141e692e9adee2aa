package api

import (
	"net/http"
	"time"

	"mate-storefront-layer/internal/application"
	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const deviceCookieName = "device_id"

// Messages shown by the gate. They match what the storefront rendered.
const (
	msgLoading       = "Your session is still loading. Please retry."
	msgLoginRequired = "You must be logged in to access this page."
	msgForbidden     = "You do not have permission to access this page."
)

// DeviceMiddleware assigns each browser a stable device ID cookie and
// places it on the request context. Everything keyed per device — the
// session, the cart, report preferences — hangs off this ID.
func DeviceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := ""
		if c, err := r.Cookie(deviceCookieName); err == nil {
			deviceID = c.Value
		}
		if deviceID == "" {
			deviceID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     deviceCookieName,
				Value:    deviceID,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := domain.WithDeviceID(r.Context(), deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Gate returns middleware enforcing the shared render-precedence rule for
// protected routes. A session that has never resolved is resolved once
// here (the layer's equivalent of resolving on application mount); the
// decision itself always follows loading > login > role > allow.
func Gate(sessions *application.SessionService, requireAdmin bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			deviceID := domain.DeviceIDFromContext(ctx)

			session := sessions.Current(ctx, deviceID)
			if session.IsLoading() {
				session = sessions.CheckAuthStatus(ctx, deviceID)
			}

			decision := application.Decide(session, requireAdmin)
			metrics.ObserveGateDecision(decision.String())

			switch decision {
			case application.GateLoading:
				w.Header().Set("Retry-After", "1")
				respondJSON(w, http.StatusServiceUnavailable, errorBody{Detail: msgLoading})
			case application.GateLoginRequired:
				respondJSON(w, http.StatusUnauthorized, errorBody{Detail: msgLoginRequired})
			case application.GateForbidden:
				logger.Debug().Str("device", deviceID).Str("path", r.URL.Path).Msg("Gate denied non-admin access")
				respondJSON(w, http.StatusForbidden, errorBody{Detail: msgForbidden})
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
