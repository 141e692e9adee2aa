package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mate-storefront-layer/internal/application"
	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authStore stubs just the auth surface of the backend contract.
type authStore struct {
	ports.StoreClient

	user *domain.User
}

func (s *authStore) CheckAuth(_ context.Context, _ *domain.CredentialRecord) (*domain.User, error) {
	return s.user, nil
}

func (s *authStore) Login(_ context.Context, _ *domain.CredentialRecord, email, _ string) (*domain.User, error) {
	if s.user == nil {
		return nil, assert.AnError
	}
	return s.user, nil
}

func newGateRouter(t *testing.T, user *domain.User, requireAdmin bool) *chi.Mux {
	t.Helper()
	sessions := application.NewSessionService(&authStore{user: user}, nil, zerolog.Nop())

	r := chi.NewRouter()
	r.Use(DeviceMiddleware)
	r.Group(func(r chi.Router) {
		r.Use(Gate(sessions, requireAdmin, zerolog.Nop()))
		r.Get("/protected", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func doGet(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGateAnonymousGets401(t *testing.T) {
	r := newGateRouter(t, nil, false)

	rec := doGet(t, r, "/protected")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be logged in")
}

func TestGateShopperForbiddenOnAdminRoute(t *testing.T) {
	r := newGateRouter(t, &domain.User{ID: 1, Email: "sara@example.com"}, true)

	rec := doGet(t, r, "/protected")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "permission")
}

func TestGateStaffAllowedOnAdminRoute(t *testing.T) {
	r := newGateRouter(t, &domain.User{ID: 1, IsStaff: true}, true)

	rec := doGet(t, r, "/protected")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateAuthenticatedAllowedOnAccountRoute(t *testing.T) {
	r := newGateRouter(t, &domain.User{ID: 1}, false)

	rec := doGet(t, r, "/protected")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeviceMiddlewareAssignsCookie(t *testing.T) {
	var seen string
	r := chi.NewRouter()
	r.Use(DeviceMiddleware)
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		seen = domain.DeviceIDFromContext(req.Context())
	})

	rec := doGet(t, r, "/")

	require.NotEmpty(t, seen)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, deviceCookieName, cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)

	// A request that already carries the cookie keeps its ID and gets no
	// new Set-Cookie.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: deviceCookieName, Value: "dev-fixed"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "dev-fixed", seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginEndpointReturnsSession(t *testing.T) {
	sessions := application.NewSessionService(&authStore{user: &domain.User{ID: 1, Email: "sara@example.com"}}, nil, zerolog.Nop())
	h := &Handler{sessions: sessions, logger: zerolog.Nop()}

	r := chi.NewRouter()
	r.Use(DeviceMiddleware)
	r.Post("/session/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/session/login", strings.NewReader(`{"email":"sara@example.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"authenticated"`)
	assert.Contains(t, rec.Body.String(), "sara@example.com")
}

func TestLoginEndpointRejectsMissingFields(t *testing.T) {
	h := &Handler{logger: zerolog.Nop()}

	r := chi.NewRouter()
	r.Use(DeviceMiddleware)
	r.Post("/session/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/session/login", strings.NewReader(`{"email":"sara@example.com"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
