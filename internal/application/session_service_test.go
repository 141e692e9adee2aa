package application

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/infrastructure/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unauthorized() error {
	return &upstream.APIError{StatusCode: http.StatusUnauthorized, Message: "Authentication credentials were not provided."}
}

func TestCheckAuthStatusAuthenticated(t *testing.T) {
	store := &fakeStore{
		checkAuthFn: func(_ context.Context, _ *domain.CredentialRecord) (*domain.User, error) {
			return &domain.User{ID: 1, Email: "sara@example.com"}, nil
		},
	}
	svc := NewSessionService(store, newMemSessionRepo(), testLogger())

	session := svc.CheckAuthStatus(context.Background(), "dev-1")

	assert.True(t, session.IsAuthenticated())
	require.NotNil(t, session.User)
	assert.Equal(t, "sara@example.com", session.User.Email)
}

func TestCheckAuthStatusNoUserMeansAnonymous(t *testing.T) {
	store := &fakeStore{
		checkAuthFn: func(_ context.Context, _ *domain.CredentialRecord) (*domain.User, error) {
			return nil, nil
		},
	}
	svc := NewSessionService(store, newMemSessionRepo(), testLogger())

	session := svc.CheckAuthStatus(context.Background(), "dev-1")

	assert.Equal(t, domain.StateAnonymous, session.State)
	assert.Nil(t, session.User)
}

func TestCheckAuthStatusRetriesOnceAfterRefresh(t *testing.T) {
	checks := 0
	refreshes := 0
	store := &fakeStore{
		checkAuthFn: func(_ context.Context, _ *domain.CredentialRecord) (*domain.User, error) {
			checks++
			if checks == 1 {
				return nil, unauthorized()
			}
			return &domain.User{ID: 7, Email: "sara@example.com"}, nil
		},
		refreshFn: func(_ context.Context, creds *domain.CredentialRecord) error {
			refreshes++
			creds.Merge(domain.Credentials{AccessToken: "fresh"})
			return nil
		},
	}
	svc := NewSessionService(store, newMemSessionRepo(), testLogger())

	session := svc.CheckAuthStatus(context.Background(), "dev-1")

	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, 2, checks)
	assert.Equal(t, 1, refreshes)
}

func TestCheckAuthStatusRefreshFailureResolvesAnonymous(t *testing.T) {
	checks := 0
	store := &fakeStore{
		checkAuthFn: func(_ context.Context, _ *domain.CredentialRecord) (*domain.User, error) {
			checks++
			return nil, unauthorized()
		},
		refreshFn: func(_ context.Context, _ *domain.CredentialRecord) error {
			return fmt.Errorf("no refresh token found")
		},
	}
	svc := NewSessionService(store, newMemSessionRepo(), testLogger())

	session := svc.CheckAuthStatus(context.Background(), "dev-1")

	assert.Equal(t, domain.StateAnonymous, session.State)
	// No second check when the refresh itself failed.
	assert.Equal(t, 1, checks)
}

func TestLoginTransitionsToAuthenticated(t *testing.T) {
	store := &fakeStore{
		loginFn: func(_ context.Context, creds *domain.CredentialRecord, email, _ string) (*domain.User, error) {
			creds.Merge(domain.Credentials{AccessToken: "access", RefreshToken: "refresh"})
			return &domain.User{ID: 3, Email: email}, nil
		},
	}
	repo := newMemSessionRepo()
	svc := NewSessionService(store, repo, testLogger())

	session, err := svc.Login(context.Background(), "dev-1", "sara@example.com", "pw")

	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "sara@example.com", session.User.Email)

	// Credentials survive for later requests and are persisted.
	creds := svc.Credentials(context.Background(), "dev-1")
	assert.Equal(t, "access", creds.Snapshot().AccessToken)
	persisted, _ := repo.Get(context.Background(), "dev-1")
	require.NotNil(t, persisted)
	assert.Equal(t, "refresh", persisted.Credentials.RefreshToken)
}

func TestLoginFailureRestoresPriorState(t *testing.T) {
	store := &fakeStore{
		checkAuthFn: func(_ context.Context, _ *domain.CredentialRecord) (*domain.User, error) {
			return nil, nil
		},
		loginFn: func(_ context.Context, _ *domain.CredentialRecord, _, _ string) (*domain.User, error) {
			return nil, &upstream.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid credentials"}
		},
	}
	svc := NewSessionService(store, newMemSessionRepo(), testLogger())

	// Resolve to anonymous first so there is a prior state to restore.
	svc.CheckAuthStatus(context.Background(), "dev-1")

	_, err := svc.Login(context.Background(), "dev-1", "sara@example.com", "wrong")

	require.Error(t, err)
	var apiErr *upstream.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	current := svc.Current(context.Background(), "dev-1")
	assert.Equal(t, domain.StateAnonymous, current.State)
}

func TestLogoutClearsSessionEvenWhenServerFails(t *testing.T) {
	store := &fakeStore{
		loginFn: func(_ context.Context, creds *domain.CredentialRecord, email, _ string) (*domain.User, error) {
			creds.Merge(domain.Credentials{RefreshToken: "refresh"})
			return &domain.User{ID: 3, Email: email}, nil
		},
		logoutFn: func(_ context.Context, _ *domain.CredentialRecord) error {
			return fmt.Errorf("backend unreachable")
		},
	}
	repo := newMemSessionRepo()
	svc := NewSessionService(store, repo, testLogger())

	_, err := svc.Login(context.Background(), "dev-1", "sara@example.com", "pw")
	require.NoError(t, err)

	err = svc.Logout(context.Background(), "dev-1")
	assert.Error(t, err)

	current := svc.Current(context.Background(), "dev-1")
	assert.Equal(t, domain.StateAnonymous, current.State)
	assert.True(t, svc.Credentials(context.Background(), "dev-1").Empty())
	persisted, _ := repo.Get(context.Background(), "dev-1")
	assert.Nil(t, persisted)
}

func TestRegisterDoesNotTransitionSession(t *testing.T) {
	store := &fakeStore{
		checkAuthFn: func(_ context.Context, _ *domain.CredentialRecord) (*domain.User, error) {
			return nil, nil
		},
		registerFn: func(_ context.Context, _ *domain.CredentialRecord, reg domain.Registration) (*domain.User, error) {
			return &domain.User{Email: reg.Email}, nil
		},
	}
	svc := NewSessionService(store, newMemSessionRepo(), testLogger())

	svc.CheckAuthStatus(context.Background(), "dev-1")
	user, err := svc.Register(context.Background(), "dev-1", domain.Registration{Email: "new@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.StateAnonymous, svc.Current(context.Background(), "dev-1").State)
}

func TestPersistedCredentialsLoadOnFirstTouch(t *testing.T) {
	repo := newMemSessionRepo()
	require.NoError(t, repo.Save(context.Background(), &domain.DeviceSession{
		DeviceID:    "dev-1",
		Credentials: domain.Credentials{RefreshToken: "stored"},
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	store := &fakeStore{}
	svc := NewSessionService(store, repo, testLogger())

	creds := svc.Credentials(context.Background(), "dev-1")
	assert.Equal(t, "stored", creds.Snapshot().RefreshToken)
}

func TestFormatLastActivity(t *testing.T) {
	svc := NewSessionService(&fakeStore{}, nil, testLogger())

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "Not available"},
		{"null literal", "null", "Not available"},
		{"garbage", "yesterday-ish", "Invalid date"},
		{"already formatted", "3/15/2025, 2:30:00 PM", "3/15/2025, 2:30:00 PM"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.formatLastActivity(tc.in))
		})
	}

	// A UTC timestamp renders in the store's timezone (UTC+2 in winter).
	got := svc.formatLastActivity("2025-01-15T10:00:00Z")
	assert.Equal(t, "1/15/2025, 12:00:00 PM", got)
}
