package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/infrastructure/metrics"

	"github.com/rs/zerolog"
)

// Client is the HTTP adapter for the store backend's REST API. It owns
// the request conventions the whole layer relies on: cookies carry the
// tokens, mutating requests echo the CSRF token in a header, and a 401 on
// an authenticated call triggers exactly one refresh-and-replay.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a backend client with a default HTTP client.
func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: 15 * time.Second}, logger)
}

// NewClientWithHTTP creates a backend client with a caller-supplied HTTP
// client, used by tests to point at a fake backend.
func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// do performs one round trip against the backend. The shared record is
// snapshotted at call time and any Set-Cookie tokens on the response are
// merged back into it. A response status >= 400 becomes an *APIError
// carrying the backend's message (or fallback).
func (c *Client) do(ctx context.Context, creds *domain.CredentialRecord, method, path string, query url.Values, body, out interface{}, fallback string) error {
	snapshot := creds.Snapshot()
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie := cookieHeader(snapshot); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	if mutating(method) && snapshot.CSRFToken != "" {
		req.Header.Set("X-CSRFToken", snapshot.CSRFToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	metrics.ObserveUpstreamRequest(method, resp.StatusCode, time.Since(start))

	captureCookies(resp, creds)

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, respBody, fallback)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// doAuthed wraps do with the single refresh-and-retry policy: a 401 on
// the first attempt triggers one token refresh, and on success the
// original request is replayed exactly once. A failed refresh propagates
// the original 401; the replay's outcome is final either way.
func (c *Client) doAuthed(ctx context.Context, creds *domain.CredentialRecord, method, path string, query url.Values, body, out interface{}, fallback string) error {
	err := c.do(ctx, creds, method, path, query, body, out, fallback)
	if err == nil || !IsUnauthorized(err) {
		return err
	}

	if refreshErr := c.RefreshToken(ctx, creds); refreshErr != nil {
		c.logger.Debug().Err(refreshErr).Str("path", path).Msg("Token refresh failed, propagating 401")
		return err
	}

	c.logger.Debug().Str("path", path).Msg("Replaying request after token refresh")
	return c.do(ctx, creds, method, path, query, body, out, fallback)
}

// userEnvelope matches the {"user": {...}} payloads the auth endpoints
// return. A missing or null user decodes to nil.
type userEnvelope struct {
	User *domain.User `json:"user"`
}

// Login posts credentials. On success the backend sets the token cookies
// and returns the user payload.
func (c *Client) Login(ctx context.Context, creds *domain.CredentialRecord, email, password string) (*domain.User, error) {
	var envelope userEnvelope
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, creds, http.MethodPost, "login/", nil, body, &envelope, "Login failed. Please try again."); err != nil {
		return nil, err
	}
	if envelope.User == nil {
		return nil, fmt.Errorf("login response did not include a user")
	}
	return envelope.User, nil
}

// Register posts a new account. Registration does not sign the user in;
// the returned user (when the backend includes one) is informational.
func (c *Client) Register(ctx context.Context, creds *domain.CredentialRecord, reg domain.Registration) (*domain.User, error) {
	var envelope userEnvelope
	if err := c.do(ctx, creds, http.MethodPost, "register/", nil, reg, &envelope, "Registration failed. Please try again."); err != nil {
		return nil, err
	}
	return envelope.User, nil
}

// Logout tells the backend to invalidate the session.
func (c *Client) Logout(ctx context.Context, creds *domain.CredentialRecord) error {
	return c.do(ctx, creds, http.MethodPost, "logout/", nil, map[string]string{}, nil, "Logout failed.")
}

// CheckAuth asks the backend who the cookies belong to. A success with no
// user payload means anonymous, not an error. The 401 refresh-and-retry
// policy is handled by the caller (SessionService), which needs to
// distinguish the retry from the first attempt.
func (c *Client) CheckAuth(ctx context.Context, creds *domain.CredentialRecord) (*domain.User, error) {
	var envelope userEnvelope
	if err := c.do(ctx, creds, http.MethodGet, "auth/check/", nil, nil, &envelope, "Session check failed."); err != nil {
		return nil, err
	}
	return envelope.User, nil
}

// RefreshToken exchanges the refresh token for a new access token and
// merges it into the shared record.
func (c *Client) RefreshToken(ctx context.Context, creds *domain.CredentialRecord) error {
	refresh := creds.Snapshot().RefreshToken
	if refresh == "" {
		metrics.ObserveTokenRefresh("failed")
		return fmt.Errorf("no refresh token found")
	}

	var result struct {
		Access string `json:"access"`
	}
	body := map[string]string{"refresh": refresh}
	if err := c.do(ctx, creds, http.MethodPost, "token/refresh/", nil, body, &result, "Token refresh failed."); err != nil {
		metrics.ObserveTokenRefresh("failed")
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	creds.Merge(domain.Credentials{AccessToken: result.Access})
	metrics.ObserveTokenRefresh("ok")
	return nil
}

// RequestPasswordReset starts the password recovery flow.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, nil, http.MethodPost, "password-reset/", nil, body, nil, "Failed to request password reset.")
}

// ConfirmPasswordReset completes the password recovery flow.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	body := map[string]string{"password": password}
	path := fmt.Sprintf("password-reset-confirm/%s/", url.PathEscape(token))
	return c.do(ctx, nil, http.MethodPost, path, nil, body, nil, "Failed to reset password.")
}

// TrackVisit posts the page-view beacon. Callers treat failures as
// non-fatal; the beacon carries no credentials.
func (c *Client) TrackVisit(ctx context.Context, pageURL string) error {
	body := map[string]string{"page_url": pageURL}
	return c.do(ctx, nil, http.MethodPost, "track-visit/", nil, body, nil, "Failed to track visit.")
}
