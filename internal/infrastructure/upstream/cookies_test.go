package upstream

import (
	"testing"

	"mate-storefront-layer/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestReadCookie(t *testing.T) {
	header := "csrftoken=abc123; access_token=tok%3D1; other=x"

	assert.Equal(t, "abc123", ReadCookie(header, "csrftoken"))
	// URL-encoded values decode.
	assert.Equal(t, "tok=1", ReadCookie(header, "access_token"))
	assert.Equal(t, "", ReadCookie(header, "refresh_token"))
	assert.Equal(t, "", ReadCookie("", "csrftoken"))
}

func TestCookieHeaderSkipsEmptyTokens(t *testing.T) {
	assert.Equal(t, "", cookieHeader(domain.Credentials{}))

	creds := domain.Credentials{AccessToken: "a", CSRFToken: "c"}
	assert.Equal(t, "access_token=a; csrftoken=c", cookieHeader(creds))
}
