package upstream

import (
	"net/http"
	"net/url"
	"strings"

	"mate-storefront-layer/internal/domain"
)

// Cookie names issued by the store backend.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
	CookieCSRFToken    = "csrftoken"
)

// ReadCookie extracts a named cookie value from a raw Cookie header.
// Returns "" when the cookie is absent. This is the single cookie
// accessor for the whole layer; call sites must not re-derive it.
func ReadCookie(header, name string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, name+"=") {
			value := part[len(name)+1:]
			if decoded, err := url.QueryUnescape(value); err == nil {
				return decoded
			}
			return value
		}
	}
	return ""
}

// cookieHeader builds the outgoing Cookie header from a credentials
// snapshot, skipping empty tokens.
func cookieHeader(creds domain.Credentials) string {
	parts := make([]string, 0, 3)
	if creds.AccessToken != "" {
		parts = append(parts, CookieAccessToken+"="+creds.AccessToken)
	}
	if creds.RefreshToken != "" {
		parts = append(parts, CookieRefreshToken+"="+creds.RefreshToken)
	}
	if creds.CSRFToken != "" {
		parts = append(parts, CookieCSRFToken+"="+creds.CSRFToken)
	}
	return strings.Join(parts, "; ")
}

// captureCookies lifts any token cookies the backend set on the response
// into the shared record, so the next request re-sends them. The merge
// goes through the record's guarded accessor: concurrent requests for
// the same device share one record.
func captureCookies(resp *http.Response, creds *domain.CredentialRecord) {
	var update domain.Credentials
	for _, c := range resp.Cookies() {
		switch c.Name {
		case CookieAccessToken:
			update.AccessToken = c.Value
		case CookieRefreshToken:
			update.RefreshToken = c.Value
		case CookieCSRFToken:
			update.CSRFToken = c.Value
		}
	}
	creds.Merge(update)
}
