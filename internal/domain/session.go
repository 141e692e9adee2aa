package domain

import (
	"encoding/json"
	"sync"
	"time"
)

// SessionState describes where a device session is in its lifecycle.
type SessionState int

const (
	// StateUnknown means the session has not been resolved yet, or a
	// resolution is currently in flight. Consumers must treat this as
	// "loading" and must not render gated content.
	StateUnknown SessionState = iota
	// StateAuthenticated means the last resolution returned a user.
	StateAuthenticated
	// StateAnonymous means the last resolution returned no user.
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the state name rather than its ordinal.
func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Session is the client-held record of the current authentication state
// for one device. It is derived from backend responses and is not itself
// a trust boundary: the backend re-checks the cookies on every call.
type Session struct {
	State      SessionState `json:"state"`
	User       *User        `json:"user,omitempty"`
	ResolvedAt time.Time    `json:"resolved_at,omitempty"`
}

// IsAuthenticated reports whether the last resolution returned a user.
// Invariant: true implies User != nil.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.State == StateAuthenticated
}

// IsLoading reports whether a resolution is still pending. Loading takes
// precedence over every other session field when gating.
func (s *Session) IsLoading() bool {
	return s == nil || s.State == StateUnknown
}

// IsAdmin reports whether the session belongs to a staff or superuser
// account. False while loading or anonymous.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.User != nil && (s.User.IsStaff || s.User.IsSuperuser)
}

// Credentials is a snapshot of the opaque token cookies issued by the
// backend. The layer never inspects their contents, only re-sends them.
type Credentials struct {
	AccessToken  string `json:"access_token" bson:"access_token"`
	RefreshToken string `json:"refresh_token" bson:"refresh_token"`
	CSRFToken    string `json:"csrf_token" bson:"csrf_token"`
}

// Empty reports whether no tokens are held at all.
func (c Credentials) Empty() bool {
	return c == (Credentials{})
}

// CredentialRecord is the live token record for one device. Every
// request for a device goes through the same record, and the backend
// can rotate tokens mid-flight (Set-Cookie capture, refresh), so reads
// and writes are guarded: callers take a Snapshot before a round trip
// and merge updates back through the accessors.
type CredentialRecord struct {
	mu    sync.RWMutex
	creds Credentials
}

// NewCredentialRecord creates a record seeded with the given tokens.
func NewCredentialRecord(creds Credentials) *CredentialRecord {
	return &CredentialRecord{creds: creds}
}

// Snapshot returns a copy of the current tokens. A nil record reads as
// holding none.
func (r *CredentialRecord) Snapshot() Credentials {
	if r == nil {
		return Credentials{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.creds
}

// Replace overwrites all tokens at once.
func (r *CredentialRecord) Replace(creds Credentials) {
	r.mu.Lock()
	r.creds = creds
	r.mu.Unlock()
}

// Merge overwrites each token the update carries and leaves empty
// fields untouched. This matches the Set-Cookie path: the backend only
// re-sends the cookies it rotates.
func (r *CredentialRecord) Merge(update Credentials) {
	if r == nil || update.Empty() {
		return
	}
	r.mu.Lock()
	if update.AccessToken != "" {
		r.creds.AccessToken = update.AccessToken
	}
	if update.RefreshToken != "" {
		r.creds.RefreshToken = update.RefreshToken
	}
	if update.CSRFToken != "" {
		r.creds.CSRFToken = update.CSRFToken
	}
	r.mu.Unlock()
}

// Empty reports whether the record holds no tokens at all.
func (r *CredentialRecord) Empty() bool {
	return r.Snapshot().Empty()
}

// DeviceSession is the persisted credential snapshot for one device.
type DeviceSession struct {
	DeviceID    string      `json:"device_id" bson:"_id"`
	Credentials Credentials `json:"credentials" bson:"credentials"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
	ExpiresAt   time.Time   `json:"expires_at" bson:"expires_at"`
}
