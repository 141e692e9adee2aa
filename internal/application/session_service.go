package application

import (
	"context"
	"sync"
	"time"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/infrastructure/upstream"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Timestamps from the backend are reformatted into the store's display
// timezone before they are stored on the user.
const displayTimeLayout = "1/2/2006, 3:04:05 PM"

// SessionService is the single source of truth for "who is logged in" on
// each device. Transitions are driven by four operations: CheckAuthStatus,
// Login, Logout and Register. While any of them is in flight the session
// reads as loading, and gates must not show role-gated content.
type SessionService struct {
	store  ports.StoreClient
	repo   ports.SessionRepository
	logger zerolog.Logger
	loc    *time.Location

	mu      sync.Mutex
	devices map[string]*deviceState
}

// deviceState holds one device's session. opMu serializes transitions;
// mu guards session reads against writes from a transition in flight.
// The credential record carries its own lock and is never reassigned,
// so concurrent requests may read and merge tokens through it freely.
type deviceState struct {
	opMu sync.Mutex

	mu      sync.RWMutex
	session domain.Session

	creds *domain.CredentialRecord
}

// NewSessionService creates a session service. Persisted credentials are
// lazily loaded from the repository on each device's first touch.
func NewSessionService(store ports.StoreClient, repo ports.SessionRepository, logger zerolog.Logger) *SessionService {
	loc, err := time.LoadLocation("Africa/Cairo")
	if err != nil {
		loc = time.FixedZone("EET", 2*60*60)
	}
	return &SessionService{
		store:   store,
		repo:    repo,
		logger:  logger,
		loc:     loc,
		devices: make(map[string]*deviceState),
	}
}

func (s *SessionService) device(ctx context.Context, deviceID string) *deviceState {
	s.mu.Lock()
	st, ok := s.devices[deviceID]
	if !ok {
		st = &deviceState{
			session: domain.Session{State: domain.StateUnknown},
			creds:   &domain.CredentialRecord{},
		}
		s.devices[deviceID] = st
	}
	s.mu.Unlock()

	if !ok && s.repo != nil {
		if persisted, err := s.repo.Get(ctx, deviceID); err != nil {
			s.logger.Warn().Err(err).Str("device", deviceID).Msg("Failed to load persisted session")
		} else if persisted != nil {
			st.creds.Replace(persisted.Credentials)
		}
	}
	return st
}

// Current returns a snapshot of the device's session. A device that has
// never resolved reads as loading.
func (s *SessionService) Current(ctx context.Context, deviceID string) domain.Session {
	st := s.device(ctx, deviceID)
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.session
}

// Credentials returns the device's credential record. The record guards
// its own state: the upstream client snapshots it before each request
// and merges rotated tokens back, so handing it out is safe even while
// other requests for the same device are in flight.
func (s *SessionService) Credentials(ctx context.Context, deviceID string) *domain.CredentialRecord {
	return s.device(ctx, deviceID).creds
}

func (st *deviceState) setLoading() domain.Session {
	st.mu.Lock()
	prev := st.session
	st.session = domain.Session{State: domain.StateUnknown}
	st.mu.Unlock()
	return prev
}

func (st *deviceState) set(session domain.Session) {
	st.mu.Lock()
	st.session = session
	st.mu.Unlock()
}

// CheckAuthStatus resolves the session against the backend. A success
// with a user payload means authenticated; a success with no user, or any
// non-401 failure, means anonymous. A 401 triggers exactly one token
// refresh followed by one retry of the check; if either fails the session
// resolves to anonymous. There is no backoff and no second retry.
func (s *SessionService) CheckAuthStatus(ctx context.Context, deviceID string) domain.Session {
	st := s.device(ctx, deviceID)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	st.setLoading()

	user, err := s.store.CheckAuth(ctx, st.creds)
	if err != nil && upstream.IsUnauthorized(err) {
		if refreshErr := s.store.RefreshToken(ctx, st.creds); refreshErr == nil {
			user, err = s.store.CheckAuth(ctx, st.creds)
		} else {
			s.logger.Debug().Err(refreshErr).Str("device", deviceID).Msg("Refresh failed during session check")
		}
	}

	var session domain.Session
	if err == nil && user != nil {
		user.LastActivity = s.formatLastActivity(user.LastActivity)
		session = domain.Session{State: domain.StateAuthenticated, User: user, ResolvedAt: time.Now()}
		s.persist(ctx, deviceID, st)
	} else {
		if err != nil {
			s.logger.Debug().Err(err).Str("device", deviceID).Msg("Session check resolved to anonymous")
		}
		session = domain.Session{State: domain.StateAnonymous, ResolvedAt: time.Now()}
	}

	st.set(session)
	return session
}

// Login posts credentials and, on success, transitions directly to
// authenticated using the response's user payload. On failure the session
// returns to its prior state and the backend's error is surfaced to the
// caller unchanged.
func (s *SessionService) Login(ctx context.Context, deviceID, email, password string) (domain.Session, error) {
	st := s.device(ctx, deviceID)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	prev := st.setLoading()

	user, err := s.store.Login(ctx, st.creds, email, password)
	if err != nil {
		st.set(prev)
		return prev, err
	}

	user.LastActivity = s.formatLastActivity(user.LastActivity)
	session := domain.Session{State: domain.StateAuthenticated, User: user, ResolvedAt: time.Now()}
	st.set(session)
	s.persist(ctx, deviceID, st)

	s.logger.Info().Str("device", deviceID).Str("email", user.Email).Msg("User logged in")
	return session, nil
}

// Logout notifies the backend, then unconditionally transitions to
// anonymous and clears the stored credentials — even when the server call
// fails. The error is still returned so the caller can surface it, but by
// then the local session is already gone.
func (s *SessionService) Logout(ctx context.Context, deviceID string) error {
	st := s.device(ctx, deviceID)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	st.setLoading()

	err := s.store.Logout(ctx, st.creds)
	if err != nil {
		s.logger.Warn().Err(err).Str("device", deviceID).Msg("Logout request failed; clearing local session anyway")
	}

	st.creds.Replace(domain.Credentials{})
	st.set(domain.Session{State: domain.StateAnonymous, ResolvedAt: time.Now()})

	if s.repo != nil {
		if delErr := s.repo.Delete(ctx, deviceID); delErr != nil {
			s.logger.Warn().Err(delErr).Str("device", deviceID).Msg("Failed to delete persisted session")
		}
	}
	return err
}

// Register posts a new account. It does not transition the session: the
// caller must log in (or navigate to login) separately. The session reads
// as loading for the duration and then returns to its prior state.
func (s *SessionService) Register(ctx context.Context, deviceID string, reg domain.Registration) (*domain.User, error) {
	st := s.device(ctx, deviceID)
	st.opMu.Lock()
	defer st.opMu.Unlock()

	prev := st.setLoading()
	defer st.set(prev)

	user, err := s.store.Register(ctx, st.creds, reg)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SessionService) persist(ctx context.Context, deviceID string, st *deviceState) {
	if s.repo == nil {
		return
	}
	session := &domain.DeviceSession{
		DeviceID:    deviceID,
		Credentials: st.creds.Snapshot(),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		s.logger.Warn().Err(err).Str("device", deviceID).Msg("Failed to persist session")
	}
}

// formatLastActivity renders a backend timestamp in the store's display
// timezone. Missing values read "Not available"; unparsable ones read
// "Invalid date".
func (s *SessionService) formatLastActivity(raw string) string {
	if raw == "" || raw == "null" {
		return "Not available"
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(s.loc).Format(displayTimeLayout)
		}
	}
	// Already formatted values pass through unchanged.
	if _, err := time.ParseInLocation(displayTimeLayout, raw, s.loc); err == nil {
		return raw
	}
	return "Invalid date"
}
