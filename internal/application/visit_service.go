package application

import (
	"context"
	"time"

	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// VisitService forwards page-view beacons to the backend. Tracking is
// fire-and-forget: failures are logged and swallowed, and the caller's
// request never waits on the beacon.
type VisitService struct {
	store  ports.StoreClient
	logger zerolog.Logger
}

// NewVisitService creates a visit service.
func NewVisitService(store ports.StoreClient, logger zerolog.Logger) *VisitService {
	return &VisitService{store: store, logger: logger}
}

// Track sends the beacon in the background. It detaches from the caller's
// context so an unmounting client cannot cancel the send mid-flight.
func (s *VisitService) Track(pageURL string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.TrackVisit(ctx, pageURL); err != nil {
			s.logger.Debug().Err(err).Str("page", pageURL).Msg("Visit tracking failed")
		}
	}()
}
