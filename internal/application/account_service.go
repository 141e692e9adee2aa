package application

import (
	"context"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// AccountService covers the self-service surface: profile, the user's own
// orders and coupons, and the password recovery flow.
type AccountService struct {
	store  ports.StoreClient
	logger zerolog.Logger
}

// NewAccountService creates an account service.
func NewAccountService(store ports.StoreClient, logger zerolog.Logger) *AccountService {
	return &AccountService{store: store, logger: logger}
}

// Profile returns the signed-in user's profile.
func (s *AccountService) Profile(ctx context.Context, creds *domain.CredentialRecord) (*domain.User, error) {
	return s.store.GetProfile(ctx, creds)
}

// Orders returns the signed-in user's orders.
func (s *AccountService) Orders(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error) {
	return s.store.ListUserOrders(ctx, creds)
}

// Coupons returns the signed-in user's coupons.
func (s *AccountService) Coupons(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Coupon, error) {
	return s.store.ListUserCoupons(ctx, creds)
}

// RequestPasswordReset starts password recovery for an email address.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.store.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("Password reset requested")
	return nil
}

// ConfirmPasswordReset completes password recovery with the emailed token.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	return s.store.ConfirmPasswordReset(ctx, token, password)
}
