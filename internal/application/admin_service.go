package application

import (
	"context"
	"fmt"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// AdminService covers back-office order and user management, including
// points adjustments. Every call is a thin request/response mapping; role
// enforcement happens twice — at the gate here, and again on the backend.
type AdminService struct {
	store  ports.StoreClient
	logger zerolog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(store ports.StoreClient, logger zerolog.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

// Orders

func (s *AdminService) ListOrders(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error) {
	return s.store.ListOrders(ctx, creds)
}

func (s *AdminService) GetOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64) (*domain.Order, error) {
	return s.store.GetOrder(ctx, creds, orderID)
}

// UpdateOrderStatus moves an order between pending, delivered and
// cancelled.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, creds *domain.CredentialRecord, orderID int64, status string) (*domain.Order, error) {
	switch status {
	case domain.OrderStatusPending, domain.OrderStatusDelivered, domain.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	order, err := s.store.UpdateOrder(ctx, creds, orderID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("order", orderID).Str("status", status).Msg("Order status updated")
	return order, nil
}

func (s *AdminService) DeleteOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64) error {
	return s.store.DeleteOrder(ctx, creds, orderID)
}

// Users

func (s *AdminService) ListUsers(ctx context.Context, creds *domain.CredentialRecord) ([]domain.User, error) {
	return s.store.ListUsers(ctx, creds)
}

func (s *AdminService) GetUser(ctx context.Context, creds *domain.CredentialRecord, userID int64) (*domain.User, error) {
	return s.store.GetUser(ctx, creds, userID)
}

func (s *AdminService) SearchUsers(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.User, error) {
	return s.store.SearchUsers(ctx, creds, query)
}

func (s *AdminService) UpdateUser(ctx context.Context, creds *domain.CredentialRecord, userID int64, update domain.UserUpdate) (*domain.User, error) {
	return s.store.UpdateUser(ctx, creds, userID, update)
}

func (s *AdminService) DeleteUser(ctx context.Context, creds *domain.CredentialRecord, userID int64) error {
	return s.store.DeleteUser(ctx, creds, userID)
}

// AdjustPoints sets a user's points balance. Negative balances are
// rejected before the request is sent.
func (s *AdminService) AdjustPoints(ctx context.Context, creds *domain.CredentialRecord, userID int64, points int) (*domain.User, error) {
	if points < 0 {
		return nil, fmt.Errorf("points cannot be negative")
	}
	user, err := s.store.UpdateUser(ctx, creds, userID, domain.UserUpdate{Points: &points})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user", userID).Int("points", points).Msg("Points updated")
	return user, nil
}
