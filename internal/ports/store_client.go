package ports

import (
	"context"

	"mate-storefront-layer/internal/domain"
)

// StoreClient defines the backend REST contract the layer consumes.
// The shared credential record is passed per call; the client snapshots
// it before each request and merges rotated tokens back through its
// guarded accessors.
type StoreClient interface {
	// Authentication
	Login(ctx context.Context, creds *domain.CredentialRecord, email, password string) (*domain.User, error)
	Register(ctx context.Context, creds *domain.CredentialRecord, reg domain.Registration) (*domain.User, error)
	Logout(ctx context.Context, creds *domain.CredentialRecord) error
	CheckAuth(ctx context.Context, creds *domain.CredentialRecord) (*domain.User, error)
	RefreshToken(ctx context.Context, creds *domain.CredentialRecord) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, password string) error

	// Products
	ListProducts(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Product, error)
	GetProduct(ctx context.Context, creds *domain.CredentialRecord, productID int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, creds *domain.CredentialRecord, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, creds *domain.CredentialRecord, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, creds *domain.CredentialRecord, productID int64) error
	SearchProducts(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.Product, error)
	SearchVariants(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.ProductVariant, error)

	// Orders
	ListOrders(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error)
	GetOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, creds *domain.CredentialRecord, order *domain.Order) (*domain.Order, error)
	UpdateOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64) error
	ListUserOrders(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error)

	// Users
	ListUsers(ctx context.Context, creds *domain.CredentialRecord) ([]domain.User, error)
	GetUser(ctx context.Context, creds *domain.CredentialRecord, userID int64) (*domain.User, error)
	UpdateUser(ctx context.Context, creds *domain.CredentialRecord, userID int64, update domain.UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, creds *domain.CredentialRecord, userID int64) error
	SearchUsers(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.User, error)
	GetProfile(ctx context.Context, creds *domain.CredentialRecord) (*domain.User, error)

	// Coupons
	ListUserCoupons(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Coupon, error)
	ValidateCoupon(ctx context.Context, creds *domain.CredentialRecord, code string) error

	// Reports and analytics
	DailyReports(ctx context.Context, creds *domain.CredentialRecord, date string) ([]domain.Report, error)
	MonthlyReports(ctx context.Context, creds *domain.CredentialRecord, year, month string) ([]domain.Report, error)
	LiveVisitors(ctx context.Context, creds *domain.CredentialRecord) (*domain.VisitorStats, error)
	TrackVisit(ctx context.Context, pageURL string) error
}
