package application

import (
	"context"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Products whose combined variant stock falls below this count show up in
// the dashboard's low-stock figure.
const lowStockThreshold = 10

// CatalogService exposes product browsing for the storefront and product
// management for the back office. It holds no state beyond request and
// response mapping; the backend owns the catalog.
type CatalogService struct {
	store  ports.StoreClient
	logger zerolog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(store ports.StoreClient, logger zerolog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// List returns the full product catalog.
func (s *CatalogService) List(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Product, error) {
	return s.store.ListProducts(ctx, creds)
}

// Get returns a single product with its variants and images.
func (s *CatalogService) Get(ctx context.Context, creds *domain.CredentialRecord, productID int64) (*domain.Product, error) {
	return s.store.GetProduct(ctx, creds, productID)
}

// Search returns products matching the query.
func (s *CatalogService) Search(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.Product, error) {
	return s.store.SearchProducts(ctx, creds, query)
}

// SearchVariants returns variants matching the query.
func (s *CatalogService) SearchVariants(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.ProductVariant, error) {
	return s.store.SearchVariants(ctx, creds, query)
}

// Create adds a product (admin).
func (s *CatalogService) Create(ctx context.Context, creds *domain.CredentialRecord, product *domain.Product) (*domain.Product, error) {
	created, err := s.store.CreateProduct(ctx, creds, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("product", created.ID).Str("name", created.Name).Msg("Product created")
	return created, nil
}

// Update replaces a product (admin).
func (s *CatalogService) Update(ctx context.Context, creds *domain.CredentialRecord, product *domain.Product) (*domain.Product, error) {
	return s.store.UpdateProduct(ctx, creds, product)
}

// Delete removes a product (admin).
func (s *CatalogService) Delete(ctx context.Context, creds *domain.CredentialRecord, productID int64) error {
	if err := s.store.DeleteProduct(ctx, creds, productID); err != nil {
		return err
	}
	s.logger.Info().Int64("product", productID).Msg("Product deleted")
	return nil
}

// TotalStock sums stock across every variant of every product.
func TotalStock(products []domain.Product) int {
	var total int
	for i := range products {
		total += products[i].TotalStock()
	}
	return total
}

// LowStockCount counts products whose combined variant stock is below the
// low-stock threshold.
func LowStockCount(products []domain.Product) int {
	var count int
	for i := range products {
		if products[i].TotalStock() < lowStockThreshold {
			count++
		}
	}
	return count
}
