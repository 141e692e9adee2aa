package application

import (
	"context"
	"fmt"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// CartService manages each device's cart: merge-on-add keyed by
// (product, color, size), ordered removal, and persistence through the
// cart repository. Stock ceilings are enforced against the variant's
// current quantity at add time, the same check the storefront ran before
// writing to local storage.
type CartService struct {
	carts  ports.CartRepository
	store  ports.StoreClient
	logger zerolog.Logger
}

// NewCartService creates a cart service.
func NewCartService(carts ports.CartRepository, store ports.StoreClient, logger zerolog.Logger) *CartService {
	return &CartService{
		carts:  carts,
		store:  store,
		logger: logger,
	}
}

// Get returns the device's cart.
func (s *CartService) Get(ctx context.Context, deviceID string) (*domain.Cart, error) {
	return s.carts.Get(ctx, deviceID)
}

// Add merges an item into the cart after checking the requested variant
// exists and has enough stock for the resulting line quantity.
func (s *CartService) Add(ctx context.Context, deviceID string, creds *domain.CredentialRecord, item domain.CartItem) (*domain.Cart, error) {
	if item.Color == "" || item.Size == "" {
		return nil, fmt.Errorf("a color and size must be selected")
	}
	if item.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	product, err := s.store.GetProduct(ctx, creds, item.ProductID)
	if err != nil {
		return nil, err
	}

	variant := product.FindVariant(item.Color, item.Size)
	if variant == nil || variant.Quantity == 0 {
		return nil, fmt.Errorf("this variant is out of stock")
	}

	cart, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	existing := 0
	for _, line := range cart.Items {
		if line.Key() == item.Key() {
			existing = line.Quantity
			break
		}
	}
	if existing+item.Quantity > variant.Quantity {
		return nil, fmt.Errorf("only %d items available for this variant", variant.Quantity)
	}

	// Price and name come from the catalog, not the caller.
	item.Name = product.Name
	item.SalePrice = product.SalePrice
	cart.Add(item)

	if err := s.carts.Save(ctx, deviceID, cart); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("device", deviceID).
		Int64("product", item.ProductID).
		Str("color", item.Color).
		Str("size", item.Size).
		Msg("Added item to cart")
	return cart, nil
}

// UpdateQuantity sets the quantity of the line at index and persists the
// cart.
func (s *CartService) UpdateQuantity(ctx context.Context, deviceID string, index, quantity int) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateQuantity(index, quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, deviceID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove drops the line at index, preserving the order of the remaining
// lines, and persists the result.
func (s *CartService) Remove(ctx context.Context, deviceID string, index int) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveAt(index); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, deviceID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the device's cart.
func (s *CartService) Clear(ctx context.Context, deviceID string) error {
	return s.carts.Clear(ctx, deviceID)
}
