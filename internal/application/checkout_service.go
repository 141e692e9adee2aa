package application

import (
	"context"
	"fmt"
	"math"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"github.com/rs/zerolog"
)

// Delivery fees by governorate, in EGP.
const (
	deliveryFeeCairo      = 40
	deliveryFeeAlexandria = 50
	deliveryFeeDefault    = 70
)

// A valid coupon is worth a fixed 500 EGP off the subtotal.
const couponDiscount = 500

// CheckoutService prices carts and places orders. Pricing is: subtotal,
// minus the coupon discount when a code validated, plus the delivery fee
// for the governorate, floored at zero.
type CheckoutService struct {
	store  ports.StoreClient
	carts  ports.CartRepository
	logger zerolog.Logger
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(store ports.StoreClient, carts ports.CartRepository, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		store:  store,
		carts:  carts,
		logger: logger,
	}
}

// DeliveryFee returns the delivery fee for a governorate.
func DeliveryFee(governorate string) float64 {
	switch governorate {
	case "Cairo":
		return deliveryFeeCairo
	case "Alexandria":
		return deliveryFeeAlexandria
	default:
		return deliveryFeeDefault
	}
}

// ValidateCoupon checks a code against the backend and returns the
// discount it is worth. An invalid code surfaces the backend's error.
func (s *CheckoutService) ValidateCoupon(ctx context.Context, creds *domain.CredentialRecord, code string) (float64, error) {
	if code == "" {
		return 0, fmt.Errorf("please enter a coupon code")
	}
	if err := s.store.ValidateCoupon(ctx, creds, code); err != nil {
		return 0, err
	}
	return couponDiscount, nil
}

// Quote prices the device's current cart for a governorate, optionally
// applying an already-validated coupon discount.
func (s *CheckoutService) Quote(ctx context.Context, deviceID, governorate string, discount float64) (*domain.CheckoutQuote, error) {
	cart, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return quoteCart(cart, governorate, discount), nil
}

func quoteCart(cart *domain.Cart, governorate string, discount float64) *domain.CheckoutQuote {
	subtotal := cart.Total()
	fee := DeliveryFee(governorate)
	return &domain.CheckoutQuote{
		Subtotal:       subtotal,
		CouponDiscount: discount,
		DeliveryFee:    fee,
		Total:          math.Max(0, subtotal-discount+fee),
	}
}

// PlaceOrder submits the device's cart as an order and clears the cart on
// success. A coupon code is validated first when supplied; shipping
// details must be complete.
func (s *CheckoutService) PlaceOrder(ctx context.Context, deviceID string, creds *domain.CredentialRecord, shipping domain.ShippingInfo, couponCode string) (*domain.Order, error) {
	if !shipping.Complete() {
		return nil, fmt.Errorf("please fill in all shipping details, including governorate")
	}

	cart, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, fmt.Errorf("your cart is empty")
	}

	var discount float64
	if couponCode != "" {
		discount, err = s.ValidateCoupon(ctx, creds, couponCode)
		if err != nil {
			return nil, err
		}
	}

	quote := quoteCart(cart, shipping.Governorate, discount)

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Color:       line.Color,
			Size:        line.Size,
			Quantity:    line.Quantity,
			SalePrice:   line.SalePrice,
		})
	}

	order := &domain.Order{
		Status:       domain.OrderStatusPending,
		Items:        items,
		CartTotal:    quote.Subtotal - quote.CouponDiscount,
		DeliveryFee:  quote.DeliveryFee,
		TotalPrice:   quote.Total,
		ShippingInfo: shipping,
		CouponCode:   couponCode,
	}

	placed, err := s.store.CreateOrder(ctx, creds, order)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, deviceID); err != nil {
		s.logger.Warn().Err(err).Str("device", deviceID).Msg("Failed to clear cart after checkout")
	}

	s.logger.Info().
		Str("device", deviceID).
		Int64("order", placed.ID).
		Float64("total", placed.TotalPrice).
		Msg("Order placed")
	return placed, nil
}
