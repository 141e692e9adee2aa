package application

import (
	"context"
	"testing"

	"mate-storefront-layer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryFee(t *testing.T) {
	assert.Equal(t, 40.0, DeliveryFee("Cairo"))
	assert.Equal(t, 50.0, DeliveryFee("Alexandria"))
	assert.Equal(t, 70.0, DeliveryFee("Giza"))
	assert.Equal(t, 70.0, DeliveryFee(""))
}

func TestQuotePricesCart(t *testing.T) {
	carts := newMemCartRepo()
	require.NoError(t, carts.Save(context.Background(), "dev-1", &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, SalePrice: 300, Quantity: 2},
		{ProductID: 2, SalePrice: 150, Quantity: 1},
	}}))

	svc := NewCheckoutService(&fakeStore{}, carts, testLogger())

	quote, err := svc.Quote(context.Background(), "dev-1", "Cairo", 0)
	require.NoError(t, err)
	assert.Equal(t, 750.0, quote.Subtotal)
	assert.Equal(t, 40.0, quote.DeliveryFee)
	assert.Equal(t, 790.0, quote.Total)
}

func TestQuoteTotalFloorsAtZero(t *testing.T) {
	carts := newMemCartRepo()
	require.NoError(t, carts.Save(context.Background(), "dev-1", &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, SalePrice: 100, Quantity: 1},
	}}))

	svc := NewCheckoutService(&fakeStore{}, carts, testLogger())

	// 100 - 500 + 40 is negative; the total clamps to zero.
	quote, err := svc.Quote(context.Background(), "dev-1", "Cairo", 500)
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.Total)
}

func TestValidateCoupon(t *testing.T) {
	store := &fakeStore{
		validateCouponFn: func(_ context.Context, _ *domain.CredentialRecord, code string) error {
			return nil
		},
	}
	svc := NewCheckoutService(store, newMemCartRepo(), testLogger())

	discount, err := svc.ValidateCoupon(context.Background(), &domain.CredentialRecord{}, "SAVE500")
	require.NoError(t, err)
	assert.Equal(t, 500.0, discount)

	_, err = svc.ValidateCoupon(context.Background(), &domain.CredentialRecord{}, "")
	assert.Error(t, err)
}

func TestPlaceOrder(t *testing.T) {
	carts := newMemCartRepo()
	require.NoError(t, carts.Save(context.Background(), "dev-1", &domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, Name: "Hoodie", SalePrice: 400, Color: "Black", Size: "M", Quantity: 2},
	}}))

	var submitted *domain.Order
	store := &fakeStore{
		createOrderFn: func(_ context.Context, _ *domain.CredentialRecord, order *domain.Order) (*domain.Order, error) {
			submitted = order
			placed := *order
			placed.ID = 42
			return &placed, nil
		},
	}
	svc := NewCheckoutService(store, carts, testLogger())

	shipping := domain.ShippingInfo{FullName: "Sara", Address: "1 Nile St", Phone: "0100", Governorate: "Alexandria"}
	placed, err := svc.PlaceOrder(context.Background(), "dev-1", &domain.CredentialRecord{}, shipping, "")

	require.NoError(t, err)
	assert.EqualValues(t, 42, placed.ID)
	require.NotNil(t, submitted)
	assert.Equal(t, domain.OrderStatusPending, submitted.Status)
	assert.Equal(t, 800.0, submitted.CartTotal)
	assert.Equal(t, 50.0, submitted.DeliveryFee)
	assert.Equal(t, 850.0, submitted.TotalPrice)
	require.Len(t, submitted.Items, 1)
	assert.Equal(t, "Hoodie", submitted.Items[0].ProductName)

	// The cart is cleared after a successful order.
	cart, err := carts.Get(context.Background(), "dev-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestPlaceOrderRejectsIncompleteShipping(t *testing.T) {
	svc := NewCheckoutService(&fakeStore{}, newMemCartRepo(), testLogger())

	_, err := svc.PlaceOrder(context.Background(), "dev-1", &domain.CredentialRecord{}, domain.ShippingInfo{FullName: "Sara"}, "")
	assert.Error(t, err)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc := NewCheckoutService(&fakeStore{}, newMemCartRepo(), testLogger())

	shipping := domain.ShippingInfo{FullName: "Sara", Address: "1 Nile St", Phone: "0100", Governorate: "Cairo"}
	_, err := svc.PlaceOrder(context.Background(), "dev-1", &domain.CredentialRecord{}, shipping, "")
	assert.Error(t, err)
}
