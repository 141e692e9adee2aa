package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesOnKey(t *testing.T) {
	cart := &Cart{}

	qty := cart.Add(CartItem{ProductID: 1, Color: "Black", Size: "M", Quantity: 1})
	assert.Equal(t, 1, qty)

	qty = cart.Add(CartItem{ProductID: 1, Color: "Black", Size: "M", Quantity: 2})
	assert.Equal(t, 3, qty)
	require.Len(t, cart.Items, 1)

	// A different size is a different line.
	cart.Add(CartItem{ProductID: 1, Color: "Black", Size: "L", Quantity: 1})
	assert.Len(t, cart.Items, 2)
}

func TestCartRemoveAtKeepsOrder(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: 1, Size: "S"},
		{ProductID: 2, Size: "M"},
		{ProductID: 3, Size: "L"},
	}}

	require.NoError(t, cart.RemoveAt(1))
	require.Len(t, cart.Items, 2)
	assert.EqualValues(t, 1, cart.Items[0].ProductID)
	assert.EqualValues(t, 3, cart.Items[1].ProductID)

	assert.Error(t, cart.RemoveAt(5))
	assert.Error(t, cart.RemoveAt(-1))
}

func TestCartUpdateQuantityBounds(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ProductID: 1, Quantity: 1}}}

	require.NoError(t, cart.UpdateQuantity(0, 4))
	assert.Equal(t, 4, cart.Items[0].Quantity)

	assert.Error(t, cart.UpdateQuantity(0, 0))
	assert.Error(t, cart.UpdateQuantity(2, 1))
}

func TestCartTotal(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{SalePrice: 100, Quantity: 2},
		{SalePrice: 50, Quantity: 1},
	}}
	assert.Equal(t, 250.0, cart.Total())
	assert.False(t, cart.IsEmpty())
	assert.True(t, (&Cart{}).IsEmpty())
	assert.True(t, (*Cart)(nil).IsEmpty())
}

func TestFindVariantColorCaseInsensitive(t *testing.T) {
	p := &Product{Variants: []ProductVariant{
		{Color: "Black", Size: "M", Quantity: 3},
	}}

	require.NotNil(t, p.FindVariant("black", "M"))
	assert.Nil(t, p.FindVariant("Black", "m"))
	assert.Nil(t, p.FindVariant("Red", "M"))
}

func TestSessionStateInvariants(t *testing.T) {
	loading := &Session{State: StateUnknown}
	assert.True(t, loading.IsLoading())
	assert.False(t, loading.IsAuthenticated())
	assert.False(t, loading.IsAdmin())

	anon := &Session{State: StateAnonymous}
	assert.False(t, anon.IsLoading())
	assert.False(t, anon.IsAuthenticated())

	staff := &Session{State: StateAuthenticated, User: &User{IsStaff: true}}
	assert.True(t, staff.IsAuthenticated())
	assert.True(t, staff.IsAdmin())

	shopper := &Session{State: StateAuthenticated, User: &User{}}
	assert.False(t, shopper.IsAdmin())
}
