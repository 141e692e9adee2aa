package domain

import "fmt"

// CartItem is one line item in a device's cart. The uniqueness key is
// (ProductID, Color, Size): adding the same key again increments the
// quantity of the existing line instead of appending a duplicate.
type CartItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	SalePrice float64 `json:"sale_price"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// Key returns the cart uniqueness key for the item.
func (i CartItem) Key() string {
	return fmt.Sprintf("%d|%s|%s", i.ProductID, i.Color, i.Size)
}

// Subtotal returns SalePrice multiplied by Quantity.
func (i CartItem) Subtotal() float64 {
	return i.SalePrice * float64(i.Quantity)
}

// Cart is an ordered sequence of line items. Order is user-visible and
// must survive removals and round-trips through storage.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges the item into the cart. An existing line with the same
// (ProductID, Color, Size) has its quantity incremented; otherwise the
// item is appended. Returns the resulting quantity of the line.
func (c *Cart) Add(item CartItem) int {
	for idx := range c.Items {
		if c.Items[idx].Key() == item.Key() {
			c.Items[idx].Quantity += item.Quantity
			return c.Items[idx].Quantity
		}
	}
	c.Items = append(c.Items, item)
	return item.Quantity
}

// UpdateQuantity sets the quantity of the line at index. Quantities below
// one are rejected; use RemoveAt to drop a line.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.Items) {
		return fmt.Errorf("cart index %d out of range", index)
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	c.Items[index].Quantity = quantity
	return nil
}

// RemoveAt removes the line at index, leaving the relative order of all
// other lines unchanged.
func (c *Cart) RemoveAt(index int) error {
	if index < 0 || index >= len(c.Items) {
		return fmt.Errorf("cart index %d out of range", index)
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// Total returns the sum of every line's sale price times quantity.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
