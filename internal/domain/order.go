package domain

import "time"

// Order statuses used by the backend.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ShippingInfo is the delivery destination captured at checkout.
type ShippingInfo struct {
	FullName    string `json:"fullName"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Governorate string `json:"governorate"`
}

// Complete reports whether every shipping field is filled in.
func (s ShippingInfo) Complete() bool {
	return s.FullName != "" && s.Address != "" && s.Phone != "" && s.Governorate != ""
}

// OrderItem is one purchased line as the backend expects it.
type OrderItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"product_name"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	SalePrice   float64 `json:"sale_price"`
}

// Order is a placed order. CartTotal already has any coupon discount
// applied; TotalPrice additionally includes the delivery fee.
type Order struct {
	ID           int64        `json:"id,omitempty"`
	Status       string       `json:"status"`
	Items        []OrderItem  `json:"items"`
	CartTotal    float64      `json:"cart_total"`
	DeliveryFee  float64      `json:"delivery_fee"`
	TotalPrice   float64      `json:"total_price"`
	ShippingInfo ShippingInfo `json:"shipping_info"`
	CouponCode   string       `json:"coupon_code,omitempty"`
	UserEmail    string       `json:"user_email,omitempty"`
	CreatedAt    time.Time    `json:"created_at,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at,omitempty"`
}

// CheckoutQuote is the priced breakdown shown before placing an order.
type CheckoutQuote struct {
	Subtotal       float64 `json:"subtotal"`
	CouponDiscount float64 `json:"coupon_discount"`
	DeliveryFee    float64 `json:"delivery_fee"`
	Total          float64 `json:"total"`
}
