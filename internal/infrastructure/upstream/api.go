package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"mate-storefront-layer/internal/domain"
)

// Product API

func (c *Client) ListProducts(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.doAuthed(ctx, creds, http.MethodGet, "products/", nil, nil, &products, "Failed to fetch products."); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, creds *domain.CredentialRecord, productID int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("products/%d/", productID)
	if err := c.doAuthed(ctx, creds, http.MethodGet, path, nil, nil, &product, "Failed to fetch product details."); err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, creds *domain.CredentialRecord, product *domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.doAuthed(ctx, creds, http.MethodPost, "products/create/", nil, product, &created, "Failed to create product."); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, creds *domain.CredentialRecord, product *domain.Product) (*domain.Product, error) {
	var updated domain.Product
	path := fmt.Sprintf("products/%d/", product.ID)
	if err := c.doAuthed(ctx, creds, http.MethodPut, path, nil, product, &updated, "Failed to update product."); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, creds *domain.CredentialRecord, productID int64) error {
	path := fmt.Sprintf("products/%d/", productID)
	if err := c.doAuthed(ctx, creds, http.MethodDelete, path, nil, nil, nil, "Failed to delete product."); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (c *Client) SearchProducts(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.Product, error) {
	var products []domain.Product
	q := url.Values{"q": []string{query}}
	if err := c.doAuthed(ctx, creds, http.MethodGet, "products/search/", q, nil, &products, "Failed to search products."); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (c *Client) SearchVariants(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.ProductVariant, error) {
	var variants []domain.ProductVariant
	q := url.Values{"q": []string{query}}
	if err := c.doAuthed(ctx, creds, http.MethodGet, "products/variants/search/", q, nil, &variants, "Failed to search variants."); err != nil {
		return nil, fmt.Errorf("failed to search variants: %w", err)
	}
	return variants, nil
}

// Order API

func (c *Client) ListOrders(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.doAuthed(ctx, creds, http.MethodGet, "orders/", nil, nil, &orders, "Failed to fetch orders."); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("orders/%d/", orderID)
	if err := c.doAuthed(ctx, creds, http.MethodGet, path, nil, nil, &order, "Failed to fetch order."); err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, creds *domain.CredentialRecord, order *domain.Order) (*domain.Order, error) {
	var created domain.Order
	if err := c.doAuthed(ctx, creds, http.MethodPost, "orders/", nil, order, &created, "Failed to place order. Please try again."); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64, status string) (*domain.Order, error) {
	var updated domain.Order
	path := fmt.Sprintf("orders/%d/", orderID)
	body := map[string]string{"status": status}
	if err := c.doAuthed(ctx, creds, http.MethodPatch, path, nil, body, &updated, "Failed to update order."); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteOrder(ctx context.Context, creds *domain.CredentialRecord, orderID int64) error {
	path := fmt.Sprintf("orders/%d/", orderID)
	if err := c.doAuthed(ctx, creds, http.MethodDelete, path, nil, nil, nil, "Failed to delete order."); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (c *Client) ListUserOrders(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.doAuthed(ctx, creds, http.MethodGet, "user/orders/", nil, nil, &orders, "Failed to fetch your orders."); err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

// User API

func (c *Client) ListUsers(ctx context.Context, creds *domain.CredentialRecord) ([]domain.User, error) {
	var users []domain.User
	if err := c.doAuthed(ctx, creds, http.MethodGet, "users/", nil, nil, &users, "Failed to fetch users."); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, creds *domain.CredentialRecord, userID int64) (*domain.User, error) {
	var user domain.User
	path := fmt.Sprintf("users/%d/", userID)
	if err := c.doAuthed(ctx, creds, http.MethodGet, path, nil, nil, &user, "Failed to fetch user."); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, creds *domain.CredentialRecord, userID int64, update domain.UserUpdate) (*domain.User, error) {
	var user domain.User
	path := fmt.Sprintf("users/%d/", userID)
	if err := c.doAuthed(ctx, creds, http.MethodPatch, path, nil, update, &user, "Failed to update user."); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, creds *domain.CredentialRecord, userID int64) error {
	path := fmt.Sprintf("users/%d/", userID)
	if err := c.doAuthed(ctx, creds, http.MethodDelete, path, nil, nil, nil, "Failed to delete user."); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (c *Client) SearchUsers(ctx context.Context, creds *domain.CredentialRecord, query string) ([]domain.User, error) {
	var users []domain.User
	q := url.Values{"q": []string{query}}
	if err := c.doAuthed(ctx, creds, http.MethodGet, "users/search/", q, nil, &users, "Failed to search users."); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (c *Client) GetProfile(ctx context.Context, creds *domain.CredentialRecord) (*domain.User, error) {
	var user domain.User
	if err := c.doAuthed(ctx, creds, http.MethodGet, "user/profile/", nil, nil, &user, "Failed to load user profile."); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &user, nil
}

// Coupon API

func (c *Client) ListUserCoupons(ctx context.Context, creds *domain.CredentialRecord) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	if err := c.doAuthed(ctx, creds, http.MethodGet, "user/coupons/", nil, nil, &coupons, "Failed to fetch coupons."); err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

func (c *Client) ValidateCoupon(ctx context.Context, creds *domain.CredentialRecord, code string) error {
	body := map[string]string{"code": code}
	if err := c.doAuthed(ctx, creds, http.MethodPost, "coupons/validate/", nil, body, nil, "Invalid coupon code."); err != nil {
		return fmt.Errorf("failed to validate coupon: %w", err)
	}
	return nil
}

// Report API

func (c *Client) DailyReports(ctx context.Context, creds *domain.CredentialRecord, date string) ([]domain.Report, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	var raw json.RawMessage
	if err := c.doAuthed(ctx, creds, http.MethodGet, "reports/daily/", q, nil, &raw, "Failed to fetch daily reports."); err != nil {
		return nil, fmt.Errorf("failed to fetch daily reports: %w", err)
	}
	return decodeReports(raw)
}

func (c *Client) MonthlyReports(ctx context.Context, creds *domain.CredentialRecord, year, month string) ([]domain.Report, error) {
	q := url.Values{}
	if year != "" {
		q.Set("year", year)
	}
	if month != "" {
		q.Set("month", month)
	}
	var raw json.RawMessage
	if err := c.doAuthed(ctx, creds, http.MethodGet, "reports/monthly/", q, nil, &raw, "Failed to fetch monthly reports."); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly reports: %w", err)
	}
	return decodeReports(raw)
}

// decodeReports accepts both shapes the backend serves: a report array or
// a single report object (the daily endpoint returns an object when asked
// for one day).
func decodeReports(raw json.RawMessage) ([]domain.Report, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var reports []domain.Report
	if err := json.Unmarshal(raw, &reports); err == nil {
		return reports, nil
	}
	var single domain.Report
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("failed to decode reports payload: %w", err)
	}
	if single.Date == "" {
		return nil, nil
	}
	return []domain.Report{single}, nil
}

func (c *Client) LiveVisitors(ctx context.Context, creds *domain.CredentialRecord) (*domain.VisitorStats, error) {
	var stats domain.VisitorStats
	if err := c.doAuthed(ctx, creds, http.MethodGet, "live-visitors/", nil, nil, &stats, "Failed to fetch live visitors."); err != nil {
		return nil, fmt.Errorf("failed to fetch live visitors: %w", err)
	}
	return &stats, nil
}
