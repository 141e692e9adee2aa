package domain

import (
	"strings"
	"time"
)

// Product is a catalog entry with its variants and images.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	PurchasePrice float64          `json:"purchase_price,string,omitempty"`
	SalePrice     float64          `json:"sale_price,string"`
	Category      string           `json:"category,omitempty"`
	Variants      []ProductVariant `json:"variants"`
	Images        []ProductImage   `json:"images"`
	CreatedAt     time.Time        `json:"created_at,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at,omitempty"`
}

// ProductVariant is a specific color+size combination with its own stock
// quantity. (product, color, size) is unique on the backend.
type ProductVariant struct {
	ID       int64  `json:"id,omitempty"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// ProductImage is one catalog image, optionally bound to a color.
type ProductImage struct {
	Image string `json:"image"`
	Color string `json:"color,omitempty"`
}

// TotalStock sums the stock across all variants of the product.
func (p *Product) TotalStock() int {
	var total int
	for _, v := range p.Variants {
		total += v.Quantity
	}
	return total
}

// FindVariant returns the variant matching color and size, or nil.
// Color matching is case-insensitive, matching the storefront behavior.
func (p *Product) FindVariant(color, size string) *ProductVariant {
	for i := range p.Variants {
		if strings.EqualFold(p.Variants[i].Color, color) && p.Variants[i].Size == size {
			return &p.Variants[i]
		}
	}
	return nil
}
