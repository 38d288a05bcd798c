package product

import (
	"strings"
	"time"
)

type Product struct {
	SKU         string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.IsActive == nil
}

func NewProduct(sku, name string, description *string, isActive bool) (Product, error) {
	if strings.TrimSpace(sku) == "" {
		return Product{}, ErrInvalidSKU
	}
	if strings.TrimSpace(name) == "" {
		return Product{}, ErrInvalidProductName
	}

	return Product{
		SKU:         sku,
		Name:        name,
		Description: description,
		IsActive:    isActive,
	}, nil
}

// ImportRow is one decoded CSV line. Name and Description are nil when the
// column or the cell is absent.
type ImportRow struct {
	SKU         string
	Name        *string
	Description *string
	IsActive    bool
}

// HasSKU reports whether the row carries an identity. Whitespace-only SKUs do not.
func (r ImportRow) HasSKU() bool {
	return strings.TrimSpace(r.SKU) != ""
}

// DedupeKey is the in-memory key used to collapse rows inside one batch.
// The stored key stays the SKU exactly as provided.
func (r ImportRow) DedupeKey() string {
	return strings.ToLower(r.SKU)
}
