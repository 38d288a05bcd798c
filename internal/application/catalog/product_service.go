package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

type CreateProductInput struct {
	SKU         string
	Name        string
	Description *string
	IsActive    *bool
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type ProductOutput struct {
	SKU         string     `json:"sku"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type ProductService struct {
	repo domain.ProductRepository
}

func NewProductService(repo domain.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (ProductOutput, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	p, err := domain.NewProduct(in.SKU, in.Name, in.Description, isActive)
	if err != nil {
		return ProductOutput{}, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return ProductOutput{}, mapProductErr(err)
	}
	return toProductOutput(created), nil
}

func (s *ProductService) List(ctx context.Context, skip, limit int) ([]ProductOutput, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if skip < 0 || limit < 0 || limit > MaxListLimit {
		return nil, ErrInvalidPagination
	}

	products, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogStore, err)
	}

	out := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		out = append(out, toProductOutput(p))
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, sku string) (ProductOutput, error) {
	p, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		return ProductOutput{}, mapProductErr(err)
	}
	return toProductOutput(p), nil
}

// Update applies only the fields present in the input.
func (s *ProductService) Update(ctx context.Context, sku string, in UpdateProductInput) (ProductOutput, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return ProductOutput{}, fmt.Errorf("%w: %v", ErrInvalidProduct, domain.ErrInvalidProductName)
	}

	p, err := s.repo.Update(ctx, sku, domain.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return ProductOutput{}, mapProductErr(err)
	}
	return toProductOutput(p), nil
}

func (s *ProductService) Delete(ctx context.Context, sku string) (ProductOutput, error) {
	p, err := s.repo.Delete(ctx, sku)
	if err != nil {
		return ProductOutput{}, mapProductErr(err)
	}
	return toProductOutput(p), nil
}

func (s *ProductService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCatalogStore, err)
	}
	return n, nil
}

func mapProductErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return ErrProductNotFound
	case errors.Is(err, domain.ErrProductExists):
		return ErrProductExists
	default:
		return fmt.Errorf("%w: %v", ErrCatalogStore, err)
	}
}

func toProductOutput(p domain.Product) ProductOutput {
	return ProductOutput{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
