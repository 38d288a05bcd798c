package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
	"github.com/mohammadpnp/product-import/internal/infrastructure/db/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := models.Product{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, domain.ErrProductExists
		}
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	return toDomainProduct(row), nil
}

func (r *ProductRepository) List(ctx context.Context, skip, limit int) ([]domain.Product, error) {
	var rows []models.Product

	if err := r.db.WithContext(ctx).
		Order("sku").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toDomainProduct(row))
	}
	return products, nil
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (domain.Product, error) {
	var row models.Product

	err := r.db.WithContext(ctx).First(&row, "sku = ?", sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product by sku: %w", err)
	}

	return toDomainProduct(row), nil
}

func (r *ProductRepository) Update(ctx context.Context, sku string, patch domain.ProductPatch) (domain.Product, error) {
	if patch.IsEmpty() {
		return r.GetBySKU(ctx, sku)
	}

	updates := map[string]any{"updated_at": gorm.Expr("NOW()")}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	var row models.Product
	res := r.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("sku = ?", sku).
		Updates(updates)
	if res.Error != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return toDomainProduct(row), nil
}

func (r *ProductRepository) Delete(ctx context.Context, sku string) (domain.Product, error) {
	var row models.Product

	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("sku = ?", sku).
		Delete(&row)
	if res.Error != nil {
		return domain.Product{}, fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return toDomainProduct(row), nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete all products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func toDomainProduct(row models.Product) domain.Product {
	return domain.Product{
		SKU:         row.SKU,
		Name:        row.Name,
		Description: row.Description,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
