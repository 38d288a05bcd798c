package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
	"github.com/mohammadpnp/product-import/internal/infrastructure/db/models"
)

type WebhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

func (r *WebhookRepository) Create(ctx context.Context, w domain.WebhookSubscription) (domain.WebhookSubscription, error) {
	row := models.Webhook{
		URL:       w.URL,
		EventType: w.EventType,
		IsActive:  w.IsActive,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.WebhookSubscription{}, fmt.Errorf("create webhook: %w", err)
	}

	return toDomainWebhook(row), nil
}

func (r *WebhookRepository) List(ctx context.Context) ([]domain.WebhookSubscription, error) {
	var rows []models.Webhook

	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}

	return toDomainWebhooks(rows), nil
}

// Update replaces every mutable field, including is_active=false.
func (r *WebhookRepository) Update(ctx context.Context, id int64, w domain.WebhookSubscription) (domain.WebhookSubscription, error) {
	row := models.Webhook{ID: id}

	res := r.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Select("url", "event_type", "is_active").
		Updates(models.Webhook{
			URL:       w.URL,
			EventType: w.EventType,
			IsActive:  w.IsActive,
		})
	if res.Error != nil {
		return domain.WebhookSubscription{}, fmt.Errorf("update webhook: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.WebhookSubscription{}, domain.ErrWebhookNotFound
	}

	return toDomainWebhook(row), nil
}

func (r *WebhookRepository) Delete(ctx context.Context, id int64) (domain.WebhookSubscription, error) {
	var row models.Webhook

	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&row)
	if res.Error != nil {
		return domain.WebhookSubscription{}, fmt.Errorf("delete webhook: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.WebhookSubscription{}, domain.ErrWebhookNotFound
	}

	return toDomainWebhook(row), nil
}

func (r *WebhookRepository) ListActiveByEvent(ctx context.Context, eventType string) ([]domain.WebhookSubscription, error) {
	var rows []models.Webhook

	if err := r.db.WithContext(ctx).
		Where("event_type = ? AND is_active = ?", eventType, true).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list active webhooks: %w", err)
	}

	return toDomainWebhooks(rows), nil
}

func toDomainWebhooks(rows []models.Webhook) []domain.WebhookSubscription {
	subs := make([]domain.WebhookSubscription, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, toDomainWebhook(row))
	}
	return subs
}

func toDomainWebhook(row models.Webhook) domain.WebhookSubscription {
	return domain.WebhookSubscription{
		ID:        row.ID,
		URL:       row.URL,
		EventType: row.EventType,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
}
