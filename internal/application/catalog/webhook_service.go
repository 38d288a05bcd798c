package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

type WebhookInput struct {
	URL       string
	EventType string
	IsActive  *bool
}

type WebhookOutput struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	EventType string    `json:"event_type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type WebhookService struct {
	repo domain.WebhookRepository
}

func NewWebhookService(repo domain.WebhookRepository) *WebhookService {
	return &WebhookService{repo: repo}
}

func (s *WebhookService) Create(ctx context.Context, in WebhookInput) (WebhookOutput, error) {
	sub, err := newSubscription(in)
	if err != nil {
		return WebhookOutput{}, err
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return WebhookOutput{}, fmt.Errorf("%w: %v", ErrCatalogStore, err)
	}
	return toWebhookOutput(created), nil
}

func (s *WebhookService) List(ctx context.Context) ([]WebhookOutput, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogStore, err)
	}

	out := make([]WebhookOutput, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toWebhookOutput(sub))
	}
	return out, nil
}

// Replace overwrites the subscription; an omitted is_active resets to true.
func (s *WebhookService) Replace(ctx context.Context, id int64, in WebhookInput) (WebhookOutput, error) {
	sub, err := newSubscription(in)
	if err != nil {
		return WebhookOutput{}, err
	}

	updated, err := s.repo.Update(ctx, id, sub)
	if err != nil {
		return WebhookOutput{}, mapWebhookErr(err)
	}
	return toWebhookOutput(updated), nil
}

func (s *WebhookService) Delete(ctx context.Context, id int64) (WebhookOutput, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return WebhookOutput{}, mapWebhookErr(err)
	}
	return toWebhookOutput(deleted), nil
}

func newSubscription(in WebhookInput) (domain.WebhookSubscription, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	sub, err := domain.NewWebhookSubscription(in.URL, in.EventType, isActive)
	if err != nil {
		return domain.WebhookSubscription{}, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	return sub, nil
}

func mapWebhookErr(err error) error {
	if errors.Is(err, domain.ErrWebhookNotFound) {
		return ErrWebhookNotFound
	}
	return fmt.Errorf("%w: %v", ErrCatalogStore, err)
}

func toWebhookOutput(sub domain.WebhookSubscription) WebhookOutput {
	return WebhookOutput{
		ID:        sub.ID,
		URL:       sub.URL,
		EventType: sub.EventType,
		IsActive:  sub.IsActive,
		CreatedAt: sub.CreatedAt,
	}
}
