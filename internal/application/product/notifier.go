package product

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
	"github.com/mohammadpnp/product-import/internal/observability"
)

type subscriptionLister interface {
	ListActiveByEvent(ctx context.Context, eventType string) ([]domain.WebhookSubscription, error)
}

type WebhookDeliverer interface {
	Deliver(ctx context.Context, sub domain.WebhookSubscription, event domain.WebhookEvent) error
}

type DeliveryResult struct {
	SubscriptionID int64
	URL            string
	Err            error
}

func (r DeliveryResult) Delivered() bool {
	return r.Err == nil
}

// Notifier fans an event out to every active subscription for it. Delivery
// failures are logged and reported, never returned as an error.
type Notifier struct {
	subs      subscriptionLister
	deliverer WebhookDeliverer
	logger    *zap.Logger
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewNotifier(subs subscriptionLister, deliverer WebhookDeliverer, logger *zap.Logger, metrics *observability.Metrics) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Notifier{
		subs:      subs,
		deliverer: deliverer,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (n *Notifier) Notify(ctx context.Context, eventType string) []DeliveryResult {
	subs, err := n.subs.ListActiveByEvent(ctx, eventType)
	if err != nil {
		n.logger.Warn("list webhook subscriptions failed", zap.String("event", eventType), zap.Error(err))
		return nil
	}

	event := domain.WebhookEvent{Event: eventType, Timestamp: n.now().UTC()}
	results := make([]DeliveryResult, 0, len(subs))

	for _, sub := range subs {
		if !sub.IsActive || sub.EventType != eventType {
			continue
		}

		deliverErr := n.deliverer.Deliver(ctx, sub, event)
		n.metrics.WebhookDelivered(deliverErr == nil)
		if deliverErr != nil {
			n.logger.Warn("webhook delivery failed",
				zap.Int64("subscription_id", sub.ID),
				zap.String("url", sub.URL),
				zap.Error(deliverErr),
			)
		}

		results = append(results, DeliveryResult{
			SubscriptionID: sub.ID,
			URL:            sub.URL,
			Err:            deliverErr,
		})
	}

	return results
}
