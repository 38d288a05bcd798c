package product

import "context"

type ProductBulkUpserter interface {
	BulkUpsert(ctx context.Context, jobID string, rows []ImportRow) (UpsertResult, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p Product) (Product, error)
	List(ctx context.Context, skip, limit int) ([]Product, error)
	GetBySKU(ctx context.Context, sku string) (Product, error)
	Update(ctx context.Context, sku string, patch ProductPatch) (Product, error)
	Delete(ctx context.Context, sku string) (Product, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type WebhookRepository interface {
	Create(ctx context.Context, w WebhookSubscription) (WebhookSubscription, error)
	List(ctx context.Context) ([]WebhookSubscription, error)
	Update(ctx context.Context, id int64, w WebhookSubscription) (WebhookSubscription, error)
	Delete(ctx context.Context, id int64) (WebhookSubscription, error)
	ListActiveByEvent(ctx context.Context, eventType string) ([]WebhookSubscription, error)
}

type JobStatusRegistry interface {
	WriteStatus(ctx context.Context, status JobStatus) error
	ReadStatus(ctx context.Context, jobID string) (JobStatus, error)
}

type JobQueue interface {
	Enqueue(ctx context.Context, ticket JobTicket) error
	Dequeue(ctx context.Context) (JobTicket, error)
}

type PayloadStore interface {
	Save(ctx context.Context, jobID string, data []byte) (string, error)
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}
