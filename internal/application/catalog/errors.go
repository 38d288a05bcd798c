package catalog

import "errors"

var (
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidWebhook    = errors.New("invalid webhook")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductExists     = errors.New("product already exists")
	ErrWebhookNotFound   = errors.New("webhook not found")
	ErrCatalogStore      = errors.New("catalog store failure")
)
