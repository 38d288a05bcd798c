package product

import "errors"

var (
	ErrInvalidSKU         = errors.New("invalid sku")
	ErrInvalidProductName = errors.New("invalid product name")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductExists      = errors.New("product already exists")
	ErrInvalidWebhookURL  = errors.New("invalid webhook url")
	ErrInvalidEventType   = errors.New("invalid event type")
	ErrWebhookNotFound    = errors.New("webhook not found")
	ErrPayloadNotFound    = errors.New("import payload not found")
)
