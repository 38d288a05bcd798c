package product

import (
	"net/url"
	"strings"
	"time"
)

const EventUploadCompleted = "upload_completed"

type WebhookSubscription struct {
	ID        int64
	URL       string
	EventType string
	IsActive  bool
	CreatedAt time.Time
}

func NewWebhookSubscription(rawURL, eventType string, isActive bool) (WebhookSubscription, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return WebhookSubscription{}, ErrInvalidWebhookURL
	}

	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return WebhookSubscription{}, ErrInvalidEventType
	}

	return WebhookSubscription{
		URL:       rawURL,
		EventType: eventType,
		IsActive:  isActive,
	}, nil
}

// WebhookEvent is the body POSTed to subscribers.
type WebhookEvent struct {
	Event     string
	Timestamp time.Time
}
