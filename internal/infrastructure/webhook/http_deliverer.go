package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

const DefaultTimeout = 5 * time.Second

type eventBody struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
}

// HTTPDeliverer POSTs an event as JSON to a subscription URL. Any 2xx is a
// successful delivery.
type HTTPDeliverer struct {
	client *http.Client
}

func NewHTTPDeliverer(timeout time.Duration) *HTTPDeliverer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPDeliverer{client: &http.Client{Timeout: timeout}}
}

func (d *HTTPDeliverer) Deliver(ctx context.Context, sub domain.WebhookSubscription, event domain.WebhookEvent) error {
	body, err := json.Marshal(eventBody{
		Event:     event.Event,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook %s: %w", sub.URL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post webhook %s: unexpected status %d", sub.URL, resp.StatusCode)
	}
	return nil
}
