package echo

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mohammadpnp/product-import/internal/application/catalog"
)

type WebhookCatalog interface {
	Create(ctx context.Context, in catalog.WebhookInput) (catalog.WebhookOutput, error)
	List(ctx context.Context) ([]catalog.WebhookOutput, error)
	Replace(ctx context.Context, id int64, in catalog.WebhookInput) (catalog.WebhookOutput, error)
	Delete(ctx context.Context, id int64) (catalog.WebhookOutput, error)
}

type WebhookHandler struct {
	catalog WebhookCatalog
}

type webhookRequest struct {
	URL       string `json:"url" validate:"required,url"`
	EventType string `json:"event_type" validate:"required"`
	IsActive  *bool  `json:"is_active"`
}

func NewWebhookHandler(catalog WebhookCatalog) *WebhookHandler {
	return &WebhookHandler{catalog: catalog}
}

func (h *WebhookHandler) Create(c echo.Context) error {
	var req webhookRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.catalog.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return webhookError(c, err)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *WebhookHandler) List(c echo.Context) error {
	out, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return webhookError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *WebhookHandler) Replace(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_webhook_id", "id must be an integer")
	}

	var req webhookRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.catalog.Replace(c.Request().Context(), id, req.toInput())
	if err != nil {
		return webhookError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *WebhookHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_webhook_id", "id must be an integer")
	}

	out, err := h.catalog.Delete(c.Request().Context(), id)
	if err != nil {
		return webhookError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (r webhookRequest) toInput() catalog.WebhookInput {
	return catalog.WebhookInput{
		URL:       r.URL,
		EventType: r.EventType,
		IsActive:  r.IsActive,
	}
}

func webhookError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidWebhook):
		return writeError(c, http.StatusBadRequest, "invalid_webhook", err.Error())
	case errors.Is(err, catalog.ErrWebhookNotFound):
		return writeError(c, http.StatusNotFound, "not_found", "webhook not found")
	default:
		return writeError(c, http.StatusInternalServerError, "internal_error", "webhook operation failed")
	}
}
