package echo

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mohammadpnp/product-import/internal/application/catalog"
)

type ProductCatalog interface {
	Create(ctx context.Context, in catalog.CreateProductInput) (catalog.ProductOutput, error)
	List(ctx context.Context, skip, limit int) ([]catalog.ProductOutput, error)
	Get(ctx context.Context, sku string) (catalog.ProductOutput, error)
	Update(ctx context.Context, sku string, in catalog.UpdateProductInput) (catalog.ProductOutput, error)
	Delete(ctx context.Context, sku string) (catalog.ProductOutput, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type ProductHandler struct {
	catalog ProductCatalog
}

type createProductRequest struct {
	SKU         string  `json:"sku" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type updateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func NewProductHandler(catalog ProductCatalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.catalog.Create(c.Request().Context(), catalog.CreateProductInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return productError(c, err)
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *ProductHandler) List(c echo.Context) error {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_pagination", "skip must be an integer")
	}
	limit, err := queryInt(c, "limit", catalog.DefaultListLimit)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_pagination", "limit must be an integer")
	}

	out, err := h.catalog.List(c.Request().Context(), skip, limit)
	if err != nil {
		return productError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ProductHandler) Get(c echo.Context) error {
	out, err := h.catalog.Get(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.catalog.Update(c.Request().Context(), c.Param("sku"), catalog.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return productError(c, err)
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	out, err := h.catalog.Delete(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ProductHandler) DeleteAll(c echo.Context) error {
	n, err := h.catalog.DeleteAll(c.Request().Context())
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: map[string]int64{"deleted": n}})
}

func productError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrInvalidProduct):
		return writeError(c, http.StatusBadRequest, "invalid_product", err.Error())
	case errors.Is(err, catalog.ErrInvalidPagination):
		return writeError(c, http.StatusBadRequest, "invalid_pagination", "skip must be >= 0 and limit between 1 and 1000")
	case errors.Is(err, catalog.ErrProductExists):
		return writeError(c, http.StatusConflict, "conflict", "product already exists")
	case errors.Is(err, catalog.ErrProductNotFound):
		return writeError(c, http.StatusNotFound, "not_found", "product not found")
	default:
		return writeError(c, http.StatusInternalServerError, "internal_error", "product operation failed")
	}
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
