package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mohammadpnp/product-import/internal/application/catalog"
	httpecho "github.com/mohammadpnp/product-import/internal/interfaces/http/echo"
)

type fakeProductCatalog struct {
	err       error
	created   catalog.CreateProductInput
	listSkip  int
	listLimit int
}

func (f *fakeProductCatalog) Create(ctx context.Context, in catalog.CreateProductInput) (catalog.ProductOutput, error) {
	f.created = in
	if f.err != nil {
		return catalog.ProductOutput{}, f.err
	}
	return catalog.ProductOutput{SKU: in.SKU, Name: in.Name, IsActive: true}, nil
}

func (f *fakeProductCatalog) List(ctx context.Context, skip, limit int) ([]catalog.ProductOutput, error) {
	f.listSkip, f.listLimit = skip, limit
	return []catalog.ProductOutput{{SKU: "A"}}, f.err
}

func (f *fakeProductCatalog) Get(ctx context.Context, sku string) (catalog.ProductOutput, error) {
	return catalog.ProductOutput{SKU: sku}, f.err
}

func (f *fakeProductCatalog) Update(ctx context.Context, sku string, in catalog.UpdateProductInput) (catalog.ProductOutput, error) {
	return catalog.ProductOutput{SKU: sku}, f.err
}

func (f *fakeProductCatalog) Delete(ctx context.Context, sku string) (catalog.ProductOutput, error) {
	return catalog.ProductOutput{SKU: sku}, f.err
}

func (f *fakeProductCatalog) DeleteAll(ctx context.Context) (int64, error) {
	return 7, f.err
}

type fakeWebhookCatalog struct {
	err error
}

func (f *fakeWebhookCatalog) Create(ctx context.Context, in catalog.WebhookInput) (catalog.WebhookOutput, error) {
	return catalog.WebhookOutput{ID: 1, URL: in.URL, EventType: in.EventType}, f.err
}

func (f *fakeWebhookCatalog) List(ctx context.Context) ([]catalog.WebhookOutput, error) {
	return nil, f.err
}

func (f *fakeWebhookCatalog) Replace(ctx context.Context, id int64, in catalog.WebhookInput) (catalog.WebhookOutput, error) {
	return catalog.WebhookOutput{ID: id}, f.err
}

func (f *fakeWebhookCatalog) Delete(ctx context.Context, id int64) (catalog.WebhookOutput, error) {
	return catalog.WebhookOutput{ID: id}, f.err
}

func newCatalogServer(products *fakeProductCatalog, webhooks *fakeWebhookCatalog) *echo.Echo {
	e := echo.New()
	e.Use(httpecho.RequestLogger(zap.NewNop()))
	httpecho.RegisterRoutes(e, nil, httpecho.NewProductHandler(products), httpecho.NewWebhookHandler(webhooks))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProductHandlerCreate(t *testing.T) {
	t.Parallel()

	products := &fakeProductCatalog{}
	e := newCatalogServer(products, &fakeWebhookCatalog{})

	rec := doJSON(e, http.MethodPost, "/api/v1/products", `{"sku":"A1","name":"Lamp","is_active":false}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if products.created.SKU != "A1" || products.created.IsActive == nil || *products.created.IsActive {
		t.Fatalf("unexpected create input: %+v", products.created)
	}
}

func TestProductHandlerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		method string
		path   string
		body   string
		want   int
	}{
		{name: "conflict", err: catalog.ErrProductExists, method: http.MethodPost, path: "/api/v1/products", body: `{"sku":"A","name":"x"}`, want: http.StatusConflict},
		{name: "invalid", err: catalog.ErrInvalidProduct, method: http.MethodPost, path: "/api/v1/products", body: `{"sku":"","name":"x"}`, want: http.StatusBadRequest},
		{name: "missing name", method: http.MethodPost, path: "/api/v1/products", body: `{"sku":"A"}`, want: http.StatusBadRequest},
		{name: "blank patch name", method: http.MethodPut, path: "/api/v1/products/A", body: `{"name":""}`, want: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPost, path: "/api/v1/products", body: `{"sku":`, want: http.StatusBadRequest},
		{name: "not found", err: catalog.ErrProductNotFound, method: http.MethodGet, path: "/api/v1/products/missing", want: http.StatusNotFound},
		{name: "update not found", err: catalog.ErrProductNotFound, method: http.MethodPut, path: "/api/v1/products/missing", body: `{"name":"x"}`, want: http.StatusNotFound},
		{name: "bad limit", method: http.MethodGet, path: "/api/v1/products?limit=abc", want: http.StatusBadRequest},
		{name: "pagination", err: catalog.ErrInvalidPagination, method: http.MethodGet, path: "/api/v1/products?skip=-1", want: http.StatusBadRequest},
		{name: "store", err: catalog.ErrCatalogStore, method: http.MethodDelete, path: "/api/v1/products", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newCatalogServer(&fakeProductCatalog{err: tt.err}, &fakeWebhookCatalog{})
			rec := doJSON(e, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestProductHandlerListAndDeleteAll(t *testing.T) {
	t.Parallel()

	products := &fakeProductCatalog{}
	e := newCatalogServer(products, &fakeWebhookCatalog{})

	rec := doJSON(e, http.MethodGet, "/api/v1/products?skip=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if products.listSkip != 5 || products.listLimit != catalog.DefaultListLimit {
		t.Fatalf("unexpected pagination: skip=%d limit=%d", products.listSkip, products.listLimit)
	}

	rec = doJSON(e, http.MethodDelete, "/api/v1/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got struct {
		Data struct {
			Deleted int64 `json:"deleted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if got.Data.Deleted != 7 {
		t.Fatalf("expected deleted=7, got %d", got.Data.Deleted)
	}
}

func TestWebhookHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		method string
		path   string
		body   string
		want   int
	}{
		{name: "create", method: http.MethodPost, path: "/api/v1/webhooks", body: `{"url":"https://a.example","event_type":"upload_completed"}`, want: http.StatusCreated},
		{name: "create invalid", err: catalog.ErrInvalidWebhook, method: http.MethodPost, path: "/api/v1/webhooks", body: `{"url":"nope","event_type":"upload_completed"}`, want: http.StatusBadRequest},
		{name: "list", method: http.MethodGet, path: "/api/v1/webhooks", want: http.StatusOK},
		{name: "replace", method: http.MethodPut, path: "/api/v1/webhooks/3", body: `{"url":"https://a.example","event_type":"upload_completed","is_active":false}`, want: http.StatusOK},
		{name: "replace bad id", method: http.MethodPut, path: "/api/v1/webhooks/abc", body: `{}`, want: http.StatusBadRequest},
		{name: "delete missing", err: catalog.ErrWebhookNotFound, method: http.MethodDelete, path: "/api/v1/webhooks/9", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newCatalogServer(&fakeProductCatalog{}, &fakeWebhookCatalog{err: tt.err})
			rec := doJSON(e, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
