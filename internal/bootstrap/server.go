package bootstrap

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohammadpnp/product-import/internal/application/catalog"
	app "github.com/mohammadpnp/product-import/internal/application/product"
	domain "github.com/mohammadpnp/product-import/internal/domain/product"
	"github.com/mohammadpnp/product-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/product-import/internal/interfaces/http/echo"
	"github.com/mohammadpnp/product-import/internal/observability"
)

type ServerDeps struct {
	DB             *gorm.DB
	Payloads       domain.PayloadStore
	Registry       domain.JobStatusRegistry
	Queue          domain.JobQueue
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	UploadMaxBytes int64
}

func NewHTTPServer(deps ServerDeps) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(httpecho.RequestLogger(deps.Logger))
	if deps.UploadMaxBytes > 0 {
		server.Use(middleware.BodyLimit(strconv.FormatInt(deps.UploadMaxBytes, 10)))
	}

	startImport := app.NewStartImport(deps.Payloads, deps.Registry, deps.Queue, deps.Logger)
	getImportStatus := app.NewGetImportStatus(deps.Registry)
	importHandler := httpecho.NewImportHandler(startImport, getImportStatus)

	productService := catalog.NewProductService(repository.NewProductRepository(deps.DB))
	productHandler := httpecho.NewProductHandler(productService)

	webhookService := catalog.NewWebhookService(repository.NewWebhookRepository(deps.DB))
	webhookHandler := httpecho.NewWebhookHandler(webhookService)

	httpecho.RegisterRoutes(server, importHandler, productHandler, webhookHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	server.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))

	return server
}
