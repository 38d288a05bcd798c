package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, productHandler *ProductHandler, webhookHandler *WebhookHandler) {
	if server.Validator == nil {
		server.Validator = NewRequestValidator()
	}

	api := server.Group("/api/v1")

	if importHandler != nil {
		api.POST("/upload", importHandler.Upload)
		api.GET("/upload/:job_id", importHandler.Status)
	}

	if productHandler != nil {
		api.POST("/products", productHandler.Create)
		api.GET("/products", productHandler.List)
		api.DELETE("/products", productHandler.DeleteAll)
		api.GET("/products/:sku", productHandler.Get)
		api.PUT("/products/:sku", productHandler.Update)
		api.DELETE("/products/:sku", productHandler.Delete)
	}

	if webhookHandler != nil {
		api.POST("/webhooks", webhookHandler.Create)
		api.GET("/webhooks", webhookHandler.List)
		api.PUT("/webhooks/:id", webhookHandler.Replace)
		api.DELETE("/webhooks/:id", webhookHandler.Delete)
	}
}
