package http

import (
	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts every endpoint of the gateway on app
func RegisterRoutes(app *fiber.App, hdl *HTTPHandler, lineHdl *LineWebhookHandler, zendeskHdl *ZendeskWebhookHandler) {
	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	api := app.Group("/api")
	{
		api.Get("/python", hdl.HealthCheck)
		api.Post("/line/webhook", lineHdl.HandleWebhook)
	}

	webhook := api.Group("/webhook")
	{
		webhook.Post("/line", lineHdl.HandleWebhook)
		webhook.Post("/zendesk", zendeskHdl.HandleWebhook)
	}
}
