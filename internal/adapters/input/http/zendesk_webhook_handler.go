package http

import (
	"time"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/input"

	"github.com/gofiber/fiber/v2"
)

// ZendeskWebhookHandler struct - unauthenticated log sink for Zendesk callbacks
type ZendeskWebhookHandler struct {
	service input.ZendeskWebhookService
}

// NewZendeskWebhookHandler func
func NewZendeskWebhookHandler(service input.ZendeskWebhookService) *ZendeskWebhookHandler {
	return &ZendeskWebhookHandler{service: service}
}

// HandleWebhook godoc
// @Summary Zendesk Webhook
// @Description Logs the raw body; no verification and no parsing
// @Tags Zendesk
// @Accept application/json
// @Success 204
// @Router /api/webhook/zendesk [post]
func (h *ZendeskWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// fiber reuses the body buffer once the handler returns
	body := append([]byte(nil), c.Body()...)

	h.service.HandleWebhook(c.UserContext(), domain.ZendeskWebhookRequest{
		ContentType: c.Get(fiber.HeaderContentType),
		Body:        body,
		ReceivedAt:  time.Now(),
	})

	return c.SendStatus(fiber.StatusNoContent)
}
