package input

import (
	"context"

	"line-webhook-gateway/internal/domain"
)

// LineWebhookService interface - Input port (use case)
// Defines what the application can do with LINE webhook events
type LineWebhookService interface {
	// HandleWebhook dispatches verified events from one LINE delivery.
	// It never fails the delivery; per-event problems are logged.
	HandleWebhook(ctx context.Context, request domain.LineWebhookRequest)
}
