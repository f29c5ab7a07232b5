package input

import (
	"context"

	"line-webhook-gateway/internal/domain"
)

// ZendeskWebhookService interface - Input port for the helpdesk log sink
type ZendeskWebhookService interface {
	HandleWebhook(ctx context.Context, request domain.ZendeskWebhookRequest)
}
