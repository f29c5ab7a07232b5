package output

import (
	"context"

	"line-webhook-gateway/internal/domain"
)

// LineClient interface - Output port
// Defines what the application needs from LINE messaging platform
type LineClient interface {
	// ReplyMessage sends reply messages to LINE user via reply token
	ReplyMessage(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
}
