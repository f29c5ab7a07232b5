package domain

import "time"

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		Destination string
		Events      []LineEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string                `validate:"required"`
		Messages   []LineOutgoingMessage `validate:"required,min=1,max=5,dive"`
	}

	// LineOutgoingMessage struct - Domain LINE outgoing message DTO
	LineOutgoingMessage struct {
		Type LineMessageType `validate:"required"`
		Text string          `validate:"max=5000"`
	}

	// LineMessageResponse struct - Domain LINE API response DTO
	LineMessageResponse struct {
		Status  string
		Message string
	}

	// ZendeskWebhookRequest struct - Raw, unverified Zendesk callback
	ZendeskWebhookRequest struct {
		ContentType string
		Body        []byte
		ReceivedAt  time.Time
	}
)
