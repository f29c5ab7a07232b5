package line

import (
	"context"
	"fmt"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/output"
	"line-webhook-gateway/pkg/validator"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure LineClientAdapter implements LineClient interface
var _ output.LineClient = (*LineClientAdapter)(nil)

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	client    *messaging_api.MessagingApiAPI
	validator validator.Validator
}

// NewLineClientAdapter func - Creates new LINE client adapter.
// endpoint overrides the LINE API base URL when not empty.
func NewLineClientAdapter(channelToken, endpoint string) (*LineClientAdapter, error) {
	var options []messaging_api.MessagingApiAPIOption
	if endpoint != "" {
		options = append(options, messaging_api.WithEndpoint(endpoint))
	}

	client, err := messaging_api.NewMessagingApiAPI(channelToken, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	return &LineClientAdapter{
		client:    client,
		validator: validator.New(),
	}, nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token.
// The context is not forwarded: the SDK's WithContext stores it on the
// shared client, which every request uses concurrently.
func (a *LineClientAdapter) ReplyMessage(_ context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	if err := a.validator.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidReplyRequest, err)
	}

	// Convert domain messages to LINE SDK messages
	messages := make([]messaging_api.MessageInterface, 0, len(request.Messages))

	for _, msg := range request.Messages {
		lineMsg, err := a.convertToLineMessage(msg)
		if err != nil {
			logrus.Errorf("Failed to convert message: %v", err)
			continue
		}
		messages = append(messages, lineMsg)
	}

	if len(messages) == 0 {
		return nil, domain.ErrNoValidMessages
	}

	// Send reply via LINE SDK
	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}

	_, err := a.client.ReplyMessage(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Infof("Successfully sent reply message with token: %s", request.ReplyToken)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Reply message sent successfully",
	}, nil
}

// convertToLineMessage - Helper function to convert domain message to LINE SDK message
func (a *LineClientAdapter) convertToLineMessage(msg domain.LineOutgoingMessage) (messaging_api.MessageInterface, error) {
	switch msg.Type {
	case domain.LineMessageTypeText:
		return &messaging_api.TextMessage{
			Text: msg.Text,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMessageType, msg.Type)
	}
}
