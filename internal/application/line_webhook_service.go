package application

import (
	"context"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/input"
	"line-webhook-gateway/internal/ports/output"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("line-webhook-gateway/internal/application")

// Compile-time check to ensure LineWebhookService implements the input port
var _ input.LineWebhookService = (*LineWebhookService)(nil)

// LineWebhookService struct - Application service implementing LINE webhook use cases
type LineWebhookService struct {
	lineClient output.LineClient
	replyMode  domain.ReplyMode
}

// NewLineWebhookService func - Creates new LINE webhook service.
// Unknown reply modes fall back to ReplyModeStub.
func NewLineWebhookService(lineClient output.LineClient, replyMode domain.ReplyMode) *LineWebhookService {
	if replyMode != domain.ReplyModeEcho {
		replyMode = domain.ReplyModeStub
	}
	return &LineWebhookService{
		lineClient: lineClient,
		replyMode:  replyMode,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) {
	ctx, span := tracer.Start(ctx, "LineWebhookService.HandleWebhook")
	defer span.End()
	span.SetAttributes(
		attribute.String("line.destination", request.Destination),
		attribute.Int("line.event_count", len(request.Events)),
	)

	for _, event := range request.Events {
		meta := event.EventMeta()
		logrus.Infof("Received LINE event: id=%s, type=%s, source=%s",
			meta.ID, event.EventType(), meta.Source.Type)
		span.AddEvent("line.event", trace.WithAttributes(
			attribute.String("line.event_type", string(event.EventType())),
			attribute.String("line.source_type", string(meta.Source.Type)),
		))

		switch e := event.(type) {
		case domain.LinePostbackEvent:
			s.handlePostbackEvent(ctx, e)
		case domain.LineMessageEvent, domain.LineFollowEvent, domain.LineUnfollowEvent, domain.LineUnsupportedEvent:
			logrus.Debugf("Ignoring LINE event: type=%s", event.EventType())
		default:
			logrus.Warnf("Unhandled LINE event variant: %T", event)
		}
	}
}

// handlePostbackEvent - Business logic for postback events from a user chat
func (s *LineWebhookService) handlePostbackEvent(ctx context.Context, event domain.LinePostbackEvent) {
	if event.Source.Type != domain.LineSourceTypeUser {
		logrus.Debugf("Ignoring postback from %s source", event.Source.Type)
		return
	}

	userID := event.Source.UserID
	log := logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"reply_token": event.ReplyToken,
		"data":        event.Data,
	})

	switch s.replyMode {
	case domain.ReplyModeEcho:
		s.replyUserID(ctx, log, userID, event.ReplyToken)
	default:
		// TODO: resolve the MBS login for userID, then fetch the wallet and its near-expiry balance
		log.Info("Postback received, wallet lookup not implemented")
	}
}

// replyUserID sends the user ID back through the reply token. Failures are
// logged and dropped; the webhook response does not change.
func (s *LineWebhookService) replyUserID(ctx context.Context, log *logrus.Entry, userID, replyToken string) {
	replyReq := domain.LineReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []domain.LineOutgoingMessage{
			{
				Type: domain.LineMessageTypeText,
				Text: userID,
			},
		},
	}

	if _, err := s.lineClient.ReplyMessage(ctx, replyReq); err != nil {
		log.Errorf("Failed to send reply: %v", err)
		trace.SpanFromContext(ctx).RecordError(err)
		return
	}
	log.Info("Replied to postback with user ID")
}
