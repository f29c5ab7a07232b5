package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

// HeaderLineSignature carries the base64 HMAC-SHA256 of the body
const HeaderLineSignature = "X-Line-Signature"

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// @Summary LINE Webhook
// @Description Verifies X-Line-Signature and dispatches webhook events from LINE Messaging API
// @Tags LINE
// @Accept application/json
// @Produce json
// @Param X-Line-Signature header string true "base64 HMAC-SHA256 of the body"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/line/webhook [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	if c.Get(HeaderLineSignature) == "" {
		logrus.Warn("Rejected LINE webhook without signature")
		return c.Status(fiber.StatusBadRequest).JSON(MissingSignature)
	}

	// Convert Fiber request to http.Request for LINE SDK
	httpReq, err := http.NewRequestWithContext(c.UserContext(), http.MethodPost, c.OriginalURL(), bytes.NewReader(c.Body()))
	if err != nil {
		logrus.Errorf("Failed to create http request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(InternalServerError)
	}

	// Copy headers
	c.Request().Header.VisitAll(func(key, value []byte) {
		httpReq.Header.Set(string(key), string(value))
	})

	// Parse and validate webhook request
	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			logrus.Warn("Rejected LINE webhook with invalid signature")
			return c.Status(fiber.StatusBadRequest).JSON(InvalidSignature)
		}
		logrus.Errorf("Failed to parse webhook request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(InvalidRequestBody)
	}

	// Convert LINE SDK events to domain events
	domainEvents := make([]domain.LineEvent, 0, len(cb.Events))
	for _, event := range cb.Events {
		domainEvents = append(domainEvents, convertToDomainEvent(event))
	}

	h.service.HandleWebhook(c.UserContext(), domain.LineWebhookRequest{
		Destination: cb.Destination,
		Events:      domainEvents,
	})

	return c.Status(fiber.StatusOK).JSON(OK)
}

// convertToDomainEvent - Converts LINE SDK event to domain event
func convertToDomainEvent(event webhook.EventInterface) domain.LineEvent {
	switch e := event.(type) {
	case webhook.PostbackEvent:
		postback := domain.LinePostbackEvent{
			LineEventMeta: convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken),
		}
		if e.Postback != nil {
			postback.Data = e.Postback.Data
			postback.Params = e.Postback.Params
		}
		return postback
	case webhook.MessageEvent:
		return domain.LineMessageEvent{
			LineEventMeta: convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken),
			Message:       convertMessage(e.Message),
		}
	case webhook.FollowEvent:
		return domain.LineFollowEvent{
			LineEventMeta: convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken),
		}
	case webhook.UnfollowEvent:
		return domain.LineUnfollowEvent{
			LineEventMeta: convertMeta(e.WebhookEventId, e.Timestamp, e.Source, ""),
		}
	case webhook.UnsendEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, ""))
	case webhook.JoinEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken))
	case webhook.LeaveEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, ""))
	case webhook.MemberJoinedEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken))
	case webhook.MemberLeftEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, ""))
	case webhook.BeaconEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken))
	case webhook.AccountLinkEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken))
	case webhook.VideoPlayCompleteEvent:
		return unsupported(e, convertMeta(e.WebhookEventId, e.Timestamp, e.Source, e.ReplyToken))
	case webhook.UnknownEvent:
		return unsupported(e, convertRawMeta(e.Raw))
	default:
		return domain.LineUnsupportedEvent{Kind: event.GetType()}
	}
}

func unsupported(event webhook.EventInterface, meta domain.LineEventMeta) domain.LineUnsupportedEvent {
	return domain.LineUnsupportedEvent{LineEventMeta: meta, Kind: event.GetType()}
}

// convertRawMeta reads the common event fields of an event kind the SDK does not know
func convertRawMeta(raw map[string]json.RawMessage) domain.LineEventMeta {
	var meta struct {
		WebhookEventID string `json:"webhookEventId"`
		Timestamp      int64  `json:"timestamp"`
		ReplyToken     string `json:"replyToken"`
	}
	for key, dst := range map[string]any{
		"webhookEventId": &meta.WebhookEventID,
		"timestamp":      &meta.Timestamp,
		"replyToken":     &meta.ReplyToken,
	} {
		if value, ok := raw[key]; ok {
			if err := json.Unmarshal(value, dst); err != nil {
				logrus.Debugf("Ignoring unreadable %s on unknown LINE event: %v", key, err)
			}
		}
	}

	var source webhook.SourceInterface
	if value, ok := raw["source"]; ok {
		parsed, err := webhook.UnmarshalSource(value)
		if err != nil {
			logrus.Debugf("Ignoring unreadable source on unknown LINE event: %v", err)
		} else {
			source = parsed
		}
	}
	return convertMeta(meta.WebhookEventID, meta.Timestamp, source, meta.ReplyToken)
}

func convertMeta(id string, timestamp int64, source webhook.SourceInterface, replyToken string) domain.LineEventMeta {
	return domain.LineEventMeta{
		ID:         id,
		Timestamp:  time.UnixMilli(timestamp),
		Source:     convertSource(source),
		ReplyToken: replyToken,
	}
}

// convertMessage - Converts message content, only text and sticker fields are read
func convertMessage(content webhook.MessageContentInterface) domain.LineMessage {
	switch msg := content.(type) {
	case webhook.TextMessageContent:
		return domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeText,
			Text: msg.Text,
		}
	case webhook.StickerMessageContent:
		return domain.LineMessage{
			ID:        msg.Id,
			Type:      domain.LineMessageTypeSticker,
			PackageID: msg.PackageId,
			StickerID: msg.StickerId,
		}
	case webhook.ImageMessageContent:
		return domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeImage,
		}
	default:
		return domain.LineMessage{Type: domain.LineMessageTypeOther}
	}
}

// convertSource - Converts event source
func convertSource(source webhook.SourceInterface) domain.LineSource {
	switch s := source.(type) {
	case webhook.UserSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeUser,
			UserID: s.UserId,
		}
	case webhook.GroupSource:
		return domain.LineSource{
			Type:    domain.LineSourceTypeGroup,
			UserID:  s.UserId,
			GroupID: s.GroupId,
		}
	case webhook.RoomSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeRoom,
			UserID: s.UserId,
			RoomID: s.RoomId,
		}
	default:
		return domain.LineSource{}
	}
}
