package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"line-webhook-gateway/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Mock implementations for testing

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc func(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)

	// Captured values for assertions
	ReplyRequests []domain.LineReplyMessageRequest
}

func (m *MockLineClient) ReplyMessage(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	m.ReplyRequests = append(m.ReplyRequests, request)
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(ctx, request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

// Test helper to create a postback event
func createPostbackEvent(source domain.LineSource, replyToken string) domain.LinePostbackEvent {
	return domain.LinePostbackEvent{
		LineEventMeta: domain.LineEventMeta{
			ID:         "01HTEST",
			Timestamp:  time.Unix(1700000000, 0),
			Source:     source,
			ReplyToken: replyToken,
		},
		Data: "action=balance",
	}
}

func userSource(userID string) domain.LineSource {
	return domain.LineSource{Type: domain.LineSourceTypeUser, UserID: userID}
}

func TestNewLineWebhookService_DefaultsToStubMode(t *testing.T) {
	service := NewLineWebhookService(&MockLineClient{}, domain.ReplyMode("unknown"))

	if service.replyMode != domain.ReplyModeStub {
		t.Errorf("Expected replyMode to be %q, got %q", domain.ReplyModeStub, service.replyMode)
	}
}

func TestHandleWebhook_EchoModeRepliesWithUserID(t *testing.T) {
	// Arrange
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient, domain.ReplyModeEcho)
	request := domain.LineWebhookRequest{
		Events: []domain.LineEvent{createPostbackEvent(userSource("U123"), "R1")},
	}

	// Act
	service.HandleWebhook(context.Background(), request)

	// Assert
	if len(mockLineClient.ReplyRequests) != 1 {
		t.Fatalf("Expected exactly 1 reply, got %d", len(mockLineClient.ReplyRequests))
	}
	reply := mockLineClient.ReplyRequests[0]
	if reply.ReplyToken != "R1" {
		t.Errorf("Expected reply token 'R1', got '%s'", reply.ReplyToken)
	}
	if len(reply.Messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(reply.Messages))
	}
	if reply.Messages[0].Type != domain.LineMessageTypeText {
		t.Errorf("Expected text message, got %s", reply.Messages[0].Type)
	}
	if reply.Messages[0].Text != "U123" {
		t.Errorf("Expected text 'U123', got '%s'", reply.Messages[0].Text)
	}
}

func TestHandleWebhook_StubModeMakesNoOutboundCall(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient, domain.ReplyModeStub)
	request := domain.LineWebhookRequest{
		Events: []domain.LineEvent{createPostbackEvent(userSource("U123"), "R1")},
	}

	service.HandleWebhook(context.Background(), request)

	if len(mockLineClient.ReplyRequests) != 0 {
		t.Errorf("Expected no replies in stub mode, got %d", len(mockLineClient.ReplyRequests))
	}

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Postback received, wallet lookup not implemented" {
			found = true
			if entry.Data["user_id"] != "U123" {
				t.Errorf("Expected user_id field 'U123', got %v", entry.Data["user_id"])
			}
			if entry.Data["reply_token"] != "R1" {
				t.Errorf("Expected reply_token field 'R1', got %v", entry.Data["reply_token"])
			}
		}
	}
	if !found {
		t.Error("Expected the stubbed postback to be logged")
	}
}

func TestHandleWebhook_SkipsNonUserSources(t *testing.T) {
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient, domain.ReplyModeEcho)
	request := domain.LineWebhookRequest{
		Events: []domain.LineEvent{
			createPostbackEvent(domain.LineSource{Type: domain.LineSourceTypeGroup, GroupID: "G1", UserID: "U1"}, "R1"),
			createPostbackEvent(domain.LineSource{Type: domain.LineSourceTypeRoom, RoomID: "R9", UserID: "U2"}, "R2"),
		},
	}

	service.HandleWebhook(context.Background(), request)

	if len(mockLineClient.ReplyRequests) != 0 {
		t.Errorf("Expected no replies for group/room sources, got %d", len(mockLineClient.ReplyRequests))
	}
}

func TestHandleWebhook_SkipsNonPostbackEvents(t *testing.T) {
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient, domain.ReplyModeEcho)
	meta := domain.LineEventMeta{Source: userSource("U123"), ReplyToken: "R1"}
	request := domain.LineWebhookRequest{
		Events: []domain.LineEvent{
			domain.LineMessageEvent{LineEventMeta: meta, Message: domain.LineMessage{Type: domain.LineMessageTypeText, Text: "hi"}},
			domain.LineFollowEvent{LineEventMeta: meta},
			domain.LineUnfollowEvent{LineEventMeta: domain.LineEventMeta{Source: userSource("U123")}},
			domain.LineUnsupportedEvent{LineEventMeta: meta, Kind: "beacon"},
		},
	}

	service.HandleWebhook(context.Background(), request)

	if len(mockLineClient.ReplyRequests) != 0 {
		t.Errorf("Expected no replies for non-postback events, got %d", len(mockLineClient.ReplyRequests))
	}
}

func TestHandleWebhook_ReplyFailureIsSwallowed(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	mockLineClient := &MockLineClient{
		ReplyMessageFunc: func(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
			return nil, errors.New("invalid reply token")
		},
	}
	service := NewLineWebhookService(mockLineClient, domain.ReplyModeEcho)
	request := domain.LineWebhookRequest{
		Events: []domain.LineEvent{
			createPostbackEvent(userSource("U1"), "R1"),
			createPostbackEvent(userSource("U2"), "R2"),
		},
	}

	service.HandleWebhook(context.Background(), request)

	// The first failure must not stop the second event
	if len(mockLineClient.ReplyRequests) != 2 {
		t.Fatalf("Expected 2 reply attempts, got %d", len(mockLineClient.ReplyRequests))
	}

	var errorsLogged int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			errorsLogged++
		}
	}
	if errorsLogged != 2 {
		t.Errorf("Expected 2 logged reply failures, got %d", errorsLogged)
	}
}

func TestHandleWebhook_EmptyRequest(t *testing.T) {
	mockLineClient := &MockLineClient{}
	service := NewLineWebhookService(mockLineClient, domain.ReplyModeEcho)

	service.HandleWebhook(context.Background(), domain.LineWebhookRequest{})

	if len(mockLineClient.ReplyRequests) != 0 {
		t.Errorf("Expected no replies, got %d", len(mockLineClient.ReplyRequests))
	}
}
