package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"line-webhook-gateway/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// MockZendeskWebhookService implements input.ZendeskWebhookService for testing
type MockZendeskWebhookService struct {
	Requests []domain.ZendeskWebhookRequest
}

func (m *MockZendeskWebhookService) HandleWebhook(ctx context.Context, request domain.ZendeskWebhookRequest) {
	m.Requests = append(m.Requests, request)
}

func TestHealthCheck_IsIdempotent(t *testing.T) {
	app := newTestApp(&MockLineWebhookService{})

	for _, path := range []string{"/api/python", "/api/python", "/health"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		var body MessageResponse
		decodeBody(t, resp, &body)
		if body.Message != "Hello World" {
			t.Errorf("%s: expected Hello World, got %q", path, body.Message)
		}
	}
}

func TestZendeskWebhook_AcceptsAnyBody(t *testing.T) {
	service := &MockZendeskWebhookService{}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, New(), NewLineWebhookHandler(&MockLineWebhookService{}, testChannelSecret), NewZendeskWebhookHandler(service))

	bodies := []string{`{"ticket":{"id":1}}`, "plain text", ""}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/zendesk", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) != 0 {
			t.Errorf("expected empty body, got %q", data)
		}
	}

	if len(service.Requests) != len(bodies) {
		t.Fatalf("expected %d logged requests, got %d", len(bodies), len(service.Requests))
	}
	if string(service.Requests[0].Body) != `{"ticket":{"id":1}}` {
		t.Errorf("unexpected body: %s", service.Requests[0].Body)
	}
	if service.Requests[0].ContentType != "application/json" {
		t.Errorf("unexpected content type: %s", service.Requests[0].ContentType)
	}
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	app := newTestApp(&MockLineWebhookService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/does-not-exist", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	var body ErrorResponse
	decodeBody(t, resp, &body)
	if body.Detail == "" {
		t.Error("expected error detail")
	}
}
