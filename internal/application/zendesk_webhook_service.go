package application

import (
	"context"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/input"

	"github.com/sirupsen/logrus"
)

var _ input.ZendeskWebhookService = (*ZendeskWebhookService)(nil)

// ZendeskWebhookService struct - logs helpdesk callbacks without verifying or parsing them
type ZendeskWebhookService struct{}

// NewZendeskWebhookService func
func NewZendeskWebhookService() *ZendeskWebhookService {
	return &ZendeskWebhookService{}
}

// HandleWebhook func - Use case: record a Zendesk callback in the log
func (s *ZendeskWebhookService) HandleWebhook(_ context.Context, request domain.ZendeskWebhookRequest) {
	logrus.WithFields(logrus.Fields{
		"content_type": request.ContentType,
		"size":         len(request.Body),
		"received_at":  request.ReceivedAt,
	}).Infof("Received Zendesk webhook: %s", request.Body)
}
