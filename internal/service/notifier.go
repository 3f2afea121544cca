package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBusinessCreated, n.handleBusinessCreated)
	n.dispatcher.Subscribe(events.EventReviewSubmitted, n.handleReviewSubmitted)
	n.dispatcher.Subscribe(events.EventReviewApproved, n.handleReviewApproved)
	n.dispatcher.Subscribe(events.EventAggregateRefreshFailed, n.handleRefreshFailed)
}

func (n *NotificationService) handleBusinessCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BusinessCreated", zap.String("business_id", event.BusinessID.String()), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReviewSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ReviewSubmitted", zap.String("business_id", event.BusinessID.String()), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReviewApproved(ctx context.Context, event events.Event) error {
	n.logger.Info("ReviewApproved", zap.String("business_id", event.BusinessID.String()), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRefreshFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("AggregateRefreshFailed", zap.String("business_id", event.BusinessID.String()), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("business_id", event.BusinessID.String()),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("business_id", event.BusinessID.String()),
		zap.String("event_type", string(event.Type)))
}
