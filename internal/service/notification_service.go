package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/property-registry/internal/config"
	"github.com/spec-kit/property-registry/internal/events"
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
	n.dispatcher.Subscribe(events.EventUserRequested, n.handleUserLifecycle)
	n.dispatcher.Subscribe(events.EventUserApproved, n.handleUserLifecycle)
	n.dispatcher.Subscribe(events.EventAccountRecharged, n.handleAccountRecharged)
	n.dispatcher.Subscribe(events.EventPropertyRequested, n.handlePropertyLifecycle)
	n.dispatcher.Subscribe(events.EventPropertyApproved, n.handlePropertyLifecycle)
	n.dispatcher.Subscribe(events.EventPropertyUpdated, n.handlePropertyLifecycle)
	n.dispatcher.Subscribe(events.EventPropertyPurchased, n.handlePropertyLifecycle)
}

func (n *NotificationService) handleUserLifecycle(ctx context.Context, event events.Event) error {
	n.logger.Info("user lifecycle event",
		zap.String("event_type", string(event.Type)),
		zap.String("subject", event.Subject),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAccountRecharged(ctx context.Context, event events.Event) error {
	n.logger.Info("account recharged",
		zap.String("subject", event.Subject),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePropertyLifecycle(ctx context.Context, event events.Event) error {
	n.logger.Info("property lifecycle event",
		zap.String("event_type", string(event.Type)),
		zap.String("subject", event.Subject),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject", event.Subject),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject", event.Subject),
		zap.String("event_type", string(event.Type)))
}
