package services

import (
	"context"
	"fmt"

	"soundpay/internal/amqp"
	"soundpay/internal/core"
)

// QueueSubmitter hands incoming notifications to the worker over AMQP.
type QueueSubmitter struct {
	client *amqp.Client
}

func NewQueueSubmitter(client *amqp.Client) *QueueSubmitter {
	return &QueueSubmitter{client: client}
}

func (s *QueueSubmitter) Submit(ctx context.Context, n core.Notification) error {
	if err := s.client.PublishNotification(ctx, amqp.NewNotificationEvent(n)); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// InlineSubmitter processes notifications in the request path. Used when no
// broker is configured; a classification miss is still a success for the
// submitter, the caller only needs to know the event was handled.
type InlineSubmitter struct {
	service *PaymentService
}

func NewInlineSubmitter(service *PaymentService) *InlineSubmitter {
	return &InlineSubmitter{service: service}
}

func (s *InlineSubmitter) Submit(ctx context.Context, n core.Notification) error {
	if _, err := s.service.ProcessNotification(ctx, n); err != nil {
		return fmt.Errorf("process notification: %w", err)
	}
	return nil
}
