// Package worker consumes notification events from AMQP and runs them
// through the payment pipeline.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"soundpay/internal/amqp"
	"soundpay/internal/services"
)

type NotificationWorker struct {
	service *services.PaymentService
}

func NewNotificationWorker(service *services.PaymentService) *NotificationWorker {
	return &NotificationWorker{service: service}
}

// HandleEvent processes a single notification event from AMQP. A returned
// error causes the message to be requeued; classification misses are a
// normal outcome and ack the message.
func (w *NotificationWorker) HandleEvent(ctx context.Context, event *amqp.NotificationEvent) error {
	slog.InfoContext(ctx, "Processing notification event",
		"event_id", event.EventID,
		"package", event.PackageName)

	stored, err := w.service.ProcessNotification(ctx, event.Notification())
	if err != nil {
		return fmt.Errorf("process event %s: %w", event.EventID, err)
	}

	if !stored {
		slog.DebugContext(ctx, "Event did not produce a payment", "event_id", event.EventID)
	}

	return nil
}
