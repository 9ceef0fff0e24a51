// Package services orchestrates the notification pipeline: allow-list check,
// classification, extraction, duplicate suppression, persistence and the
// spoken announcement.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"soundpay/internal/announce"
	"soundpay/internal/apps"
	"soundpay/internal/core"
	"soundpay/internal/dedup"
	"soundpay/internal/detect"
)

// PaymentStore is the persistence port for processed payments.
type PaymentStore interface {
	Save(ctx context.Context, p core.Payment) (int64, error)
}

type PaymentService struct {
	store           PaymentStore
	deduper         dedup.Deduper
	announcer       announce.Announcer
	language        core.Language
	announceEnabled bool

	// now is swappable for tests.
	now func() time.Time
}

func NewPaymentService(store PaymentStore, deduper dedup.Deduper, announcer announce.Announcer, language core.Language, announceEnabled bool) *PaymentService {
	if deduper == nil {
		deduper = dedup.Noop{}
	}
	if announcer == nil {
		announcer = announce.LogAnnouncer{}
	}
	return &PaymentService{
		store:           store,
		deduper:         deduper,
		announcer:       announcer,
		language:        language,
		announceEnabled: announceEnabled,
		now:             time.Now,
	}
}

// ProcessNotification runs one notification through the pipeline. The boolean
// reports whether a payment record was stored; false with a nil error is the
// normal "not a received payment" outcome and must stay side-effect free.
func (s *PaymentService) ProcessNotification(ctx context.Context, n core.Notification) (bool, error) {
	if err := n.Validate(); err != nil {
		return false, fmt.Errorf("validate notification: %w", err)
	}

	if !apps.IsPaymentApp(n.PackageName) {
		slog.DebugContext(ctx, "Ignoring notification from non-payment app", "package", n.PackageName)
		return false, nil
	}

	analysis := n.AnalysisText()

	if !detect.IsPaymentReceived(analysis) {
		slog.DebugContext(ctx, "Not a received-payment notification", "package", n.PackageName)
		return false, nil
	}

	info, ok := detect.ParsePaymentInfo(analysis, n.Title)
	if !ok {
		slog.WarnContext(ctx, "No amount found in received-payment notification", "package", n.PackageName)
		return false, nil
	}

	appName := apps.DisplayName(n.PackageName)

	duplicate, err := s.deduper.Seen(ctx, appName, info.Amount, info.SenderName)
	if err != nil {
		// Dedup is best effort: on Redis trouble, keep the event rather than
		// silently dropping a payment.
		slog.ErrorContext(ctx, "Dedup check failed, keeping event", "error", err)
	} else if duplicate {
		slog.InfoContext(ctx, "Duplicate payment notification suppressed",
			"app", appName,
			"amount", info.Amount)
		return false, nil
	}

	payment := core.Payment{
		Amount:           info.Amount,
		SenderName:       info.SenderName,
		AppName:          appName,
		TimestampMillis:  s.now().UnixMilli(),
		NotificationText: analysis,
	}

	id, err := s.store.Save(ctx, payment)
	if err != nil {
		// The dedup claim was taken before the save. Drop it so a requeued
		// redelivery of this event is not suppressed as a duplicate.
		if relErr := s.deduper.Release(ctx, appName, info.Amount, info.SenderName); relErr != nil {
			slog.ErrorContext(ctx, "Failed to release dedup claim after save error", "error", relErr)
		}
		return false, fmt.Errorf("save payment: %w", err)
	}

	if s.announceEnabled {
		// The payment is already stored; an announcement failure never fails
		// the event.
		if err := s.announcer.Announce(ctx, info.Amount, info.SenderName, s.language); err != nil {
			slog.ErrorContext(ctx, "Announcement failed", "id", id, "error", err)
		}
	}

	slog.InfoContext(ctx, "Payment processed",
		"id", id,
		"amount", info.Amount,
		"sender", info.SenderName,
		"app", appName)

	return true, nil
}
