// Package announce turns stored payments into spoken announcements.
package announce

import (
	"context"
	"fmt"
	"log/slog"

	"soundpay/internal/core"
)

// Announcer is the outbound port for speech synthesis. Implementations must
// tolerate an empty sender name.
type Announcer interface {
	Announce(ctx context.Context, amount, sender string, lang core.Language) error
}

// Message renders the spoken announcement text. The amount keeps its stored
// ₹-prefixed form in both languages.
func Message(amount, sender string, lang core.Language) string {
	if lang == core.Hindi {
		if sender != "" {
			return fmt.Sprintf("Payment received %s rupees %s se", amount, sender)
		}
		return fmt.Sprintf("Payment received %s rupees", amount)
	}
	if sender != "" {
		return fmt.Sprintf("Payment received of %s from %s", amount, sender)
	}
	return fmt.Sprintf("Payment received of %s", amount)
}

// LogAnnouncer only logs the announcement text. Used when speech synthesis
// is not configured, so the rest of the pipeline behaves identically.
type LogAnnouncer struct{}

var _ Announcer = LogAnnouncer{}

func (LogAnnouncer) Announce(ctx context.Context, amount, sender string, lang core.Language) error {
	slog.InfoContext(ctx, "Announcement (speech synthesis disabled)",
		"message", Message(amount, sender, lang),
		"language", string(lang))
	return nil
}
