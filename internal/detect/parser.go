// Package detect holds the notification analysis engine: the classifier that
// decides whether a notification text describes a received payment, and the
// extractors that pull a normalized amount and a best-effort sender name out
// of free-form vendor wording.
//
// Every function in this package is a pure function of its string arguments:
// no state, no I/O, safe to call concurrently.
package detect

import "soundpay/internal/core"

// ParsePaymentInfo extracts the amount and sender from a notification text
// already classified as a received payment. The boolean is false when no
// amount can be found at all, in which case the event must be dropped with no
// side effects.
func ParsePaymentInfo(analysis, title string) (core.PaymentInfo, bool) {
	amount, ok := ExtractAmount(analysis)
	if !ok {
		return core.PaymentInfo{}, false
	}

	sender, _ := ExtractSender(analysis, title)

	return core.PaymentInfo{Amount: amount, SenderName: sender}, true
}
