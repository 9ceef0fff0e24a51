package detect

import "strings"

// Keyword sets collected from real UPI app notifications. Wording varies a
// lot between vendors, so classification combines four independent signals
// instead of trusting any single phrase.
var (
	receivedKeywords = []string{
		"received",
		"credited",
		"payment received",
		"you received",
		"got ₹",
		"money received",
		"upi payment received",
		"paid you",
		"credit",
		"deposited",
		"incoming",
		"money added",
		"balance updated",
	}

	sentKeywords = []string{
		"sent",
		"paid to",
		"payment to",
		"debited",
		"debit",
		"transferred to",
		"paid ₹",
		"payment made",
		"successfully paid",
	}

	contextKeywords = []string{
		"upi",
		"payment",
		"transaction",
		"money",
		"amount",
	}

	currencyMarkers = []string{
		"₹",
		"rs.",
		"rs ",
		"inr",
		"rupees",
	}
)

// IsPaymentReceived reports whether the analysis text describes money
// credited to the user. It requires a currency marker, a received keyword and
// a UPI/payment context, and rejects anything carrying a sent keyword: a text
// that mentions both directions (for example a receipt quoting an earlier
// outgoing transfer) is classified as not received.
func IsPaymentReceived(analysis string) bool {
	if analysis == "" {
		return false
	}
	text := strings.ToLower(analysis)

	return containsAny(text, currencyMarkers) &&
		containsAny(text, receivedKeywords) &&
		!containsAny(text, sentKeywords) &&
		containsAny(text, contextKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
