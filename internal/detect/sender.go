package detect

import (
	"regexp"
	"strings"
)

// Sender patterns, tried in order against the analysis text. A name is a run
// of letters and spaces terminated by " on", " via", " using", a period or
// the end of the string, matching phrasings like "received ₹50 from Raj
// Kumar via UPI".
var senderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)from\s+([A-Za-z][A-Za-z\s]+?)(?:\s+on|\s+via|\s+using|\.|$)`),
	regexp.MustCompile(`(?i)by\s+([A-Za-z][A-Za-z\s]+?)(?:\s+on|\s+via|\s+using|\.|$)`),
	regexp.MustCompile(`(?i)payment\s+from\s+([A-Za-z][A-Za-z\s]+?)(?:\s+on|\s+via|\s+using|\.|$)`),
	regexp.MustCompile(`(?i)received\s+from\s+([A-Za-z][A-Za-z\s]+?)(?:\s+on|\s+via|\s+using|\.|$)`),
	regexp.MustCompile(`(?i)credited\s+from\s+([A-Za-z][A-Za-z\s]+?)(?:\s+on|\s+via|\s+using|\.|$)`),
	regexp.MustCompile(`(?i)paid\s+by\s+([A-Za-z][A-Za-z\s]+?)(?:\s+on|\s+via|\s+using|\.|$)`),
}

// titleNamePattern accepts titles that look like a person's name: an
// uppercase letter followed only by letters and spaces, full-string match.
var titleNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z\s]+$`)

// ExtractSender makes a best-effort extraction of the sender name from the
// analysis text, falling back to the raw notification title when it looks
// like a plain person name. The boolean is false when neither source yields
// a name; callers treat that as a normal outcome, not an error.
func ExtractSender(analysis, title string) (string, bool) {
	for _, pattern := range senderPatterns {
		if m := pattern.FindStringSubmatch(analysis); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name, true
			}
		}
	}
	return senderFromTitle(title)
}

// senderFromTitle accepts the title only when it is short, carries no payment
// wording and matches the name shape. UPI apps usually put the counterparty
// name in the title, so this catches texts like "You received ₹50" with title
// "Amit Verma".
func senderFromTitle(title string) (string, bool) {
	if strings.TrimSpace(title) == "" || len(title) >= 30 {
		return "", false
	}
	lower := strings.ToLower(title)
	if strings.Contains(lower, "payment") || strings.Contains(lower, "received") {
		return "", false
	}
	if !titleNamePattern.MatchString(title) {
		return "", false
	}
	return strings.TrimSpace(title), true
}
