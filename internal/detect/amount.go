package detect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Amount patterns, tried in order; the first match wins. The last two rules
// are fallbacks for notifications that omit a currency marker: a standalone
// decimal, then a standalone whole number of 1 to 8 digits without a leading
// zero.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`₹\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
	regexp.MustCompile(`(?i)(?:rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`),
	regexp.MustCompile(`\b([0-9][0-9,]*\.[0-9]+)\b`),
	regexp.MustCompile(`\b([1-9][0-9]{0,7})\b`),
}

// ExtractAmount finds the first monetary amount in the analysis text and
// normalizes it to the currency glyph followed by a value with exactly two
// fractional digits, e.g. "₹1234.50". The boolean is false when no rule
// matches.
func ExtractAmount(analysis string) (string, bool) {
	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(analysis)
		if m == nil {
			continue
		}
		return formatAmount(m[1])
	}
	return "", false
}

// formatAmount strips comma grouping and renders the value with two decimal
// digits. The two-decimal form is what the storage layer parses back for
// aggregation, so it must hold for every extracted amount. A substring the
// pattern grammar let through but strconv rejects counts as "no amount
// found" rather than producing a zero sentinel.
func formatAmount(raw string) (string, bool) {
	raw = strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("₹%.2f", value), true
}
