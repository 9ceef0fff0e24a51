package detect

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name     string
		analysis string
		want     string
		found    bool
	}{
		{
			name:     "rupee glyph with commas and decimals",
			analysis: "You received ₹1,234.56 from Raj",
			want:     "₹1234.56",
			found:    true,
		},
		{
			name:     "rupee glyph whole number",
			analysis: "got ₹50 from amit",
			want:     "₹50.00",
			found:    true,
		},
		{
			name:     "rupee glyph with whitespace",
			analysis: "credited ₹ 2,500 to your account",
			want:     "₹2500.00",
			found:    true,
		},
		{
			name:     "rs dot prefix",
			analysis: "Rs.500 credited to your account",
			want:     "₹500.00",
			found:    true,
		},
		{
			name:     "rs prefix with space",
			analysis: "rs 99.90 received",
			want:     "₹99.90",
			found:    true,
		},
		{
			name:     "inr prefix",
			analysis: "INR 1,000 credited",
			want:     "₹1000.00",
			found:    true,
		},
		{
			name:     "standalone decimal fallback",
			analysis: "amount 123.45 credited to account",
			want:     "₹123.45",
			found:    true,
		},
		{
			name:     "whole number fallback",
			analysis: "payment of 75 received",
			want:     "₹75.00",
			found:    true,
		},
		{
			name:     "single decimal digit normalized to two",
			analysis: "received ₹1234.5 via upi",
			want:     "₹1234.50",
			found:    true,
		},
		{
			name:     "glyph wins over later decimal",
			analysis: "ref 12.99 then got ₹50",
			want:     "₹50.00",
			found:    true,
		},
		{
			name:     "no numbers",
			analysis: "no numbers here",
			want:     "",
			found:    false,
		},
		{
			name:     "empty string",
			analysis: "",
			want:     "",
			found:    false,
		},
		{
			name:     "leading zero not a bare amount",
			analysis: "code 0123",
			want:     "",
			found:    false,
		},
		{
			name:     "nine digit run not a bare amount",
			analysis: "txn 123456789",
			want:     "",
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractAmount(tt.analysis)
			if found != tt.found {
				t.Fatalf("ExtractAmount(%q) found = %v, want %v", tt.analysis, found, tt.found)
			}
			if got != tt.want {
				t.Errorf("ExtractAmount(%q) = %q, want %q", tt.analysis, got, tt.want)
			}
		})
	}
}

func TestExtractAmount_RoundTrip(t *testing.T) {
	// Every extracted amount must parse back, after stripping the glyph, to a
	// value whose two-decimal rendering equals the stored digits. The storage
	// layer depends on this for SUM aggregation.
	inputs := []string{
		"You received ₹1,234.56 from Raj",
		"Rs.500 credited to your account",
		"payment of 75 received",
		"got ₹ 99999999 via upi",
		"amount 0.50 credited",
	}

	for _, analysis := range inputs {
		amount, found := ExtractAmount(analysis)
		if !found {
			t.Fatalf("ExtractAmount(%q) found nothing", analysis)
		}
		digits := strings.TrimPrefix(amount, "₹")
		value, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			t.Fatalf("amount %q does not parse: %v", amount, err)
		}
		if rendered := fmt.Sprintf("%.2f", value); rendered != digits {
			t.Errorf("amount %q round-trips to %q", amount, rendered)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		raw   string
		want  string
		found bool
	}{
		{"1234.56", "₹1234.56", true},
		{"1,234.56", "₹1234.56", true},
		{"50", "₹50.00", true},
		{"0.5", "₹0.50", true},
		{"not-a-number", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, found := formatAmount(tt.raw)
			if found != tt.found || got != tt.want {
				t.Errorf("formatAmount(%q) = (%q, %v), want (%q, %v)", tt.raw, got, found, tt.want, tt.found)
			}
		})
	}
}
