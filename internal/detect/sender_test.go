package detect

import "testing"

func TestExtractSender(t *testing.T) {
	tests := []struct {
		name     string
		analysis string
		title    string
		want     string
		found    bool
	}{
		{
			name:     "from pattern with via terminator",
			analysis: "Payment received from Rohit Sharma via UPI",
			title:    "",
			want:     "Rohit Sharma",
			found:    true,
		},
		{
			name:     "from pattern with on terminator",
			analysis: "received ₹50 from Amit Verma on 12 Jan",
			title:    "",
			want:     "Amit Verma",
			found:    true,
		},
		{
			name:     "from pattern with period terminator",
			analysis: "credited from HDFC Bank. ref 12345",
			title:    "",
			want:     "HDFC Bank",
			found:    true,
		},
		{
			name:     "from pattern at end of string",
			analysis: "you got money from Priya",
			title:    "",
			want:     "Priya",
			found:    true,
		},
		{
			name:     "paid by pattern",
			analysis: "₹200 paid by Suresh using PhonePe",
			title:    "",
			want:     "Suresh",
			found:    true,
		},
		{
			name:     "title fallback accepted",
			analysis: "You received ₹50",
			title:    "Amit Verma",
			want:     "Amit Verma",
			found:    true,
		},
		{
			name:     "title fallback rejected for payment word",
			analysis: "You received ₹50",
			title:    "Payment Received",
			want:     "",
			found:    false,
		},
		{
			name:     "title fallback rejected when lowercase",
			analysis: "You received ₹50",
			title:    "amit verma",
			want:     "",
			found:    false,
		},
		{
			name:     "title fallback rejected for digits",
			analysis: "You received ₹50",
			title:    "Txn 12345",
			want:     "",
			found:    false,
		},
		{
			name:     "title fallback rejected when too long",
			analysis: "You received ₹50",
			title:    "A very long notification title here",
			want:     "",
			found:    false,
		},
		{
			name:     "no sender at all",
			analysis: "₹100 credited to your account",
			title:    "",
			want:     "",
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractSender(tt.analysis, tt.title)
			if found != tt.found {
				t.Fatalf("ExtractSender(%q, %q) found = %v, want %v", tt.analysis, tt.title, found, tt.found)
			}
			if got != tt.want {
				t.Errorf("ExtractSender(%q, %q) = %q, want %q", tt.analysis, tt.title, got, tt.want)
			}
		})
	}
}

func TestParsePaymentInfo(t *testing.T) {
	t.Run("end to end received payment", func(t *testing.T) {
		analysis := "You received ₹2,500.00 from Raj Kumar via PhonePe UPI"

		if !IsPaymentReceived(analysis) {
			t.Fatal("expected analysis text to classify as received")
		}

		info, ok := ParsePaymentInfo(analysis, "Raj Kumar")
		if !ok {
			t.Fatal("expected payment info to parse")
		}
		if info.Amount != "₹2500.00" {
			t.Errorf("Amount = %q, want %q", info.Amount, "₹2500.00")
		}
		if info.SenderName != "Raj Kumar" {
			t.Errorf("SenderName = %q, want %q", info.SenderName, "Raj Kumar")
		}
	})

	t.Run("no amount drops the record", func(t *testing.T) {
		info, ok := ParsePaymentInfo("payment received from Raj", "")
		_ = info
		if ok {
			t.Error("expected parse to fail when no amount is present")
		}
	})

	t.Run("missing sender is not an error", func(t *testing.T) {
		info, ok := ParsePaymentInfo("upi payment received ₹75", "UPI Payment Received")
		if !ok {
			t.Fatal("expected payment info to parse")
		}
		if info.Amount != "₹75.00" {
			t.Errorf("Amount = %q, want %q", info.Amount, "₹75.00")
		}
		if info.SenderName != "" {
			t.Errorf("SenderName = %q, want empty", info.SenderName)
		}
	})
}
