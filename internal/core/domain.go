package core

import (
	"errors"
	"strings"
)

const (
	English Language = "english"
	Hindi   Language = "hindi"
)

type (
	// Language selects the announcement wording.
	Language string

	// Notification is one status-bar event as delivered by a device bridge.
	// ExpandedText is resolved at construction time and is only empty when
	// Text is empty too.
	Notification struct {
		PackageName  string
		Title        string
		Text         string
		ExpandedText string
	}

	// PaymentInfo is the normalized output of parsing a received-payment
	// notification. Amount is the currency glyph followed by a value with
	// exactly two fractional digits. SenderName is empty when no sender
	// could be extracted, which is a common and valid outcome.
	PaymentInfo struct {
		Amount     string
		SenderName string
	}

	// Payment is the persisted record of a received payment.
	Payment struct {
		ID               int64
		Amount           string
		SenderName       string
		AppName          string
		TimestampMillis  int64
		NotificationText string
	}
)

var (
	ErrEmptyPackageName = errors.New("empty package name")
	ErrEmptyAmount      = errors.New("empty amount")
	ErrEmptyAppName     = errors.New("empty app name")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidLanguage  = errors.New("invalid language")
)

// NewNotification builds a payload with the expanded-text fallback resolved
// once, so downstream code never deals with an absent big-text field.
func NewNotification(packageName, title, text, expandedText string) Notification {
	if expandedText == "" {
		expandedText = text
	}
	return Notification{
		PackageName:  packageName,
		Title:        title,
		Text:         text,
		ExpandedText: expandedText,
	}
}

// AnalysisText returns the lowercased "title expandedText" string that is the
// sole input to classification and extraction.
func (n Notification) AnalysisText() string {
	return strings.ToLower(n.Title + " " + n.ExpandedText)
}

func (n Notification) Validate() error {
	if strings.TrimSpace(n.PackageName) == "" {
		return ErrEmptyPackageName
	}
	return nil
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.Amount) == "" {
		return ErrEmptyAmount
	}
	if strings.TrimSpace(p.AppName) == "" {
		return ErrEmptyAppName
	}
	if p.TimestampMillis <= 0 {
		return ErrInvalidTimestamp
	}
	return nil
}

// ParseLanguage normalizes a configured language name. The empty string maps
// to English.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English, "":
		return English, nil
	case Hindi:
		return Hindi, nil
	default:
		return "", ErrInvalidLanguage
	}
}
