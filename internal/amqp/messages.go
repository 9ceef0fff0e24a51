package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"soundpay/internal/core"
)

// NotificationEvent is the queue representation of one device notification.
// The worker re-runs classification on consume, so the event carries the raw
// payload fields rather than any parsed result.
type NotificationEvent struct {
	EventID      string    `json:"event_id"`
	PackageName  string    `json:"package_name"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	ExpandedText string    `json:"expanded_text,omitempty"`
	PostedAt     time.Time `json:"posted_at"`
}

// NewNotificationEvent wraps a notification payload with a fresh event ID
// and timestamp.
func NewNotificationEvent(n core.Notification) *NotificationEvent {
	return &NotificationEvent{
		EventID:      uuid.NewString(),
		PackageName:  n.PackageName,
		Title:        n.Title,
		Text:         n.Text,
		ExpandedText: n.ExpandedText,
		PostedAt:     time.Now(),
	}
}

// Notification rebuilds the domain payload, re-resolving the expanded-text
// fallback for events published by older bridges that omit it.
func (e *NotificationEvent) Notification() core.Notification {
	return core.NewNotification(e.PackageName, e.Title, e.Text, e.ExpandedText)
}

// ToJSON converts the event to JSON bytes.
func (e *NotificationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NotificationEventFromJSON parses an event from JSON bytes.
func NotificationEventFromJSON(data []byte) (*NotificationEvent, error) {
	var event NotificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
