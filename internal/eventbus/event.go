package eventbus

import "time"

type EventType string

const (
	EventTypeNotification EventType = "notification"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
	Retries   int         `json:"retries"`
}

// NotificationEvent asks for a delivery record to be written to every channel
// that has the given event kind enabled. EventKind matches the preference keys
// in the notification document (ticket_updates, kyc_updates, ...).
type NotificationEvent struct {
	EventKind string `json:"event_kind"`
	Message   string `json:"message"`
}
