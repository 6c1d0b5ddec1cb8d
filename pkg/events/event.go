package events

import "time"

// Event is the contract for everything published on the cross-instance bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_SYNCED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields; the constructors in
// document_events.go build the concrete instances.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
