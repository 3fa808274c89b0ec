// Package pubsub delivers SDK table changes and log lines to observers that
// run on their own goroutines, such as the watch command. Table listeners are
// called synchronously under write access; a Broker receives the same
// changes afterwards as values and never holds up the writer.
package pubsub

import "time"

// EventType says what kind of change an Event carries.
type EventType string

const (
	CreatedEvent  EventType = "created"
	UpdatedEvent  EventType = "updated"
	DeletedEvent  EventType = "deleted"
	ReloadedEvent EventType = "reloaded"
)

// Event is one published payload, stamped when Publish was called.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
