package bus

import "time"

// EventBus is an in-process pub/sub bus.
//
// Delivery is synchronous: Publish runs every matching handler on the caller's
// goroutine, in subscription order. Handlers subscribed to AllEvents receive
// every event after the type-specific handlers. All methods are safe for
// concurrent use.
type EventBus interface {
	// Publish delivers the event to all active subscribers of event.Type and
	// returns the joined handler errors, if any.
	Publish(event Event) error
	// Subscribe registers a handler for an event type (or AllEvents).
	Subscribe(eventType string, handler EventHandler) Subscription
	// Unsubscribe cancels the given Subscription. Nil is ignored.
	Unsubscribe(Subscription)
	// Subscribers reports how many handlers are registered for an event type.
	Subscribers(eventType string) int
}

// AllEvents subscribes a handler to every published event type.
const AllEvents = "*"

// Event is an immutable message transported by the EventBus.
type Event struct {
	Type      string
	Source    string
	Timestamp time.Time
	Data      any
}

// NewEvent stamps an event with the current time.
func NewEvent(typ, source string, data any) Event {
	return Event{Type: typ, Source: source, Timestamp: time.Now(), Data: data}
}

// EventHandler is invoked per delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel()
}
