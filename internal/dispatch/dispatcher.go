package dispatch

import (
	"sync"
)

// Dispatcher delivers interaction events to handlers subscribed by event
// type. A single dispatcher plays the role the document node plays in the
// browser: handlers listen on it once and inspect each event's target
// instead of binding to individual elements. Handlers do their own logging.
type Dispatcher struct {
	subs   map[string][]*Subscription // event type -> subscriptions, in registration order
	mutex  sync.RWMutex
	closed bool
}

// Subscription is a scoped registration of a handler on a dispatcher.
// Close unregisters it deterministically; a closed subscription receives
// no further events.
type Subscription struct {
	eventType  string
	handler    Handler
	dispatcher *Dispatcher
}

// Close removes the subscription from its dispatcher.
func (s *Subscription) Close() {
	s.dispatcher.unsubscribe(s)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		subs: make(map[string][]*Subscription),
	}
}

// Listen registers handler for events of the given type and returns the
// subscription that scopes the registration.
func (d *Dispatcher) Listen(eventType string, handler Handler) *Subscription {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	sub := &Subscription{
		eventType:  eventType,
		handler:    handler,
		dispatcher: d,
	}
	if !d.closed {
		d.subs[eventType] = append(d.subs[eventType], sub)
	}
	return sub
}

// Dispatch runs every handler subscribed to the event's type, in
// registration order, synchronously to completion. Events with no
// subscribers are dropped silently.
func (d *Dispatcher) Dispatch(event Event) {
	d.mutex.RLock()
	handlers := make([]Handler, 0, len(d.subs[event.Type]))
	for _, sub := range d.subs[event.Type] {
		handlers = append(handlers, sub.handler)
	}
	d.mutex.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Close drops all subscriptions. Subsequent dispatches reach no handler and
// subsequent Listen calls register nothing.
func (d *Dispatcher) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.closed = true
	d.subs = make(map[string][]*Subscription)
}

// SubscriptionCount returns the number of active subscriptions for an event type.
func (d *Dispatcher) SubscriptionCount(eventType string) int {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return len(d.subs[eventType])
}

func (d *Dispatcher) unsubscribe(sub *Subscription) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	subs := d.subs[sub.eventType]
	for i, s := range subs {
		if s == sub {
			d.subs[sub.eventType] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(d.subs[sub.eventType]) == 0 {
		delete(d.subs, sub.eventType)
	}
}
