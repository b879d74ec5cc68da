// Package event provides a small in-process dispatcher for order events.
//
//	bus := event.New()
//	bus.Listen(event.OrderPlaced, func(e event.Event) { ... })
//	bus.Fire(event.OrderPlaced, order)
package event

import "sync"

// Event names fired by the ordering core.
const (
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status_changed"
	OrdersCleared      = "orders.cleared"
)

// Event is what listeners receive.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Handler receives a fired event.
type Handler func(Event)

// Bus dispatches events to registered handlers. The zero value is not
// usable; a nil *Bus silently drops events.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers handler for name.
func (b *Bus) Listen(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// ListenAll registers handler for every name in names.
func (b *Bus) ListenAll(handler Handler, names ...string) {
	for _, n := range names {
		b.Listen(n, handler)
	}
}

func (b *Bus) snapshot(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, len(b.handlers[name]))
	copy(hs, b.handlers[name])
	return hs
}

// Fire dispatches synchronously to all listeners of name.
func (b *Bus) Fire(name string, payload any) {
	if b == nil {
		return
	}
	e := Event{Name: name, Payload: payload}
	for _, h := range b.snapshot(name) {
		h(e)
	}
}
