// Package bus is a small in-process event bus. Cross-cutting signals (cart
// changed, confirm prompt, order success) are published under named events so
// the core never talks to a rendering layer directly.
package bus

import "sync"

// Event names published by the core packages.
const (
	EventCartChanged   = "cart:changed"
	EventConfirmPrompt = "order:confirm-prompt"
	EventOrderSuccess  = "order:success"
)

type Handler func(payload any)

type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler
}

func New() *Bus {
	return &Bus{handlers: make(map[string]map[int]Handler)}
}

// Subscribe registers a handler for an event and returns an unsubscribe func.
func (b *Bus) Subscribe(event string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[event] == nil {
		b.handlers[event] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[event][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[event], id)
	}
}

// Publish invokes every handler subscribed to the event, synchronously, on
// the caller's goroutine.
func (b *Bus) Publish(event string, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event]))
	for _, h := range b.handlers[event] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
}
