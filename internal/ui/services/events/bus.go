package events

import (
	"fmt"
	"sync"
)

// Bus is a simple event bus for UI services. Unlike the domain bus it
// dispatches synchronously: UI state is only ever mutated from the single
// UI goroutine, so handlers must run inline in event order.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners in registration order
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	handlers := b.listeners[fmt.Sprintf("%T", event)]
	handlersCopy := make([]func(interface{}), len(handlers))
	copy(handlersCopy, handlers)
	b.mu.RUnlock()

	for _, handler := range handlersCopy {
		handler(event)
	}
}
