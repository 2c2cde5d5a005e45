// Package notify provides a small in-process notification bus. The API
// client publishes user-facing messages (toasts in a UI, stderr lines in
// the CLI) onto it; frontends subscribe and render them however they like.
package notify

import (
	"sync"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one user-facing message.
type Notification struct {
	Severity Severity
	Message  string
	Time     time.Time
}

// Handler receives published notifications. Handlers run synchronously on
// the publishing goroutine and must not block.
type Handler func(Notification)

// Bus fans notifications out to subscribers. Safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns an unsubscribe function.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Publish delivers the notification to all current subscribers.
func (b *Bus) Publish(n Notification) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(n)
	}
}

// Info publishes an info message.
func (b *Bus) Info(message string) {
	b.Publish(Notification{Severity: SeverityInfo, Message: message})
}

// Success publishes a success message.
func (b *Bus) Success(message string) {
	b.Publish(Notification{Severity: SeveritySuccess, Message: message})
}

// Error publishes an error message.
func (b *Bus) Error(message string) {
	b.Publish(Notification{Severity: SeverityError, Message: message})
}
