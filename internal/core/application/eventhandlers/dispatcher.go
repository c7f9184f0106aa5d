package eventhandlers

import (
	"context"
	"errors"
	"sync"

	"ordering/internal/core/domain/events"
	"ordering/internal/pkg/errs"
)

// ErrHandlerIsRequired is returned when constructing a dispatcher without an
// event handler.
var ErrHandlerIsRequired = errors.New("event handler is required")

// EventHandler processes one domain event and returns the follow-up events
// it produced.
type EventHandler interface {
	Handle(ctx context.Context, event events.Event) ([]events.Event, error)
}

// Dispatcher feeds domain events to an EventHandler while serializing all
// processing per order. Events for the same order never overlap; events for
// different orders run fully in parallel. Follow-up events returned by the
// handler are drained under the same per-order lock as the event that
// produced them.
type Dispatcher struct {
	handler EventHandler
	locks   keyedMutex
}

// NewDispatcher creates a dispatcher around the given handler.
func NewDispatcher(handler EventHandler) (*Dispatcher, error) {
	if handler == nil {
		return nil, ErrHandlerIsRequired
	}

	return &Dispatcher{handler: handler}, nil
}

// Dispatch processes the event and all follow-up events it cascades into,
// holding the order's serialization lock for the whole chain. The first
// handler error aborts the chain.
func (d *Dispatcher) Dispatch(ctx context.Context, event events.Event) error {
	if event == nil || event.Order() == nil {
		return errs.NewValueIsRequiredError("event")
	}

	unlock := d.locks.lock(event.Order().ID().String())
	defer unlock()

	queue := []events.Event{event}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		followUps, err := d.handler.Handle(ctx, next)
		if err != nil {
			return err
		}

		queue = append(queue, followUps...)
	}

	return nil
}

// keyedMutex serializes callers per string key. Entries are reference
// counted and removed once the last holder releases the key, so the map does
// not grow with the number of orders ever seen.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedMutexEntry
}

type keyedMutexEntry struct {
	mu   sync.Mutex
	refs int
}

func (m *keyedMutex) lock(key string) (unlock func()) {
	m.mu.Lock()
	if m.entries == nil {
		m.entries = make(map[string]*keyedMutexEntry)
	}
	entry, ok := m.entries[key]
	if !ok {
		entry = &keyedMutexEntry{}
		m.entries[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		m.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(m.entries, key)
		}
		m.mu.Unlock()
	}
}
