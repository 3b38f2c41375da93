// Package bus fans appended journal events out to observers: websocket
// streams, metrics, other processes. Delivery is best-effort and always
// after the append commits; the journal, never the bus, is the source of
// truth.
package bus

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/laundrosim/backend/internal/event"
)

// TopicAll subscribes to every event kind.
const TopicAll = "*"

// Handler processes a published event.
type Handler func(ctx context.Context, ev *event.Event) error

// Bus provides publish/subscribe keyed by event kind.
type Bus interface {
	// Publish delivers the event to subscribers of its kind and of TopicAll.
	Publish(ctx context.Context, ev *event.Event) error

	// Subscribe registers a handler for an event kind (or TopicAll).
	// Returns an unsubscribe function.
	Subscribe(kind string, handler Handler) (unsubscribe func())

	Close() error
}

// Local is the in-process bus for single-node deployments.
type Local struct {
	mu          sync.RWMutex
	subscribers map[string][]subscriberEntry
	closed      bool
}

type subscriberEntry struct {
	id      int64
	handler Handler
}

var subscriberCounter atomic.Int64

func NewLocal() *Local {
	return &Local{subscribers: make(map[string][]subscriberEntry)}
}

// Publish fans out asynchronously; handler errors are logged, never
// propagated.
func (b *Local) Publish(ctx context.Context, ev *event.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	for _, entry := range append(b.subscribers[ev.EventKind], b.subscribers[TopicAll]...) {
		h := entry.handler
		go func() {
			if err := h(ctx, ev); err != nil {
				slog.Warn("event bus handler error", "kind", ev.EventKind, "error", err)
			}
		}()
	}
	return nil
}

func (b *Local) Subscribe(kind string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := subscriberCounter.Add(1)
	b.subscribers[kind] = append(b.subscribers[kind], subscriberEntry{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subscribers[kind]
		for i, entry := range subs {
			if entry.id == id {
				b.subscribers[kind] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

func (b *Local) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subscribers = nil
	return nil
}
