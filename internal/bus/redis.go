package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/laundrosim/backend/internal/event"
)

// PubSubClient is the minimal Redis surface the bus needs, kept narrow so
// tests can stub it.
type PubSubClient interface {
	Publish(ctx context.Context, channel string, message []byte) error
	Subscribe(ctx context.Context, channel string, handler func([]byte)) (unsubscribe func(), err error)
}

// Redis distributes events across processes via Redis Pub/Sub, and also
// fans out in-process for zero-latency delivery to co-located handlers.
type Redis struct {
	mu         sync.RWMutex
	pubsub     PubSubClient
	prefix     string
	localSubs  map[string][]subscriberEntry
	unsubFuncs []func()
	closed     bool
}

// NewRedis wraps a pub/sub client with the channel prefix (default
// "laundrosim:events:").
func NewRedis(client PubSubClient, channelPrefix string) *Redis {
	if channelPrefix == "" {
		channelPrefix = "laundrosim:events:"
	}
	return &Redis{
		pubsub:    client,
		prefix:    channelPrefix,
		localSubs: make(map[string][]subscriberEntry),
	}
}

func (b *Redis) Publish(ctx context.Context, ev *event.Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	b.mu.RUnlock()

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := b.pubsub.Publish(ctx, b.prefix+ev.EventKind, data); err != nil {
		slog.Warn("redis publish failed, falling back to local delivery",
			"kind", ev.EventKind, "error", err)
		b.deliverLocal(ctx, ev)
	}
	return nil
}

// Subscribe registers a handler for one kind (or TopicAll). Handlers
// receive events from all processes via Redis plus local publishers.
func (b *Redis) Subscribe(kind string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := subscriberCounter.Add(1)
	b.localSubs[kind] = append(b.localSubs[kind], subscriberEntry{id: id, handler: handler})

	unsub, err := b.pubsub.Subscribe(context.Background(), b.prefix+kind, func(data []byte) {
		ev := &event.Event{}
		if err := json.Unmarshal(data, ev); err != nil {
			slog.Warn("dropping undecodable bus message", "error", err)
			return
		}
		b.deliverLocal(context.Background(), ev)
	})
	if err != nil {
		slog.Warn("redis subscribe failed, local-only delivery", "kind", kind, "error", err)
	} else {
		b.unsubFuncs = append(b.unsubFuncs, unsub)
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.localSubs[kind]
		for i, entry := range subs {
			if entry.id == id {
				b.localSubs[kind] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

func (b *Redis) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for _, unsub := range b.unsubFuncs {
		unsub()
	}
	b.unsubFuncs = nil
	b.localSubs = nil
	return nil
}

func (b *Redis) deliverLocal(ctx context.Context, ev *event.Event) {
	b.mu.RLock()
	handlers := append(b.localSubs[ev.EventKind], b.localSubs[TopicAll]...)
	b.mu.RUnlock()

	for _, entry := range handlers {
		h := entry.handler
		go func() {
			if err := h(ctx, ev); err != nil {
				slog.Warn("event bus handler error", "kind", ev.EventKind, "error", err)
			}
		}()
	}
}

// GoRedisAdapter adapts go-redis v9 to PubSubClient.
type GoRedisAdapter struct {
	rdb *redis.Client
}

// NewGoRedisAdapter connects and pings; the caller decides whether a
// failure means falling back to the local bus.
func NewGoRedisAdapter(addr, password string, db int) (*GoRedisAdapter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     20,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed (%s): %w", addr, err)
	}

	slog.Info("Redis connected", "addr", addr, "db", db)
	return &GoRedisAdapter{rdb: rdb}, nil
}

func (a *GoRedisAdapter) Publish(ctx context.Context, channel string, message []byte) error {
	return a.rdb.Publish(ctx, channel, message).Err()
}

func (a *GoRedisAdapter) Subscribe(ctx context.Context, channel string, handler func([]byte)) (func(), error) {
	sub := a.rdb.Subscribe(ctx, channel)

	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	ch := sub.Channel()
	go func() {
		for msg := range ch {
			handler([]byte(msg.Payload))
		}
	}()

	return func() { sub.Close() }, nil
}

func (a *GoRedisAdapter) Close() error {
	return a.rdb.Close()
}
