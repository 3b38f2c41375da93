// Package event defines the immutable facts of the simulation: the envelope
// shared by every event, the kind-specific payloads, and the JSON codec that
// serializes both as a single flat object (tagged-record form).
package event

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Payload is the kind-specific body of an event. Implementations are plain
// structs with json tags; they carry facts only, never behavior.
type Payload interface {
	Kind() string
}

// Event is the envelope plus payload. Week and Day reflect simulation time
// at emission; Timestamp is wall-clock time stamped by the engine.
type Event struct {
	EventID   string    `json:"event_id"`
	EventKind string    `json:"event_kind"`
	AgentID   string    `json:"agent_id"`
	Week      int       `json:"week"`
	Day       int       `json:"day"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"-"`
}

// registry maps event kind to a payload factory. Populated by init() in
// payloads.go; RegisterPayload allows extension without editing this file.
var (
	regMu    sync.RWMutex
	registry = map[string]func() Payload{}
)

// RegisterPayload binds a kind to its payload factory. Registering the same
// kind twice panics: duplicate kinds are a programming error.
func RegisterPayload(kind string, factory func() Payload) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registry[kind]; dup {
		panic(fmt.Sprintf("event: duplicate payload registration for kind %q", kind))
	}
	registry[kind] = factory
}

// NewPayload returns an empty payload for the kind, or an error for kinds
// the codec does not know. Unknown kinds on decode are fatal by contract:
// the journal is the source of truth and must never be silently skipped.
func NewPayload(kind string) (Payload, error) {
	regMu.RLock()
	factory, ok := registry[kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("event: unknown event kind %q", kind)
	}
	return factory(), nil
}

// RegisteredKinds returns all known event kinds (unordered).
func RegisteredKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	return kinds
}

// envelope mirrors Event for (un)marshalling without the Payload field.
type envelope struct {
	EventID   string `json:"event_id"`
	EventKind string `json:"event_kind"`
	AgentID   string `json:"agent_id"`
	Week      int    `json:"week"`
	Day       int    `json:"day"`
	Timestamp string `json:"timestamp"`
}

// MarshalJSON emits one flat object: envelope fields and payload fields as
// siblings. Payload field names must not collide with envelope names; the
// catalog in payloads.go guarantees that.
func (e *Event) MarshalJSON() ([]byte, error) {
	flat := map[string]json.RawMessage{}

	if e.Payload != nil {
		body, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, fmt.Errorf("event: marshal payload for %s: %w", e.EventKind, err)
		}
		if err := json.Unmarshal(body, &flat); err != nil {
			return nil, fmt.Errorf("event: flatten payload for %s: %w", e.EventKind, err)
		}
	}

	env := envelope{
		EventID:   e.EventID,
		EventKind: e.EventKind,
		AgentID:   e.AgentID,
		Week:      e.Week,
		Day:       e.Day,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
	}
	envBody, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(envBody, &flat); err != nil {
		return nil, err
	}

	return json.Marshal(flat)
}

// UnmarshalJSON decodes the flat form. Unknown payload fields are ignored;
// an unknown event_kind is an error.
func (e *Event) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("event: decode envelope: %w", err)
	}
	if env.EventKind == "" {
		return fmt.Errorf("event: record missing event_kind")
	}

	payload, err := NewPayload(env.EventKind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("event: decode %s payload: %w", env.EventKind, err)
	}

	ts, err := time.Parse(time.RFC3339, env.Timestamp)
	if err != nil {
		return fmt.Errorf("event: decode %s timestamp: %w", env.EventKind, err)
	}

	e.EventID = env.EventID
	e.EventKind = env.EventKind
	e.AgentID = env.AgentID
	e.Week = env.Week
	e.Day = env.Day
	e.Timestamp = ts
	e.Payload = payload
	return nil
}

// New builds an event shell around a payload. The caller (the engine) is
// responsible for stamping EventID and Timestamp before the event reaches
// the journal.
func New(agentID string, week, day int, p Payload) *Event {
	return &Event{
		EventKind: p.Kind(),
		AgentID:   agentID,
		Week:      week,
		Day:       day,
		Payload:   p,
	}
}
