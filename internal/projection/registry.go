// Package projection folds the event log into agent state. Reducers are
// pure: they mechanically apply an already-validated fact to a fresh copy
// of the state, clamping where the data model demands it, and never reject.
package projection

import (
	"fmt"
	"sync"

	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
)

// Reducer mutates a state copy with the facts of one event. The state
// passed in is already a private clone; reducers mutate it in place.
type Reducer func(s *domain.AgentState, ev *event.Event) error

// Registry maps event kinds to reducers. A journal event with no reducer is
// a fatal fold error: the log would silently diverge from reality otherwise.
type Registry struct {
	mu       sync.RWMutex
	reducers map[string]Reducer
}

// NewRegistry returns a registry preloaded with every core reducer.
func NewRegistry() *Registry {
	r := &Registry{reducers: make(map[string]Reducer)}
	registerCore(r)
	return r
}

// Register binds a reducer to an event kind, replacing any previous binding.
func (r *Registry) Register(kind string, red Reducer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reducers[kind] = red
}

// Apply folds one event into the state and returns the successor state.
// The input state is never mutated.
func (r *Registry) Apply(s *domain.AgentState, ev *event.Event) (*domain.AgentState, error) {
	r.mu.RLock()
	red, ok := r.reducers[ev.EventKind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("projection: no reducer registered for event kind %q (event %s)",
			ev.EventKind, ev.EventID)
	}

	next := s.Clone()
	if err := red(next, ev); err != nil {
		return nil, fmt.Errorf("projection: apply %s (event %s): %w", ev.EventKind, ev.EventID, err)
	}
	return next, nil
}

// Fold applies events in order starting from a zero state for the agent.
func (r *Registry) Fold(agentID string, evs []*event.Event) (*domain.AgentState, error) {
	s := domain.NewAgentState(agentID)
	for _, ev := range evs {
		next, err := r.Apply(s, ev)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return s, nil
}

// payloadError reports an envelope/payload type mismatch, which can only
// come from a registration bug.
func payloadError(ev *event.Event) error {
	return fmt.Errorf("unexpected payload type %T for kind %s", ev.Payload, ev.EventKind)
}
