package projection

import (
	"context"
	"time"

	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
	"github.com/laundrosim/backend/internal/journal"
)

// Builder reconstructs agent state by folding the journal. Every build
// starts from a zero state: there is no cached projection to invalidate.
type Builder struct {
	journal  journal.Journal
	registry *Registry
}

func NewBuilder(j journal.Journal, r *Registry) *Builder {
	return &Builder{journal: j, registry: r}
}

// Registry exposes the reducer registry for components that fold their own
// speculative event lists (the ticker does this).
func (b *Builder) Registry() *Registry { return b.registry }

// Current folds the agent's full stream.
func (b *Builder) Current(ctx context.Context, agentID string) (*domain.AgentState, error) {
	return b.build(ctx, agentID, nil)
}

// AtSeq folds the stream up to and including the given global sequence
// number, yielding the state as of that point in history.
func (b *Builder) AtSeq(ctx context.Context, agentID string, maxSeq uint64) (*domain.AgentState, error) {
	return b.build(ctx, agentID, func(rec journal.Record) bool {
		return rec.Seq <= maxSeq
	})
}

// AtGameTime folds the stream up to and including the given simulation
// week and day, yielding the state as the agent saw it then.
func (b *Builder) AtGameTime(ctx context.Context, agentID string, week, day int) (*domain.AgentState, error) {
	return b.build(ctx, agentID, func(rec journal.Record) bool {
		return rec.Event.Week < week || (rec.Event.Week == week && rec.Event.Day <= day)
	})
}

// AtTime folds the stream up to and including the given wall-clock bound.
func (b *Builder) AtTime(ctx context.Context, agentID string, bound time.Time) (*domain.AgentState, error) {
	return b.build(ctx, agentID, func(rec journal.Record) bool {
		return !rec.Event.Timestamp.After(bound)
	})
}

func (b *Builder) build(ctx context.Context, agentID string, keep func(journal.Record) bool) (*domain.AgentState, error) {
	recs, err := b.journal.LoadForAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	evs := make([]*event.Event, 0, len(recs))
	for _, rec := range recs {
		if keep != nil && !keep(rec) {
			continue
		}
		evs = append(evs, rec.Event)
	}
	return b.registry.Fold(agentID, evs)
}
