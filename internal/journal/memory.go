package journal

import (
	"context"

	"sync"

	"github.com/laundrosim/backend/internal/event"
)

// Memory is the in-process journal used by tests and single-node runs.
// A flat slice holds global order; a per-agent index avoids scanning the
// whole log for single-agent folds.
type Memory struct {
	mu      sync.RWMutex
	records []Record
	byAgent map[string][]int // agent id -> indexes into records
	closed  bool
}

// NewMemory returns an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{byAgent: make(map[string][]int)}
}

func (m *Memory) Append(ctx context.Context, ev *event.Event) (uint64, error) {
	return m.AppendAll(ctx, []*event.Event{ev})
}

func (m *Memory) AppendAll(ctx context.Context, evs []*event.Event) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(evs) == 0 {
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}

	firstSeq := uint64(len(m.records)) + 1
	for i, ev := range evs {
		idx := len(m.records)
		m.records = append(m.records, Record{Seq: firstSeq + uint64(i), Event: ev})
		m.byAgent[ev.AgentID] = append(m.byAgent[ev.AgentID], idx)
	}
	return firstSeq, nil
}

func (m *Memory) LoadAll(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Memory) LoadForAgent(ctx context.Context, agentID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	idxs := m.byAgent[agentID]
	out := make([]Record, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *Memory) Tail(ctx context.Context, agentID string, n int) ([]Record, error) {
	recs, err := m.LoadForAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(recs) {
		return recs, nil
	}
	return recs[len(recs)-n:], nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
