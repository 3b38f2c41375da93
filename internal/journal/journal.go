// Package journal provides the append-only event log. The journal is the
// sole source of truth: state is always a fold over it, and nothing ever
// deletes or rewrites a committed record.
package journal

import (
	"context"
	"errors"

	"github.com/laundrosim/backend/internal/event"
)

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal: closed")

// Record is a committed event with its global sequence number. Seq is
// monotonic and gapless per log, starting at 1.
type Record struct {
	Seq   uint64       `json:"seq"`
	Event *event.Event `json:"-"`
}

// Journal is the append-only log contract. AppendAll commits the batch
// atomically and contiguously: either every event receives a consecutive
// sequence number or none is written.
type Journal interface {
	Append(ctx context.Context, ev *event.Event) (uint64, error)
	AppendAll(ctx context.Context, evs []*event.Event) (firstSeq uint64, err error)
	LoadAll(ctx context.Context) ([]Record, error)
	LoadForAgent(ctx context.Context, agentID string) ([]Record, error)
	Tail(ctx context.Context, agentID string, n int) ([]Record, error)
	Close() error
}
