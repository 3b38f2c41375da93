package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/laundrosim/backend/internal/event"
)

// Postgres is the shared-database journal backend. Records live in a
// single append-only table; sequence numbers come from a bigserial so
// ordering is global across processes.
type Postgres struct {
	db *sql.DB
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    seq      BIGSERIAL PRIMARY KEY,
    agent_id TEXT        NOT NULL,
    kind     TEXT        NOT NULL,
    body     JSONB       NOT NULL
);
CREATE INDEX IF NOT EXISTS events_agent_idx ON events (agent_id, seq);
`

// OpenPostgres connects via lib/pq and ensures the events table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, createEventsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create events table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Append(ctx context.Context, ev *event.Event) (uint64, error) {
	return p.AppendAll(ctx, []*event.Event{ev})
}

// AppendAll inserts the batch in one transaction so the records commit
// atomically and receive contiguous sequence numbers.
func (p *Postgres) AppendAll(ctx context.Context, evs []*event.Event) (uint64, error) {
	if len(evs) == 0 {
		return 0, nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("journal: begin tx: %w", err)
	}
	defer tx.Rollback()

	var firstSeq uint64
	for i, ev := range evs {
		body, err := json.Marshal(ev)
		if err != nil {
			return 0, fmt.Errorf("journal: marshal %s: %w", ev.EventKind, err)
		}
		var seq uint64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO events (agent_id, kind, body) VALUES ($1, $2, $3) RETURNING seq`,
			ev.AgentID, ev.EventKind, body,
		).Scan(&seq)
		if err != nil {
			return 0, fmt.Errorf("journal: insert %s: %w", ev.EventKind, err)
		}
		if i == 0 {
			firstSeq = seq
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("journal: commit: %w", err)
	}
	return firstSeq, nil
}

func (p *Postgres) query(ctx context.Context, where string, args ...interface{}) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT seq, body FROM events `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: query events: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			seq  uint64
			body []byte
		)
		if err := rows.Scan(&seq, &body); err != nil {
			return nil, fmt.Errorf("journal: scan event row: %w", err)
		}
		ev := &event.Event{}
		if err := json.Unmarshal(body, ev); err != nil {
			return nil, fmt.Errorf("journal: decode record %d: %w", seq, err)
		}
		out = append(out, Record{Seq: seq, Event: ev})
	}
	return out, rows.Err()
}

func (p *Postgres) LoadAll(ctx context.Context) ([]Record, error) {
	return p.query(ctx, "")
}

func (p *Postgres) LoadForAgent(ctx context.Context, agentID string) ([]Record, error) {
	return p.query(ctx, `WHERE agent_id = $1`, agentID)
}

func (p *Postgres) Tail(ctx context.Context, agentID string, n int) ([]Record, error) {
	if n <= 0 {
		return p.LoadForAgent(ctx, agentID)
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT seq, body FROM (
		     SELECT seq, body FROM events WHERE agent_id = $1 ORDER BY seq DESC LIMIT $2
		 ) tail ORDER BY seq`, agentID, n)
	if err != nil {
		return nil, fmt.Errorf("journal: query tail: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			seq  uint64
			body []byte
		)
		if err := rows.Scan(&seq, &body); err != nil {
			return nil, err
		}
		ev := &event.Event{}
		if err := json.Unmarshal(body, ev); err != nil {
			return nil, fmt.Errorf("journal: decode record %d: %w", seq, err)
		}
		out = append(out, Record{Seq: seq, Event: ev})
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
