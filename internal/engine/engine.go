// Package engine orchestrates the command/event pipeline: validate against
// a fold of the journal, append the resulting events atomically, let the
// regulator react inside the same critical section, then fan out on the
// event bus. All writes for one agent are serialized; different agents
// proceed in parallel.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/laundrosim/backend/internal/adjudication"
	"github.com/laundrosim/backend/internal/bus"
	"github.com/laundrosim/backend/internal/command"
	"github.com/laundrosim/backend/internal/config"
	"github.com/laundrosim/backend/internal/domain"
	"github.com/laundrosim/backend/internal/event"
	"github.com/laundrosim/backend/internal/handlers"
	"github.com/laundrosim/backend/internal/journal"
	"github.com/laundrosim/backend/internal/monitoring"
	"github.com/laundrosim/backend/internal/projection"
	"github.com/laundrosim/backend/internal/ticker"
)

// Result is the outcome of a command or time advance. A rejected command
// has OK false, an error kind from the command package, and no events.
type Result struct {
	OK        bool           `json:"ok"`
	Events    []*event.Event `json:"events,omitempty"`
	ErrorKind string         `json:"error_kind,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// Engine wires the pipeline together.
type Engine struct {
	cfg      *config.Config
	journal  journal.Journal
	builder  *projection.Builder
	handlers *handlers.Registry
	deps     *handlers.Deps
	ticker   *ticker.Ticker
	gm       *adjudication.GameMaster
	reg      *adjudication.Regulator
	bus      bus.Bus
	metrics  *monitoring.Metrics
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithClock injects the timestamp source (tests pin it).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithBus attaches an event bus for post-commit fan-out.
func WithBus(b bus.Bus) Option {
	return func(e *Engine) { e.bus = b }
}

// New assembles an engine over the given journal.
func New(cfg *config.Config, j journal.Journal, opts ...Option) *Engine {
	registry := projection.NewRegistry()
	e := &Engine{
		cfg:      cfg,
		journal:  j,
		builder:  projection.NewBuilder(j, registry),
		handlers: handlers.NewRegistry(),
		deps:     &handlers.Deps{Econ: cfg.Economy, Reg: cfg.Regulation},
		ticker:   ticker.New(cfg.Economy, registry),
		gm:       adjudication.NewGameMaster(cfg.Economy),
		reg:      adjudication.NewRegulator(cfg.Economy, cfg.Regulation),
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// lockAgent returns the mutex serializing one agent's writes.
func (e *Engine) lockAgent(agentID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[agentID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[agentID] = l
	}
	return l
}

// stamp assigns the event id and wall-clock timestamp. Simulation time
// (week/day) is already set by whoever produced the event.
func (e *Engine) stamp(evs []*event.Event) {
	ts := e.now()
	for _, ev := range evs {
		ev.EventID = uuid.New().String()
		ev.Timestamp = ts
	}
}

// CreateAgent seeds a new agent stream. The stream must be empty.
func (e *Engine) CreateAgent(ctx context.Context, agentID, name string) (*Result, error) {
	l := e.lockAgent(agentID)
	l.Lock()
	defer l.Unlock()

	existing, err := e.journal.LoadForAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &Result{
			OK:        false,
			ErrorKind: command.ErrInvalidState,
			Message:   fmt.Sprintf("agent %s already exists", agentID),
		}, nil
	}

	ev := event.New(agentID, 0, 0, &event.AgentCreated{
		AgentName:      name,
		StartingCash:   e.cfg.Economy.StartingCash,
		CreditLimit:    e.cfg.Economy.CreditLimit,
		LocationID:     "LOC_001",
		Zone:           "DOWNTOWN",
		MonthlyRent:    e.cfg.Economy.StartingRent,
		FirstMachineID: "MCH_001",
	})
	evs := []*event.Event{ev}
	e.stamp(evs)

	if _, err := e.journal.AppendAll(ctx, evs); err != nil {
		return nil, err
	}
	e.publish(evs)
	return &Result{OK: true, Events: evs}, nil
}

// ExecuteCommand runs the full pipeline for one command. The context
// deadline is honored up to the first append; after that the operation
// runs to completion so the journal never holds a half-written decision.
func (e *Engine) ExecuteCommand(ctx context.Context, cmd *command.Command) (*Result, error) {
	if cmd.AgentID == "" {
		return &Result{OK: false, ErrorKind: command.ErrInvalidState, Message: "missing agent_id"}, nil
	}

	l := e.lockAgent(cmd.AgentID)
	l.Lock()
	defer l.Unlock()

	state, err := e.fold(ctx, cmd.AgentID)
	if err != nil {
		return nil, err
	}
	if state.Retired {
		return e.reject(cmd, command.Reject(command.ErrInvalidState, "agent %s is retired", cmd.AgentID)), nil
	}

	emissions, err := e.handlers.Handle(e.deps, state, cmd)
	if err != nil {
		if ve, ok := command.AsValidation(err); ok {
			return e.reject(cmd, ve), nil
		}
		return nil, err
	}

	// Build the batch: own-stream events carry the pre-command simulation
	// clock; mirror events borrow it (their stream has no clock of its own
	// at this instant).
	evs := make([]*event.Event, 0, len(emissions))
	for _, em := range emissions {
		target := cmd.AgentID
		if em.AgentID != "" {
			target = em.AgentID
		}
		evs = append(evs, event.New(target, state.Week, state.Day, em.Payload))
	}

	consequences, err := e.adjudicate(ctx, cmd.AgentID, state, evs)
	if err != nil {
		return nil, err
	}
	batch := append(evs, consequences...)
	e.stamp(batch)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := e.now()
	if _, err := e.journal.AppendAll(context.WithoutCancel(ctx), batch); err != nil {
		e.count(cmd.Kind, "error")
		return nil, fmt.Errorf("engine: append for %s: %w", cmd.Kind, err)
	}
	e.observeAppend(start, batch)
	e.count(cmd.Kind, "ok")

	e.publish(batch)
	slog.Info("command executed",
		"agent", cmd.AgentID, "kind", cmd.Kind, "events", len(batch))
	return &Result{OK: true, Events: batch}, nil
}

// adjudicate folds the proposed events onto the pre-command state and asks
// the regulator for consequences. Runs inside the per-agent critical
// section so the consequences commit with their trigger.
func (e *Engine) adjudicate(ctx context.Context, agentID string, pre *domain.AgentState, evs []*event.Event) ([]*event.Event, error) {
	post := pre
	var err error
	for _, ev := range evs {
		if ev.AgentID != agentID {
			continue // mirror events fold on the counterpart's stream
		}
		post, err = e.builder.Registry().Apply(post, ev)
		if err != nil {
			return nil, fmt.Errorf("engine: projecting proposed events: %w", err)
		}
	}

	tail, err := e.journal.Tail(ctx, agentID, e.cfg.Regulation.MonotonicityWindow)
	if err != nil {
		return nil, err
	}
	return e.reg.Inspect(post, evs, tail), nil
}

// AdvanceTime runs the autonomous ticker day by day. Each day's events
// (tick, narrative injections, regulator consequences) commit as one
// atomic batch.
func (e *Engine) AdvanceTime(ctx context.Context, agentID string, days int) (*Result, error) {
	if days < 1 {
		return &Result{OK: false, ErrorKind: command.ErrInvalidState, Message: "days must be at least 1"}, nil
	}

	l := e.lockAgent(agentID)
	l.Lock()
	defer l.Unlock()

	state, err := e.fold(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if len(state.Locations) == 0 {
		return &Result{
			OK:        false,
			ErrorKind: command.ErrInvalidState,
			Message:   fmt.Sprintf("agent %s does not exist", agentID),
		}, nil
	}

	var all []*event.Event
	for i := 0; i < days; i++ {
		tickEvents, err := e.ticker.Advance(state, 1)
		if err != nil {
			return nil, err
		}

		post := state
		for _, ev := range tickEvents {
			post, err = e.builder.Registry().Apply(post, ev)
			if err != nil {
				return nil, err
			}
		}

		narrative := e.gm.AfterDay(post)
		for _, ev := range narrative {
			post, err = e.builder.Registry().Apply(post, ev)
			if err != nil {
				return nil, err
			}
		}

		batch := append(tickEvents, narrative...)
		tail, err := e.journal.Tail(ctx, agentID, e.cfg.Regulation.MonotonicityWindow)
		if err != nil {
			return nil, err
		}
		consequences := e.reg.Inspect(post, batch, tail)
		for _, ev := range consequences {
			post, err = e.builder.Registry().Apply(post, ev)
			if err != nil {
				return nil, err
			}
		}
		batch = append(batch, consequences...)
		e.stamp(batch)

		if i == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		start := e.now()
		if _, err := e.journal.AppendAll(context.WithoutCancel(ctx), batch); err != nil {
			return nil, fmt.Errorf("engine: append tick day %d: %w", i+1, err)
		}
		e.observeAppend(start, batch)
		if e.metrics != nil {
			e.metrics.TickDays.Inc()
		}

		all = append(all, batch...)
		state = post
	}

	e.publish(all)
	slog.Info("time advanced", "agent", agentID, "days", days, "events", len(all))
	return &Result{OK: true, Events: all}, nil
}

// CurrentState folds the agent's full stream into a fresh snapshot.
func (e *Engine) CurrentState(ctx context.Context, agentID string) (*domain.AgentState, error) {
	return e.fold(ctx, agentID)
}

// StateAt folds the stream up to a global sequence number.
func (e *Engine) StateAt(ctx context.Context, agentID string, seq uint64) (*domain.AgentState, error) {
	return e.builder.AtSeq(ctx, agentID, seq)
}

// StateAtGameTime folds the stream up to a simulation week and day.
func (e *Engine) StateAtGameTime(ctx context.Context, agentID string, week, day int) (*domain.AgentState, error) {
	return e.builder.AtGameTime(ctx, agentID, week, day)
}

// History returns the agent's most recent events, oldest first.
func (e *Engine) History(ctx context.Context, agentID string, limit int) ([]journal.Record, error) {
	return e.journal.Tail(ctx, agentID, limit)
}

func (e *Engine) fold(ctx context.Context, agentID string) (*domain.AgentState, error) {
	start := e.now()
	s, err := e.builder.Current(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.FoldDuration.Observe(e.now().Sub(start).Seconds())
	}
	return s, nil
}

func (e *Engine) reject(cmd *command.Command, ve *command.ValidationError) *Result {
	e.count(cmd.Kind, "rejected")
	slog.Info("command rejected",
		"agent", cmd.AgentID, "kind", cmd.Kind, "reason", ve.ErrKind)
	return &Result{OK: false, ErrorKind: ve.ErrKind, Message: ve.Message}
}

func (e *Engine) count(kind, status string) {
	if e.metrics != nil {
		e.metrics.CommandsExecuted.WithLabelValues(kind, status).Inc()
	}
}

func (e *Engine) observeAppend(start time.Time, batch []*event.Event) {
	if e.metrics == nil {
		return
	}
	e.metrics.AppendLatency.Observe(e.now().Sub(start).Seconds())
	for _, ev := range batch {
		e.metrics.EventsAppended.WithLabelValues(ev.EventKind).Inc()
	}
}

// publish fans the committed events out after the critical section; bus
// delivery never affects the command result.
func (e *Engine) publish(evs []*event.Event) {
	if e.bus == nil {
		return
	}
	for _, ev := range evs {
		if err := e.bus.Publish(context.Background(), ev); err != nil {
			slog.Warn("bus publish failed", "kind", ev.EventKind, "error", err)
		}
	}
	if e.metrics != nil {
		e.metrics.BusPublished.Add(float64(len(evs)))
	}
}
