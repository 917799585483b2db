// Package panel owns the single live InputState and its current evaluation.
//
// Every adapter (HTTP, Kafka, weather feed, terminal UI) changes inputs
// through a Panel. Each change is followed by a full recomputation under the
// panel lock, so evaluations never overlap and sequence numbers only grow.
package panel

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
)

// Observer is notified of every evaluation in sequence order. Observers run
// under the panel lock and must not call back into the panel.
type Observer func(domain.Evaluation)

// Panel is the presentation-side owner of the inputs.
type Panel struct {
	mu        sync.Mutex
	state     domain.InputState
	current   domain.Evaluation
	seq       uint64
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Panel.
type Option func(*Panel)

// WithLogger sets the panel logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Panel) { p.logger = l }
}

// WithObserver registers an observer before the startup evaluation so it sees it.
func WithObserver(o Observer) Option {
	return func(p *Panel) { p.observers = append(p.observers, o) }
}

// New creates a panel with every input off and performs the startup evaluation.
func New(opts ...Option) *Panel {
	p := &Panel{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.recalculate(domain.SourceStartup)
	return p
}

// Subscribe registers an observer for subsequent evaluations.
func (p *Panel) Subscribe(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Toggle flips one input and re-evaluates.
func (p *Panel) Toggle(in domain.Input, source string) domain.Evaluation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = p.state.Toggle(in)
	return p.recalculate(source)
}

// Set sets one input and re-evaluates, even when the value is unchanged.
func (p *Panel) Set(in domain.Input, v bool, source string) domain.Evaluation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = p.state.Set(in, v)
	return p.recalculate(source)
}

// Apply replaces all four inputs and re-evaluates.
func (p *Panel) Apply(state domain.InputState, source string) domain.Evaluation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
	return p.recalculate(source)
}

// Execute applies a command and re-evaluates.
func (p *Panel) Execute(cmd domain.Command, source string) domain.Evaluation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = cmd.ApplyTo(p.state)
	return p.recalculate(source)
}

// Snapshot returns the current evaluation.
func (p *Panel) Snapshot() domain.Evaluation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// ReadInputs returns the current inputs.
func (p *Panel) ReadInputs() domain.InputState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// CheckReadiness returns nil once the startup evaluation exists.
func (p *Panel) CheckReadiness(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current.Sequence == 0 {
		return errors.New("panel has not been evaluated yet")
	}
	return nil
}

// recalculate must be called with p.mu held.
func (p *Panel) recalculate(source string) domain.Evaluation {
	domain.Recalculate(frame{panel: p, source: source})
	return p.current
}

// frame is the domain.Presenter view of a panel while its lock is held.
type frame struct {
	panel  *Panel
	source string
}

func (f frame) ReadInputs() domain.InputState { return f.panel.state }

func (f frame) Render(result domain.GateResult) {
	p := f.panel
	p.seq++
	p.current = domain.NewEvaluation(p.seq, f.source, p.state, result)

	p.logger.Debug("panel evaluated",
		"sequence", p.current.Sequence,
		"source", f.source,
		"rain", p.state.Rain,
		"drizzle", p.state.Drizzle,
		"wind", p.state.Wind,
		"night", p.state.Time,
		"reminder", domain.ReminderLabel(result.ReminderOn),
	)

	for _, o := range p.observers {
		o(p.current)
	}
}
