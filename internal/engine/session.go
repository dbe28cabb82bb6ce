package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by Session.Commit when a newer input arrived
// before its evaluation finished. The session state is left untouched.
var ErrSuperseded = errors.New("input change superseded by a newer one")

// Session owns the state of one game. Input changes may be issued from
// several goroutines; only the most recent one commits its results.
type Session struct {
	id     string
	engine *Engine
	logger *zap.Logger

	mu     sync.Mutex
	state  State
	gen    uint64
	cancel context.CancelFunc
}

// NewSession starts a session and evaluates the empty input.
func NewSession(ctx context.Context, e *Engine) (*Session, error) {
	s := &Session{
		id:     uuid.NewString(),
		engine: e,
		state:  e.Initial(),
	}
	s.logger = e.logger.With(zap.String("session", s.id))

	if _, err := s.Change(ctx, ""); err != nil {
		return nil, err
	}
	s.logger.Info("Session started", zap.Int("rules", e.rules.Len()))
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Engine() *Engine {
	return s.engine
}

// State returns the latest committed state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ticket reserves a place in the order of input changes. Tickets are
// handed out by Begin and redeemed by Commit.
type Ticket struct {
	gen    uint64
	input  string
	ctx    context.Context
	cancel context.CancelFunc
}

// Input returns the text the ticket evaluates.
func (t *Ticket) Input() string {
	return t.input
}

// Begin reserves the next generation for input and cancels the evaluation of
// any older ticket. The order of Begin calls, not of Commit calls, decides
// which input wins, so callers issue Begin on the goroutine that sees the
// input changes.
func (s *Session) Begin(ctx context.Context, input string) *Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return &Ticket{gen: s.gen, input: input, ctx: ctx, cancel: cancel}
}

// Commit evaluates the ticket's input and commits the resulting state,
// unless a newer ticket was issued meanwhile, in which case it reports
// ErrSuperseded and leaves the state untouched.
func (s *Session) Commit(t *Ticket) (State, error) {
	defer t.cancel()

	results, err := s.engine.rules.Evaluate(t.ctx, t.input)

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.gen != s.gen {
		s.logger.Debug("Discarding stale evaluation", zap.Uint64("generation", t.gen))
		return s.state, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return s.state, err
	}

	prev := s.state
	s.state = s.engine.Apply(prev, t.input, results)
	if s.state.Interference != nil && s.state.Interference != prev.Interference {
		s.logger.Info("Interference raised",
			zap.String("kind", string(s.state.Interference.Kind)),
			zap.String("message", s.state.Interference.Message))
	}
	return s.state, nil
}

// Change is Begin followed by Commit.
func (s *Session) Change(ctx context.Context, input string) (State, error) {
	return s.Commit(s.Begin(ctx, input))
}

// View returns the visible rules of the latest state in display order.
func (s *Session) View() []RuleView {
	return s.engine.View(s.State())
}

// Submit reports whether the latest state is a win.
func (s *Session) Submit() bool {
	st := s.State()
	won := st.Won()
	s.logger.Info("Commit submitted",
		zap.Bool("won", won),
		zap.Int("satisfied", len(st.Satisfied)),
		zap.Int("total", st.Total))
	return won
}

// ResolveInterference clears the active interference. The engine never
// does this on its own; it exists for front ends that choose to let the
// player dismiss one.
func (s *Session) ResolveInterference() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Interference != nil {
		s.logger.Info("Interference resolved", zap.String("message", s.state.Interference.Message))
		s.state = s.state.WithoutInterference()
	}
	return s.state
}
