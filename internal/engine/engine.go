package engine

import (
	"cmp"
	"context"
	"slices"

	"github.com/tatianab/commit-game/internal/models"
	"github.com/tatianab/commit-game/internal/rules"
	"go.uber.org/zap"
)

// Engine turns input changes into new game states.
type Engine struct {
	rules   *rules.RuleSet
	content models.Content
	rnd     Rand
	logger  *zap.Logger
}

type Option func(*Engine)

// WithRand replaces the random source used for interference.
func WithRand(rnd Rand) Option {
	return func(e *Engine) {
		e.rnd = rnd
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(rs *rules.RuleSet, content models.Content, opts ...Option) *Engine {
	e := &Engine{
		rules:   rs,
		content: content,
		rnd:     NewRand(0),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the rule set the engine evaluates.
func (e *Engine) Rules() *rules.RuleSet {
	return e.rules
}

// Initial returns the state a session starts from: empty input, rule 1
// visible, nothing satisfied and no interference.
func (e *Engine) Initial() State {
	st := State{
		Satisfied: map[int]bool{},
		Progress:  map[int]int{},
		Total:     e.rules.Len(),
	}
	if st.Total > 0 {
		st.Visible = []int{1}
	}
	return st
}

// Next evaluates every rule against input and applies the result to st.
// It fails only if ctx is done before the batch completes, in which case no
// state is produced.
func (e *Engine) Next(ctx context.Context, st State, input string) (State, error) {
	results, err := e.rules.Evaluate(ctx, input)
	if err != nil {
		return st, err
	}
	return e.Apply(st, input, results), nil
}

// Apply builds the state following st from an evaluated batch. At most one
// rule is revealed per call, and only a call that reveals may roll for
// interference.
func (e *Engine) Apply(st State, input string, results map[int]bool) State {
	next := State{
		Input:        input,
		Satisfied:    make(map[int]bool),
		Visible:      slices.Clone(st.Visible),
		Interference: st.Interference,
		Progress:     e.rules.Progress(input),
		Total:        e.rules.Len(),
	}
	for id, ok := range results {
		if ok && id >= 1 && id <= next.Total {
			next.Satisfied[id] = true
		}
	}

	top := next.MaxVisible()
	if top == 0 || !next.Satisfied[top] || top >= next.Total || next.IsVisible(top+1) {
		return next
	}

	next.Visible = append([]int{top + 1}, next.Visible...)
	e.logger.Debug("Revealed rule", zap.Int("rule", top+1))

	if in := roll(e.rnd, e.content); in != nil {
		next.Interference = in
		e.logger.Debug("Interference",
			zap.String("kind", string(in.Kind)),
			zap.String("message", in.Message))
	}
	return next
}

// RuleView is a visible rule as the presentation layer draws it.
type RuleView struct {
	Rule      rules.Rule
	Satisfied bool
	Progress  int
}

// Fraction returns Progress as a share of ProgressMax, or 0 for rules
// without progress.
func (v RuleView) Fraction() float64 {
	if v.Rule.ProgressMax <= 0 {
		return 0
	}
	return float64(v.Progress) / float64(v.Rule.ProgressMax)
}

// View returns the visible rules in display order: unsatisfied before
// satisfied, ascending id within each group. Visible ids that name no rule
// are skipped.
func (e *Engine) View(st State) []RuleView {
	views := make([]RuleView, 0, len(st.Visible))
	for _, id := range st.Visible {
		r, ok := e.rules.Rule(id)
		if !ok {
			e.logger.Warn("Skipping unknown visible rule", zap.Int("rule", id))
			continue
		}
		views = append(views, RuleView{
			Rule:      r,
			Satisfied: st.Satisfied[id],
			Progress:  st.Progress[id],
		})
	}

	slices.SortStableFunc(views, func(a, b RuleView) int {
		if a.Satisfied != b.Satisfied {
			if a.Satisfied {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Rule.ID, b.Rule.ID)
	})
	return views
}
