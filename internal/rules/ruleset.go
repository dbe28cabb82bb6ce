package rules

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRuleSet is returned by New for rule definitions the engine cannot
// order or render.
var ErrInvalidRuleSet = errors.New("invalid rule set")

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RuleSet is an ordered, immutable collection of rules with ids 1..N.
type RuleSet struct {
	rules  []Rule
	logger *zap.Logger
}

type Option func(*RuleSet)

// WithLogger sets the logger validator failures are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(s *RuleSet) {
		s.logger = logger
	}
}

// New validates the rule definitions and returns them ordered by id.
func New(rules []Rule, opts ...Option) (*RuleSet, error) {
	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(a, b Rule) int { return a.ID - b.ID })

	for i, r := range sorted {
		if r.ID != i+1 {
			return nil, fmt.Errorf("%w: ids must be contiguous from 1, found %d at position %d", ErrInvalidRuleSet, r.ID, i+1)
		}
		if r.Validator == nil {
			return nil, fmt.Errorf("%w: rule %d has no validator", ErrInvalidRuleSet, r.ID)
		}
		if (r.Progress == nil) != (r.ProgressMax == 0) || r.ProgressMax < 0 {
			return nil, fmt.Errorf("%w: rule %d needs both Progress and a positive ProgressMax", ErrInvalidRuleSet, r.ID)
		}
		if r.Color != "" && !hexColorRe.MatchString(r.Color) {
			return nil, fmt.Errorf("%w: rule %d color %q is not #rrggbb", ErrInvalidRuleSet, r.ID, r.Color)
		}
	}

	s := &RuleSet{rules: sorted, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Len returns N, the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the rules in id order.
func (s *RuleSet) Rules() []Rule {
	return slices.Clone(s.rules)
}

// Rule looks up a rule by id.
func (s *RuleSet) Rule(id int) (Rule, bool) {
	if id < 1 || id > len(s.rules) {
		return Rule{}, false
	}
	return s.rules[id-1], true
}

// Evaluate runs every validator against the full input and returns the
// outcome for every rule id. Validators run concurrently and the batch is
// only returned once all of them finished. The only error is the context's,
// which means the batch was abandoned and its results must not be used.
func (s *RuleSet) Evaluate(ctx context.Context, input string) (map[int]bool, error) {
	outcomes := make([]bool, len(s.rules))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range s.rules {
		g.Go(func() error {
			ok, err := s.run(gctx, r, input)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Debug("Validator failed", zap.Int("rule", r.ID), zap.Error(err))
				return nil
			}
			outcomes[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make(map[int]bool, len(s.rules))
	for i, r := range s.rules {
		results[r.ID] = outcomes[i]
	}
	return results, nil
}

func (s *RuleSet) run(ctx context.Context, r Rule, input string) (ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			ok, err = false, fmt.Errorf("rule %d panicked: %v", r.ID, p)
		}
	}()
	return r.Validator(ctx, input)
}

// Progress returns the secondary metric of every rule that declares one,
// clamped to [0, ProgressMax].
func (s *RuleSet) Progress(input string) map[int]int {
	progress := make(map[int]int)
	for _, r := range s.rules {
		if r.Progress == nil {
			continue
		}
		progress[r.ID] = min(max(r.Progress(input), 0), r.ProgressMax)
	}
	return progress
}
