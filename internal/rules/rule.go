// Package rules defines the predicates a commit message is judged by and
// evaluates them as one batch per input change.
package rules

import "context"

// Validator judges the whole current input. An error means the rule is
// not satisfied; it never aborts the rest of the batch.
type Validator func(ctx context.Context, input string) (bool, error)

// Check adapts a plain string predicate into a Validator.
func Check(pred func(input string) bool) Validator {
	return func(_ context.Context, input string) (bool, error) {
		return pred(input), nil
	}
}

// Rule is a single numbered requirement on the commit message.
type Rule struct {
	ID          int
	Description string
	Validator   Validator

	// Color is a "#rrggbb" swatch shown next to the rule. The rule expects
	// the player to type its hex code.
	Color string

	// ProgressMax and Progress report a secondary metric, such as how many
	// of the required tokens are present, independent of Validator.
	ProgressMax int
	Progress    func(input string) int
}
