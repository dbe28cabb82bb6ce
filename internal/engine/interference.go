package engine

import "github.com/tatianab/commit-game/internal/models"

// Kind is the flavor of an interference.
type Kind string

const (
	KindConflict   Kind = "conflict"
	KindCodeReview Kind = "codeReview"
)

// interferenceChance is the probability of each of the two draws.
const interferenceChance = 0.3

// Interference blocks the win even when every rule passes.
type Interference struct {
	Kind    Kind
	Message string
}

// roll draws for a conflict first and, only if that misses, for a code
// review. A kind with no messages produces nothing.
func roll(rnd Rand, content models.Content) *Interference {
	if rnd.Float64() < interferenceChance {
		return pick(rnd, KindConflict, content.Conflicts)
	}
	if rnd.Float64() < interferenceChance {
		return pick(rnd, KindCodeReview, content.CodeReviews)
	}
	return nil
}

func pick(rnd Rand, kind Kind, messages []string) *Interference {
	if len(messages) == 0 {
		return nil
	}
	return &Interference{Kind: kind, Message: messages[rnd.IntN(len(messages))]}
}
