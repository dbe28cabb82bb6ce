package engine

import "slices"

// State is one snapshot of a game session. The engine never mutates a State
// it has returned; every transition builds a new one.
type State struct {
	Input string

	// Satisfied holds the ids of the rules the input currently passes.
	Satisfied map[int]bool

	// Visible lists the revealed rule ids, most recently revealed first.
	Visible []int

	// Interference, once set, is never cleared by the engine.
	Interference *Interference

	// Progress maps rule id to its secondary metric for rules that have one.
	Progress map[int]int

	// Total is N, the size of the rule set.
	Total int
}

// Won reports whether every rule is satisfied and nothing interferes.
func (s State) Won() bool {
	return len(s.Satisfied) == s.Total && s.Interference == nil
}

// IsVisible reports whether rule id has been revealed.
func (s State) IsVisible(id int) bool {
	return slices.Contains(s.Visible, id)
}

// MaxVisible returns the highest revealed id, or 0 when nothing is visible.
func (s State) MaxVisible() int {
	if len(s.Visible) == 0 {
		return 0
	}
	return slices.Max(s.Visible)
}

// WithoutInterference returns a copy of s with the interference removed.
// The engine itself never calls it.
func (s State) WithoutInterference() State {
	s.Interference = nil
	return s
}
