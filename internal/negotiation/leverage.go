// Package negotiation implements the agent pipeline: the per-turn
// opponent/coach sequencing, the leverage heuristic, and post-session
// analysis generation.
package negotiation

import "strings"

// Leverage bounds and the fixed per-turn step.
const (
	LeverageMin  = 0.1
	LeverageMax  = 0.9
	leverageStep = 0.05
)

// Score computes the next leverage value from the opponent's reply.
// The heuristic is deliberately coarse: a case-insensitive "yes" or
// "agree" anywhere in the reply raises leverage by one step, anything
// else lowers it, and the result is clamped to the leverage bounds.
func Score(current float64, opponentReply string) float64 {
	lower := strings.ToLower(opponentReply)
	delta := -leverageStep
	if strings.Contains(lower, "yes") || strings.Contains(lower, "agree") {
		delta = leverageStep
	}
	return clamp(current+delta, LeverageMin, LeverageMax)
}

// InRange reports whether lev is a valid leverage value.
func InRange(lev float64) bool {
	return lev >= LeverageMin && lev <= LeverageMax
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
