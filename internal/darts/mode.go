package darts

import "fmt"

// Mode selects which solver query to run.
type Mode string

const (
	// ModeFinish searches for a checkout within an exact throw budget.
	ModeFinish Mode = "finish"
	// ModeRound searches budgets 1, 2 and 3 and keeps the first success.
	ModeRound Mode = "round"
)

// ModeSpec describes a mode for listings and UIs.
type ModeSpec struct {
	ID          Mode   `json:"id"`
	Name        string `json:"name"`
	TakesThrows bool   `json:"takes_throws"`
	MaxThrows   int    `json:"max_throws"`
}

// Modes returns the supported modes in a stable order.
func Modes() []ModeSpec {
	return []ModeSpec{
		{ID: ModeFinish, Name: "Finish", TakesThrows: true, MaxThrows: MaxThrows},
		{ID: ModeRound, Name: "Round", TakesThrows: false, MaxThrows: MaxThrows},
	}
}

// ParseMode converts a mode name; the empty string means ModeFinish.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFinish:
		return ModeFinish, nil
	case ModeRound:
		return ModeRound, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Solve dispatches to Finish or Round. throws is ignored in round mode.
func (s *Solver) Solve(mode Mode, remainingScore, throws int) (Checkout, error) {
	switch mode {
	case ModeFinish:
		return s.Finish(remainingScore, throws)
	case ModeRound:
		return s.Round(remainingScore)
	default:
		return NoCheckout, fmt.Errorf("unknown mode %q", mode)
	}
}
