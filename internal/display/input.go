package display

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MJE43/darts-checkout-go/internal/darts"
)

var (
	ErrEmptyInput       = errors.New("input is empty")
	ErrNotANumber       = errors.New("input is not a whole number")
	ErrScoreOutOfRange  = fmt.Errorf("remaining score must be between 1 and %d", darts.MaxRemainingScore)
	ErrThrowsOutOfRange = fmt.Errorf("remaining throws must be between 1 and %d", darts.MaxThrows)
)

// ParseScore validates a typed remaining score. Only values the solver
// accepts (1..501) are returned without error.
func ParseScore(text string) (int, error) {
	n, err := parseUnsigned(text, ErrScoreOutOfRange)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > darts.MaxRemainingScore {
		return 0, fmt.Errorf("%w: got %d", ErrScoreOutOfRange, n)
	}
	return int(n), nil
}

// ParseThrows validates a throw count selection (1, 2 or 3).
func ParseThrows(text string) (int, error) {
	n, err := parseUnsigned(text, ErrThrowsOutOfRange)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > darts.MaxThrows {
		return 0, fmt.Errorf("%w: got %d", ErrThrowsOutOfRange, n)
	}
	return int(n), nil
}

// ScoreInRange reports whether a parsed score may be sent to the solver.
func ScoreInRange(score int) bool {
	return score >= 1 && score <= darts.MaxRemainingScore
}

// ThrowsInRange reports whether a throw count may be sent to the solver.
func ThrowsInRange(throws int) bool {
	return throws >= 1 && throws <= darts.MaxThrows
}

// parseUnsigned reads a 16-bit unsigned integer; overflow is reported as rangeErr.
func parseUnsigned(text string, rangeErr error) (uint64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyInput
	}
	n, err := strconv.ParseUint(text, 10, 16)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", rangeErr, text)
		}
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}
	return n, nil
}
