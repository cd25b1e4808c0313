package darts

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every *OutOfRangeError via errors.Is.
var ErrOutOfRange = errors.New("argument out of range")

// Argument names reported by OutOfRangeError.
const (
	ParamRemainingScore  = "remaining_score"
	ParamRemainingThrows = "remaining_throws"
)

// OutOfRangeError reports a caller-contract violation: the solver was asked
// about a score or throw count that cannot occur in a 501 game.
type OutOfRangeError struct {
	Param string
	Value int
}

func (e *OutOfRangeError) Error() string {
	switch e.Param {
	case ParamRemainingScore:
		return fmt.Sprintf("darts game cannot have a remaining score of %d", e.Value)
	case ParamRemainingThrows:
		return fmt.Sprintf("darts round cannot have %d throws left", e.Value)
	default:
		return fmt.Sprintf("%s out of range: %d", e.Param, e.Value)
	}
}

// Is makes errors.Is(err, ErrOutOfRange) hold.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
