package darts

// Score and throw limits of a 501 double-out game.
const (
	MaxRemainingScore = 501
	MaxThrows         = 3
)

// openingTiers is the order in which the first dart's ring is tried.
// Cheaper rings come first so a single is preferred over a double over a triple.
var openingTiers = []Multiplier{Single, Double, Triple}

// Solver finds double-out checkouts on a board.
// It holds no mutable state and is safe for concurrent use.
type Solver struct {
	board *Board
}

// NewSolver returns a solver over the standard board.
func NewSolver() *Solver {
	return &Solver{board: standardBoard}
}

// Board returns the board model the solver searches.
func (s *Solver) Board() *Board {
	return s.board
}

// Finish returns a checkout for remainingScore using at most remainingThrows
// darts. Fewer darts are always preferred; among equal dart counts the first
// dart is tried single, then double, then triple, each from 20 down to 1.
//
// remainingScore must be in 1..501 and remainingThrows in 1..3, otherwise an
// *OutOfRangeError is returned. An unreachable score is not an error.
func (s *Solver) Finish(remainingScore, remainingThrows int) (Checkout, error) {
	if err := validateScore(remainingScore); err != nil {
		return NoCheckout, err
	}
	if remainingThrows < 1 || remainingThrows > MaxThrows {
		return NoCheckout, &OutOfRangeError{Param: ParamRemainingThrows, Value: remainingThrows}
	}

	if remainingScore > s.board.Ceiling() || remainingScore < 2 {
		return NoCheckout, nil
	}

	if last, ok := s.board.ClosingDouble(remainingScore); ok {
		return checkoutOf(last), nil
	}
	if remainingThrows == 1 {
		return NoCheckout, nil
	}

	if c, ok := s.twoDarts(remainingScore); ok {
		return c, nil
	}
	if remainingThrows == 2 {
		return NoCheckout, nil
	}

	if c, ok := s.threeDarts(remainingScore); ok {
		return c, nil
	}
	return NoCheckout, nil
}

// Round returns the shortest checkout for remainingScore within one turn.
func (s *Solver) Round(remainingScore int) (Checkout, error) {
	if err := validateScore(remainingScore); err != nil {
		return NoCheckout, err
	}
	for throws := 1; throws <= MaxThrows; throws++ {
		c, err := s.Finish(remainingScore, throws)
		if err != nil {
			return NoCheckout, err
		}
		if c.Possible {
			return c, nil
		}
	}
	return NoCheckout, nil
}

// twoDarts tries every opening dart followed by a closing double.
func (s *Solver) twoDarts(score int) (Checkout, bool) {
	for _, m := range openingTiers {
		for _, v := range s.board.segments {
			first := Throw{Segment: v, Multiplier: m}
			if last, ok := s.board.ClosingDouble(score - first.Points()); ok {
				return checkoutOf(first, last), true
			}
		}
	}
	return NoCheckout, false
}

// threeDarts tries every opening dart, then a triple, then a closing double.
// For a fixed opening dart the higher second triple wins.
func (s *Solver) threeDarts(score int) (Checkout, bool) {
	for _, m := range openingTiers {
		for _, v1 := range s.board.segments {
			first := Throw{Segment: v1, Multiplier: m}
			for _, v2 := range s.board.segments {
				second := Throw{Segment: v2, Multiplier: Triple}
				rest := score - first.Points() - second.Points()
				if last, ok := s.board.ClosingDouble(rest); ok {
					return checkoutOf(first, second, last), true
				}
			}
		}
	}
	return NoCheckout, false
}

func validateScore(score int) error {
	if score < 1 || score > MaxRemainingScore {
		return &OutOfRangeError{Param: ParamRemainingScore, Value: score}
	}
	return nil
}
