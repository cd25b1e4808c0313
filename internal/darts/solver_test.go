package darts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int) Throw { return Throw{Segment: v, Multiplier: Double} }
func s(v int) Throw { return Throw{Segment: v, Multiplier: Single} }
func t3(v int) Throw { return Throw{Segment: v, Multiplier: Triple} }

func TestFinishExamples(t *testing.T) {
	solver := NewSolver()

	testCases := []struct {
		name   string
		score  int
		throws int
		want   []Throw
	}{
		{"double 20", 40, 3, []Throw{d(20)}},
		{"bull", 50, 1, []Throw{d(25)}},
		{"single then double", 9, 2, []Throw{s(7), d(1)}},
		{"single then bull", 70, 2, []Throw{s(20), d(25)}},
		{"double then double", 80, 3, []Throw{d(20), d(20)}},
		{"triple then double", 100, 2, []Throw{t3(20), d(20)}},
		{"single triple bull", 130, 3, []Throw{s(20), t3(20), d(25)}},
		{"triple triple bull", 170, 3, []Throw{t3(20), t3(20), d(25)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := solver.Finish(tc.score, tc.throws)
			require.NoError(t, err)
			require.True(t, got.Possible)
			assert.Equal(t, tc.want, got.Throws)
		})
	}
}

func TestFinishNotPossible(t *testing.T) {
	solver := NewSolver()

	testCases := []struct {
		score  int
		throws int
	}{
		{400, 3},
		{92, 1},
		{171, 3},
		{501, 3},
		{160, 2},
		{159, 3},
	}

	for _, tc := range testCases {
		got, err := solver.Finish(tc.score, tc.throws)
		require.NoError(t, err)
		assert.False(t, got.Possible, "score=%d throws=%d", tc.score, tc.throws)
		assert.Empty(t, got.Throws)
	}
}

func TestScoreOneNeverPossible(t *testing.T) {
	solver := NewSolver()
	for throws := 1; throws <= MaxThrows; throws++ {
		got, err := solver.Finish(1, throws)
		require.NoError(t, err)
		assert.False(t, got.Possible)
	}

	got, err := solver.Round(1)
	require.NoError(t, err)
	assert.False(t, got.Possible)
}

func TestAboveCeilingNeverPossible(t *testing.T) {
	solver := NewSolver()
	require.Equal(t, 170, solver.Board().Ceiling())

	for score := 171; score <= MaxRemainingScore; score++ {
		for throws := 1; throws <= MaxThrows; throws++ {
			got, err := solver.Finish(score, throws)
			require.NoError(t, err)
			require.False(t, got.Possible, "score=%d throws=%d", score, throws)
		}
	}
}

func TestRemainingScoreOutOfRange(t *testing.T) {
	solver := NewSolver()

	for _, score := range []int{0, -1, 502, 503, 947} {
		_, err := solver.Finish(score, 3)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutOfRange))

		var rangeErr *OutOfRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, ParamRemainingScore, rangeErr.Param)
		assert.Equal(t, score, rangeErr.Value)

		_, err = solver.Round(score)
		require.ErrorIs(t, err, ErrOutOfRange)
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, ParamRemainingScore, rangeErr.Param)
	}
}

func TestRemainingThrowsOutOfRange(t *testing.T) {
	solver := NewSolver()

	for _, throws := range []int{0, 4, -1} {
		_, err := solver.Finish(21, throws)
		require.ErrorIs(t, err, ErrOutOfRange)

		var rangeErr *OutOfRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, ParamRemainingThrows, rangeErr.Param)
		assert.Equal(t, throws, rangeErr.Value)
	}
}

func TestScoreCheckedBeforeThrows(t *testing.T) {
	_, err := NewSolver().Finish(0, 0)

	var rangeErr *OutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, ParamRemainingScore, rangeErr.Param)
}

func TestCheckoutsAreValid(t *testing.T) {
	solver := NewSolver()
	board := solver.Board()

	for score := 1; score <= MaxRemainingScore; score++ {
		for throws := 1; throws <= MaxThrows; throws++ {
			got, err := solver.Finish(score, throws)
			require.NoError(t, err)
			if !got.Possible {
				continue
			}

			require.LessOrEqual(t, got.Darts(), throws, "score=%d", score)
			require.Equal(t, score, got.Total(), "score=%d throws=%d", score, throws)

			last, ok := got.Last()
			require.True(t, ok)
			require.True(t, last.IsDouble(), "score=%d throws=%d ends on %s", score, throws, last)

			for _, th := range got.Throws {
				require.True(t, board.Legal(th), "illegal throw %s for score %d", th, score)
			}
		}
	}
}

func TestMoreThrowsNeverLosesCheckout(t *testing.T) {
	solver := NewSolver()

	for score := 2; score <= 170; score++ {
		possible := false
		for throws := 1; throws <= MaxThrows; throws++ {
			got, err := solver.Finish(score, throws)
			require.NoError(t, err)
			if possible {
				require.True(t, got.Possible, "score=%d lost its checkout at %d throws", score, throws)
			}
			possible = got.Possible
		}
	}
}

func TestRoundUsesFewestDarts(t *testing.T) {
	solver := NewSolver()

	for score := 1; score <= MaxRemainingScore; score++ {
		round, err := solver.Round(score)
		require.NoError(t, err)

		shortest := 0
		for throws := 1; throws <= MaxThrows; throws++ {
			finish, err := solver.Finish(score, throws)
			require.NoError(t, err)
			if finish.Possible && (shortest == 0 || finish.Darts() < shortest) {
				shortest = finish.Darts()
			}
		}

		if shortest == 0 {
			assert.False(t, round.Possible, "score=%d", score)
			continue
		}
		require.True(t, round.Possible, "score=%d", score)
		assert.LessOrEqual(t, round.Darts(), shortest, "score=%d", score)
	}
}

func TestRoundMatchesFullBudgetFinish(t *testing.T) {
	solver := NewSolver()

	for score := 2; score <= 170; score++ {
		round, err := solver.Round(score)
		require.NoError(t, err)
		finish, err := solver.Finish(score, MaxThrows)
		require.NoError(t, err)
		assert.Equal(t, finish, round, "score=%d", score)
	}
}

func TestSolveDispatch(t *testing.T) {
	solver := NewSolver()

	got, err := solver.Solve(ModeFinish, 92, 1)
	require.NoError(t, err)
	assert.False(t, got.Possible)

	got, err = solver.Solve(ModeRound, 92, 0)
	require.NoError(t, err)
	assert.Equal(t, []Throw{t3(20), d(16)}, got.Throws)

	_, err = solver.Solve(Mode("cricket"), 92, 3)
	assert.Error(t, err)
}

func TestSolverConcurrentUse(t *testing.T) {
	solver := NewSolver()
	want, err := solver.Finish(130, 3)
	require.NoError(t, err)

	done := make(chan Checkout)
	for i := 0; i < 8; i++ {
		go func() {
			c, _ := solver.Finish(130, 3)
			done <- c
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}

func BenchmarkFinishThreeDarts(b *testing.B) {
	solver := NewSolver()
	for i := 0; i < b.N; i++ {
		_, _ = solver.Finish(161, 3)
	}
}

func BenchmarkRound(b *testing.B) {
	solver := NewSolver()
	for i := 0; i < b.N; i++ {
		_, _ = solver.Round(2 + i%169)
	}
}
