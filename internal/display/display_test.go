package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJE43/darts-checkout-go/internal/darts"
)

func TestLabel(t *testing.T) {
	testCases := []struct {
		throw darts.Throw
		style Style
		want  string
	}{
		{darts.Throw{Segment: 7, Multiplier: darts.Single}, FinishStyle, "7"},
		{darts.Throw{Segment: 16, Multiplier: darts.Double}, FinishStyle, "D16"},
		{darts.Throw{Segment: 20, Multiplier: darts.Triple}, FinishStyle, "T20"},
		{darts.Throw{Segment: 25, Multiplier: darts.Double}, FinishStyle, "BULL"},
		{darts.Throw{Segment: 25, Multiplier: darts.Double}, RoundStyle, "D25"},
		{darts.Throw{Segment: 25, Multiplier: darts.Single}, FinishStyle, "25"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Label(tc.throw, tc.style))
	}
}

func TestFormatCheckouts(t *testing.T) {
	solver := darts.NewSolver()

	finish, err := solver.Finish(130, 3)
	require.NoError(t, err)
	assert.Equal(t, "20 T20 BULL", Format(finish, FinishStyle))
	assert.Equal(t, "20 T20 D25", Format(finish, RoundStyle))

	round, err := solver.Round(9)
	require.NoError(t, err)
	assert.Equal(t, "7 D1", Format(round, StyleFor(darts.ModeRound)))

	none, err := solver.Finish(92, 1)
	require.NoError(t, err)
	assert.Equal(t, NoSolution, Format(none, FinishStyle))
	assert.Empty(t, Labels(none, FinishStyle))
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, FinishStyle, StyleFor(darts.ModeFinish))
	assert.Equal(t, RoundStyle, StyleFor(darts.ModeRound))
}

func TestParseScore(t *testing.T) {
	testCases := []struct {
		input string
		want  int
		err   error
	}{
		{"1", 1, nil},
		{" 170 ", 170, nil},
		{"501", 501, nil},
		{"0", 0, ErrScoreOutOfRange},
		{"502", 0, ErrScoreOutOfRange},
		{"70000", 0, ErrScoreOutOfRange},
		{"", 0, ErrEmptyInput},
		{"   ", 0, ErrEmptyInput},
		{"-5", 0, ErrNotANumber},
		{"12a", 0, ErrNotANumber},
		{"4.5", 0, ErrNotANumber},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseScore(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, ScoreInRange(got))
		})
	}
}

func TestParseThrows(t *testing.T) {
	for _, input := range []string{"1", "2", "3"} {
		n, err := ParseThrows(input)
		require.NoError(t, err)
		assert.True(t, ThrowsInRange(n))
	}

	_, err := ParseThrows("4")
	assert.ErrorIs(t, err, ErrThrowsOutOfRange)
	_, err = ParseThrows("0")
	assert.ErrorIs(t, err, ErrThrowsOutOfRange)
	_, err = ParseThrows("99999")
	assert.ErrorIs(t, err, ErrThrowsOutOfRange)
	_, err = ParseThrows("three")
	assert.ErrorIs(t, err, ErrNotANumber)
}
