package darts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardSegments(t *testing.T) {
	board := StandardBoard()

	segments := board.Segments()
	require.Len(t, segments, 20)
	assert.Equal(t, 20, segments[0])
	assert.Equal(t, 1, segments[19])
	for i := 1; i < len(segments); i++ {
		assert.Greater(t, segments[i-1], segments[i])
	}
}

func TestBoardDoubles(t *testing.T) {
	doubles := StandardBoard().Doubles()

	require.Len(t, doubles, 21)
	assert.Equal(t, Bull, doubles[0])
	assert.Equal(t, 20, doubles[1])
	assert.Equal(t, 1, doubles[20])
	for i := 1; i < len(doubles); i++ {
		assert.Greater(t, doubles[i-1], doubles[i])
	}
}

func TestBoardCopiesAreIndependent(t *testing.T) {
	board := StandardBoard()

	segments := board.Segments()
	segments[0] = 99
	doubles := board.Doubles()
	doubles[0] = 99

	assert.Equal(t, 20, board.Segments()[0])
	assert.Equal(t, Bull, board.Doubles()[0])
	assert.Equal(t, 170, board.Ceiling())
}

func TestClosingDouble(t *testing.T) {
	board := StandardBoard()

	testCases := []struct {
		score int
		want  Throw
		ok    bool
	}{
		{2, Throw{Segment: 1, Multiplier: Double}, true},
		{40, Throw{Segment: 20, Multiplier: Double}, true},
		{50, Throw{Segment: Bull, Multiplier: Double}, true},
		{42, Throw{}, false},
		{48, Throw{}, false},
		{41, Throw{}, false},
		{0, Throw{}, false},
		{-4, Throw{}, false},
		{100, Throw{}, false},
	}

	for _, tc := range testCases {
		got, ok := board.ClosingDouble(tc.score)
		assert.Equal(t, tc.ok, ok, "score=%d", tc.score)
		assert.Equal(t, tc.want, got, "score=%d", tc.score)
	}
}

func TestLegalThrows(t *testing.T) {
	board := StandardBoard()

	assert.True(t, board.Legal(Throw{Segment: 25, Multiplier: Single}))
	assert.True(t, board.Legal(Throw{Segment: 25, Multiplier: Double}))
	assert.False(t, board.Legal(Throw{Segment: 25, Multiplier: Triple}))
	assert.True(t, board.Legal(Throw{Segment: 20, Multiplier: Triple}))
	assert.False(t, board.Legal(Throw{Segment: 21, Multiplier: Single}))
	assert.False(t, board.Legal(Throw{Segment: 0, Multiplier: Double}))
	assert.False(t, board.Legal(Throw{Segment: 5}))
}

func TestThrowPointsAndNotation(t *testing.T) {
	testCases := []struct {
		throw  Throw
		points int
		text   string
	}{
		{Throw{Segment: 20, Multiplier: Single}, 20, "20"},
		{Throw{Segment: 16, Multiplier: Double}, 32, "D16"},
		{Throw{Segment: 19, Multiplier: Triple}, 57, "T19"},
		{Throw{Segment: Bull, Multiplier: Double}, 50, "D25"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.points, tc.throw.Points())
		assert.Equal(t, tc.text, tc.throw.String())
	}
}

func TestThrowEquality(t *testing.T) {
	assert.True(t, Throw{Segment: 20, Multiplier: Triple} == Throw{Segment: 20, Multiplier: Triple})
	assert.False(t, Throw{Segment: 20, Multiplier: Triple} == Throw{Segment: 20, Multiplier: Double})
	assert.False(t, Throw{Segment: 20, Multiplier: Double} == Throw{Segment: 10, Multiplier: Double})
}

func TestMultiplierJSON(t *testing.T) {
	data, err := json.Marshal(Throw{Segment: 20, Multiplier: Triple})
	require.NoError(t, err)
	assert.JSONEq(t, `{"segment":20,"multiplier":"triple"}`, string(data))

	var th Throw
	require.NoError(t, json.Unmarshal([]byte(`{"segment":25,"multiplier":"double"}`), &th))
	assert.Equal(t, Throw{Segment: Bull, Multiplier: Double}, th)

	err = json.Unmarshal([]byte(`{"segment":25,"multiplier":"quadruple"}`), &th)
	assert.Error(t, err)
}

func TestCheckoutAccessors(t *testing.T) {
	c := checkoutOf(Throw{Segment: 20, Multiplier: Single}, Throw{Segment: 20, Multiplier: Triple}, Throw{Segment: Bull, Multiplier: Double})

	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, 20, first.Points())

	_, ok = c.Third()
	assert.True(t, ok)
	assert.Equal(t, 3, c.Darts())
	assert.Equal(t, 130, c.Total())

	_, ok = NoCheckout.First()
	assert.False(t, ok)
	_, ok = NoCheckout.Last()
	assert.False(t, ok)
	assert.Zero(t, NoCheckout.Total())
}
