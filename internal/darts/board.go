package darts

import "sort"

// Bull is the segment value of the bullseye. It has no triple ring.
const Bull = 25

// Board is the immutable model of the scoring segments.
//
// segments holds the values usable as single or triple, highest first.
// doubles holds the values usable as a finishing double, highest first;
// it is the numeric sort of the bull and the numbered segments, so the
// bull leads the list.
type Board struct {
	segments []int
	doubles  []int
	isDouble map[int]bool
}

// standardBoard is shared by every solver and lives for the whole process.
var standardBoard = newBoard()

func newBoard() *Board {
	segments := make([]int, 0, 20)
	for v := 20; v >= 1; v-- {
		segments = append(segments, v)
	}

	doubles := append([]int{Bull}, segments...)
	sort.Sort(sort.Reverse(sort.IntSlice(doubles)))

	isDouble := make(map[int]bool, len(doubles))
	for _, v := range doubles {
		isDouble[v] = true
	}

	return &Board{
		segments: segments,
		doubles:  doubles,
		isDouble: isDouble,
	}
}

// StandardBoard returns the shared board model.
func StandardBoard() *Board {
	return standardBoard
}

// Segments returns a copy of the single/triple segment values, highest first.
func (b *Board) Segments() []int {
	return append([]int(nil), b.segments...)
}

// Doubles returns a copy of the double-out segment values, highest first.
func (b *Board) Doubles() []int {
	return append([]int(nil), b.doubles...)
}

// Ceiling is the highest score the solver will attempt: two top triples
// plus the top double. Anything above it is unreachable in one turn.
func (b *Board) Ceiling() int {
	return 3*b.segments[0] + 3*b.segments[0] + 2*b.doubles[0]
}

// ClosingDouble returns the double that scores exactly score, if one exists.
func (b *Board) ClosingDouble(score int) (Throw, bool) {
	if score%2 != 0 || !b.isDouble[score/2] {
		return Throw{}, false
	}
	return Throw{Segment: score / 2, Multiplier: Double}, true
}

// Legal reports whether the throw exists on this board.
func (b *Board) Legal(t Throw) bool {
	switch t.Multiplier {
	case Single:
		return t.Segment == Bull || (t.Segment >= 1 && t.Segment <= b.segments[0])
	case Double:
		return b.isDouble[t.Segment]
	case Triple:
		return t.Segment >= 1 && t.Segment <= b.segments[0]
	default:
		return false
	}
}
