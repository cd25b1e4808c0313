package darts

import (
	"fmt"
	"strconv"
)

// Multiplier is the ring a dart lands in.
type Multiplier int

const (
	Single Multiplier = iota + 1
	Double
	Triple
)

// Factor returns the score factor of the ring (1, 2 or 3).
func (m Multiplier) Factor() int {
	switch m {
	case Single, Double, Triple:
		return int(m)
	default:
		return 0
	}
}

// String returns the lower-case ring name used in JSON payloads and logs
func (m Multiplier) String() string {
	switch m {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	default:
		return "unknown(" + strconv.Itoa(int(m)) + ")"
	}
}

// MarshalText encodes the multiplier by name so JSON stays readable.
func (m Multiplier) MarshalText() ([]byte, error) {
	if m.Factor() == 0 {
		return nil, fmt.Errorf("invalid multiplier %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (m *Multiplier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "single":
		*m = Single
	case "double":
		*m = Double
	case "triple":
		*m = Triple
	default:
		return fmt.Errorf("invalid multiplier %q", string(text))
	}
	return nil
}

// Throw is a single dart: a segment value and the ring it hit.
// Throws are plain values; two throws are equal iff both fields are equal.
type Throw struct {
	Segment    int        `json:"segment"`
	Multiplier Multiplier `json:"multiplier"`
}

// Points returns the score the throw contributes.
func (t Throw) Points() int {
	return t.Segment * t.Multiplier.Factor()
}

// IsDouble reports whether the throw can close a double-out checkout.
func (t Throw) IsDouble() bool {
	return t.Multiplier == Double
}

// String renders the throw in board notation (20, D16, T19).
func (t Throw) String() string {
	switch t.Multiplier {
	case Double:
		return "D" + strconv.Itoa(t.Segment)
	case Triple:
		return "T" + strconv.Itoa(t.Segment)
	default:
		return strconv.Itoa(t.Segment)
	}
}
