// Package display turns checkouts into the short board notation shown to
// players and validates the raw text a player types before it reaches the
// solver.
package display

import (
	"strconv"
	"strings"

	"github.com/MJE43/darts-checkout-go/internal/darts"
)

// NoSolution is shown when a score cannot be checked out.
const NoSolution = "No"

// Style selects how the double bull is labelled.
type Style struct {
	// BullLabel replaces D25 when non-empty.
	BullLabel string
}

var (
	// FinishStyle is used by finish mode and calls the double bull BULL.
	FinishStyle = Style{BullLabel: "BULL"}
	// RoundStyle is used by round mode and keeps plain D25.
	RoundStyle = Style{}
)

// StyleFor returns the default style of a mode.
func StyleFor(mode darts.Mode) Style {
	if mode == darts.ModeFinish {
		return FinishStyle
	}
	return RoundStyle
}

// Label renders one throw: 20, D16, T20 or the bull label.
func Label(t darts.Throw, style Style) string {
	if t.Multiplier == darts.Double && t.Segment == darts.Bull && style.BullLabel != "" {
		return style.BullLabel
	}
	switch t.Multiplier {
	case darts.Double:
		return "D" + strconv.Itoa(t.Segment)
	case darts.Triple:
		return "T" + strconv.Itoa(t.Segment)
	default:
		return strconv.Itoa(t.Segment)
	}
}

// Labels renders every throw of a checkout in order.
func Labels(c darts.Checkout, style Style) []string {
	labels := make([]string, 0, len(c.Throws))
	for _, t := range c.Throws {
		labels = append(labels, Label(t, style))
	}
	return labels
}

// Format renders a checkout as space separated labels, or NoSolution.
func Format(c darts.Checkout, style Style) string {
	if !c.Possible || len(c.Throws) == 0 {
		return NoSolution
	}
	return strings.Join(Labels(c, style), " ")
}
