package darts

// Checkout is the outcome of a solver query.
//
// When Possible is false, Throws is empty. When it is true, Throws holds one
// to three darts in the order they are thrown and the last one is a double.
type Checkout struct {
	Possible bool    `json:"possible"`
	Throws   []Throw `json:"throws,omitempty"`
}

// NoCheckout is the result for a score that cannot be finished.
var NoCheckout = Checkout{}

func checkoutOf(throws ...Throw) Checkout {
	return Checkout{Possible: true, Throws: throws}
}

// Darts returns how many throws the checkout uses (0 when impossible).
func (c Checkout) Darts() int {
	return len(c.Throws)
}

// Total returns the combined points of all throws.
func (c Checkout) Total() int {
	total := 0
	for _, t := range c.Throws {
		total += t.Points()
	}
	return total
}

// First returns the opening dart.
func (c Checkout) First() (Throw, bool) { return c.at(0) }

// Second returns the second dart, if the checkout needs one.
func (c Checkout) Second() (Throw, bool) { return c.at(1) }

// Third returns the third dart, if the checkout needs one.
func (c Checkout) Third() (Throw, bool) { return c.at(2) }

func (c Checkout) at(i int) (Throw, bool) {
	if i >= len(c.Throws) {
		return Throw{}, false
	}
	return c.Throws[i], true
}

// Last returns the finishing dart.
func (c Checkout) Last() (Throw, bool) {
	if len(c.Throws) == 0 {
		return Throw{}, false
	}
	return c.Throws[len(c.Throws)-1], true
}
