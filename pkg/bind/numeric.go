package bind

import (
	"strconv"
	"strings"

	"github.com/arkenidar/dhtml/pkg/reactive"
)

// Num is an integer parsed from free-form cell text. Text that does not
// parse yields the not-a-number marker, and the marker propagates
// through arithmetic: a combine over a marker is a marker, rendered as
// a visible placeholder rather than an error.
type Num struct {
	Int int
	NaN bool
}

// ParseNum parses cell text into a Num. Leading and trailing whitespace
// is ignored; anything that is not an integer yields the marker.
func ParseNum(s string) Num {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Num{NaN: true}
	}
	return Num{Int: n}
}

// Mul multiplies two Nums. Multiplying by a marker yields a marker.
func (n Num) Mul(m Num) Num {
	if n.NaN || m.NaN {
		return Num{NaN: true}
	}
	return Num{Int: n.Int * m.Int}
}

// Add adds an integer. Adding to a marker yields a marker.
func (n Num) Add(k int) Num {
	if n.NaN {
		return n
	}
	return Num{Int: n.Int + k}
}

// String renders the number, or "NaN" for the marker.
func (n Num) String() string {
	if n.NaN {
		return "NaN"
	}
	return strconv.Itoa(n.Int)
}

// Increment adds one to the numeric content of cell and stores the
// result back through the cell's normal write path. Observers therefore
// fire exactly as they would for a manual edit to the same text; there
// is no separate programmatic notification path. Non-numeric content
// becomes the marker text.
func Increment(cell *reactive.Cell[string]) {
	cell.Set(ParseNum(cell.Get()).Add(1).String())
}
