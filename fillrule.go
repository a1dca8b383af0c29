package canvas

import "fmt"

// FillRule selects how winding numbers decide insideness.
type FillRule int

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points with an odd winding number.
	EvenOdd
)

// Fills reports whether a point with the given winding number is inside.
func (r FillRule) Fills(winding int) bool {
	if r == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// String returns the canvas keyword for r.
func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	}
	return fmt.Sprintf("FillRule(%d)", int(r))
}

// ParseFillRule parses "nonzero" or "evenodd". The empty string selects
// NonZero.
func ParseFillRule(s string) (FillRule, error) {
	switch s {
	case "", "nonzero":
		return NonZero, nil
	case "evenodd":
		return EvenOdd, nil
	}
	return NonZero, fmt.Errorf("canvas: unknown fill rule %q", s)
}
