package canvas

import "errors"

// Geometry errors returned by path construction. They mirror the range
// checks the canvas API performs before touching the path.
var (
	ErrNegativeRadius = errors.New("canvas: negative radius")
	ErrRadiiCount     = errors.New("canvas: round rect takes 1 to 4 radii")
	ErrNonFinite      = errors.New("canvas: non-finite argument")
)
