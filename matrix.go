package canvas

import "math"

// Matrix is a 2D affine transform stored row-major:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps (x, y) to (A*x + B*y + C, D*x + E*y + F).
//
// Note the canvas API's setTransform(a, b, c, d, e, f) uses column order;
// see [FromCanvas].
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// FromCanvas builds a Matrix from the six values taken by the canvas
// setTransform and transform methods.
func FromCanvas(a, b, c, d, e, f float64) Matrix {
	return Matrix{A: a, B: c, C: e, D: b, E: d, F: f}
}

// Canvas returns m as the (a, b, c, d, e, f) sextuple of the canvas API.
func (m Matrix) Canvas() (a, b, c, d, e, f float64) {
	return m.A, m.D, m.B, m.E, m.C, m.F
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scale by (x, y).
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate returns a rotation by angle radians, clockwise in a y-down space.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * other: other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint maps p through m.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector maps p through the linear part of m.
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invertible reports whether m has a usable inverse.
func (m Matrix) Invertible() bool {
	d := m.Determinant()
	return math.Abs(d) >= 1e-10 && !math.IsNaN(d) && !math.IsInf(d, 0)
}

// Invert returns the inverse of m, or the identity when m is singular.
func (m Matrix) Invert() Matrix {
	if !m.Invertible() {
		return Identity()
	}
	inv := 1 / m.Determinant()
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsFinite reports whether every component of m is a finite number.
func (m Matrix) IsFinite() bool {
	for _, v := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ScaleFactor returns the geometric mean of the axis scales, used to map
// user-space lengths such as line widths into device space.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}
