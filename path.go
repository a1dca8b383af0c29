package canvas

import (
	"fmt"
	"math"
)

// PathElement is one drawing command of a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at Point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bézier segment.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bézier segment.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath back to its start.
type Close struct{}

func (Close) isPathElement() {}

// Path is a sequence of subpaths built with canvas semantics: a segment
// appended without a current point first starts a subpath, and closing a
// subpath starts a new one at the same point.
//
// The zero value is an empty path ready to use.
type Path struct {
	elements   []PathElement
	start      Point
	current    Point
	hasCurrent bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.hasCurrent = true
}

// LineTo draws a line to (x, y). Without a current point it behaves
// like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticCurveTo draws a quadratic Bézier curve through control point
// (cx, cy) to (x, y).
func (p *Path) QuadraticCurveTo(cx, cy, x, y float64) {
	p.ensureSubpath(cx, cy)
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// BezierCurveTo draws a cubic Bézier curve to (x, y).
func (p *Path) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ensureSubpath(c1x, c1y)
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// ClosePath closes the current subpath. It does nothing on an empty path.
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Rect adds a closed rectangle subpath and leaves the current point at
// (x, y) in a fresh subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
	p.MoveTo(x, y)
}

// Arc adds a circular arc centred on (cx, cy). A line is drawn from the
// current point, if any, to the arc's start.
func (p *Path) Arc(cx, cy, r, startAngle, endAngle float64, anticlockwise bool) error {
	if r < 0 {
		return fmt.Errorf("arc: %w", ErrNegativeRadius)
	}
	p.ellipseArc(cx, cy, r, r, 0, startAngle, endAngle, anticlockwise)
	return nil
}

// Ellipse adds an elliptical arc with radii (rx, ry) rotated by rotation
// radians around (cx, cy).
func (p *Path) Ellipse(cx, cy, rx, ry, rotation, startAngle, endAngle float64, anticlockwise bool) error {
	if rx < 0 || ry < 0 {
		return fmt.Errorf("ellipse: %w", ErrNegativeRadius)
	}
	p.ellipseArc(cx, cy, rx, ry, rotation, startAngle, endAngle, anticlockwise)
	return nil
}

// ArcTo adds an arc of radius r tangent to the line from the current
// point to (x1, y1) and to the line from (x1, y1) to (x2, y2), joined to
// the current point by a straight line.
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) error {
	if r < 0 {
		return fmt.Errorf("arcTo: %w", ErrNegativeRadius)
	}
	p.ensureSubpath(x1, y1)

	p0, p1, p2 := p.current, Pt(x1, y1), Pt(x2, y2)
	v1, v2 := p0.Sub(p1), p2.Sub(p1)
	if p0 == p1 || p1 == p2 || r == 0 || math.Abs(v1.Cross(v2)) < 1e-12 {
		p.LineTo(x1, y1)
		return nil
	}

	u1, u2 := v1.Normalize(), v2.Normalize()
	// Half the angle between the two tangent lines.
	half := math.Acos(math.Max(-1, math.Min(1, u1.Dot(u2)))) / 2
	dist := r / math.Tan(half)
	t1 := p1.Add(u1.Mul(dist))
	t2 := p1.Add(u2.Mul(dist))
	bisector := u1.Add(u2).Normalize()
	center := p1.Add(bisector.Mul(r / math.Sin(half)))

	a1 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	a2 := math.Atan2(t2.Y-center.Y, t2.X-center.X)
	// Sweep the short way round, which is clockwise when p2 lies to the
	// right of p0->p1 in y-down space.
	anticlockwise := v1.Cross(v2) > 0
	p.ellipseArc(center.X, center.Y, r, r, 0, a1, a2, anticlockwise)
	return nil
}

// RoundRect adds a rounded rectangle. radii follows the canvas rules:
// one value for all corners, two for (top-left and bottom-right,
// top-right and bottom-left), three for (top-left, top-right and
// bottom-left, bottom-right), four for each corner clockwise from the
// top left.
func (p *Path) RoundRect(x, y, w, h float64, radii ...float64) error {
	var tl, tr, br, bl float64
	switch len(radii) {
	case 1:
		tl, tr, br, bl = radii[0], radii[0], radii[0], radii[0]
	case 2:
		tl, tr, br, bl = radii[0], radii[1], radii[0], radii[1]
	case 3:
		tl, tr, br, bl = radii[0], radii[1], radii[2], radii[1]
	case 4:
		tl, tr, br, bl = radii[0], radii[1], radii[2], radii[3]
	default:
		return fmt.Errorf("roundRect: %w", ErrRadiiCount)
	}
	for _, r := range radii {
		if r < 0 {
			return fmt.Errorf("roundRect: %w", ErrNegativeRadius)
		}
	}

	// Normalise negative extents so the corners keep their meaning.
	if w < 0 {
		x, w = x+w, -w
		tl, tr, br, bl = tr, tl, bl, br
	}
	if h < 0 {
		y, h = y+h, -h
		tl, tr, br, bl = bl, br, tr, tl
	}

	// Scale every radius down when adjacent corners would overlap.
	scale := 1.0
	for _, f := range []float64{w / (tl + tr), h / (tr + br), w / (br + bl), h / (bl + tl)} {
		if !math.IsNaN(f) && f < scale {
			scale = f
		}
	}
	tl, tr, br, bl = tl*scale, tr*scale, br*scale, bl*scale

	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	p.ellipseArc(x+w-tr, y+tr, tr, tr, 0, -math.Pi/2, 0, false)
	p.LineTo(x+w, y+h-br)
	p.ellipseArc(x+w-br, y+h-br, br, br, 0, 0, math.Pi/2, false)
	p.LineTo(x+bl, y+h)
	p.ellipseArc(x+bl, y+h-bl, bl, bl, 0, math.Pi/2, math.Pi, false)
	p.LineTo(x, y+tl)
	p.ellipseArc(x+tl, y+tl, tl, tl, 0, math.Pi, 3*math.Pi/2, false)
	p.ClosePath()
	p.MoveTo(x, y)
	return nil
}

// AddPath appends the subpaths of q mapped through m.
func (p *Path) AddPath(q *Path, m Matrix) {
	if q == nil {
		return
	}
	for _, e := range q.elements {
		p.appendElement(transformElement(e, m))
	}
}

// Clear removes every element.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.hasCurrent = false
}

// Elements returns the path's elements. The slice must not be modified.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// CurrentPoint returns the current point and whether one exists.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.current, p.hasCurrent
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, e := range p.elements {
		out.appendElement(transformElement(e, m))
	}
	return out
}

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	out := *p
	out.elements = make([]PathElement, len(p.elements))
	copy(out.elements, p.elements)
	return &out
}

func (p *Path) ensureSubpath(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
	}
}

// appendElement adds e verbatim, keeping the subpath bookkeeping in step.
func (p *Path) appendElement(e PathElement) {
	switch e := e.(type) {
	case MoveTo:
		p.MoveTo(e.Point.X, e.Point.Y)
	case LineTo:
		p.LineTo(e.Point.X, e.Point.Y)
	case QuadTo:
		p.QuadraticCurveTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
	case CubicTo:
		p.BezierCurveTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
	case Close:
		p.ClosePath()
	}
}

func transformElement(e PathElement, m Matrix) PathElement {
	switch e := e.(type) {
	case MoveTo:
		return MoveTo{Point: m.TransformPoint(e.Point)}
	case LineTo:
		return LineTo{Point: m.TransformPoint(e.Point)}
	case QuadTo:
		return QuadTo{Control: m.TransformPoint(e.Control), Point: m.TransformPoint(e.Point)}
	case CubicTo:
		return CubicTo{
			Control1: m.TransformPoint(e.Control1),
			Control2: m.TransformPoint(e.Control2),
			Point:    m.TransformPoint(e.Point),
		}
	}
	return e
}

// arcSweep returns the signed sweep from start to end following the
// canvas rules: a difference of a full turn or more draws the whole
// ellipse, anything else is reduced modulo a full turn in the requested
// direction.
func arcSweep(start, end float64, anticlockwise bool) float64 {
	const twoPi = 2 * math.Pi
	if !anticlockwise {
		if end-start >= twoPi {
			return twoPi
		}
		d := math.Mod(end-start, twoPi)
		if d < 0 {
			d += twoPi
		}
		return d
	}
	if start-end >= twoPi {
		return -twoPi
	}
	d := math.Mod(start-end, twoPi)
	if d < 0 {
		d += twoPi
	}
	return -d
}

// ellipseArc appends an elliptical arc as cubic segments of at most a
// quarter turn each, after a line from the current point to its start.
func (p *Path) ellipseArc(cx, cy, rx, ry, rotation, start, end float64, anticlockwise bool) {
	m := Translate(cx, cy).Multiply(Rotate(rotation)).Multiply(Scale(rx, ry))
	sweep := arcSweep(start, end, anticlockwise)

	first := m.TransformPoint(Pt(math.Cos(start), math.Sin(start)))
	if p.hasCurrent {
		p.LineTo(first.X, first.Y)
	} else {
		p.MoveTo(first.X, first.Y)
	}
	if sweep == 0 {
		return
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := start
	for i := 0; i < n; i++ {
		b := a + step
		sa, ca := math.Sincos(a)
		sb, cb := math.Sincos(b)
		c1 := m.TransformPoint(Pt(ca-k*sa, sa+k*ca))
		c2 := m.TransformPoint(Pt(cb+k*sb, sb-k*cb))
		to := m.TransformPoint(Pt(cb, sb))
		p.BezierCurveTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
		a = b
	}
}
