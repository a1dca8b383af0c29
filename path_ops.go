package canvas

import "math"

// Geometry queries over a Path: flattening, winding numbers, fill and
// stroke containment, bounds.

// DefaultTolerance is the flattening tolerance used by the hit tests, in
// path units.
const DefaultTolerance = 0.05

// maxSubdivision bounds the recursion depth of curve flattening.
const maxSubdivision = 16

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Rect is an axis-aligned rectangle given by its corners.
type Rect struct {
	Min, Max Point
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Flatten approximates every subpath with line segments no further than
// tolerance from the curves. Subpaths holding a single point are kept so
// that callers can still see them.
func (p *Path) Flatten(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var (
		out []Polyline
		cur *Polyline
	)
	begin := func(pt Point) {
		out = append(out, Polyline{Points: []Point{pt}})
		cur = &out[len(out)-1]
	}
	// last returns the pen position, reopening a subpath at the start of
	// a closed one when drawing continues after ClosePath.
	last := func() Point {
		if cur.Closed {
			begin(cur.Points[0])
		}
		return cur.Points[len(cur.Points)-1]
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			begin(e.Point)
		case LineTo:
			last()
			cur.Points = append(cur.Points, e.Point)
		case QuadTo:
			flattenQuad(last(), e.Control, e.Point, tolerance*tolerance, 0, func(pt Point) {
				cur.Points = append(cur.Points, pt)
			})
		case CubicTo:
			flattenCubic(last(), e.Control1, e.Control2, e.Point, tolerance*tolerance, 0, func(pt Point) {
				cur.Points = append(cur.Points, pt)
			})
		case Close:
			cur.Closed = true
		}
	}
	return out
}

func flattenQuad(p0, p1, p2 Point, tolSq float64, depth int, emit func(Point)) {
	mid := p0.Lerp(p2, 0.5)
	if d := p1.Sub(mid); depth >= maxSubdivision || d.Dot(d) <= tolSq {
		emit(p2)
		return
	}
	a := p0.Lerp(p1, 0.5)
	b := p1.Lerp(p2, 0.5)
	m := a.Lerp(b, 0.5)
	flattenQuad(p0, a, m, tolSq, depth+1, emit)
	flattenQuad(m, b, p2, tolSq, depth+1, emit)
}

func flattenCubic(p0, p1, p2, p3 Point, tolSq float64, depth int, emit func(Point)) {
	// Squared distance of the control points from the chord, scaled so
	// that it bounds the curve's deviation.
	u := p1.Mul(3).Sub(p0.Mul(2)).Sub(p3)
	v := p2.Mul(3).Sub(p3.Mul(2)).Sub(p0)
	flat := math.Max(u.X*u.X, v.X*v.X) + math.Max(u.Y*u.Y, v.Y*v.Y)
	if depth >= maxSubdivision || flat <= 16*tolSq {
		emit(p3)
		return
	}
	ab := p0.Lerp(p1, 0.5)
	bc := p1.Lerp(p2, 0.5)
	cd := p2.Lerp(p3, 0.5)
	abc := ab.Lerp(bc, 0.5)
	bcd := bc.Lerp(cd, 0.5)
	m := abc.Lerp(bcd, 0.5)
	flattenCubic(p0, ab, abc, m, tolSq, depth+1, emit)
	flattenCubic(m, bcd, cd, p3, tolSq, depth+1, emit)
}

// Winding returns the winding number of pt with respect to p. Open
// subpaths are treated as closed, as filling does.
func (p *Path) Winding(pt Point) int {
	w := 0
	for _, pl := range p.Flatten(DefaultTolerance) {
		pts := pl.Points
		n := len(pts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			w += lineWinding(pts[i], pts[(i+1)%n], pt)
		}
	}
	return w
}

// lineWinding is the signed crossing of a rightward ray from pt with the
// segment p0->p1.
func lineWinding(p0, p1, pt Point) int {
	switch {
	case p0.Y <= pt.Y && p1.Y > pt.Y:
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	case p0.Y > pt.Y && p1.Y <= pt.Y:
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Contains reports whether pt lies in the area p fills under rule.
func (p *Path) Contains(pt Point, rule FillRule) bool {
	return rule.Fills(p.Winding(pt))
}

// StrokeContains reports whether pt lies within width/2 of the outline
// of p. Joins are treated as round and caps as butt.
func (p *Path) StrokeContains(pt Point, width float64) bool {
	if width <= 0 {
		return false
	}
	half := width / 2
	for _, pl := range p.Flatten(DefaultTolerance) {
		pts := pl.Points
		if len(pts) == 1 {
			continue
		}
		for i := 0; i+1 < len(pts); i++ {
			if segmentDistance(pts[i], pts[i+1], pt) <= half {
				return true
			}
		}
		if pl.Closed && segmentDistance(pts[len(pts)-1], pts[0], pt) <= half {
			return true
		}
	}
	return false
}

// segmentDistance returns the distance from pt to the segment a-b.
func segmentDistance(a, b, pt Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return pt.Distance(a)
	}
	t := math.Max(0, math.Min(1, pt.Sub(a).Dot(ab)/l2))
	return pt.Distance(a.Add(ab.Mul(t)))
}

// BoundingBox returns the bounds of the flattened path, or the zero Rect
// for an empty path.
func (p *Path) BoundingBox() Rect {
	first := true
	var r Rect
	for _, pl := range p.Flatten(DefaultTolerance) {
		for _, pt := range pl.Points {
			if first {
				r = Rect{Min: pt, Max: pt}
				first = false
				continue
			}
			r.Min.X = math.Min(r.Min.X, pt.X)
			r.Min.Y = math.Min(r.Min.Y, pt.Y)
			r.Max.X = math.Max(r.Max.X, pt.X)
			r.Max.Y = math.Max(r.Max.Y, pt.Y)
		}
	}
	return r
}
