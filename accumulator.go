package canvas

// accumulator keeps the implicit current path in surface space, so the
// path stays put when the transform changes after a segment is added.
type accumulator struct {
	path *Path
}

func newAccumulator() accumulator {
	return accumulator{path: NewPath()}
}

func (a *accumulator) reset() {
	a.path.Clear()
}

// device returns the accumulated path in surface space. Callers must not
// modify it.
func (a *accumulator) device() *Path {
	return a.path
}

// resolved returns the implicit path in the user space of m, ready to be
// handed to a host that applies m while drawing.
func (a *accumulator) resolved(m Matrix) *Path {
	if m.IsIdentity() {
		return a.path
	}
	return a.path.Transform(m.Invert())
}

func (a *accumulator) moveTo(x, y float64, m Matrix) {
	pt := m.TransformPoint(Pt(x, y))
	a.path.MoveTo(pt.X, pt.Y)
}

func (a *accumulator) lineTo(x, y float64, m Matrix) {
	pt := m.TransformPoint(Pt(x, y))
	a.path.LineTo(pt.X, pt.Y)
}

func (a *accumulator) quadTo(cx, cy, x, y float64, m Matrix) {
	c := m.TransformPoint(Pt(cx, cy))
	pt := m.TransformPoint(Pt(x, y))
	a.path.QuadraticCurveTo(c.X, c.Y, pt.X, pt.Y)
}

func (a *accumulator) cubicTo(c1x, c1y, c2x, c2y, x, y float64, m Matrix) {
	c1 := m.TransformPoint(Pt(c1x, c1y))
	c2 := m.TransformPoint(Pt(c2x, c2y))
	pt := m.TransformPoint(Pt(x, y))
	a.path.BezierCurveTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
}

func (a *accumulator) closePath() {
	a.path.ClosePath()
}

// rect maps the four corners separately; a rotated rectangle is no
// longer axis aligned in surface space.
func (a *accumulator) rect(x, y, w, h float64, m Matrix) {
	p1 := m.TransformPoint(Pt(x, y))
	p2 := m.TransformPoint(Pt(x+w, y))
	p3 := m.TransformPoint(Pt(x+w, y+h))
	p4 := m.TransformPoint(Pt(x, y+h))
	a.path.MoveTo(p1.X, p1.Y)
	a.path.LineTo(p2.X, p2.Y)
	a.path.LineTo(p3.X, p3.Y)
	a.path.LineTo(p4.X, p4.Y)
	a.path.ClosePath()
	a.path.MoveTo(p1.X, p1.Y)
}

// generic runs a construction whose geometry does not survive a
// per-point transform (arcs, ellipses, rounded corners). The accumulated
// path is mapped back into user space, build runs there, and the result
// is mapped forward again.
func (a *accumulator) generic(m Matrix, build func(*Path) error) error {
	if m.IsIdentity() {
		return build(a.path)
	}
	if !m.Invertible() {
		return a.collapsed(m, build)
	}
	user := a.path.Transform(m.Invert())
	if err := build(user); err != nil {
		return err
	}
	a.path = user.Transform(m)
	return nil
}

// collapsed handles a singular transform, which has no user space to go
// back to. The construction is built on its own and joined to the
// current point in surface space.
func (a *accumulator) collapsed(m Matrix, build func(*Path) error) error {
	scratch := NewPath()
	if err := build(scratch); err != nil {
		return err
	}
	for i, e := range scratch.Transform(m).Elements() {
		if mv, ok := e.(MoveTo); ok && i == 0 {
			a.path.LineTo(mv.Point.X, mv.Point.Y)
			continue
		}
		a.path.appendElement(e)
	}
	return nil
}
