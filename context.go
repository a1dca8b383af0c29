package canvas

import "slices"

// Canvas is the drawing API a Context offers. It is a Native itself, with
// every path argument optional: a nil *Path selects the implicit path
// built by the path construction methods.
type Canvas interface {
	Native

	// SetClip replaces all clip regions with p.
	SetClip(p *Path, rule FillRule) error
	// ResetClip removes every clip region.
	ResetClip() error
	// ClipRegions returns the regions currently intersected, oldest first.
	ClipRegions() []ClipRegion
	// SaveDepth returns the number of states pushed by Save.
	SaveDepth() int
	// Err returns the error of the last Restore, which has no error
	// result of its own.
	Err() error

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Rect(x, y, w, h float64)
	ClosePath()
	Arc(x, y, r, startAngle, endAngle float64, anticlockwise bool) error
	ArcTo(x1, y1, x2, y2, r float64) error
	Ellipse(x, y, rx, ry, rotation, startAngle, endAngle float64, anticlockwise bool) error
	RoundRect(x, y, w, h float64, radii ...float64) error
	// CurrentPath returns the implicit path in surface space.
	CurrentPath() *Path

	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)
	// Transform multiplies the current transform by m.
	Transform(m Matrix)
	ResetTransform()
}

// Context wraps a Native with a restorable clip stack and a transform
// aware implicit path. A Context is not safe for concurrent use.
type Context struct {
	native Native
	acc    accumulator
	clips  clipStack
	err    error
}

var _ Canvas = (*Context)(nil)

// NewContext wraps n. The host must be in its initial state: the context
// takes one level of its save stack as the unclipped baseline.
func NewContext(n Native) *Context {
	return &Context{
		native: n,
		acc:    newAccumulator(),
		clips:  newClipStack(n),
	}
}

// Wrap returns n as a Canvas, wrapping it in a Context unless it already
// is one. Wrapping twice is therefore harmless.
func Wrap(n Native) Canvas {
	if c, ok := n.(Canvas); ok {
		return c
	}
	return NewContext(n)
}

// Native returns the wrapped host.
func (c *Context) Native() Native {
	return c.native
}

// reset returns the context to a fresh state over n, which must itself
// be freshly reset.
func (c *Context) reset(n Native) {
	c.native = n
	c.acc.reset()
	c.clips.reset(n)
	c.err = nil
}

// target resolves an optional path argument.
func (c *Context) target(p *Path) *Path {
	if p != nil {
		return p
	}
	return c.acc.resolved(c.native.GetTransform())
}

// BeginPath empties the implicit path.
func (c *Context) BeginPath() {
	c.acc.reset()
	c.native.BeginPath()
}

// Fill fills p, or the implicit path when p is nil.
func (c *Context) Fill(p *Path, rule FillRule) error {
	return c.native.Fill(c.target(p), rule)
}

// Stroke strokes p, or the implicit path when p is nil.
func (c *Context) Stroke(p *Path) error {
	return c.native.Stroke(c.target(p))
}

// IsPointInPath reports whether surface point (x, y) is inside p under
// rule, or inside the implicit path when p is nil.
func (c *Context) IsPointInPath(p *Path, x, y float64, rule FillRule) bool {
	return c.native.IsPointInPath(c.target(p), x, y, rule)
}

// IsPointInStroke reports whether surface point (x, y) is on the stroke
// of p, or of the implicit path when p is nil.
func (c *Context) IsPointInStroke(p *Path, x, y float64) bool {
	return c.native.IsPointInStroke(c.target(p), x, y)
}

// ScrollPathIntoView asks the host to bring p, or the implicit path,
// into view.
func (c *Context) ScrollPathIntoView(p *Path) error {
	return c.native.ScrollPathIntoView(c.target(p))
}

// Clip intersects the active clip with p, or with the implicit path when
// p is nil. Unlike the host's clip, it is undone by Restore.
func (c *Context) Clip(p *Path, rule FillRule) error {
	return c.clips.clip(c.region(p, rule))
}

// SetClip makes p, or the implicit path, the only clip region.
func (c *Context) SetClip(p *Path, rule FillRule) error {
	return c.clips.setClip(c.region(p, rule))
}

// ResetClip removes every clip region.
func (c *Context) ResetClip() error {
	return c.clips.resetClip()
}

// region captures p in surface space under the current transform.
func (c *Context) region(p *Path, rule FillRule) ClipRegion {
	if p == nil {
		return ClipRegion{Path: c.acc.device().Clone(), Rule: rule}
	}
	return ClipRegion{Path: p.Transform(c.native.GetTransform()), Rule: rule}
}

// ClipRegions returns the active regions, oldest first.
func (c *Context) ClipRegions() []ClipRegion {
	return slices.Clone(c.clips.regions)
}

// Save pushes the drawing state, including the clip regions.
func (c *Context) Save() {
	c.clips.save()
}

// Restore pops the last saved state and re-establishes its clip. An
// unmatched Restore does nothing. When the host rejects the saved state,
// the state stays saved, the current one stays active and Err reports
// the failure.
func (c *Context) Restore() {
	_, err := c.clips.restore()
	c.err = err
	if err != nil {
		Logger().Warn("canvas: restore", "err", err)
	}
}

// Err returns the error of the last Restore, or nil if it succeeded.
func (c *Context) Err() error {
	return c.err
}

// SaveDepth returns the number of saved states.
func (c *Context) SaveDepth() int {
	return len(c.clips.saved)
}

// CurrentPath returns the implicit path in surface space. The returned
// path must not be modified.
func (c *Context) CurrentPath() *Path {
	return c.acc.device()
}

// MoveTo starts a new subpath at user point (x, y).
func (c *Context) MoveTo(x, y float64) {
	c.acc.moveTo(x, y, c.native.GetTransform())
}

// LineTo adds a line to user point (x, y).
func (c *Context) LineTo(x, y float64) {
	c.acc.lineTo(x, y, c.native.GetTransform())
}

// QuadraticCurveTo adds a quadratic Bézier curve.
func (c *Context) QuadraticCurveTo(cx, cy, x, y float64) {
	c.acc.quadTo(cx, cy, x, y, c.native.GetTransform())
}

// BezierCurveTo adds a cubic Bézier curve.
func (c *Context) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.acc.cubicTo(c1x, c1y, c2x, c2y, x, y, c.native.GetTransform())
}

// Rect adds a closed rectangle.
func (c *Context) Rect(x, y, w, h float64) {
	c.acc.rect(x, y, w, h, c.native.GetTransform())
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	c.acc.closePath()
}

// Arc adds a circular arc.
func (c *Context) Arc(x, y, r, startAngle, endAngle float64, anticlockwise bool) error {
	return c.acc.generic(c.native.GetTransform(), func(p *Path) error {
		return p.Arc(x, y, r, startAngle, endAngle, anticlockwise)
	})
}

// ArcTo adds an arc tangent to two lines.
func (c *Context) ArcTo(x1, y1, x2, y2, r float64) error {
	return c.acc.generic(c.native.GetTransform(), func(p *Path) error {
		return p.ArcTo(x1, y1, x2, y2, r)
	})
}

// Ellipse adds an elliptical arc.
func (c *Context) Ellipse(x, y, rx, ry, rotation, startAngle, endAngle float64, anticlockwise bool) error {
	return c.acc.generic(c.native.GetTransform(), func(p *Path) error {
		return p.Ellipse(x, y, rx, ry, rotation, startAngle, endAngle, anticlockwise)
	})
}

// RoundRect adds a rounded rectangle.
func (c *Context) RoundRect(x, y, w, h float64, radii ...float64) error {
	return c.acc.generic(c.native.GetTransform(), func(p *Path) error {
		return p.RoundRect(x, y, w, h, radii...)
	})
}

// GetTransform returns the current transform.
func (c *Context) GetTransform() Matrix {
	return c.native.GetTransform()
}

// SetTransform replaces the current transform. Matrices with non-finite
// components are ignored.
func (c *Context) SetTransform(m Matrix) {
	if !m.IsFinite() {
		return
	}
	c.native.SetTransform(m)
}

// Transform multiplies the current transform by m.
func (c *Context) Transform(m Matrix) {
	c.SetTransform(c.native.GetTransform().Multiply(m))
}

// ResetTransform sets the identity transform.
func (c *Context) ResetTransform() {
	c.native.SetTransform(Identity())
}

// Translate moves the origin by (x, y) user units.
func (c *Context) Translate(x, y float64) {
	c.Transform(Translate(x, y))
}

// Scale scales user space.
func (c *Context) Scale(x, y float64) {
	c.Transform(Scale(x, y))
}

// Rotate rotates user space by angle radians.
func (c *Context) Rotate(angle float64) {
	c.Transform(Rotate(angle))
}

// LineDash returns the host's dash pattern.
func (c *Context) LineDash() []float64 {
	return c.native.LineDash()
}

// SetLineDash sets the dash pattern.
func (c *Context) SetLineDash(segments []float64) error {
	return c.native.SetLineDash(segments)
}

// Style returns the host's drawing style.
func (c *Context) Style() Style {
	return c.native.Style()
}

// SetStyle replaces the drawing style.
func (c *Context) SetStyle(s Style) error {
	return c.native.SetStyle(s)
}
