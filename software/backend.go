package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/go-text/typesetting/di"
	"golang.org/x/image/draw"

	"github.com/gogpu/canvas"
)

// ErrInvalidSize is returned when a backend is created or resized with a
// negative dimension.
var ErrInvalidSize = errors.New("software: invalid size")

func init() {
	canvas.RegisterBackend("software", func(width, height int) (canvas.Native, error) {
		return NewBackend(width, height)
	})
}

// state is the part of the backend saved and restored as a unit.
type state struct {
	paint paint
	m     canvas.Matrix
	dash  []float64
	// clip is nil when nothing is clipped. Masks are never modified
	// after creation, so saved states may share them.
	clip *image.Alpha
}

// Backend is a canvas.Native that renders into an in-memory RGBA image.
// It keeps a single cumulative clip mask and one save/restore stack, the
// same model a browser canvas offers.
type Backend struct {
	img       *image.RGBA
	cur       state
	stack     []state
	scroll    canvas.Rect
	scrollDir di.Direction
}

var (
	_ canvas.Native  = (*Backend)(nil)
	_ canvas.Resizer = (*Backend)(nil)
)

// NewBackend creates a transparent backend of the given size.
func NewBackend(width, height int) (*Backend, error) {
	b := &Backend{}
	if err := b.Resize(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize replaces the backing image and resets the drawing state.
func (b *Backend) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	p, err := compile(canvas.DefaultStyle())
	if err != nil {
		return err
	}
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	b.cur = state{paint: p, m: canvas.Identity()}
	b.stack = nil
	b.scroll = canvas.Rect{}
	b.scrollDir = di.DirectionLTR
	return nil
}

// Width returns the width of the backing image.
func (b *Backend) Width() int { return b.img.Bounds().Dx() }

// Height returns the height of the backing image.
func (b *Backend) Height() int { return b.img.Bounds().Dy() }

// Image returns the backing image. It is shared with the backend and
// changes as drawing continues.
func (b *Backend) Image() *image.RGBA { return b.img }

// BeginPath does nothing: the backend keeps no path of its own.
func (b *Backend) BeginPath() {}

// Fill paints p with the fill colour.
func (b *Backend) Fill(p *canvas.Path, rule canvas.FillRule) error {
	mask := coverage(p.Transform(b.cur.m), rule, b.img.Bounds())
	b.composite(mask, b.cur.paint.fill)
	return nil
}

// Stroke paints the outline of p with the stroke colour.
func (b *Backend) Stroke(p *canvas.Path) error {
	half := b.cur.paint.style.LineWidth * b.cur.m.ScaleFactor() / 2
	if half <= 0 {
		return nil
	}
	segs := strokeSegments(p, b.cur.paint.style, b.cur.dash, b.cur.m)
	b.composite(strokeCoverage(segs, half, b.img.Bounds()), b.cur.paint.stroke)
	return nil
}

// composite draws c through mask and the current clip.
func (b *Backend) composite(mask *image.Alpha, c color.NRGBA) {
	if b.cur.clip != nil {
		mask = intersect(mask, b.cur.clip)
	}
	st := b.cur.paint.style
	c.A = uint8(math.Round(float64(c.A) * st.GlobalAlpha))

	op := draw.Over
	switch st.GlobalCompositeOperation {
	case "source-over":
	case "copy":
		op = draw.Src
	default:
		canvas.Logger().Warn("software: composite operation drawn as source-over",
			"op", st.GlobalCompositeOperation)
	}
	draw.DrawMask(b.img, b.img.Bounds(), image.NewUniform(c), image.Point{}, mask, b.img.Bounds().Min, op)
}

// IsPointInPath reports whether the surface point (x, y) is inside p
// under the current transform.
func (b *Backend) IsPointInPath(p *canvas.Path, x, y float64, rule canvas.FillRule) bool {
	return p.Transform(b.cur.m).Contains(canvas.Pt(x, y), rule)
}

// IsPointInStroke reports whether the surface point (x, y) would be
// painted by stroking p with the current line style.
func (b *Backend) IsPointInStroke(p *canvas.Path, x, y float64) bool {
	half := b.cur.paint.style.LineWidth * b.cur.m.ScaleFactor() / 2
	if half <= 0 {
		return false
	}
	pt := canvas.Pt(x, y)
	for _, s := range strokeSegments(p, b.cur.paint.style, b.cur.dash, b.cur.m) {
		if s.distance(pt, half) <= 0 {
			return true
		}
	}
	return false
}

// ScrollPathIntoView records the device bounds of p and the inline
// direction in effect. See ScrollTarget and ScrollAnchor.
func (b *Backend) ScrollPathIntoView(p *canvas.Path) error {
	b.scroll = p.Transform(b.cur.m).BoundingBox()
	b.scrollDir = b.cur.paint.style.Direction.Shaping()
	return nil
}

// ScrollAnchor returns the corner of ScrollTarget a viewer aligns to: the
// top inline-start corner, which is the top right for right-to-left text.
func (b *Backend) ScrollAnchor() canvas.Point {
	if b.scrollDir.Progression() == di.TowardTopLeft {
		return canvas.Pt(b.scroll.Max.X, b.scroll.Min.Y)
	}
	return b.scroll.Min
}

// ScrollTarget returns the surface rectangle passed to the last
// ScrollPathIntoView.
func (b *Backend) ScrollTarget() canvas.Rect { return b.scroll }

// Clip intersects the clip mask with p.
func (b *Backend) Clip(p *canvas.Path, rule canvas.FillRule) error {
	mask := coverage(p.Transform(b.cur.m), rule, b.img.Bounds())
	if b.cur.clip != nil {
		mask = intersect(mask, b.cur.clip)
	}
	b.cur.clip = mask
	return nil
}

// InClip reports whether the pixel at (x, y) is mostly inside the clip.
func (b *Backend) InClip(x, y int) bool {
	if !image.Pt(x, y).In(b.img.Bounds()) {
		return false
	}
	if b.cur.clip == nil {
		return true
	}
	return b.cur.clip.AlphaAt(x, y).A > 127
}

func (b *Backend) Save() {
	s := b.cur
	s.dash = slices.Clone(s.dash)
	b.stack = append(b.stack, s)
}

func (b *Backend) Restore() {
	if len(b.stack) == 0 {
		return
	}
	b.cur = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
}

// SaveDepth returns the number of unmatched Save calls.
func (b *Backend) SaveDepth() int { return len(b.stack) }

func (b *Backend) GetTransform() canvas.Matrix { return b.cur.m }

func (b *Backend) SetTransform(m canvas.Matrix) { b.cur.m = m }

func (b *Backend) LineDash() []float64 { return slices.Clone(b.cur.dash) }

// SetLineDash validates segments and stores them, doubling odd-length
// lists.
func (b *Backend) SetLineDash(segments []float64) error {
	d, err := normalizeDash(segments)
	if err != nil {
		return err
	}
	b.cur.dash = d
	return nil
}

func (b *Backend) Style() canvas.Style { return b.cur.paint.style }

// SetStyle validates s and makes it current. On error the previous style
// is kept.
func (b *Backend) SetStyle(s canvas.Style) error {
	p, err := compile(s)
	if err != nil {
		return err
	}
	b.cur.paint = p
	return nil
}
