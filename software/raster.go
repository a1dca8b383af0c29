package software

import (
	"image"
	"math"
	"slices"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/canvas"
)

// scanlineSamples is the number of vertical samples per pixel row used by
// the even-odd filler.
const scanlineSamples = 4

// coverage rasterizes p, given in device space, into an alpha mask the
// size of bounds.
func coverage(p *canvas.Path, rule canvas.FillRule, bounds image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(bounds)
	if bounds.Empty() {
		return mask
	}
	if rule == canvas.EvenOdd {
		fillScanlines(mask, p.Flatten(canvas.DefaultTolerance), rule)
		return mask
	}

	// The vector rasterizer accumulates signed area, so overlapping
	// subpaths wound the same way saturate as under the non-zero rule.
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Src
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	open := false
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case canvas.MoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
			open = true
		case canvas.LineTo:
			r.LineTo(float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
		case canvas.QuadTo:
			r.QuadTo(float32(e.Control.X)-ox, float32(e.Control.Y)-oy,
				float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
		case canvas.CubicTo:
			r.CubeTo(float32(e.Control1.X)-ox, float32(e.Control1.Y)-oy,
				float32(e.Control2.X)-ox, float32(e.Control2.Y)-oy,
				float32(e.Point.X)-ox, float32(e.Point.Y)-oy)
		case canvas.Close:
			// The pen returns to the subpath start, where drawing
			// continues.
			r.ClosePath()
		}
	}
	if open {
		r.ClosePath()
	}
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// fillScanlines fills mask from implicitly closed polylines, sampling
// each row at several heights and covering partial pixels horizontally.
func fillScanlines(mask *image.Alpha, polys []canvas.Polyline, rule canvas.FillRule) {
	type crossing struct {
		x   float64
		dir int
	}
	b := mask.Rect
	acc := make([]float64, b.Dx())
	var xs []crossing

	for y := b.Min.Y; y < b.Max.Y; y++ {
		clear(acc)
		for s := 0; s < scanlineSamples; s++ {
			sy := float64(y) + (float64(s)+0.5)/scanlineSamples
			xs = xs[:0]
			for _, pl := range polys {
				pts := pl.Points
				n := len(pts)
				if n < 2 {
					continue
				}
				for i := 0; i < n; i++ {
					a, c := pts[i], pts[(i+1)%n]
					if (a.Y <= sy) == (c.Y <= sy) {
						continue
					}
					dir := 1
					if c.Y < a.Y {
						dir = -1
					}
					xs = append(xs, crossing{x: a.X + (sy-a.Y)*(c.X-a.X)/(c.Y-a.Y), dir: dir})
				}
			}
			slices.SortFunc(xs, func(p, q crossing) int {
				switch {
				case p.x < q.x:
					return -1
				case p.x > q.x:
					return 1
				}
				return 0
			})
			w := 0
			for i := 0; i+1 < len(xs); i++ {
				w += xs[i].dir
				if rule.Fills(w) {
					addSpan(acc, xs[i].x-float64(b.Min.X), xs[i+1].x-float64(b.Min.X), 1.0/scanlineSamples)
				}
			}
		}
		row := mask.Pix[(y-b.Min.Y)*mask.Stride:]
		for x, v := range acc {
			row[x] = uint8(math.Round(math.Min(1, v) * 255))
		}
	}
}

// addSpan adds weight times the horizontal overlap of [x0, x1) with each
// pixel of acc.
func addSpan(acc []float64, x0, x1, weight float64) {
	x0 = math.Max(0, x0)
	x1 = math.Min(float64(len(acc)), x1)
	if x1 <= x0 {
		return
	}
	for px := int(x0); px < len(acc) && float64(px) < x1; px++ {
		lo := math.Max(x0, float64(px))
		hi := math.Min(x1, float64(px+1))
		if hi > lo {
			acc[px] += (hi - lo) * weight
		}
	}
}

// intersect multiplies two masks of the same bounds into a new one.
func intersect(a, b *image.Alpha) *image.Alpha {
	out := image.NewAlpha(a.Rect)
	for i := range out.Pix {
		out.Pix[i] = uint8((uint32(a.Pix[i])*uint32(b.Pix[i]) + 127) / 255)
	}
	return out
}
