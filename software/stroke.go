package software

import (
	"image"
	"math"

	"github.com/gogpu/canvas"
)

// strokeSegment is one straight piece of a stroke in device space, with
// the end treatment at each side.
type strokeSegment struct {
	a, b       canvas.Point
	capA, capB canvas.LineCap
}

// strokeSegments flattens p in user space, applies the dash pattern
// there, and maps the pieces through m. Interior joints are drawn round.
func strokeSegments(p *canvas.Path, st canvas.Style, dash []float64, m canvas.Matrix) []strokeSegment {
	scale := m.ScaleFactor()
	tol := canvas.DefaultTolerance
	if scale > 0 {
		tol /= scale
	}

	var pieces []canvas.Polyline
	for _, pl := range p.Flatten(tol) {
		if pl.Closed && len(pl.Points) > 1 {
			pl.Points = append(pl.Points, pl.Points[0])
		}
		pieces = append(pieces, applyDash(pl, dash, st.LineDashOffset)...)
	}

	var segs []strokeSegment
	for _, pl := range pieces {
		pts := pl.Points
		if len(pts) < 2 {
			continue
		}
		for i := 0; i+1 < len(pts); i++ {
			s := strokeSegment{
				a:    m.TransformPoint(pts[i]),
				b:    m.TransformPoint(pts[i+1]),
				capA: canvas.LineCapRound,
				capB: canvas.LineCapRound,
			}
			if !pl.Closed && i == 0 {
				s.capA = st.LineCap
			}
			if !pl.Closed && i+2 == len(pts) {
				s.capB = st.LineCap
			}
			segs = append(segs, s)
		}
	}
	return segs
}

// applyDash splits pl into the "on" intervals of pattern. An empty or
// all-zero pattern leaves pl whole.
func applyDash(pl canvas.Polyline, pattern []float64, offset float64) []canvas.Polyline {
	total := 0.0
	for _, v := range pattern {
		total += v
	}
	if total == 0 || len(pl.Points) < 2 {
		return []canvas.Polyline{pl}
	}

	// Find the dash entry and remaining length at the phase offset.
	phase := math.Mod(offset, total)
	if phase < 0 {
		phase += total
	}
	idx := 0
	for phase >= pattern[idx] {
		phase -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	left := pattern[idx] - phase
	on := idx%2 == 0

	var (
		out []canvas.Polyline
		cur []canvas.Point
	)
	if on {
		cur = []canvas.Point{pl.Points[0]}
	}
	for i := 0; i+1 < len(pl.Points); i++ {
		a, b := pl.Points[i], pl.Points[i+1]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > left {
			pos += left
			pt := a.Lerp(b, pos/segLen)
			if on {
				cur = append(cur, pt)
				out = append(out, canvas.Polyline{Points: cur})
				cur = nil
			} else {
				cur = []canvas.Point{pt}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, canvas.Polyline{Points: cur})
	}
	return out
}

// distance returns the signed distance from pt to the outline of s drawn
// with half-width half: negative inside.
func (s strokeSegment) distance(pt canvas.Point, half float64) float64 {
	ab := s.b.Sub(s.a)
	l := ab.Length()
	if l == 0 {
		if s.capA == canvas.LineCapRound {
			return pt.Distance(s.a) - half
		}
		return math.Inf(1)
	}
	u := ab.Mul(1 / l)
	d := pt.Sub(s.a)
	along := d.Dot(u)
	perp := math.Abs(d.Cross(u)) - half

	var start, end float64
	switch {
	case along < 0 && s.capA == canvas.LineCapRound:
		return pt.Distance(s.a) - half
	case along > l && s.capB == canvas.LineCapRound:
		return pt.Distance(s.b) - half
	}
	if s.capA == canvas.LineCapSquare {
		start = -along - half
	} else {
		start = -along
	}
	if s.capB == canvas.LineCapSquare {
		end = along - l - half
	} else {
		end = along - l
	}
	return math.Max(perp, math.Max(start, end))
}

// strokeCoverage builds the coverage mask of segs with the given device
// half-width.
func strokeCoverage(segs []strokeSegment, half float64, bounds image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(bounds)
	pad := half + 1
	for _, s := range segs {
		box := image.Rect(
			int(math.Floor(math.Min(s.a.X, s.b.X)-pad)),
			int(math.Floor(math.Min(s.a.Y, s.b.Y)-pad)),
			int(math.Ceil(math.Max(s.a.X, s.b.X)+pad)),
			int(math.Ceil(math.Max(s.a.Y, s.b.Y)+pad)),
		).Intersect(bounds)
		for y := box.Min.Y; y < box.Max.Y; y++ {
			for x := box.Min.X; x < box.Max.X; x++ {
				d := s.distance(canvas.Pt(float64(x)+0.5, float64(y)+0.5), half)
				cov := math.Max(0, math.Min(1, 0.5-d))
				if cov == 0 {
					continue
				}
				i := mask.PixOffset(x, y)
				if v := uint8(math.Round(cov * 255)); v > mask.Pix[i] {
					mask.Pix[i] = v
				}
			}
		}
	}
	return mask
}
