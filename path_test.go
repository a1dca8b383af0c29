package canvas

import (
	"errors"
	"math"
	"testing"
)

func TestPathLineToStartsSubpath(t *testing.T) {
	p := NewPath()
	p.LineTo(3, 4)
	if _, ok := p.Elements()[0].(MoveTo); !ok {
		t.Fatalf("first element = %T, want MoveTo", p.Elements()[0])
	}
	if pt, ok := p.CurrentPoint(); !ok || pt != Pt(3, 4) {
		t.Errorf("CurrentPoint = %v, %v", pt, ok)
	}
}

func TestPathClosePathOnEmpty(t *testing.T) {
	var p Path
	p.ClosePath()
	if !p.IsEmpty() {
		t.Error("ClosePath on an empty path added elements")
	}
}

func TestPathRect(t *testing.T) {
	p := NewPath()
	p.Rect(1, 2, 3, 4)
	els := p.Elements()
	if len(els) != 6 {
		t.Fatalf("len(Elements) = %d, want 6", len(els))
	}
	if _, ok := els[4].(Close); !ok {
		t.Errorf("element 4 = %T, want Close", els[4])
	}
	if mv, ok := els[5].(MoveTo); !ok || mv.Point != Pt(1, 2) {
		t.Errorf("element 5 = %#v, want MoveTo(1, 2)", els[5])
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		ccw        bool
		want       float64
	}{
		{"quarter", 0, math.Pi / 2, false, math.Pi / 2},
		{"wraps clockwise", 0, -math.Pi / 2, false, 3 * math.Pi / 2},
		{"wraps anticlockwise", 0, math.Pi / 2, true, -3 * math.Pi / 2},
		{"full clockwise", 0, 5 * math.Pi, false, 2 * math.Pi},
		{"full anticlockwise", 0, -5 * math.Pi, true, -2 * math.Pi},
		{"empty", 1, 1, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := arcSweep(tt.start, tt.end, tt.ccw); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("arcSweep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathArcFullCircle(t *testing.T) {
	p := NewPath()
	if err := p.Arc(0, 0, 10, 0, 2*math.Pi, false); err != nil {
		t.Fatal(err)
	}
	cubics := 0
	for _, e := range p.Elements() {
		if _, ok := e.(CubicTo); ok {
			cubics++
		}
	}
	if cubics != 4 {
		t.Errorf("full circle used %d cubics, want 4", cubics)
	}
	b := p.BoundingBox()
	if !b.Min.near(Pt(-10, -10), 0.01) || !b.Max.near(Pt(10, 10), 0.01) {
		t.Errorf("BoundingBox = %+v", b)
	}
	for _, pl := range p.Flatten(0.01) {
		for _, pt := range pl.Points {
			if d := pt.Length(); math.Abs(d-10) > 0.01 {
				t.Fatalf("point %v at distance %v from centre", pt, d)
			}
		}
	}
}

func TestPathArcConnectsFromCurrentPoint(t *testing.T) {
	p := NewPath()
	p.MoveTo(-5, 0)
	if err := p.Arc(0, 0, 1, 0, math.Pi/2, false); err != nil {
		t.Fatal(err)
	}
	ln, ok := p.Elements()[1].(LineTo)
	if !ok || !ln.Point.near(Pt(1, 0), 1e-12) {
		t.Errorf("element 1 = %#v, want LineTo(1, 0)", p.Elements()[1])
	}
	if pt, _ := p.CurrentPoint(); !pt.near(Pt(0, 1), 1e-12) {
		t.Errorf("CurrentPoint = %v, want (0, 1)", pt)
	}
}

func TestPathArcAnticlockwise(t *testing.T) {
	p := NewPath()
	if err := p.Arc(0, 0, 10, 0, math.Pi/2, true); err != nil {
		t.Fatal(err)
	}
	// Three quarters the long way round passes through (-10, 0).
	if !p.StrokeContains(Pt(-10, 0), 0.1) {
		t.Error("anticlockwise arc misses (-10, 0)")
	}
	if p.StrokeContains(Pt(7.07, 7.07), 0.1) {
		t.Error("anticlockwise arc covers the short side")
	}
}

func TestPathArcTo(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	if err := p.ArcTo(10, 0, 10, 10, 5); err != nil {
		t.Fatal(err)
	}
	ln, ok := p.Elements()[1].(LineTo)
	if !ok || !ln.Point.near(Pt(5, 0), 1e-9) {
		t.Errorf("tangent line ends at %#v, want (5, 0)", p.Elements()[1])
	}
	if pt, _ := p.CurrentPoint(); !pt.near(Pt(10, 5), 1e-9) {
		t.Errorf("CurrentPoint = %v, want (10, 5)", pt)
	}
	// The arc bulges towards the corner but stays inside it.
	if !p.StrokeContains(Pt(5+5/math.Sqrt2, 5-5/math.Sqrt2), 0.05) {
		t.Error("arc misses its midpoint")
	}
}

func TestPathArcToDegenerate(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		x2   float64
		y2   float64
	}{
		{"zero radius", 0, 10, 10},
		{"collinear", 5, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			p.MoveTo(0, 0)
			if err := p.ArcTo(10, 0, tt.x2, tt.y2, tt.r); err != nil {
				t.Fatal(err)
			}
			if len(p.Elements()) != 2 {
				t.Fatalf("elements = %v, want a single line", p.Elements())
			}
			if ln := p.Elements()[1].(LineTo); ln.Point != Pt(10, 0) {
				t.Errorf("line to %v, want (10, 0)", ln.Point)
			}
		})
	}
}

func TestPathArcToWithoutCurrentPoint(t *testing.T) {
	p := NewPath()
	if err := p.ArcTo(3, 4, 10, 10, 2); err != nil {
		t.Fatal(err)
	}
	if mv, ok := p.Elements()[0].(MoveTo); !ok || mv.Point != Pt(3, 4) {
		t.Errorf("first element = %#v, want MoveTo(3, 4)", p.Elements()[0])
	}
}

func TestPathNegativeRadius(t *testing.T) {
	p := NewPath()
	if err := p.Arc(0, 0, -1, 0, 1, false); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("Arc = %v", err)
	}
	if err := p.ArcTo(0, 0, 1, 1, -1); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("ArcTo = %v", err)
	}
	if err := p.Ellipse(0, 0, 1, -1, 0, 0, 1, false); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("Ellipse = %v", err)
	}
	if err := p.RoundRect(0, 0, 1, 1, 1, -1); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("RoundRect = %v", err)
	}
	if !p.IsEmpty() {
		t.Error("failed constructions modified the path")
	}
}

func TestPathEllipseRotation(t *testing.T) {
	p := NewPath()
	if err := p.Ellipse(0, 0, 10, 2, math.Pi/2, 0, 2*math.Pi, false); err != nil {
		t.Fatal(err)
	}
	if !p.Contains(Pt(0, 8), NonZero) {
		t.Error("rotated ellipse misses (0, 8)")
	}
	if p.Contains(Pt(8, 0), NonZero) {
		t.Error("rotated ellipse covers (8, 0)")
	}
}

func TestPathRoundRect(t *testing.T) {
	tests := []struct {
		name  string
		radii []float64
		in    []Point
		out   []Point
	}{
		{"uniform", []float64{5}, []Point{Pt(10, 10), Pt(5, 1)}, []Point{Pt(0.5, 0.5), Pt(19.5, 19.5)}},
		{"top-left only", []float64{8, 0, 0, 0}, []Point{Pt(19.8, 0.2), Pt(0.2, 19.8)}, []Point{Pt(0.5, 0.5)}},
		{"oversized radii shrink to a circle", []float64{100}, []Point{Pt(10, 10)}, []Point{Pt(1, 1), Pt(19, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			if err := p.RoundRect(0, 0, 20, 20, tt.radii...); err != nil {
				t.Fatal(err)
			}
			for _, pt := range tt.in {
				if !p.Contains(pt, NonZero) {
					t.Errorf("%v not inside", pt)
				}
			}
			for _, pt := range tt.out {
				if p.Contains(pt, NonZero) {
					t.Errorf("%v inside", pt)
				}
			}
		})
	}
}

func TestPathRoundRectRadiiCount(t *testing.T) {
	p := NewPath()
	for _, radii := range [][]float64{nil, {1, 2, 3, 4, 5}} {
		if err := p.RoundRect(0, 0, 1, 1, radii...); !errors.Is(err, ErrRadiiCount) {
			t.Errorf("RoundRect(%v) = %v, want ErrRadiiCount", radii, err)
		}
	}
}

func TestPathAddPath(t *testing.T) {
	q := rectPath(0, 0, 1, 1)
	p := NewPath()
	p.AddPath(q, Translate(10, 0))
	p.AddPath(nil, Identity())
	if !p.Contains(Pt(10.5, 0.5), NonZero) || p.Contains(Pt(0.5, 0.5), NonZero) {
		t.Error("AddPath did not apply the transform")
	}
}

func TestPathCloneIsIndependent(t *testing.T) {
	p := rectPath(0, 0, 1, 1)
	c := p.Clone()
	p.LineTo(50, 50)
	if len(c.Elements()) != 6 {
		t.Errorf("clone has %d elements, want 6", len(c.Elements()))
	}
}
