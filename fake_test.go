package canvas

import (
	"errors"
	"slices"
)

var (
	errFakeStyle = errors.New("fake: style rejected")
	errFakeClip  = errors.New("fake: empty clip rejected")
)

type fakeClip struct {
	path *Path // surface space
	rule FillRule
}

type fakeState struct {
	style Style
	m     Matrix
	dash  []float64
	clips []fakeClip
}

func (s fakeState) clone() fakeState {
	s.dash = slices.Clone(s.dash)
	s.clips = slices.Clone(s.clips)
	return s
}

// fakeNative models a host: a cumulative clip that only shrinks, one
// save/restore stack, paths drawn under the current transform.
type fakeNative struct {
	fakeState
	stack    []fakeState
	calls    []string
	fills    []*Path // surface space
	strokes  []*Path
	scrolled *Path
	styleErr error
	// styleFailures makes the next n SetStyle calls fail.
	styleFailures int
	rejectEmpty   bool
	width    int
	height   int
}

func newFakeNative() *fakeNative {
	return &fakeNative{fakeState: fakeState{style: DefaultStyle(), m: Identity()}}
}

func (f *fakeNative) BeginPath() { f.calls = append(f.calls, "beginPath") }

func (f *fakeNative) Fill(p *Path, rule FillRule) error {
	f.calls = append(f.calls, "fill")
	f.fills = append(f.fills, p.Transform(f.m))
	return nil
}

func (f *fakeNative) Stroke(p *Path) error {
	f.calls = append(f.calls, "stroke")
	f.strokes = append(f.strokes, p.Transform(f.m))
	return nil
}

func (f *fakeNative) IsPointInPath(p *Path, x, y float64, rule FillRule) bool {
	return p.Transform(f.m).Contains(Pt(x, y), rule)
}

func (f *fakeNative) IsPointInStroke(p *Path, x, y float64) bool {
	return p.Transform(f.m).StrokeContains(Pt(x, y), f.style.LineWidth*f.m.ScaleFactor())
}

func (f *fakeNative) ScrollPathIntoView(p *Path) error {
	f.calls = append(f.calls, "scroll")
	f.scrolled = p.Transform(f.m)
	return nil
}

func (f *fakeNative) Clip(p *Path, rule FillRule) error {
	f.calls = append(f.calls, "clip")
	if f.rejectEmpty && p.IsEmpty() {
		return errFakeClip
	}
	f.clips = append(f.clips, fakeClip{path: p.Transform(f.m), rule: rule})
	return nil
}

func (f *fakeNative) Save() {
	f.calls = append(f.calls, "save")
	f.stack = append(f.stack, f.fakeState.clone())
}

func (f *fakeNative) Restore() {
	f.calls = append(f.calls, "restore")
	if len(f.stack) == 0 {
		return
	}
	f.fakeState = f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
}

func (f *fakeNative) GetTransform() Matrix  { return f.m }
func (f *fakeNative) SetTransform(m Matrix) { f.m = m }
func (f *fakeNative) LineDash() []float64   { return slices.Clone(f.dash) }

func (f *fakeNative) SetLineDash(segments []float64) error {
	for _, v := range segments {
		if v < 0 {
			return errors.New("fake: negative dash")
		}
	}
	f.dash = slices.Clone(segments)
	return nil
}

func (f *fakeNative) Style() Style { return f.style }

func (f *fakeNative) SetStyle(s Style) error {
	if f.styleErr != nil {
		return f.styleErr
	}
	if f.styleFailures > 0 {
		f.styleFailures--
		return errFakeStyle
	}
	f.style = s
	return nil
}

func (f *fakeNative) Resize(w, h int) error {
	f.calls = append(f.calls, "resize")
	f.width, f.height = w, h
	f.fakeState = fakeState{style: DefaultStyle(), m: Identity()}
	f.stack = nil
	return nil
}

// inClip reports whether surface point (x, y) survives every host clip.
func (f *fakeNative) inClip(x, y float64) bool {
	for _, c := range f.clips {
		if !c.path.Contains(Pt(x, y), c.rule) {
			return false
		}
	}
	return true
}

func (f *fakeNative) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

// fixedNative hides Resize so a Surface has to recreate the host.
type fixedNative struct {
	Native
}

func rectPath(x, y, w, h float64) *Path {
	p := NewPath()
	p.Rect(x, y, w, h)
	return p
}
