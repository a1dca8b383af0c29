package canvas

// Native is the host drawing context being augmented. It offers a single
// cumulative clip and one save/restore stack, and draws paths given in
// user space under its current transform.
//
// Hosts never see a nil path from this package: optional path arguments
// are resolved before a Native is called.
type Native interface {
	// BeginPath discards any path the host itself accumulated.
	BeginPath()
	Fill(p *Path, rule FillRule) error
	Stroke(p *Path) error
	// IsPointInPath and IsPointInStroke take (x, y) in surface
	// coordinates, unaffected by the current transform.
	IsPointInPath(p *Path, x, y float64, rule FillRule) bool
	IsPointInStroke(p *Path, x, y float64) bool
	ScrollPathIntoView(p *Path) error
	// Clip intersects the current clip with p. It cannot be undone
	// except by Restore.
	Clip(p *Path, rule FillRule) error

	Save()
	// Restore pops the last Save. An unmatched Restore does nothing.
	Restore()

	GetTransform() Matrix
	SetTransform(m Matrix)
	LineDash() []float64
	SetLineDash(segments []float64) error
	Style() Style
	SetStyle(s Style) error
}

// Resizer is implemented by hosts whose backing store can change size in
// place. Resizing resets the host to its initial state, as assigning a
// canvas width or height does.
type Resizer interface {
	Resize(width, height int) error
}

// NativeFactory creates a host for a surface of the given size.
type NativeFactory func(width, height int) (Native, error)
