package recording

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/canvas"
)

// ErrInvalidSize is returned for negative recorder dimensions.
var ErrInvalidSize = errors.New("recording: invalid size")

func init() {
	canvas.RegisterBackend("recording", func(width, height int) (canvas.Native, error) {
		return NewRecorder(width, height)
	})
}

// Recorder is a canvas.Native that logs every call it receives as a
// Command. It tracks just enough state to answer queries: style,
// transform, dash and the save stack. It draws nothing and never clips,
// so Playback onto a real host is the way to see the result.
//
// A Recorder built with Tee also forwards each call to another host,
// whose answers and errors take precedence.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
	target        canvas.Native

	style     canvas.Style
	transform canvas.Matrix
	dash      []float64

	stateStack []recorderState
}

// recorderState stores the state for Save/Restore.
type recorderState struct {
	style     canvas.Style
	transform canvas.Matrix
	dash      []float64
}

var (
	_ canvas.Native  = (*Recorder)(nil)
	_ canvas.Resizer = (*Recorder)(nil)
)

// NewRecorder creates a recorder for a surface of the given size, in the
// initial canvas state.
func NewRecorder(width, height int) (*Recorder, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	r := &Recorder{
		width:     width,
		height:    height,
		commands:  make([]Command, 0, 256),
		resources: NewResourcePool(),
	}
	r.resetState()
	return r, nil
}

// Tee returns a recorder that forwards every call to target after
// logging it. Its state starts as a copy of target's.
func Tee(target canvas.Native, width, height int) (*Recorder, error) {
	r, err := NewRecorder(width, height)
	if err != nil {
		return nil, err
	}
	r.target = target
	r.style = target.Style()
	r.transform = target.GetTransform()
	r.dash = slices.Clone(target.LineDash())
	return r, nil
}

func (r *Recorder) resetState() {
	r.style = canvas.DefaultStyle()
	r.transform = canvas.Identity()
	r.dash = nil
	r.stateStack = r.stateStack[:0]
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// Width returns the width of the recording surface.
func (r *Recorder) Width() int { return r.width }

// Height returns the height of the recording surface.
func (r *Recorder) Height() int { return r.height }

// Commands returns the recorded commands, oldest first.
func (r *Recorder) Commands() []Command {
	return slices.Clone(r.commands)
}

// Types returns the type of each recorded command, oldest first.
func (r *Recorder) Types() []CommandType {
	types := make([]CommandType, len(r.commands))
	for i, c := range r.commands {
		types[i] = c.Type()
	}
	return types
}

// Path returns the recorded path referenced by ref.
func (r *Recorder) Path(ref PathRef) *canvas.Path {
	return r.resources.GetPath(ref)
}

// Reset discards the recorded commands and paths. The tracked state is
// kept, since the host it mirrors is unchanged.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.resources.Clear()
}

// SaveDepth returns the number of unmatched Save calls.
func (r *Recorder) SaveDepth() int { return len(r.stateStack) }

// --------------------------------------------------------------------------
// canvas.Native
// --------------------------------------------------------------------------

func (r *Recorder) BeginPath() {
	r.record(BeginPathCommand{})
	if r.target != nil {
		r.target.BeginPath()
	}
}

func (r *Recorder) Fill(p *canvas.Path, rule canvas.FillRule) error {
	r.record(FillCommand{Path: r.resources.AddPath(p), Rule: rule})
	if r.target != nil {
		return r.target.Fill(p, rule)
	}
	return nil
}

func (r *Recorder) Stroke(p *canvas.Path) error {
	r.record(StrokeCommand{Path: r.resources.AddPath(p)})
	if r.target != nil {
		return r.target.Stroke(p)
	}
	return nil
}

// IsPointInPath is answered by the target when there is one, and
// geometrically otherwise. Queries are not recorded.
func (r *Recorder) IsPointInPath(p *canvas.Path, x, y float64, rule canvas.FillRule) bool {
	if r.target != nil {
		return r.target.IsPointInPath(p, x, y, rule)
	}
	return p.Transform(r.transform).Contains(canvas.Pt(x, y), rule)
}

// IsPointInStroke is answered by the target when there is one, and
// geometrically otherwise. Queries are not recorded.
func (r *Recorder) IsPointInStroke(p *canvas.Path, x, y float64) bool {
	if r.target != nil {
		return r.target.IsPointInStroke(p, x, y)
	}
	width := r.style.LineWidth * r.transform.ScaleFactor()
	return p.Transform(r.transform).StrokeContains(canvas.Pt(x, y), width)
}

func (r *Recorder) ScrollPathIntoView(p *canvas.Path) error {
	r.record(ScrollIntoViewCommand{Path: r.resources.AddPath(p)})
	if r.target != nil {
		return r.target.ScrollPathIntoView(p)
	}
	return nil
}

func (r *Recorder) Clip(p *canvas.Path, rule canvas.FillRule) error {
	r.record(ClipCommand{Path: r.resources.AddPath(p), Rule: rule})
	if r.target != nil {
		return r.target.Clip(p, rule)
	}
	return nil
}

func (r *Recorder) Save() {
	r.record(SaveCommand{})
	r.stateStack = append(r.stateStack, recorderState{
		style:     r.style,
		transform: r.transform,
		dash:      slices.Clone(r.dash),
	})
	if r.target != nil {
		r.target.Save()
	}
}

func (r *Recorder) Restore() {
	r.record(RestoreCommand{})
	if n := len(r.stateStack); n > 0 {
		s := r.stateStack[n-1]
		r.stateStack = r.stateStack[:n-1]
		r.style, r.transform, r.dash = s.style, s.transform, s.dash
	}
	if r.target != nil {
		r.target.Restore()
	}
}

func (r *Recorder) GetTransform() canvas.Matrix {
	if r.target != nil {
		return r.target.GetTransform()
	}
	return r.transform
}

func (r *Recorder) SetTransform(m canvas.Matrix) {
	r.record(SetTransformCommand{Matrix: m})
	r.transform = m
	if r.target != nil {
		r.target.SetTransform(m)
	}
}

func (r *Recorder) LineDash() []float64 {
	if r.target != nil {
		return r.target.LineDash()
	}
	return slices.Clone(r.dash)
}

// SetLineDash records segments. Without a target every list is accepted
// as given.
func (r *Recorder) SetLineDash(segments []float64) error {
	if r.target != nil {
		if err := r.target.SetLineDash(segments); err != nil {
			return err
		}
	}
	r.record(SetLineDashCommand{Segments: slices.Clone(segments)})
	r.dash = slices.Clone(segments)
	return nil
}

func (r *Recorder) Style() canvas.Style {
	if r.target != nil {
		return r.target.Style()
	}
	return r.style
}

// SetStyle records s. A style the target rejects is neither recorded
// nor tracked.
func (r *Recorder) SetStyle(s canvas.Style) error {
	if r.target != nil {
		if err := r.target.SetStyle(s); err != nil {
			return err
		}
	}
	r.record(SetStyleCommand{Style: s})
	r.style = s
	return nil
}

// Resize records the new size and returns the tracked state to its
// initial values. The target is resized too if it supports it.
func (r *Recorder) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if r.target != nil {
		rs, ok := r.target.(canvas.Resizer)
		if !ok {
			return fmt.Errorf("recording: target %T cannot be resized", r.target)
		}
		if err := rs.Resize(width, height); err != nil {
			return err
		}
	}
	r.record(ResizeCommand{Width: width, Height: height})
	r.width, r.height = width, height
	r.resetState()
	return nil
}

// --------------------------------------------------------------------------
// Playback
// --------------------------------------------------------------------------

// Playback replays the recorded commands onto dst in order. It stops at
// the first error. Resize commands require dst to implement
// canvas.Resizer.
func (r *Recorder) Playback(dst canvas.Native) error {
	for i, cmd := range r.commands {
		if err := r.play(dst, cmd); err != nil {
			return fmt.Errorf("recording: command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}

func (r *Recorder) play(dst canvas.Native, cmd Command) error {
	switch c := cmd.(type) {
	case SaveCommand:
		dst.Save()
	case RestoreCommand:
		dst.Restore()
	case SetTransformCommand:
		dst.SetTransform(c.Matrix)
	case SetStyleCommand:
		return dst.SetStyle(c.Style)
	case SetLineDashCommand:
		return dst.SetLineDash(c.Segments)
	case ClipCommand:
		return dst.Clip(r.resources.GetPath(c.Path), c.Rule)
	case BeginPathCommand:
		dst.BeginPath()
	case FillCommand:
		return dst.Fill(r.resources.GetPath(c.Path), c.Rule)
	case StrokeCommand:
		return dst.Stroke(r.resources.GetPath(c.Path))
	case ScrollIntoViewCommand:
		return dst.ScrollPathIntoView(r.resources.GetPath(c.Path))
	case ResizeCommand:
		rs, ok := dst.(canvas.Resizer)
		if !ok {
			return fmt.Errorf("%T cannot be resized", dst)
		}
		return rs.Resize(c.Width, c.Height)
	default:
		canvas.Logger().Warn("recording: unknown command skipped", "type", cmd.Type())
	}
	return nil
}
