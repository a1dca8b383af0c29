package canvas

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for negative surface dimensions.
var ErrInvalidSize = errors.New("canvas: invalid surface size")

// Surface is a drawable area owning at most one Context, created on first
// use. Assigning a width or height, even an unchanged one, resets that
// context: the implicit path, clip regions and saved states are dropped
// and the host returns to its initial state.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	width, height int
	opts          surfaceOptions
	ctx           *Context
}

// NewSurface returns a surface of the given size. No host is created
// until Context is called.
func NewSurface(width, height int, opts ...SurfaceOption) *Surface {
	o := defaultSurfaceOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Surface{width: max(width, 0), height: max(height, 0), opts: o}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Context returns the surface's context, creating the host on first call.
// Later calls return the same Context.
func (s *Surface) Context() (*Context, error) {
	if s.ctx != nil {
		return s.ctx, nil
	}
	n, err := s.newNative(s.width, s.height)
	if err != nil {
		return nil, err
	}
	s.ctx = NewContext(n)
	Logger().Info("canvas: context created", "backend", s.backendName(), "width", s.width, "height", s.height)
	return s.ctx, nil
}

// SetWidth assigns the width and resets the context.
func (s *Surface) SetWidth(w int) error {
	return s.Resize(w, s.height)
}

// SetHeight assigns the height and resets the context.
func (s *Surface) SetHeight(h int) error {
	return s.Resize(s.width, h)
}

// Resize assigns both dimensions and resets the context once. If the
// host cannot be resized the surface keeps its previous size.
func (s *Surface) Resize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if s.ctx == nil {
		s.width, s.height = w, h
		return nil
	}

	n := s.ctx.native
	if r, ok := n.(Resizer); ok {
		if err := r.Resize(w, h); err != nil {
			return fmt.Errorf("canvas: resize host: %w", err)
		}
	} else {
		fresh, err := s.newNative(w, h)
		if err != nil {
			return err
		}
		n = fresh
	}
	s.width, s.height = w, h
	s.ctx.reset(n)
	Logger().Info("canvas: surface resized", "width", w, "height", h)
	return nil
}

func (s *Surface) newNative(w, h int) (Native, error) {
	if s.opts.factory != nil {
		n, err := s.opts.factory(w, h)
		if err != nil {
			return nil, fmt.Errorf("canvas: create host: %w", err)
		}
		return n, nil
	}
	return NewNative(s.opts.backend, w, h)
}

func (s *Surface) backendName() string {
	if s.opts.factory != nil {
		return "custom"
	}
	return s.opts.backend
}
