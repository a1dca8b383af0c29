package canvas

import (
	"fmt"
	"math"
)

// updateStyle applies f to a copy of the host style and hands it back.
func (c *Context) updateStyle(f func(*Style)) error {
	s := c.native.Style()
	f(&s)
	return c.native.SetStyle(s)
}

// SetFillStyle sets the fill colour.
func (c *Context) SetFillStyle(color string) error {
	return c.updateStyle(func(s *Style) { s.FillStyle = color })
}

// SetStrokeStyle sets the stroke colour.
func (c *Context) SetStrokeStyle(color string) error {
	return c.updateStyle(func(s *Style) { s.StrokeStyle = color })
}

// SetGlobalAlpha sets the alpha applied to everything drawn. Values
// outside [0, 1] are ignored.
func (c *Context) SetGlobalAlpha(a float64) error {
	if math.IsNaN(a) || a < 0 || a > 1 {
		return nil
	}
	return c.updateStyle(func(s *Style) { s.GlobalAlpha = a })
}

// SetLineWidth sets the stroke width in user units. Non-positive and
// non-finite widths are ignored.
func (c *Context) SetLineWidth(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return nil
	}
	return c.updateStyle(func(s *Style) { s.LineWidth = w })
}

// SetLineCap sets the cap style from its keyword.
func (c *Context) SetLineCap(name string) error {
	v, err := ParseLineCap(name)
	if err != nil {
		return err
	}
	return c.updateStyle(func(s *Style) { s.LineCap = v })
}

// SetLineJoin sets the join style from its keyword.
func (c *Context) SetLineJoin(name string) error {
	v, err := ParseLineJoin(name)
	if err != nil {
		return err
	}
	return c.updateStyle(func(s *Style) { s.LineJoin = v })
}

// SetMiterLimit sets the miter limit. Non-positive values are ignored.
func (c *Context) SetMiterLimit(v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return nil
	}
	return c.updateStyle(func(s *Style) { s.MiterLimit = v })
}

// SetLineDashOffset sets the phase of the dash pattern.
func (c *Context) SetLineDashOffset(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return c.updateStyle(func(s *Style) { s.LineDashOffset = v })
}

// SetShadow sets the shadow offset, blur and colour together.
func (c *Context) SetShadow(dx, dy, blur float64, color string) error {
	if blur < 0 {
		return fmt.Errorf("canvas: negative shadow blur %v", blur)
	}
	return c.updateStyle(func(s *Style) {
		s.ShadowOffsetX, s.ShadowOffsetY = dx, dy
		s.ShadowBlur = blur
		s.ShadowColor = color
	})
}

// SetGlobalCompositeOperation sets the compositing operator by name.
func (c *Context) SetGlobalCompositeOperation(op string) error {
	return c.updateStyle(func(s *Style) { s.GlobalCompositeOperation = op })
}

// SetFont sets the CSS font shorthand.
func (c *Context) SetFont(font string) error {
	return c.updateStyle(func(s *Style) { s.Font = font })
}

// SetTextAlign sets the text alignment from its keyword.
func (c *Context) SetTextAlign(name string) error {
	v, err := ParseTextAlign(name)
	if err != nil {
		return err
	}
	return c.updateStyle(func(s *Style) { s.TextAlign = v })
}

// SetTextBaseline sets the text baseline from its keyword.
func (c *Context) SetTextBaseline(name string) error {
	v, err := ParseTextBaseline(name)
	if err != nil {
		return err
	}
	return c.updateStyle(func(s *Style) { s.TextBaseline = v })
}

// SetDirection sets the text direction from its keyword.
func (c *Context) SetDirection(name string) error {
	v, err := ParseTextDirection(name)
	if err != nil {
		return err
	}
	return c.updateStyle(func(s *Style) { s.Direction = v })
}

// SetImageSmoothingEnabled toggles image smoothing.
func (c *Context) SetImageSmoothingEnabled(on bool) error {
	return c.updateStyle(func(s *Style) { s.ImageSmoothingEnabled = on })
}
