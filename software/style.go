package software

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strings"

	"github.com/gogpu/canvas"
)

// Errors returned by SetStyle and SetLineDash.
var (
	ErrInvalidValue     = errors.New("software: invalid value")
	ErrInvalidFont      = errors.New("software: invalid font")
	ErrInvalidComposite = errors.New("software: unknown composite operation")
	ErrInvalidDash      = errors.New("software: invalid line dash")
)

// compositeOps lists the operators the canvas API accepts. Only
// source-over and copy are rendered faithfully; the rest draw as
// source-over.
var compositeOps = map[string]bool{
	"source-over": true, "source-in": true, "source-out": true, "source-atop": true,
	"destination-over": true, "destination-in": true, "destination-out": true,
	"destination-atop": true, "lighter": true, "copy": true, "xor": true,
	"multiply": true, "screen": true, "overlay": true, "darken": true, "lighten": true,
	"color-dodge": true, "color-burn": true, "hard-light": true, "soft-light": true,
	"difference": true, "exclusion": true, "hue": true, "saturation": true,
	"color": true, "luminosity": true,
}

// fontSize matches the mandatory size token of the CSS font shorthand,
// optionally followed by a line height.
var fontSize = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)(px|pt|pc|em|rem|ex|ch|%|vw|vh|in|cm|mm|q)(/\S+)?$`)

// paint is a validated style, with colours decoded.
type paint struct {
	style  canvas.Style
	fill   color.NRGBA
	stroke color.NRGBA
	shadow color.NRGBA
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// compile validates s and decodes its colours.
func compile(s canvas.Style) (paint, error) {
	var (
		p   = paint{style: s}
		err error
	)
	if p.fill, err = parseColor(s.FillStyle); err != nil {
		return paint{}, fmt.Errorf("fillStyle: %w", err)
	}
	if p.stroke, err = parseColor(s.StrokeStyle); err != nil {
		return paint{}, fmt.Errorf("strokeStyle: %w", err)
	}
	if p.shadow, err = parseColor(s.ShadowColor); err != nil {
		return paint{}, fmt.Errorf("shadowColor: %w", err)
	}

	switch {
	case !finite(s.GlobalAlpha) || s.GlobalAlpha < 0 || s.GlobalAlpha > 1:
		return paint{}, fmt.Errorf("%w: globalAlpha %v", ErrInvalidValue, s.GlobalAlpha)
	case !finite(s.LineWidth) || s.LineWidth <= 0:
		return paint{}, fmt.Errorf("%w: lineWidth %v", ErrInvalidValue, s.LineWidth)
	case !finite(s.MiterLimit) || s.MiterLimit <= 0:
		return paint{}, fmt.Errorf("%w: miterLimit %v", ErrInvalidValue, s.MiterLimit)
	case !finite(s.ShadowBlur) || s.ShadowBlur < 0:
		return paint{}, fmt.Errorf("%w: shadowBlur %v", ErrInvalidValue, s.ShadowBlur)
	case !finite(s.LineDashOffset) || !finite(s.ShadowOffsetX) || !finite(s.ShadowOffsetY):
		return paint{}, fmt.Errorf("%w: non-finite offset", ErrInvalidValue)
	}

	for _, name := range []string{s.LineCap.String(), s.LineJoin.String(), s.TextAlign.String(), s.TextBaseline.String(), s.Direction.String()} {
		if strings.ContainsRune(name, '(') {
			return paint{}, fmt.Errorf("%w: %s", ErrInvalidValue, name)
		}
	}
	if !compositeOps[s.GlobalCompositeOperation] {
		return paint{}, fmt.Errorf("%w: %q", ErrInvalidComposite, s.GlobalCompositeOperation)
	}
	if err := checkFont(s.Font); err != nil {
		return paint{}, err
	}
	return p, nil
}

// checkFont requires a size token followed by at least one family name.
func checkFont(font string) error {
	fields := strings.Fields(font)
	for i, f := range fields {
		if fontSize.MatchString(strings.ToLower(f)) {
			if i == len(fields)-1 {
				break
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidFont, font)
}

// normalizeDash validates a dash list and doubles odd-length lists.
func normalizeDash(segments []float64) ([]float64, error) {
	for _, v := range segments {
		if !finite(v) || v < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDash, segments)
		}
	}
	out := make([]float64, 0, 2*len(segments))
	out = append(out, segments...)
	if len(segments)%2 == 1 {
		out = append(out, segments...)
	}
	return out, nil
}
