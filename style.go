package canvas

import (
	"fmt"

	"github.com/go-text/typesetting/di"
	"golang.org/x/text/unicode/bidi"
)

// Style holds the scalar drawing-state properties a context carries
// across save and restore. Colours, fonts and composite operations are
// kept as the strings the host understands and are validated by it.
type Style struct {
	StrokeStyle              string
	FillStyle                string
	GlobalAlpha              float64
	LineWidth                float64
	LineCap                  LineCap
	LineJoin                 LineJoin
	MiterLimit               float64
	LineDashOffset           float64
	ShadowOffsetX            float64
	ShadowOffsetY            float64
	ShadowBlur               float64
	ShadowColor              string
	GlobalCompositeOperation string
	Font                     string
	TextAlign                TextAlign
	TextBaseline             TextBaseline
	Direction                TextDirection
	ImageSmoothingEnabled    bool
}

// DefaultStyle returns the initial drawing state of a fresh context.
func DefaultStyle() Style {
	return Style{
		StrokeStyle:              "#000000",
		FillStyle:                "#000000",
		GlobalAlpha:              1,
		LineWidth:                1,
		LineCap:                  LineCapButt,
		LineJoin:                 LineJoinMiter,
		MiterLimit:               10,
		ShadowColor:              "rgba(0, 0, 0, 0)",
		GlobalCompositeOperation: "source-over",
		Font:                     "10px sans-serif",
		TextAlign:                TextAlignStart,
		TextBaseline:             TextBaselineAlphabetic,
		Direction:                DirectionInherit,
		ImageSmoothingEnabled:    true,
	}
}

// LineCap is the shape drawn at the open ends of stroked subpaths.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

var lineCapNames = [...]string{"butt", "round", "square"}

func (c LineCap) String() string {
	if c >= 0 && int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return fmt.Sprintf("LineCap(%d)", int(c))
}

// ParseLineCap parses a canvas lineCap keyword.
func ParseLineCap(s string) (LineCap, error) {
	for i, n := range lineCapNames {
		if n == s {
			return LineCap(i), nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown line cap %q", s)
}

// LineJoin is the shape drawn where stroked segments meet.
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

var lineJoinNames = [...]string{"miter", "round", "bevel"}

func (j LineJoin) String() string {
	if j >= 0 && int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return fmt.Sprintf("LineJoin(%d)", int(j))
}

// ParseLineJoin parses a canvas lineJoin keyword.
func ParseLineJoin(s string) (LineJoin, error) {
	for i, n := range lineJoinNames {
		if n == s {
			return LineJoin(i), nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown line join %q", s)
}

// TextAlign is the horizontal text anchor.
type TextAlign int

const (
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
)

var textAlignNames = [...]string{"start", "end", "left", "right", "center"}

func (a TextAlign) String() string {
	if a >= 0 && int(a) < len(textAlignNames) {
		return textAlignNames[a]
	}
	return fmt.Sprintf("TextAlign(%d)", int(a))
}

// ParseTextAlign parses a canvas textAlign keyword.
func ParseTextAlign(s string) (TextAlign, error) {
	for i, n := range textAlignNames {
		if n == s {
			return TextAlign(i), nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown text align %q", s)
}

// TextBaseline is the vertical text anchor.
type TextBaseline int

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineHanging
	TextBaselineMiddle
	TextBaselineIdeographic
	TextBaselineBottom
)

var textBaselineNames = [...]string{"alphabetic", "top", "hanging", "middle", "ideographic", "bottom"}

func (b TextBaseline) String() string {
	if b >= 0 && int(b) < len(textBaselineNames) {
		return textBaselineNames[b]
	}
	return fmt.Sprintf("TextBaseline(%d)", int(b))
}

// ParseTextBaseline parses a canvas textBaseline keyword.
func ParseTextBaseline(s string) (TextBaseline, error) {
	for i, n := range textBaselineNames {
		if n == s {
			return TextBaseline(i), nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown text baseline %q", s)
}

// TextDirection is the base direction used when drawing text.
type TextDirection int

const (
	DirectionInherit TextDirection = iota
	DirectionLTR
	DirectionRTL
)

var directionNames = [...]string{"inherit", "ltr", "rtl"}

func (d TextDirection) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("TextDirection(%d)", int(d))
}

// ParseTextDirection parses a canvas direction keyword.
func ParseTextDirection(s string) (TextDirection, error) {
	for i, n := range directionNames {
		if n == s {
			return TextDirection(i), nil
		}
	}
	return 0, fmt.Errorf("canvas: unknown direction %q", s)
}

// Resolve turns DirectionInherit into a concrete direction taken from the
// first strong character of sample, falling back to left-to-right.
// Concrete directions are returned unchanged.
func (d TextDirection) Resolve(sample string) TextDirection {
	if d != DirectionInherit {
		return d
	}
	for _, r := range sample {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
	}
	return DirectionLTR
}

// Shaping maps d to the direction a text shaper expects. Inherit is
// treated as left-to-right; call Resolve first to honour the content.
func (d TextDirection) Shaping() di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}
