package software

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned for colour strings the backend cannot parse.
var ErrInvalidColor = errors.New("software: invalid color")

// parseColor parses a CSS colour: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(), rgba(), a named colour or "transparent".
func parseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(hex string) (color.NRGBA, error) {
	var digits [8]uint8
	for i := 0; i < len(hex); i++ {
		if i >= len(digits) {
			return color.NRGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
		}
		c := hex[i]
		switch {
		case '0' <= c && c <= '9':
			digits[i] = c - '0'
		case 'a' <= c && c <= 'f':
			digits[i] = c - 'a' + 10
		default:
			return color.NRGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
		}
	}
	d := digits
	switch len(hex) {
	case 3:
		return color.NRGBA{R: d[0] * 17, G: d[1] * 17, B: d[2] * 17, A: 255}, nil
	case 4:
		return color.NRGBA{R: d[0] * 17, G: d[1] * 17, B: d[2] * 17, A: d[3] * 17}, nil
	case 6:
		return color.NRGBA{R: d[0]<<4 | d[1], G: d[2]<<4 | d[3], B: d[4]<<4 | d[5], A: 255}, nil
	case 8:
		return color.NRGBA{R: d[0]<<4 | d[1], G: d[2]<<4 | d[3], B: d[4]<<4 | d[5], A: d[6]<<4 | d[7]}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
}

// parseRGBFunc accepts both the legacy comma form and the space form
// with an optional "/ alpha".
func parseRGBFunc(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	name := s[:open]
	if name != "rgb" && name != "rgba" {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	body := strings.NewReplacer(",", " ", "/", " ").Replace(s[open+1 : len(s)-1])
	parts := strings.Fields(body)
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var out [4]uint8
	out[3] = 255
	for i, p := range parts {
		var (
			v   float64
			err error
		)
		if i == 3 {
			v, err = parseUnit(p, 1)
		} else {
			v, err = parseUnit(p, 255)
		}
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		if i == 3 {
			v *= 255
		}
		out[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
}

// parseUnit parses a number or a percentage of full.
func parseUnit(s string, full float64) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return v / 100 * full, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}
