package script

import (
	"errors"
	"fmt"
	"math"

	rt "github.com/arnodel/golua/runtime"

	"github.com/gogpu/canvas"
)

// builder is the path construction API shared by canvas.Canvas and
// *canvas.Path.
type builder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Rect(x, y, w, h float64)
	ClosePath()
	Arc(x, y, r, startAngle, endAngle float64, anticlockwise bool) error
	ArcTo(x1, y1, x2, y2, r float64) error
	Ellipse(x, y, rx, ry, rotation, startAngle, endAngle float64, anticlockwise bool) error
	RoundRect(x, y, w, h float64, radii ...float64) error
}

// pathMethods are the builders also reachable as Path methods.
var pathMethods = []string{
	"move_to", "line_to", "quadratic_curve_to", "bezier_curve_to", "rect",
	"close_path", "arc", "arc_to", "ellipse", "round_rect",
}

// registerFunctions registers all canvas functions in the Lua environment.
func (e *Engine) registerFunctions() {
	builders := map[string]rt.GoFunctionFunc{
		"move_to":            e.moveTo,
		"line_to":            e.lineTo,
		"quadratic_curve_to": e.quadraticCurveTo,
		"bezier_curve_to":    e.bezierCurveTo,
		"rect":               e.rect,
		"close_path":         e.closePath,
		"arc":                e.arc,
		"arc_to":             e.arcTo,
		"ellipse":            e.ellipse,
		"round_rect":         e.roundRect,
	}
	for name, fn := range builders {
		e.setFunction(name, fn)
	}

	// Path userdata gets the builders as methods, so p:line_to(x, y)
	// passes p as the leading path argument.
	index := rt.NewTable()
	for _, name := range pathMethods {
		f := rt.NewGoFunction(builders[name], name, 0, true)
		rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, f)
		index.Set(rt.StringValue(name), rt.FunctionValue(f))
	}
	e.pathMeta = rt.NewTable()
	e.pathMeta.Set(rt.StringValue("__index"), rt.TableValue(index))
	e.setFunction("new_path", e.newPath)

	// Drawing and clipping
	e.setFunction("begin_path", e.beginPath)
	e.setFunction("fill", e.fill)
	e.setFunction("stroke", e.stroke)
	e.setFunction("clip", e.clip)
	e.setFunction("set_clip", e.setClip)
	e.setFunction("reset_clip", e.resetClip)
	e.setFunction("scroll_path_into_view", e.scrollPathIntoView)
	e.setFunction("is_point_in_path", e.isPointInPath)
	e.setFunction("is_point_in_stroke", e.isPointInStroke)

	// State
	e.setFunction("save", e.save)
	e.setFunction("restore", e.restore)
	e.setFunction("translate", e.translate)
	e.setFunction("scale", e.scale)
	e.setFunction("rotate", e.rotate)
	e.setFunction("reset_transform", e.resetTransform)

	// Style
	e.setFunction("set_fill_style", e.setFillStyle)
	e.setFunction("set_stroke_style", e.setStrokeStyle)
	e.setFunction("set_line_width", e.setLineWidth)
	e.setFunction("set_line_cap", e.setLineCap)
	e.setFunction("set_global_alpha", e.setGlobalAlpha)
	e.setFunction("set_line_dash", e.setLineDash)
	e.setFunction("set_direction", e.setDirection)
	e.setFunction("resolve_direction", e.resolveDirection)
}

// --- Argument helpers ---

// getAllArgs combines Args() and Etc() to get all arguments including varargs
func getAllArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

func getFloatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx)
}

// getFloatArgs reads n consecutive numbers starting at idx.
func getFloatArgs(args []rt.Value, idx, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := getFloatArg(args, idx+i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func getStringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx)
}

// getBoolArg returns the boolean at idx, or false if it is absent.
func getBoolArg(args []rt.Value, idx int) bool {
	if idx >= len(args) {
		return false
	}
	b, _ := args[idx].TryBool()
	return b
}

// pathArg returns the leading Path userdata, if any, and the index of
// the first argument after it.
func pathArg(args []rt.Value) (*canvas.Path, int) {
	if len(args) == 0 {
		return nil, 0
	}
	if ud, ok := args[0].TryUserData(); ok {
		if p, ok := ud.Value().(*canvas.Path); ok {
			return p, 1
		}
	}
	return nil, 0
}

// builderArg resolves the target of a path construction call.
func (e *Engine) builderArg(args []rt.Value) (builder, int) {
	if p, offset := pathArg(args); p != nil {
		return p, offset
	}
	return e.target, 0
}

// fillRuleArg parses an optional fill rule string at idx.
func fillRuleArg(args []rt.Value, idx int) (canvas.FillRule, error) {
	if idx >= len(args) || args[idx].IsNil() {
		return canvas.NonZero, nil
	}
	s, err := getStringArg(args, idx)
	if err != nil {
		return 0, err
	}
	return canvas.ParseFillRule(s)
}

// --- Path construction ---

func (e *Engine) newPath(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	ud := rt.NewUserData(canvas.NewPath(), e.pathMeta)
	return c.PushingNext1(t.Runtime, rt.UserDataValue(ud)), nil
}

func (e *Engine) moveTo(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 2)
	if err != nil {
		return nil, fmt.Errorf("move_to: %w", err)
	}
	b.MoveTo(v[0], v[1])
	return c.Next(), nil
}

func (e *Engine) lineTo(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 2)
	if err != nil {
		return nil, fmt.Errorf("line_to: %w", err)
	}
	b.LineTo(v[0], v[1])
	return c.Next(), nil
}

func (e *Engine) quadraticCurveTo(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 4)
	if err != nil {
		return nil, fmt.Errorf("quadratic_curve_to: %w", err)
	}
	b.QuadraticCurveTo(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (e *Engine) bezierCurveTo(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 6)
	if err != nil {
		return nil, fmt.Errorf("bezier_curve_to: %w", err)
	}
	b.BezierCurveTo(v[0], v[1], v[2], v[3], v[4], v[5])
	return c.Next(), nil
}

func (e *Engine) rect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 4)
	if err != nil {
		return nil, fmt.Errorf("rect: %w", err)
	}
	b.Rect(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (e *Engine) closePath(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	b, _ := e.builderArg(getAllArgs(c))
	b.ClosePath()
	return c.Next(), nil
}

// arc handles arc([path,] x, y, r, start, end [, anticlockwise])
func (e *Engine) arc(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 5)
	if err != nil {
		return nil, fmt.Errorf("arc: %w", err)
	}
	if err := b.Arc(v[0], v[1], v[2], v[3], v[4], getBoolArg(args, offset+5)); err != nil {
		return nil, fmt.Errorf("arc: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) arcTo(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 5)
	if err != nil {
		return nil, fmt.Errorf("arc_to: %w", err)
	}
	if err := b.ArcTo(v[0], v[1], v[2], v[3], v[4]); err != nil {
		return nil, fmt.Errorf("arc_to: %w", err)
	}
	return c.Next(), nil
}

// ellipse handles ellipse([path,] x, y, rx, ry, rotation, start, end [, anticlockwise])
func (e *Engine) ellipse(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 7)
	if err != nil {
		return nil, fmt.Errorf("ellipse: %w", err)
	}
	if err := b.Ellipse(v[0], v[1], v[2], v[3], v[4], v[5], v[6], getBoolArg(args, offset+7)); err != nil {
		return nil, fmt.Errorf("ellipse: %w", err)
	}
	return c.Next(), nil
}

// roundRect handles round_rect([path,] x, y, w, h [, r...]). The radii
// may also be given as one table, and default to square corners.
func (e *Engine) roundRect(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	b, offset := e.builderArg(args)
	v, err := getFloatArgs(args, offset, 4)
	if err != nil {
		return nil, fmt.Errorf("round_rect: %w", err)
	}
	var radii []float64
	if rest := args[offset+4:]; len(rest) == 1 {
		if tbl, ok := rest[0].TryTable(); ok {
			radii = numbers(tbl)
		}
	}
	if radii == nil {
		for i := offset + 4; i < len(args); i++ {
			r, err := getFloatArg(args, i)
			if err != nil {
				return nil, fmt.Errorf("round_rect: %w", err)
			}
			radii = append(radii, r)
		}
	}
	if len(radii) == 0 {
		radii = []float64{0}
	}
	if err := b.RoundRect(v[0], v[1], v[2], v[3], radii...); err != nil {
		return nil, fmt.Errorf("round_rect: %w", err)
	}
	return c.Next(), nil
}

// numbers reads the array part of tbl up to the first non-number.
func numbers(tbl *rt.Table) []float64 {
	out := []float64{}
	for i := int64(1); ; i++ {
		v := tbl.Get(rt.IntValue(i))
		if f, ok := v.TryFloat(); ok {
			out = append(out, f)
		} else if n, ok := v.TryInt(); ok {
			out = append(out, float64(n))
		} else {
			return out
		}
	}
}

// --- Drawing and clipping ---

func (e *Engine) beginPath(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	e.target.BeginPath()
	return c.Next(), nil
}

// fill handles fill([path] [, rule])
func (e *Engine) fill(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	p, offset := pathArg(args)
	rule, err := fillRuleArg(args, offset)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	if err := e.target.Fill(p, rule); err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) stroke(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	p, _ := pathArg(getAllArgs(c))
	if err := e.target.Stroke(p); err != nil {
		return nil, fmt.Errorf("stroke: %w", err)
	}
	return c.Next(), nil
}

// clip handles clip([path] [, rule])
func (e *Engine) clip(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	p, offset := pathArg(args)
	rule, err := fillRuleArg(args, offset)
	if err != nil {
		return nil, fmt.Errorf("clip: %w", err)
	}
	if err := e.target.Clip(p, rule); err != nil {
		return nil, fmt.Errorf("clip: %w", err)
	}
	return c.Next(), nil
}

// setClip handles set_clip([path] [, rule])
func (e *Engine) setClip(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	p, offset := pathArg(args)
	rule, err := fillRuleArg(args, offset)
	if err != nil {
		return nil, fmt.Errorf("set_clip: %w", err)
	}
	if err := e.target.SetClip(p, rule); err != nil {
		return nil, fmt.Errorf("set_clip: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) resetClip(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	if err := e.target.ResetClip(); err != nil {
		return nil, fmt.Errorf("reset_clip: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) scrollPathIntoView(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	p, _ := pathArg(getAllArgs(c))
	if err := e.target.ScrollPathIntoView(p); err != nil {
		return nil, fmt.Errorf("scroll_path_into_view: %w", err)
	}
	return c.Next(), nil
}

// isPointInPath handles is_point_in_path([path,] x, y [, rule])
func (e *Engine) isPointInPath(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	p, offset := pathArg(args)
	v, err := getFloatArgs(args, offset, 2)
	if err != nil {
		return nil, fmt.Errorf("is_point_in_path: %w", err)
	}
	rule, err := fillRuleArg(args, offset+2)
	if err != nil {
		return nil, fmt.Errorf("is_point_in_path: %w", err)
	}
	in := e.target.IsPointInPath(p, v[0], v[1], rule)
	return c.PushingNext1(t.Runtime, rt.BoolValue(in)), nil
}

// isPointInStroke handles is_point_in_stroke([path,] x, y)
func (e *Engine) isPointInStroke(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	p, offset := pathArg(args)
	v, err := getFloatArgs(args, offset, 2)
	if err != nil {
		return nil, fmt.Errorf("is_point_in_stroke: %w", err)
	}
	in := e.target.IsPointInStroke(p, v[0], v[1])
	return c.PushingNext1(t.Runtime, rt.BoolValue(in)), nil
}

// --- State ---

func (e *Engine) save(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	e.target.Save()
	return c.Next(), nil
}

func (e *Engine) restore(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	e.target.Restore()
	if err := e.target.Err(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) translate(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := getFloatArgs(getAllArgs(c), 0, 2)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	e.target.Translate(v[0], v[1])
	return c.Next(), nil
}

func (e *Engine) scale(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := getFloatArgs(getAllArgs(c), 0, 2)
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	e.target.Scale(v[0], v[1])
	return c.Next(), nil
}

func (e *Engine) rotate(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	angle, err := getFloatArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}
	e.target.Rotate(angle)
	return c.Next(), nil
}

func (e *Engine) resetTransform(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	e.target.ResetTransform()
	return c.Next(), nil
}

// --- Style ---

// updateStyle applies f to the current style. If f reports false the
// value is ignored, as a canvas ignores out-of-range assignments.
func (e *Engine) updateStyle(f func(*canvas.Style) bool) error {
	s := e.target.Style()
	if !f(&s) {
		return nil
	}
	return e.target.SetStyle(s)
}

func (e *Engine) setFillStyle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	color, err := getStringArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_fill_style: %w", err)
	}
	if err := e.updateStyle(func(s *canvas.Style) bool { s.FillStyle = color; return true }); err != nil {
		return nil, fmt.Errorf("set_fill_style: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) setStrokeStyle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	color, err := getStringArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_stroke_style: %w", err)
	}
	if err := e.updateStyle(func(s *canvas.Style) bool { s.StrokeStyle = color; return true }); err != nil {
		return nil, fmt.Errorf("set_stroke_style: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) setLineWidth(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	w, err := getFloatArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_line_width: %w", err)
	}
	err = e.updateStyle(func(s *canvas.Style) bool {
		if !(w > 0) || math.IsInf(w, 1) {
			return false
		}
		s.LineWidth = w
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("set_line_width: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) setLineCap(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	name, err := getStringArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_line_cap: %w", err)
	}
	err = e.updateStyle(func(s *canvas.Style) bool {
		lc, err := canvas.ParseLineCap(name)
		if err != nil {
			return false
		}
		s.LineCap = lc
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("set_line_cap: %w", err)
	}
	return c.Next(), nil
}

func (e *Engine) setDirection(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	name, err := getStringArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_direction: %w", err)
	}
	err = e.updateStyle(func(s *canvas.Style) bool {
		d, err := canvas.ParseTextDirection(name)
		if err != nil {
			return false
		}
		s.Direction = d
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("set_direction: %w", err)
	}
	return c.Next(), nil
}

// resolveDirection returns "ltr" or "rtl": the current direction, with
// inherit decided by the optional sample text.
func (e *Engine) resolveDirection(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	var sample string
	if args := getAllArgs(c); len(args) > 0 && !args[0].IsNil() {
		var err error
		if sample, err = getStringArg(args, 0); err != nil {
			return nil, fmt.Errorf("resolve_direction: %w", err)
		}
	}
	d := e.target.Style().Direction.Resolve(sample)
	return c.PushingNext1(t.Runtime, rt.StringValue(d.String())), nil
}

func (e *Engine) setGlobalAlpha(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	a, err := getFloatArg(getAllArgs(c), 0)
	if err != nil {
		return nil, fmt.Errorf("set_global_alpha: %w", err)
	}
	err = e.updateStyle(func(s *canvas.Style) bool {
		if !(a >= 0 && a <= 1) {
			return false
		}
		s.GlobalAlpha = a
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("set_global_alpha: %w", err)
	}
	return c.Next(), nil
}

// setLineDash handles set_line_dash(segments)
func (e *Engine) setLineDash(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	if len(args) == 0 {
		return nil, errors.New("set_line_dash: missing segments table")
	}
	tbl, ok := args[0].TryTable()
	if !ok {
		return nil, errors.New("set_line_dash: argument 0 is not a table")
	}
	if err := e.target.SetLineDash(numbers(tbl)); err != nil {
		return nil, fmt.Errorf("set_line_dash: %w", err)
	}
	return c.Next(), nil
}
