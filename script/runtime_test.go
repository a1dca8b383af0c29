package script

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	rt "github.com/arnodel/golua/runtime"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/software"
)

func newTestEngine(t *testing.T, w, h int) (*Engine, *canvas.Context, *software.Backend) {
	t.Helper()
	b, err := software.NewBackend(w, h)
	if err != nil {
		t.Fatal(err)
	}
	dc := canvas.NewContext(b)
	e, err := New(dc, w, h, Config{CPULimit: 1_000_000, MemoryLimit: 10 * 1024 * 1024})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e, dc, b
}

func run(t *testing.T, e *Engine, code string) {
	t.Helper()
	if err := e.RunString("test", code); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func global(e *Engine, name string) rt.Value {
	return e.runtime.GlobalEnv().Get(rt.StringValue(name))
}

func TestNewRejectsNilCanvas(t *testing.T) {
	if _, err := New(nil, 1, 1, DefaultConfig()); err == nil {
		t.Error("New(nil) succeeded")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.CPULimit != 10_000_000 {
		t.Errorf("CPULimit = %d, want 10000000", config.CPULimit)
	}
	if config.MemoryLimit != 50*1024*1024 {
		t.Errorf("MemoryLimit = %d, want %d", config.MemoryLimit, 50*1024*1024)
	}
}

func TestCanvasTable(t *testing.T) {
	e, _, _ := newTestEngine(t, 20, 30)
	run(t, e, `w, h = canvas.width, canvas.height`)
	if w, ok := global(e, "w").TryInt(); !ok || w != 20 {
		t.Errorf("canvas.width = %v, want 20", global(e, "w"))
	}
	if h, ok := global(e, "h").TryInt(); !ok || h != 30 {
		t.Errorf("canvas.height = %v, want 30", global(e, "h"))
	}

	e.SetSize(5, 6)
	run(t, e, `w = canvas.width`)
	if w, _ := global(e, "w").TryInt(); w != 5 {
		t.Errorf("canvas.width after SetSize = %d, want 5", w)
	}
}

func TestFillImplicitPath(t *testing.T) {
	e, _, b := newTestEngine(t, 20, 20)
	run(t, e, `
		set_fill_style("red")
		rect(0, 0, 10, 10)
		fill()
	`)
	if c := b.Image().RGBAAt(5, 5); c.R != 255 || c.A != 255 {
		t.Errorf("pixel = %v, want red", c)
	}
	if a := b.Image().RGBAAt(15, 15).A; a != 0 {
		t.Errorf("outside alpha = %d, want 0", a)
	}
}

func TestPathUserdata(t *testing.T) {
	e, dc, b := newTestEngine(t, 20, 20)
	run(t, e, `
		local p = new_path()
		p:rect(10, 10, 5, 5)
		p:move_to(0, 0)
		fill(p, "evenodd")
		inside = is_point_in_path(p, 12, 12)
		outside = is_point_in_path(p, 2, 2, "nonzero")
	`)
	if !dc.CurrentPath().IsEmpty() {
		t.Error("path methods touched the implicit path")
	}
	if a := b.Image().RGBAAt(12, 12).A; a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
	if in, ok := global(e, "inside").TryBool(); !ok || !in {
		t.Errorf("inside = %v, want true", global(e, "inside"))
	}
	if out, ok := global(e, "outside").TryBool(); !ok || out {
		t.Errorf("outside = %v, want false", global(e, "outside"))
	}
}

func TestClipFunctions(t *testing.T) {
	e, dc, b := newTestEngine(t, 20, 20)
	run(t, e, `
		rect(0, 0, 10, 20)
		clip()
		local right = new_path()
		right:rect(10, 0, 10, 20)
		set_clip(right)
		begin_path()
		rect(0, 0, 20, 20)
		fill()
	`)
	if b.Image().RGBAAt(5, 5).A != 0 || b.Image().RGBAAt(15, 5).A != 255 {
		t.Error("set_clip did not replace the first clip")
	}
	if n := len(dc.ClipRegions()); n != 1 {
		t.Errorf("clip regions = %d, want 1", n)
	}

	run(t, e, `reset_clip()`)
	if n := len(dc.ClipRegions()); n != 0 {
		t.Errorf("clip regions after reset_clip = %d, want 0", n)
	}
}

func TestSaveRestoreAndTransform(t *testing.T) {
	e, dc, _ := newTestEngine(t, 20, 20)
	run(t, e, `
		save()
		translate(5, 5)
		scale(2, 2)
		rotate(0.5)
		rect(0, 0, 1, 1)
		clip()
		restore()
	`)
	if !dc.GetTransform().IsIdentity() {
		t.Errorf("transform = %v after restore, want identity", dc.GetTransform())
	}
	if dc.SaveDepth() != 0 || len(dc.ClipRegions()) != 0 {
		t.Error("restore did not drop the saved clip")
	}

	run(t, e, `translate(3, 4) reset_transform()`)
	if !dc.GetTransform().IsIdentity() {
		t.Error("reset_transform left a transform")
	}
}

func TestStyleFunctions(t *testing.T) {
	e, dc, _ := newTestEngine(t, 4, 4)
	run(t, e, `
		set_stroke_style("#00ff00")
		set_line_width(3)
		set_line_width(-1)
		set_line_cap("round")
		set_line_cap("bogus")
		set_global_alpha(0.25)
		set_global_alpha(7)
		set_line_dash({4, 2})
	`)
	s := dc.Style()
	if s.StrokeStyle != "#00ff00" || s.LineWidth != 3 || s.LineCap != canvas.LineCapRound || s.GlobalAlpha != 0.25 {
		t.Errorf("style = %+v", s)
	}
	if got := dc.LineDash(); !slices.Equal(got, []float64{4, 2}) {
		t.Errorf("LineDash = %v, want [4 2]", got)
	}
}

func TestDirectionFunctions(t *testing.T) {
	e, dc, _ := newTestEngine(t, 4, 4)
	run(t, e, `
		default = resolve_direction()
		hebrew = resolve_direction("שלום")
		set_direction("ltr")
		forced = resolve_direction("שלום")
		set_direction("sideways")
	`)
	for name, want := range map[string]string{"default": "ltr", "hebrew": "rtl", "forced": "ltr"} {
		if got, _ := global(e, name).TryString(); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if got := dc.Style().Direction; got != canvas.DirectionLTR {
		t.Errorf("Direction = %v, want ltr", got)
	}
}

func TestStrokeQueries(t *testing.T) {
	e, _, _ := newTestEngine(t, 20, 20)
	run(t, e, `
		set_line_width(4)
		move_to(2, 10)
		line_to(18, 10)
		on = is_point_in_stroke(10, 11)
		off = is_point_in_stroke(10, 15)
		stroke()
	`)
	if on, _ := global(e, "on").TryBool(); !on {
		t.Error("is_point_in_stroke(10, 11) = false")
	}
	if off, _ := global(e, "off").TryBool(); off {
		t.Error("is_point_in_stroke(10, 15) = true")
	}
}

func TestCurvesAndArcs(t *testing.T) {
	e, dc, _ := newTestEngine(t, 40, 40)
	run(t, e, `
		move_to(0, 0)
		quadratic_curve_to(5, 5, 10, 0)
		bezier_curve_to(12, 2, 14, 2, 16, 0)
		arc_to(20, 0, 20, 5, 2)
		arc(30, 30, 5, 0, math.pi, true)
		ellipse(20, 20, 4, 2, 0, 0, math.pi * 2)
		round_rect(1, 1, 10, 10, {2, 3})
		round_rect(1, 1, 10, 10)
		close_path()
	`)
	if dc.CurrentPath().IsEmpty() {
		t.Error("implicit path is empty")
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name, code string
	}{
		{"negative radius", `arc(0, 0, -1, 0, 1)`},
		{"bad fill rule", `fill("sideways")`},
		{"bad number", `move_to("a", 1)`},
		{"missing argument", `line_to(1)`},
		{"bad colour", `set_fill_style("not a colour")`},
		{"dash not table", `set_line_dash(3)`},
		{"syntax", `move_to(`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t, 4, 4)
			if err := e.RunString("bad", tt.code); err == nil {
				t.Errorf("RunString(%q) succeeded", tt.code)
			}
		})
	}
}

func TestOutputCaptured(t *testing.T) {
	e, _, _ := newTestEngine(t, 4, 4)
	run(t, e, `print("hello from lua")`)
	if !strings.Contains(e.Output(), "hello from lua") {
		t.Errorf("Output() = %q", e.Output())
	}
}

func TestRunFile(t *testing.T) {
	e, _, b := newTestEngine(t, 10, 10)
	path := filepath.Join(t.TempDir(), "draw.lua")
	if err := os.WriteFile(path, []byte(`rect(0, 0, 10, 10) fill()`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := e.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if b.Image().RGBAAt(5, 5).A != 255 {
		t.Error("file script did not draw")
	}
	if err := e.RunFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("RunFile(missing) succeeded")
	}
}

func TestClosedEngine(t *testing.T) {
	e, _, _ := newTestEngine(t, 4, 4)
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.RunString("x", `rect(0, 0, 1, 1)`); !errors.Is(err, ErrClosed) {
		t.Errorf("RunString after Close = %v, want ErrClosed", err)
	}
}
