// Package script runs Lua drawing scripts against a canvas.Canvas.
//
// Scripts see the canvas API as global functions with snake_case names
// (move_to, fill, set_clip, ...) and a "canvas" table holding the
// surface size. Functions that take a path accept an optional Path
// userdata, created by new_path, as their first argument; without one
// they use the implicit path. Execution is bounded by CPU and memory
// limits.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/gogpu/canvas"
)

// ErrClosed is returned when running a script on a closed Engine.
var ErrClosed = errors.New("script: engine closed")

// Config contains configuration options for the Lua runtime.
type Config struct {
	// CPULimit is the CPU instruction limit for one script run.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes a script run may
	// allocate. 0 means unlimited.
	MemoryLimit uint64
	// Stdout receives the output of Lua print. If nil, output is only
	// captured (see Engine.Output).
	Stdout io.Writer
}

// DefaultConfig returns a Config with a 10,000,000 instruction CPU limit
// and a 50 MB memory limit.
func DefaultConfig() Config {
	return Config{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024,
		Stdout:      os.Stdout,
	}
}

// Engine is a Lua runtime bound to one canvas. It is safe for concurrent
// use, but scripts run one at a time.
type Engine struct {
	config   Config
	runtime  *rt.Runtime
	output   *bytes.Buffer
	cleanup  func()
	target   canvas.Canvas
	pathMeta *rt.Table
	mu       sync.Mutex
}

// New creates an Engine drawing on target, which is reported to scripts
// as width x height.
func New(target canvas.Canvas, width, height int, config Config) (*Engine, error) {
	if target == nil {
		return nil, errors.New("script: nil canvas")
	}
	output := &bytes.Buffer{}
	var stdout io.Writer = output
	if config.Stdout != nil {
		stdout = io.MultiWriter(config.Stdout, output)
	}

	runtime := rt.New(stdout)
	e := &Engine{
		config:  config,
		runtime: runtime,
		output:  output,
		cleanup: lib.LoadAll(runtime),
		target:  target,
	}
	e.registerFunctions()
	e.SetSize(width, height)
	return e, nil
}

// SetSize updates the size reported in the canvas table.
func (e *Engine) SetSize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tbl := rt.NewTable()
	tbl.Set(rt.StringValue("width"), rt.IntValue(int64(width)))
	tbl.Set(rt.StringValue("height"), rt.IntValue(int64(height)))
	e.runtime.GlobalEnv().Set(rt.StringValue("canvas"), rt.TableValue(tbl))
}

// RunString compiles and runs a Lua chunk.
func (e *Engine) RunString(name, code string) error {
	return e.run(name, []byte(code))
}

// RunFile reads and runs a Lua file.
func (e *Engine) RunFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: read %s: %w", path, err)
	}
	return e.run(path, content)
}

func (e *Engine) run(name string, code []byte) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cleanup == nil {
		return ErrClosed
	}

	closure, err := e.runtime.CompileAndLoadLuaChunk(name, code, rt.TableValue(e.runtime.GlobalEnv()))
	if err != nil {
		return fmt.Errorf("script: load %s: %w", name, err)
	}

	e.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    e.config.CPULimit,
			Memory: e.config.MemoryLimit,
		},
	})
	defer e.runtime.PopContext()

	// Exceeding a hard limit may unwind as a panic.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script: %s aborted: %v", name, r)
		}
	}()

	if _, err := rt.Call1(e.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return fmt.Errorf("script: run %s: %w", name, err)
	}
	return nil
}

// Output returns everything scripts have printed so far.
func (e *Engine) Output() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.output.String()
}

// Close releases the runtime. Further runs return ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	return nil
}

// setFunction registers fn as a global. Every binding takes its
// arguments as varargs so optional leading paths can be detected.
func (e *Engine) setFunction(name string, fn rt.GoFunctionFunc) {
	f := rt.NewGoFunction(fn, name, 0, true)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, f)
	e.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(f))
}
