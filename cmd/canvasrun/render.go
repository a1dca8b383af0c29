package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/recording"
	"github.com/gogpu/canvas/script"
	"github.com/gogpu/canvas/software"
)

// renderer draws a script onto a surface that lives across renders.
type renderer struct {
	conf    config
	surface *canvas.Surface
	stdout  io.Writer
	log     *slog.Logger
}

func newRenderer(conf config, stdout io.Writer, log *slog.Logger) *renderer {
	return &renderer{
		conf:    conf,
		surface: canvas.NewSurface(conf.Width, conf.Height, canvas.WithBackend(conf.Backend)),
		stdout:  stdout,
		log:     log,
	}
}

// render runs the script at path from a clean state and writes the result.
func (r *renderer) render(path string) error {
	// Reassigning the size drops whatever the previous run left behind.
	if err := r.surface.Resize(r.conf.Width, r.conf.Height); err != nil {
		return err
	}
	ctx, err := r.surface.Context()
	if err != nil {
		return err
	}
	if err := r.paintBackground(ctx); err != nil {
		return err
	}

	engine, err := script.New(ctx, r.surface.Width(), r.surface.Height(), script.Config{
		CPULimit:    r.conf.CPULimit,
		MemoryLimit: r.conf.MemoryLimit,
		Stdout:      r.stdout,
	})
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.RunFile(path); err != nil {
		return err
	}
	return r.write(ctx.Native())
}

func (r *renderer) paintBackground(ctx *canvas.Context) error {
	if r.conf.Background == "" || r.conf.Background == "transparent" {
		return nil
	}
	prev := ctx.Style()
	if err := ctx.SetFillStyle(r.conf.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	bg := canvas.NewPath()
	bg.Rect(0, 0, float64(r.surface.Width()), float64(r.surface.Height()))
	if err := ctx.Fill(bg, canvas.NonZero); err != nil {
		return err
	}
	return ctx.SetStyle(prev)
}

func (r *renderer) write(n canvas.Native) error {
	switch host := n.(type) {
	case *software.Backend:
		if err := host.SavePNG(r.conf.Output); err != nil {
			return err
		}
		r.log.Info("wrote image", "path", r.conf.Output, "width", host.Width(), "height", host.Height())
		return nil
	case *recording.Recorder:
		for i, c := range host.Commands() {
			fmt.Fprintf(r.stdout, "%4d %s\n", i, c.Type())
		}
		r.log.Info("recorded commands", "count", len(host.Commands()))
		return nil
	default:
		return errors.New("backend has no output")
	}
}
