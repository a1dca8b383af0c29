// Package canvas adds restorable clipping and transform-aware implicit
// paths to 2D drawing hosts whose own clip can only shrink.
//
// # Overview
//
// A host ([Native]) exposes the usual canvas primitives: fill, stroke,
// hit testing, a cumulative clip and a single save/restore stack. A
// [Context] wraps a host and adds:
//
//   - an implicit current path kept in surface space, so segments added
//     under one transform stay put when the transform changes;
//   - clip regions that belong to the saved state, so Restore brings back
//     exactly the clip that was active at the matching Save;
//   - SetClip and ResetClip, which hosts cannot express on their own;
//   - optional path arguments: every path-consuming method takes a *Path
//     and treats nil as the implicit path.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/canvas"
//	    _ "github.com/gogpu/canvas/software"
//	)
//
//	s := canvas.NewSurface(256, 256)
//	c, err := s.Context()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c.Save()
//	c.Rect(0, 0, 128, 128)
//	c.Clip(nil, canvas.NonZero)
//	c.SetFillStyle("crimson")
//	c.BeginPath()
//	c.Arc(128, 128, 100, 0, 2*math.Pi, false)
//	c.Fill(nil, canvas.NonZero)
//	c.Restore() // clip gone, fill style back to black
//
// # How clipping is restored
//
// The context takes one level of the host's save stack as an unclipped
// baseline. Whenever the clip must grow (Restore, SetClip, ResetClip) or
// change (Clip), the host is restored to that baseline, saved again, and
// the style, every active clip region in order, the transform and the
// dash pattern are reapplied. Each mutation costs one host clip call per
// active region.
//
// # Backends
//
// Hosts register themselves by name, following the database/sql driver
// pattern. The software package provides a CPU rasterizer and the
// recording package a host that records primitive calls for inspection
// and playback.
//
// # Logging
//
// canvas produces no log output by default. See [SetLogger].
package canvas
