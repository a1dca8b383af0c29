// Package recording provides a canvas host that records the calls it
// receives instead of drawing them.
//
// Every canvas.Native call that changes host state becomes a typed
// Command: Save, Restore, SetTransform, SetStyle, SetLineDash, Clip,
// BeginPath, Fill, Stroke, ScrollIntoView and Resize. Paths are cloned
// into a ResourcePool and referenced by PathRef, so a recording is not
// affected by later changes to the caller's paths.
//
// # Inspecting a Context
//
// Wrapping a Recorder in a canvas.Context shows exactly which host calls
// the context makes, for example the restore/save/clip sequence that
// re-establishes a clip after SetClip:
//
//	rec, _ := recording.NewRecorder(100, 100)
//	dc := canvas.NewContext(rec)
//	rec.Reset()
//
//	dc.Rect(0, 0, 50, 50)
//	dc.SetClip(nil, canvas.NonZero)
//	fmt.Println(rec.Types())
//	// [Restore Save SetStyle SetTransform Clip SetTransform SetLineDash]
//
// # Playback
//
// A recording can be replayed onto any other host:
//
//	import _ "github.com/gogpu/canvas/software"
//
//	dst, _ := canvas.NewNative("software", rec.Width(), rec.Height())
//	if err := rec.Playback(dst); err != nil {
//	    log.Fatal(err)
//	}
//
// Tee records while forwarding to a live host, which then answers
// queries and reports errors.
//
// # Backend Registration
//
// Importing the package registers the "recording" backend:
//
//	import _ "github.com/gogpu/canvas/recording"
//
//	s := canvas.NewSurface(100, 100, canvas.WithBackend("recording"))
package recording
