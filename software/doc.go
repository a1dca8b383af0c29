// Package software provides a pure Go canvas host that renders into an
// in-memory RGBA image.
//
// The backend offers exactly what a browser canvas offers a script: one
// cumulative clip, one save/restore stack and a transform applied to
// every path it is given. Wrapping it in a canvas.Context adds
// replaceable clips and transform-independent implicit paths on top.
//
// # Supported Features
//
//   - Solid colour fills and strokes with CSS colour strings
//   - Non-zero and even-odd fill rules
//   - Butt, round and square caps; joins are drawn round
//   - Dash patterns with an offset
//   - Anti-aliased clip masks
//   - Global alpha with source-over and copy compositing
//   - PNG output
//
// Shadows and text are validated but not drawn. Composite operations
// other than source-over and copy are drawn as source-over.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/canvas/software"
//
//	s := canvas.NewSurface(200, 100, canvas.WithBackend("software"))
//	dc, _ := s.Context()
//	dc.Rect(10, 10, 80, 40)
//	dc.Fill(nil, canvas.NonZero)
//
//	b := dc.Native().(*software.Backend)
//	b.SavePNG("out.png")
package software
