package canvas

// DefaultBackend is the backend a Surface uses when none is configured.
const DefaultBackend = "software"

// SurfaceOption configures a Surface during creation.
//
// Example:
//
//	import _ "github.com/gogpu/canvas/software"
//
//	s := canvas.NewSurface(800, 600, canvas.WithBackend("software"))
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	backend string
	factory NativeFactory
}

func defaultSurfaceOptions() surfaceOptions {
	return surfaceOptions{backend: DefaultBackend}
}

// WithBackend selects a registered backend by name.
func WithBackend(name string) SurfaceOption {
	return func(o *surfaceOptions) {
		o.backend = name
		o.factory = nil
	}
}

// WithNativeFactory creates hosts with f instead of the registry. Use it
// to inject a host that is not registered, such as a test double.
func WithNativeFactory(f NativeFactory) SurfaceOption {
	return func(o *surfaceOptions) {
		o.factory = f
	}
}
