package canvas

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]NativeFactory)
)

// RegisterBackend makes a host available by name. It is meant to be
// called from the init function of the package providing the host:
//
//	func init() {
//	    canvas.RegisterBackend("software", func(w, h int) (canvas.Native, error) {
//	        return New(w, h), nil
//	    })
//	}
//
// RegisterBackend panics if factory is nil or name is already taken.
func RegisterBackend(name string, factory NativeFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("canvas: RegisterBackend factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("canvas: RegisterBackend called twice for " + name)
	}
	backends[name] = factory
}

// unregisterBackend removes name. Tests use it to clean up.
func unregisterBackend(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewNative creates a host of the named backend.
func NewNative(name string, width, height int) (Native, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("canvas: unknown backend %q (forgotten import?)", name)
	}
	n, err := factory(width, height)
	if err != nil {
		return nil, fmt.Errorf("canvas: backend %q: %w", name, err)
	}
	return n, nil
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend called name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}
