package recording

import "github.com/gogpu/canvas"

// ResourcePool stores the paths referenced by recorded commands.
// Each AddPath clones its argument, so callers may keep mutating their
// paths after handing them to the recorder.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	paths []*canvas.Path
}

// NewResourcePool creates an empty resource pool with pre-allocated capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths: make([]*canvas.Path, 0, 64),
	}
}

// AddPath adds a copy of path to the pool and returns its reference.
// A nil path is stored as nil.
func (p *ResourcePool) AddPath(path *canvas.Path) PathRef {
	if path != nil {
		path = path.Clone()
	}
	p.paths = append(p.paths, path)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// GetPath returns the path for the given reference, or nil if the
// reference is out of range.
func (p *ResourcePool) GetPath(ref PathRef) *canvas.Path {
	if !ref.IsValid() || int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// PathCount returns the number of paths in the pool.
func (p *ResourcePool) PathCount() int {
	return len(p.paths)
}

// Clear removes all resources from the pool.
// This does not release the underlying memory; use NewResourcePool for that.
func (p *ResourcePool) Clear() {
	p.paths = p.paths[:0]
}
