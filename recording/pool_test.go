package recording

import (
	"testing"

	"github.com/gogpu/canvas"
)

func TestResourcePool_AddPathClones(t *testing.T) {
	pool := NewResourcePool()
	p := canvas.NewPath()
	p.Rect(0, 0, 10, 10)

	ref := pool.AddPath(p)
	p.LineTo(50, 50)

	got := pool.GetPath(ref)
	if got == p {
		t.Fatal("pool stored the caller's path")
	}
	if n := len(got.Elements()); n != 6 {
		t.Errorf("stored path has %d elements, want 6", n)
	}
}

func TestResourcePool_Refs(t *testing.T) {
	pool := NewResourcePool()
	a := pool.AddPath(canvas.NewPath())
	b := pool.AddPath(nil)
	if a != 0 || b != 1 {
		t.Errorf("refs = %d, %d, want 0, 1", a, b)
	}
	if pool.PathCount() != 2 {
		t.Errorf("PathCount() = %d, want 2", pool.PathCount())
	}
	if pool.GetPath(b) != nil {
		t.Error("nil path came back non-nil")
	}
	if pool.GetPath(7) != nil || pool.GetPath(PathRef(InvalidRef)) != nil {
		t.Error("out-of-range ref returned a path")
	}

	pool.Clear()
	if pool.PathCount() != 0 {
		t.Errorf("PathCount() after Clear = %d, want 0", pool.PathCount())
	}
}
