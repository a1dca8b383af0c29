package software

import (
	"fmt"
	"image/png"
	"io"
	"os"
)

// EncodePNG writes the current image to w as PNG.
func (b *Backend) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.img)
}

// WriteTo writes the current image to w as PNG.
// It implements io.WriterTo.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SavePNG writes the current image to the named file as PNG.
func (b *Backend) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("software: create %s: %w", path, err)
	}
	if err := b.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("software: encode %s: %w", path, err)
	}
	return f.Close()
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
