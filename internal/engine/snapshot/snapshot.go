// Package snapshot writes rendered frames to PNG files.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Writer names and saves snapshots under a directory.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewWriter returns a Writer. An empty dir writes to the working directory.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next snapshot would be written to.
func (w *Writer) Filename() string {
	name := fmt.Sprintf("%s_%s.png", w.prefix, w.now().Format("2006-01-02_15-04-05.000"))
	if w.dir != "" {
		name = filepath.Join(w.dir, name)
	}
	return name
}

// Save encodes img as PNG and returns the written path.
func (w *Writer) Save(img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.Filename()
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	return filename, nil
}
