package display

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// File keeps the latest frame in a PNG file. Writes are atomic and happen
// at most once per Every.
type File struct {
	Path  string
	Every time.Duration

	last time.Time
}

func (f *File) Show(img image.Image) error {
	now := time.Now()
	if !f.last.IsZero() && now.Sub(f.last) < f.Every {
		return nil
	}
	f.last = now

	data, err := encodePNG(img)
	if err != nil {
		return errors.Wrap(err, "Can not encode frame")
	}
	return WriteFileAtomic(f.Path, data)
}

// WriteFileAtomic writes data next to path and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "Can not create temp file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "Can not chmod temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "Can not write frame")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "Can not write frame")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "Can not replace frame")
}
