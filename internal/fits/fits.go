// Package fits adapts astrogo/fitsio to the frame layer's image contract.
package fits

import (
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"github.com/sourceplane/framerun/internal/frames"
)

// ImageList is an in-memory FITS file: an ordered list of HDUs. It
// implements frames.Image.
type ImageList struct {
	hdus []fitsio.HDU
}

// NewImageList wraps hdus into an image list.
func NewImageList(hdus ...fitsio.HDU) *ImageList {
	return &ImageList{hdus: hdus}
}

// Open reads the FITS file at path into memory.
func Open(path string) (*ImageList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FITS file %s: %w", path, err)
	}
	defer f.Close()

	ff, err := fitsio.Open(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FITS file %s: %w", path, err)
	}
	defer ff.Close()

	return &ImageList{hdus: ff.HDUs()}, nil
}

// Len returns the number of HDUs in the list.
func (l *ImageList) Len() int {
	return len(l.hdus)
}

// HDU returns the i-th HDU.
func (l *ImageList) HDU(i int) fitsio.HDU {
	return l.hdus[i]
}

// WriteFile persists the list as a FITS file at path.
func (l *ImageList) WriteFile(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create FITS file %s: %w", path, err)
	}
	defer w.Close()

	ff, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("failed to start FITS file %s: %w", path, err)
	}
	for _, hdu := range l.hdus {
		if err := ff.Write(hdu); err != nil {
			ff.Close()
			return fmt.Errorf("failed to write HDU to %s: %w", path, err)
		}
	}
	if err := ff.Close(); err != nil {
		return fmt.Errorf("failed to finalize FITS file %s: %w", path, err)
	}
	return nil
}

// Codec opens product files as image lists. It implements frames.Codec.
type Codec struct{}

// OpenImage reads the FITS file at path.
func (Codec) OpenImage(path string) (frames.Image, error) {
	return Open(path)
}
