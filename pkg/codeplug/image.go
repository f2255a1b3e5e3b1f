package codeplug

import (
	"fmt"
	"os"
)

// Image is a codeplug file loaded into memory. Data is the codeplug window
// inside Raw.
type Image struct {
	Path   string
	Format ImageSpec
	Raw    []byte
	Data   []byte
}

// NewImage wraps raw file content, picking the image format by size.
func (l *Layout) NewImage(path string, raw []byte) (*Image, error) {
	for _, spec := range l.Images {
		if spec.Size == len(raw) {
			return &Image{
				Path:   path,
				Format: spec,
				Raw:    raw,
				Data:   raw[spec.Offset : spec.Offset+l.Size],
			}, nil
		}
	}
	return nil, fmt.Errorf("%s: %d bytes: %w", path, len(raw), ErrImageSize)
}

// BlankImage returns an image of the given format with every byte set to
// 0xFF, as an erased flash reads.
func (l *Layout) BlankImage(path, format string) (*Image, error) {
	for _, spec := range l.Images {
		if spec.Name == format {
			raw := make([]byte, spec.Size)
			for i := range raw {
				raw[i] = 0xFF
			}
			return l.NewImage(path, raw)
		}
	}
	return nil, fmt.Errorf("unknown image format %q", format)
}

// LoadImage reads the image at path.
func (l *Layout) LoadImage(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return l.NewImage(path, raw)
}

// Save writes the whole file back to its path.
func (img *Image) Save() error {
	info, err := os.Stat(img.Path)
	mode := os.FileMode(0644)
	if err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(img.Path, img.Raw, mode); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
