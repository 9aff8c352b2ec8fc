// Package image loads a flat raw binary image from disk for the driver to
// place into memory before running the core: a whole-file read into a
// []byte, with no cartridge header or mapper to parse, since this core has
// no device memory map of its own.
package image

import (
	"fmt"
	"os"
)

// Image is a raw byte image read from disk, paired with the address it
// should be placed at.
type Image struct {
	Data   []byte
	LoadAt uint32
}

// Load reads path in full and returns an Image to be placed at loadAt.
func Load(path string, loadAt uint32) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("image: unable to read %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image: %q is empty", path)
	}
	return &Image{Data: data, LoadAt: loadAt}, nil
}

// PlaceInto copies the image's bytes into mem starting at LoadAt, using the
// interfaces.Memory.WriteU8 contract one byte at a time so any backing
// implementation works without a bulk-copy escape hatch.
func (img *Image) PlaceInto(mem interface {
	WriteU8(addr uint32, v uint8) error
}) error {
	for i, b := range img.Data {
		if err := mem.WriteU8(img.LoadAt+uint32(i), b); err != nil {
			return fmt.Errorf("image: placing byte %d: %w", i, err)
		}
	}
	return nil
}
