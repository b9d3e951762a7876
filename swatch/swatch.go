/*
Package swatch renders palettes as rows of solid square blocks, one block per
palette entry.
*/
package swatch

import (
	"fmt"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/codec"
	"github.com/bodgit/chrgfx/gfxdef"
)

// DefaultSize is the side length in pixels of each swatch
const DefaultSize = 32

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("swatch: size %d: %w", size, gfxdef.ErrInvalidOperation)
	}
	return nil
}

// Render decodes the palette at the start of data and returns an indexed
// image with one size by size block per entry, left to right. Each block
// is filled with its entry index and the decoded palette is attached.
func Render(pd *gfxdef.PalDef, cd gfxdef.ColDef, data []byte, size int) (*basic.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	p, err := codec.DecodePalette(pd, cd, data)
	if err != nil {
		return nil, err
	}

	m := basic.NewImage(pd.Length()*size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, basic.Pixel(x/size))
		}
	}
	m.Palette = p

	return m, nil
}

// RenderFull decodes every palette within the first totalSize bytes of data
// and stacks their swatch rows vertically in a direct color image
func RenderFull(pd *gfxdef.PalDef, cd gfxdef.ColDef, data []byte, totalSize, size int) (*basic.RGBImage, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if pd == nil {
		return nil, fmt.Errorf("swatch: missing palette descriptor: %w", gfxdef.ErrInvalidOperation)
	}
	if totalSize < 0 {
		return nil, fmt.Errorf("swatch: total size %d: %w", totalSize, gfxdef.ErrInvalidOperation)
	}
	if totalSize > len(data) {
		return nil, fmt.Errorf("swatch: %d bytes, need %d: %w", len(data), totalSize, gfxdef.ErrDataUnderrun)
	}
	data = data[:totalSize]

	lines := codec.SubpaletteCount(pd, len(data))
	if lines == 0 {
		return nil, fmt.Errorf("swatch: paldef %q: %d bytes holds no palette: %w", pd.ID(), len(data), gfxdef.ErrDataUnderrun)
	}

	m := basic.NewRGBImage(pd.Length()*size, lines*size)
	for line := 0; line < lines; line++ {
		sub, err := codec.Subpalette(pd, data, line)
		if err != nil {
			return nil, err
		}
		p, err := codec.DecodePalette(pd, cd, sub)
		if err != nil {
			return nil, err
		}
		for y := line * size; y < (line+1)*size; y++ {
			for x := 0; x < m.Width; x++ {
				m.Set(x, y, p[x/size])
			}
		}
	}

	return m, nil
}
