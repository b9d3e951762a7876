/*
Package tileset arranges a stream of decoded tiles into a single bitmap and
splits a bitmap back into a stream of tiles.

A pixel stream is the concatenation of whole tiles, each Width*Height pixels
in row-major order. Tiles are laid out left to right, rowSize tiles per row,
top to bottom.
*/
package tileset

import (
	"fmt"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
)

func checkGeometry(d *gfxdef.ChrDef) error {
	if d == nil || d.Width() == 0 || d.Height() == 0 {
		return fmt.Errorf("tileset: no usable tile geometry: %w", gfxdef.ErrInvalidOperation)
	}
	return nil
}

// Render assembles tileCount tiles from pix into an image rowSize tiles
// wide. Any slots left over in the final row are filled with pixel 0.
func Render(d *gfxdef.ChrDef, pix []basic.Pixel, tileCount, rowSize int) (*basic.Image, error) {
	if err := checkGeometry(d); err != nil {
		return nil, err
	}
	if tileCount <= 0 || rowSize <= 0 {
		return nil, fmt.Errorf("tileset: %d tiles with %d per row: %w", tileCount, rowSize, gfxdef.ErrInvalidOperation)
	}
	tilePixels := d.Pixels()
	if need := tileCount * tilePixels; len(pix) < need {
		return nil, fmt.Errorf("tileset: %d pixels for %d tiles, need %d: %w", len(pix), tileCount, need, gfxdef.ErrDataUnderrun)
	}

	tileWidth, tileHeight := d.Width(), d.Height()
	tileY := (tileCount + rowSize - 1) / rowSize
	m := basic.NewImage(rowSize*tileWidth, tileY*tileHeight)

	for ty := 0; ty < tileY; ty++ {
		tileX := rowSize
		if ty == tileY-1 && tileCount%rowSize != 0 {
			tileX = tileCount % rowSize
		}
		for y := 0; y < tileHeight; y++ {
			for tx := 0; tx < tileX; tx++ {
				tile := ty*rowSize + tx
				src := tile*tilePixels + y*tileWidth
				dst := m.PixOffset(tx*tileWidth, ty*tileHeight+y)
				copy(m.Pix[dst:dst+tileWidth], pix[src:src+tileWidth])
			}
		}
	}

	return m, nil
}

// TileCount returns how many whole tiles fit in a w by h image
func TileCount(d *gfxdef.ChrDef, w, h int) int {
	if checkGeometry(d) != nil {
		return 0
	}
	return (w / d.Width()) * (h / d.Height())
}

// Make splits m into tiles, scanning in the same order Render lays them
// out, and returns the concatenated pixel stream. Partial tiles along the
// right and bottom edges are ignored.
func Make(d *gfxdef.ChrDef, m *basic.Image) ([]basic.Pixel, error) {
	if err := checkGeometry(d); err != nil {
		return nil, err
	}
	if m == nil || m.Width < d.Width() || m.Height < d.Height() {
		return nil, fmt.Errorf("tileset: image smaller than one %dx%d tile: %w", d.Width(), d.Height(), gfxdef.ErrInvalidOperation)
	}

	tileWidth, tileHeight := d.Width(), d.Height()
	tileX, tileY := m.Width/tileWidth, m.Height/tileHeight
	tilePixels := d.Pixels()
	out := make([]basic.Pixel, tileX*tileY*tilePixels)

	for ty := 0; ty < tileY; ty++ {
		for y := 0; y < tileHeight; y++ {
			for tx := 0; tx < tileX; tx++ {
				tile := ty*tileX + tx
				dst := tile*tilePixels + y*tileWidth
				src := m.PixOffset(tx*tileWidth, ty*tileHeight+y)
				copy(out[dst:dst+tileWidth], m.Pix[src:src+tileWidth])
			}
		}
	}

	return out, nil
}
