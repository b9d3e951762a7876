package codec

import (
	"fmt"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
)

// EncodeTile packs the first Pixels() pixels of pix into a new buffer of
// DatasizeBytes bytes. Pixel values are truncated to the tile bitdepth.
func EncodeTile(d *gfxdef.ChrDef, pix []basic.Pixel) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("codec: missing tile descriptor: %w", gfxdef.ErrInvalidOperation)
	}
	if len(pix) < d.Pixels() {
		return nil, fmt.Errorf("codec: chrdef %q: %d pixels, need %d: %w", d.ID(), len(pix), d.Pixels(), gfxdef.ErrDataUnderrun)
	}

	out := make([]byte, d.DatasizeBytes())
	mask := basic.Pixel(Mask(d.Bitdepth()))
	w := d.Width()
	for y := 0; y < d.Height(); y++ {
		row := d.RowOffset(y)
		for x := 0; x < w; x++ {
			v := pix[y*w+x] & mask
			if v == 0 {
				continue
			}
			pixel := row + d.PixelOffset(x)
			for p := 0; p < d.Bitdepth(); p++ {
				if v&(1<<uint(p)) != 0 {
					setBit(out, pixel+d.PlaneOffset(p))
				}
			}
		}
	}
	return out, nil
}

// DecodeTile unpacks one tile from the start of data
func DecodeTile(d *gfxdef.ChrDef, data []byte) ([]basic.Pixel, error) {
	if d == nil {
		return nil, fmt.Errorf("codec: missing tile descriptor: %w", gfxdef.ErrInvalidOperation)
	}
	if len(data) < d.DatasizeBytes() {
		return nil, fmt.Errorf("codec: chrdef %q: %d bytes, need %d: %w", d.ID(), len(data), d.DatasizeBytes(), gfxdef.ErrDataUnderrun)
	}

	out := make([]basic.Pixel, d.Pixels())
	w := d.Width()
	for y := 0; y < d.Height(); y++ {
		row := d.RowOffset(y)
		for x := 0; x < w; x++ {
			pixel := row + d.PixelOffset(x)
			var v basic.Pixel
			for p := 0; p < d.Bitdepth(); p++ {
				if getBit(data, pixel+d.PlaneOffset(p)) {
					v |= 1 << uint(p)
				}
			}
			out[y*w+x] = v
		}
	}
	return out, nil
}
