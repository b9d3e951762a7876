package chrgfx

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/codec"
	"github.com/bodgit/chrgfx/gfxdef"
	"github.com/bodgit/chrgfx/imgconv"
	"github.com/bodgit/chrgfx/swatch"
	"github.com/bodgit/chrgfx/tileset"
)

// ChrToImage decodes every whole tile read from r and arranges them rowSize
// tiles per row. The palette is attached to the result, a nil palette is
// replaced with a grayscale ramp suited to the tile bitdepth.
func (c *Converter) ChrToImage(ctx context.Context, d *gfxdef.ChrDef, r io.Reader, rowSize int, palette basic.Palette) (*basic.Image, error) {
	if d == nil {
		return nil, fmt.Errorf("chrgfx: missing tile descriptor: %w", gfxdef.ErrInvalidOperation)
	}
	if rowSize <= 0 {
		return nil, fmt.Errorf("chrgfx: %d tiles per row: %w", rowSize, gfxdef.ErrInvalidOperation)
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	in, errc, err := c.readTiles(ctx, r, d.DatasizeBytes())
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	results := make(chan decodedTile)
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		errc, err := c.decodeWorker(ctx, d, in, results, &wg)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var tiles [][]basic.Pixel
	for t := range results {
		for len(tiles) <= t.index {
			tiles = append(tiles, nil)
		}
		tiles[t.index] = t.pix
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	if len(tiles) == 0 {
		return nil, fmt.Errorf("chrgfx: chrdef %q: input holds no whole tile of %d bytes: %w", d.ID(), d.DatasizeBytes(), gfxdef.ErrDataUnderrun)
	}

	pix := make([]basic.Pixel, 0, len(tiles)*d.Pixels())
	for _, t := range tiles {
		pix = append(pix, t...)
	}

	c.logger.Debug("decoded tiles", "chrdef", d.ID(), "tiles", len(tiles), "columns", rowSize)

	m, err := tileset.Render(d, pix, len(tiles), rowSize)
	if err != nil {
		return nil, err
	}

	if palette == nil {
		palette = imgconv.GrayPalette(d.Bitdepth())
	}
	m.Palette = palette

	return m, nil
}

// ImageToChr splits m into tiles, encodes them and writes them to w in
// tile order
func (c *Converter) ImageToChr(ctx context.Context, d *gfxdef.ChrDef, m *basic.Image, w io.Writer) error {
	pix, err := tileset.Make(d, m)
	if err != nil {
		return err
	}
	n := len(pix) / d.Pixels()

	if m.Width%d.Width() != 0 || m.Height%d.Height() != 0 {
		c.logger.Debug("ignoring partial tiles", "width", m.Width, "height", m.Height, "tile_width", d.Width(), "tile_height", d.Height())
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	indices, errc, err := c.indexTiles(ctx, n)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	out := make([][]byte, n)
	for i := 0; i < c.workers; i++ {
		errc, err := c.encodeWorker(ctx, d, indices, pix, out)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	for _, b := range out {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}

	c.logger.Debug("encoded tiles", "chrdef", d.ID(), "tiles", n, "bytes", n*d.DatasizeBytes())

	return nil
}

// PalToImage renders sub-palette subpalette of data as a single row of
// swatches
func (c *Converter) PalToImage(pd *gfxdef.PalDef, cd gfxdef.ColDef, data []byte, subpalette int) (*basic.Image, error) {
	if pd == nil {
		return nil, fmt.Errorf("chrgfx: missing palette descriptor: %w", gfxdef.ErrInvalidOperation)
	}
	sub, err := codec.Subpalette(pd, data, subpalette)
	if err != nil {
		return nil, err
	}
	m, err := swatch.Render(pd, cd, sub, swatch.DefaultSize)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("rendered palette", "paldef", pd.ID(), "coldef", cd.ID(), "subpalette", subpalette)
	return m, nil
}

// PalToFullImage renders every sub-palette in data, one row of swatches
// each
func (c *Converter) PalToFullImage(pd *gfxdef.PalDef, cd gfxdef.ColDef, data []byte) (*basic.RGBImage, error) {
	m, err := swatch.RenderFull(pd, cd, data, len(data), swatch.DefaultSize)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("rendered palettes", "paldef", pd.ID(), "rows", m.Height/swatch.DefaultSize)
	return m, nil
}

// ImageToPal encodes the first entries of palette as one sub-palette
func (c *Converter) ImageToPal(pd *gfxdef.PalDef, cd gfxdef.ColDef, palette basic.Palette) ([]byte, error) {
	return codec.EncodePalette(pd, cd, palette)
}
