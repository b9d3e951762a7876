package gfxdef

import "fmt"

// ChrDef describes the geometry and bit layout of a tile. Every offset is a
// bit offset where bit 0 is the most significant bit of the first byte.
type ChrDef struct {
	id           string
	width        int
	height       int
	bitdepth     int
	planeOffsets []int
	pixelOffsets []int
	rowOffsets   []int
}

func maxOffset(offsets []int) (int, error) {
	max := 0
	for _, o := range offsets {
		if o < 0 {
			return 0, fmt.Errorf("negative offset %d", o)
		}
		if o > max {
			max = o
		}
	}
	return max, nil
}

// NewChrDef returns a validated tile descriptor. The offset slices are
// copied so the caller may reuse them.
func NewChrDef(id string, width, height, bitdepth int, planeOffsets, pixelOffsets, rowOffsets []int) (*ChrDef, error) {
	switch {
	case width <= 0 || height <= 0:
		return nil, fmt.Errorf("gfxdef: chrdef %q: zero width or height: %w", id, ErrConfiguration)
	case bitdepth <= 0 || bitdepth > MaxBitdepth:
		return nil, fmt.Errorf("gfxdef: chrdef %q: bitdepth %d not in [1,%d]: %w", id, bitdepth, MaxBitdepth, ErrConfiguration)
	case len(planeOffsets) != bitdepth:
		return nil, fmt.Errorf("gfxdef: chrdef %q: %d plane offsets for bitdepth %d: %w", id, len(planeOffsets), bitdepth, ErrConfiguration)
	case len(pixelOffsets) != width:
		return nil, fmt.Errorf("gfxdef: chrdef %q: %d pixel offsets for width %d: %w", id, len(pixelOffsets), width, ErrConfiguration)
	case len(rowOffsets) != height:
		return nil, fmt.Errorf("gfxdef: chrdef %q: %d row offsets for height %d: %w", id, len(rowOffsets), height, ErrConfiguration)
	}

	// The furthest bit any pixel can address must lie inside the tile
	last := 0
	for _, offsets := range [][]int{planeOffsets, pixelOffsets, rowOffsets} {
		m, err := maxOffset(offsets)
		if err != nil {
			return nil, fmt.Errorf("gfxdef: chrdef %q: %v: %w", id, err, ErrConfiguration)
		}
		last += m
	}
	if datasize := width * height * bitdepth; last >= datasize {
		return nil, fmt.Errorf("gfxdef: chrdef %q: bit offset %d beyond tile size of %d bits: %w", id, last, datasize, ErrConfiguration)
	}

	return &ChrDef{
		id:           id,
		width:        width,
		height:       height,
		bitdepth:     bitdepth,
		planeOffsets: append([]int(nil), planeOffsets...),
		pixelOffsets: append([]int(nil), pixelOffsets...),
		rowOffsets:   append([]int(nil), rowOffsets...),
	}, nil
}

// ID returns the descriptor name
func (d *ChrDef) ID() string { return d.id }

// Width returns the tile width in pixels
func (d *ChrDef) Width() int { return d.width }

// Height returns the tile height in pixels
func (d *ChrDef) Height() int { return d.height }

// Bitdepth returns the number of bitplanes
func (d *ChrDef) Bitdepth() int { return d.bitdepth }

// Pixels returns the number of pixels in one tile
func (d *ChrDef) Pixels() int { return d.width * d.height }

// Datasize returns the size of one encoded tile in bits
func (d *ChrDef) Datasize() int { return d.width * d.height * d.bitdepth }

// DatasizeBytes returns the size of one encoded tile in bytes
func (d *ChrDef) DatasizeBytes() int { return (d.Datasize() + 7) >> 3 }

// PlaneOffset returns the bit offset of plane p
func (d *ChrDef) PlaneOffset(p int) int { return d.planeOffsets[p] }

// PixelOffset returns the bit offset of pixel column x
func (d *ChrDef) PixelOffset(x int) int { return d.pixelOffsets[x] }

// RowOffset returns the bit offset of pixel row y
func (d *ChrDef) RowOffset(y int) int { return d.rowOffsets[y] }

// PlaneOffsets returns a copy of the plane offsets
func (d *ChrDef) PlaneOffsets() []int { return append([]int(nil), d.planeOffsets...) }

// PixelOffsets returns a copy of the pixel offsets
func (d *ChrDef) PixelOffsets() []int { return append([]int(nil), d.pixelOffsets...) }

// RowOffsets returns a copy of the row offsets
func (d *ChrDef) RowOffsets() []int { return append([]int(nil), d.rowOffsets...) }
