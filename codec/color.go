/*
Package codec implements the generic color, palette and tile codecs.

Every function is driven entirely by the descriptors passed to it, has no
state and allocates a single output value, so independent tiles or colors
may be converted concurrently.

Encoded colors are handled as plain integers; their byte order only
matters once they are packed into a palette buffer, which uses the
BigEndian setting of the color descriptor.
*/
package codec

import (
	"fmt"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
)

func encodeRGB(d *gfxdef.RGBColDef, c basic.Color) uint32 {
	var out uint32
	layout := d.Layout()
	for i, ch := range [3]uint8{c.R, c.G, c.B} {
		v := Reduce(ch, d.Bitdepth())
		offset := 0
		for _, l := range layout {
			shift, size := channel(l, i)
			out |= (v >> uint(offset) & Mask(size)) << uint(shift)
			offset += size
		}
	}
	return out
}

func decodeRGB(d *gfxdef.RGBColDef, v uint32) basic.Color {
	var ch [3]uint8
	layout := d.Layout()
	for i := range ch {
		var acc uint32
		offset := 0
		for _, l := range layout {
			shift, size := channel(l, i)
			acc |= (v >> uint(shift) & Mask(size)) << uint(offset)
			offset += size
		}
		ch[i] = Expand(acc, d.Bitdepth())
	}
	return basic.Color{R: ch[0], G: ch[1], B: ch[2]}
}

func channel(l gfxdef.RGBLayout, i int) (int, int) {
	switch i {
	case 0:
		return l.RedShift, l.RedSize
	case 1:
		return l.GreenShift, l.GreenSize
	default:
		return l.BlueShift, l.BlueSize
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Nearest returns the index of the table entry closest to c. An exact match
// wins, otherwise the first entry with the smallest Manhattan distance.
func Nearest(table []basic.Color, c basic.Color) int {
	for i, t := range table {
		if t == c {
			return i
		}
	}

	best, bestSum := 0, int(^uint(0)>>1)
	for i, t := range table {
		sum := abs(int(t.R)-int(c.R)) + abs(int(t.G)-int(c.G)) + abs(int(t.B)-int(c.B))
		if sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

// EncodeColor returns the encoded value of c
func EncodeColor(d gfxdef.ColDef, c basic.Color) (uint32, error) {
	switch d := d.(type) {
	case *gfxdef.RGBColDef:
		return encodeRGB(d, c), nil
	case *gfxdef.RefColDef:
		return uint32(Nearest(d.Table(), c)), nil
	default:
		return 0, fmt.Errorf("codec: unusable color descriptor %T: %w", d, gfxdef.ErrInvalidOperation)
	}
}

// DecodeColor returns the color represented by the encoded value v
func DecodeColor(d gfxdef.ColDef, v uint32) (basic.Color, error) {
	switch d := d.(type) {
	case *gfxdef.RGBColDef:
		return decodeRGB(d, v), nil
	case *gfxdef.RefColDef:
		if v >= uint32(d.Len()) {
			return basic.Color{}, fmt.Errorf("codec: coldef %q: color index %d not below %d: %w", d.ID(), v, d.Len(), gfxdef.ErrOutOfRange)
		}
		return d.Color(int(v)), nil
	default:
		return basic.Color{}, fmt.Errorf("codec: unusable color descriptor %T: %w", d, gfxdef.ErrInvalidOperation)
	}
}
