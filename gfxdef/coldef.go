package gfxdef

import (
	"fmt"

	"github.com/bodgit/chrgfx/basic"
)

// RGBLayout is one pass of a color layout. Each channel takes the next Size
// bits of its reduced value and places them at Shift in the encoded value.
type RGBLayout struct {
	RedShift, RedSize     int
	GreenShift, GreenSize int
	BlueShift, BlueSize   int
}

func (l RGBLayout) channels() [3][2]int {
	return [3][2]int{
		{l.RedShift, l.RedSize},
		{l.GreenShift, l.GreenSize},
		{l.BlueShift, l.BlueSize},
	}
}

func (l RGBLayout) validate() error {
	for i, c := range l.channels() {
		shift, size := c[0], c[1]
		if size < 0 || size > 8 {
			return fmt.Errorf("%s width %d not in [0,8]", "rgb"[i:i+1], size)
		}
		if shift < 0 || shift+size > 32 {
			return fmt.Errorf("%s shift %d out of range", "rgb"[i:i+1], shift)
		}
	}
	return nil
}

// ColDef describes how a color entry is encoded. It is implemented by
// *RGBColDef and *RefColDef only.
type ColDef interface {
	ID() string
	BigEndian() bool
	colDef()
}

// RGBColDef encodes colors by packing reduced channel values into bit fields
type RGBColDef struct {
	id        string
	bitdepth  int
	layout    []RGBLayout
	bigEndian bool
}

// NewRGBColDef returns a validated RGB color descriptor. Bitdepth is the
// number of bits each channel is reduced to.
func NewRGBColDef(id string, bitdepth int, layout []RGBLayout, bigEndian bool) (*RGBColDef, error) {
	if bitdepth <= 0 || bitdepth > 8 {
		return nil, fmt.Errorf("gfxdef: coldef %q: bitdepth %d not in [1,8]: %w", id, bitdepth, ErrConfiguration)
	}
	if len(layout) == 0 {
		return nil, fmt.Errorf("gfxdef: coldef %q: no layout passes: %w", id, ErrConfiguration)
	}
	for i, l := range layout {
		if err := l.validate(); err != nil {
			return nil, fmt.Errorf("gfxdef: coldef %q: pass %d: %v: %w", id, i, err, ErrConfiguration)
		}
	}
	return &RGBColDef{
		id:        id,
		bitdepth:  bitdepth,
		layout:    append([]RGBLayout(nil), layout...),
		bigEndian: bigEndian,
	}, nil
}

// ID returns the descriptor name
func (d *RGBColDef) ID() string { return d.id }

// BigEndian reports whether encoded values are stored most significant byte
// first
func (d *RGBColDef) BigEndian() bool { return d.bigEndian }

// Bitdepth returns the number of bits per channel
func (d *RGBColDef) Bitdepth() int { return d.bitdepth }

// Layout returns a copy of the layout passes
func (d *RGBColDef) Layout() []RGBLayout { return append([]RGBLayout(nil), d.layout...) }

func (*RGBColDef) colDef() {}

// RefColDef encodes colors as an index into a fixed reference table
type RefColDef struct {
	id        string
	table     []basic.Color
	bigEndian bool
}

// NewRefColDef returns a validated reference table color descriptor
func NewRefColDef(id string, table []basic.Color, bigEndian bool) (*RefColDef, error) {
	if len(table) == 0 || len(table) > MaxColors {
		return nil, fmt.Errorf("gfxdef: coldef %q: table of %d colors not in [1,%d]: %w", id, len(table), MaxColors, ErrConfiguration)
	}
	return &RefColDef{
		id:        id,
		table:     append([]basic.Color(nil), table...),
		bigEndian: bigEndian,
	}, nil
}

// ID returns the descriptor name
func (d *RefColDef) ID() string { return d.id }

// BigEndian reports whether encoded values are stored most significant byte
// first
func (d *RefColDef) BigEndian() bool { return d.bigEndian }

// Len returns the number of colors in the table
func (d *RefColDef) Len() int { return len(d.table) }

// Color returns table entry i
func (d *RefColDef) Color(i int) basic.Color { return d.table[i] }

// Table returns a copy of the reference table
func (d *RefColDef) Table() []basic.Color { return append([]basic.Color(nil), d.table...) }

func (*RefColDef) colDef() {}
