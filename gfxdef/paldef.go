package gfxdef

import "fmt"

// PalDef describes the geometry of a palette
type PalDef struct {
	id            string
	entryDatasize int
	length        int
	datasize      int
}

// NewPalDef returns a validated palette descriptor. A datasize of zero
// defaults to entryDatasize*length; a larger datasize expresses padding
// after the last entry.
func NewPalDef(id string, entryDatasize, length, datasize int) (*PalDef, error) {
	if datasize == 0 {
		datasize = entryDatasize * length
	}

	switch {
	case entryDatasize <= 0 || entryDatasize > MaxEntryDatasize:
		return nil, fmt.Errorf("gfxdef: paldef %q: entry datasize %d not in [1,%d]: %w", id, entryDatasize, MaxEntryDatasize, ErrConfiguration)
	case length <= 0 || length > MaxColors:
		return nil, fmt.Errorf("gfxdef: paldef %q: length %d not in [1,%d]: %w", id, length, MaxColors, ErrConfiguration)
	case datasize < entryDatasize*length:
		return nil, fmt.Errorf("gfxdef: paldef %q: datasize %d smaller than %d entries of %d bits: %w", id, datasize, length, entryDatasize, ErrConfiguration)
	}

	return &PalDef{
		id:            id,
		entryDatasize: entryDatasize,
		length:        length,
		datasize:      datasize,
	}, nil
}

// ID returns the descriptor name
func (d *PalDef) ID() string { return d.id }

// EntryDatasize returns the size of one color entry in bits
func (d *PalDef) EntryDatasize() int { return d.entryDatasize }

// EntryDatasizeBytes returns the size of one color entry in bytes
func (d *PalDef) EntryDatasizeBytes() int { return (d.entryDatasize + 7) >> 3 }

// Length returns the number of entries in the palette
func (d *PalDef) Length() int { return d.length }

// Datasize returns the size of the whole palette, including padding, in bits
func (d *PalDef) Datasize() int { return d.datasize }

// DatasizeBytes returns the size of the whole palette in bytes
func (d *PalDef) DatasizeBytes() int { return (d.datasize + 7) >> 3 }
