package codec

import (
	"fmt"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
)

// entryBytes returns how many bytes an entry of size bits spans when it
// starts shift bits into its first byte
func entryBytes(shift, size int) int {
	return (shift + size + 7) >> 3
}

// packEntry ORs the low size bits of v into data starting at bit offset.
// Within the span of bytes the entry touches, the value is shifted up by
// the offset into the first byte, so consecutive sub-byte entries fill a
// byte from its least significant bit.
func packEntry(data []byte, offset, size int, v uint32, bigEndian bool) {
	start, shift := offset>>3, offset&7
	n := entryBytes(shift, size)
	w := uint64(v&Mask(size)) << uint(shift)
	for k := 0; k < n; k++ {
		b := byte(w >> uint(8*k))
		if bigEndian {
			data[start+n-1-k] |= b
		} else {
			data[start+k] |= b
		}
	}
}

// unpackEntry is the inverse of packEntry
func unpackEntry(data []byte, offset, size int, bigEndian bool) uint32 {
	start, shift := offset>>3, offset&7
	n := entryBytes(shift, size)
	var w uint64
	for k := 0; k < n; k++ {
		var b byte
		if bigEndian {
			b = data[start+n-1-k]
		} else {
			b = data[start+k]
		}
		w |= uint64(b) << uint(8*k)
	}
	return uint32(w>>uint(shift)) & Mask(size)
}

// usedBytes returns the number of bytes holding palette entries, which
// excludes any trailing padding
func usedBytes(pd *gfxdef.PalDef) int {
	return (pd.EntryDatasize()*pd.Length() + 7) >> 3
}

func checkDefs(pd *gfxdef.PalDef, cd gfxdef.ColDef) error {
	if pd == nil || cd == nil {
		return fmt.Errorf("codec: missing palette or color descriptor: %w", gfxdef.ErrInvalidOperation)
	}
	return nil
}

// EncodePalette packs the first Length entries of p, or fewer if p is
// shorter, into a buffer of DatasizeBytes bytes
func EncodePalette(pd *gfxdef.PalDef, cd gfxdef.ColDef, p basic.Palette) ([]byte, error) {
	if err := checkDefs(pd, cd); err != nil {
		return nil, err
	}

	out := make([]byte, pd.DatasizeBytes())
	for i := 0; i < pd.Length() && i < len(p); i++ {
		v, err := EncodeColor(cd, p[i])
		if err != nil {
			return nil, err
		}
		packEntry(out, i*pd.EntryDatasize(), pd.EntryDatasize(), v, cd.BigEndian())
	}
	return out, nil
}

// DecodePalette unpacks a single palette from the start of data. The
// result always has basic.PaletteSize entries; those beyond Length are
// black.
func DecodePalette(pd *gfxdef.PalDef, cd gfxdef.ColDef, data []byte) (basic.Palette, error) {
	if err := checkDefs(pd, cd); err != nil {
		return nil, err
	}
	if need := usedBytes(pd); len(data) < need {
		return nil, fmt.Errorf("codec: paldef %q: %d bytes, need %d: %w", pd.ID(), len(data), need, gfxdef.ErrDataUnderrun)
	}

	p := basic.NewPalette()
	for i := 0; i < pd.Length(); i++ {
		v := unpackEntry(data, i*pd.EntryDatasize(), pd.EntryDatasize(), cd.BigEndian())
		c, err := DecodeColor(cd, v)
		if err != nil {
			return nil, err
		}
		p[i] = c
	}
	return p, nil
}

// SubpaletteCount returns how many palettes described by pd are held in n
// bytes. A final palette missing only its padding still counts. A nil pd or
// non-positive n holds none.
func SubpaletteCount(pd *gfxdef.PalDef, n int) int {
	if pd == nil || n <= 0 {
		return 0
	}
	size := pd.DatasizeBytes()
	count := n / size
	if n%size >= usedBytes(pd) {
		count++
	}
	return count
}

// Subpalette returns the bytes of palette i within data, where each
// palette occupies DatasizeBytes bytes
func Subpalette(pd *gfxdef.PalDef, data []byte, i int) ([]byte, error) {
	if pd == nil {
		return nil, fmt.Errorf("codec: missing palette descriptor: %w", gfxdef.ErrInvalidOperation)
	}
	if count := SubpaletteCount(pd, len(data)); i < 0 || i >= count {
		return nil, fmt.Errorf("codec: paldef %q: subpalette %d not below %d: %w", pd.ID(), i, count, gfxdef.ErrOutOfRange)
	}
	start := i * pd.DatasizeBytes()
	end := start + pd.DatasizeBytes()
	if end > len(data) {
		end = len(data)
	}
	return data[start:end], nil
}
