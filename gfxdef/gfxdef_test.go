package gfxdef

import (
	"testing"

	"github.com/bodgit/chrgfx/basic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChrDef(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		bitdepth int
		planes   []int
		pixels   []int
		rows     []int
		ok       bool
	}{
		{"1bpp", 8, 8, 1, []int{0}, Sequence(0, 1, 8), Sequence(0, 8, 8), true},
		{"zero width", 0, 8, 1, []int{0}, nil, Sequence(0, 8, 8), false},
		{"zero height", 8, 0, 1, []int{0}, Sequence(0, 1, 8), nil, false},
		{"zero bitdepth", 8, 8, 0, nil, Sequence(0, 1, 8), Sequence(0, 8, 8), false},
		{"bitdepth too big", 1, 1, 9, Sequence(0, 1, 9), []int{0}, []int{0}, false},
		{"short planes", 8, 8, 2, []int{0}, Sequence(0, 1, 8), Sequence(0, 16, 8), false},
		{"short pixels", 8, 8, 1, []int{0}, Sequence(0, 1, 7), Sequence(0, 8, 8), false},
		{"long rows", 8, 8, 1, []int{0}, Sequence(0, 1, 8), Sequence(0, 8, 9), false},
		{"negative", 8, 8, 1, []int{-1}, Sequence(0, 1, 8), Sequence(0, 8, 8), false},
		{"beyond tile", 8, 8, 1, []int{0}, Sequence(0, 1, 8), Sequence(0, 9, 8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewChrDef(tt.name, tt.width, tt.height, tt.bitdepth, tt.planes, tt.pixels, tt.rows)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrConfiguration)
				assert.Nil(t, d)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 64, d.Datasize())
			assert.Equal(t, 8, d.DatasizeBytes())
			assert.Equal(t, 64, d.Pixels())
		})
	}
}

func TestChrDefCopiesOffsets(t *testing.T) {
	pixels := Sequence(0, 1, 8)
	d, err := NewChrDef("copy", 8, 8, 1, []int{0}, pixels, Sequence(0, 8, 8))
	require.NoError(t, err)
	pixels[0] = 7
	assert.Equal(t, 0, d.PixelOffset(0))
	d.PixelOffsets()[0] = 7
	assert.Equal(t, 0, d.PixelOffset(0))
}

func TestChrDefDatasizeBytes(t *testing.T) {
	d, err := NewChrDef("odd", 3, 3, 1, []int{0}, Sequence(0, 1, 3), Sequence(0, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, 9, d.Datasize())
	assert.Equal(t, 2, d.DatasizeBytes())
}

func TestNewPalDef(t *testing.T) {
	d, err := NewPalDef("md", 16, 16, 0)
	require.NoError(t, err)
	assert.Equal(t, 256, d.Datasize())
	assert.Equal(t, 32, d.DatasizeBytes())
	assert.Equal(t, 2, d.EntryDatasizeBytes())

	d, err = NewPalDef("padded", 9, 3, 32)
	require.NoError(t, err)
	assert.Equal(t, 32, d.Datasize())
	assert.Equal(t, 4, d.DatasizeBytes())

	for _, args := range [][3]int{
		{0, 16, 0},
		{16, 0, 0},
		{33, 1, 0},
		{16, 257, 0},
		{16, 16, 255},
	} {
		_, err := NewPalDef("bad", args[0], args[1], args[2])
		assert.ErrorIs(t, err, ErrConfiguration, "%v", args)
	}
}

func TestNewRGBColDef(t *testing.T) {
	_, err := NewRGBColDef("ok", 5, []RGBLayout{{0, 5, 5, 5, 10, 5}}, false)
	assert.NoError(t, err)

	for name, l := range map[string][]RGBLayout{
		"no passes":  nil,
		"wide":       {{0, 9, 0, 0, 0, 0}},
		"negative":   {{-1, 1, 0, 0, 0, 0}},
		"past32bits": {{30, 4, 0, 0, 0, 0}},
	} {
		_, err := NewRGBColDef(name, 5, l, false)
		assert.ErrorIs(t, err, ErrConfiguration, name)
	}

	_, err = NewRGBColDef("depth", 9, []RGBLayout{{0, 5, 5, 5, 10, 5}}, false)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewRefColDef(t *testing.T) {
	d, err := NewRefColDef("ref", []basic.Color{{R: 1}, {G: 2}}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.BigEndian())
	assert.Equal(t, basic.Color{G: 2}, d.Color(1))

	_, err = NewRefColDef("empty", nil, false)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = NewRefColDef("huge", make([]basic.Color, 257), false)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestProfileMerge(t *testing.T) {
	builtin, ok := BuiltinProfile("md")
	require.True(t, ok)

	file := Profile{PalDef: "md-padded"}
	flags := Profile{ChrDef: "gba"}

	p := MergeProfiles(builtin, file, flags)
	assert.Equal(t, Profile{
		ID:          "md",
		Description: builtin.Description,
		ChrDef:      "gba",
		PalDef:      "md-padded",
		ColDef:      "md",
	}, p)

	_, ok = BuiltinProfile("nonexistent")
	assert.False(t, ok)
}

func TestBuiltinProfilesResolve(t *testing.T) {
	has := func(id string, ids []string) bool {
		for _, i := range ids {
			if i == id {
				return true
			}
		}
		return false
	}

	var chrs, pals, cols []string
	for _, d := range BuiltinChrDefs() {
		chrs = append(chrs, d.ID())
	}
	for _, d := range BuiltinPalDefs() {
		pals = append(pals, d.ID())
	}
	for _, d := range BuiltinColDefs() {
		cols = append(cols, d.ID())
	}

	for _, p := range BuiltinProfiles() {
		assert.True(t, has(p.ChrDef, chrs), "%s chrdef", p.ID)
		if p.PalDef != "" {
			assert.True(t, has(p.PalDef, pals), "%s paldef", p.ID)
			assert.True(t, has(p.ColDef, cols), "%s coldef", p.ID)
		}
	}
}
