package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "chrgfx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestBuiltinsRoundTrip(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.LoadBuiltins())
	// Loading twice leaves everything in place
	require.NoError(t, c.LoadBuiltins())

	for _, want := range gfxdef.BuiltinChrDefs() {
		got, err := c.ChrDef(want.ID())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, want := range gfxdef.BuiltinPalDefs() {
		got, err := c.PalDef(want.ID())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, want := range gfxdef.BuiltinColDefs() {
		got, err := c.ColDef(want.ID())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, want := range gfxdef.BuiltinProfiles() {
		got, err := c.Profile(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	ids, err := c.IDs(KindProfile)
	require.NoError(t, err)
	assert.Len(t, ids, len(gfxdef.BuiltinProfiles()))
	assert.Contains(t, ids, "md")

	_, err = c.IDs(Kind("screenshot"))
	assert.Error(t, err)
}

func TestNotFound(t *testing.T) {
	c := newCatalog(t)

	_, err := c.ChrDef("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.PalDef("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.ColDef("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Profile("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Resolve(gfxdef.Profile{ChrDef: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.LoadBuiltins())

	p, err := c.Profile("nes")
	require.NoError(t, err)
	d, err := c.Resolve(p)
	require.NoError(t, err)
	assert.Equal(t, "nes", d.ChrDef.ID())
	assert.Nil(t, d.PalDef)
	assert.Nil(t, d.ColDef)

	builtin, _ := gfxdef.BuiltinProfile("md")
	d, err = c.Resolve(builtin.Merge(gfxdef.Profile{ChrDef: "gba"}))
	require.NoError(t, err)
	assert.Equal(t, "gba", d.ChrDef.ID())
	assert.Equal(t, "md", d.PalDef.ID())
	assert.Equal(t, "md", d.ColDef.ID())
}

const document = `<?xml version="1.0"?>
<GfxDefs>
  <ChrDef ID="2bpp-linear" Width="4" Height="2" Bitdepth="2">
    <PlaneOffsets>1 0</PlaneOffsets>
    <PixelOffsets>0,2,4,6</PixelOffsets>
    <RowOffsets>0 8</RowOffsets>
  </ChrDef>
  <PalDef ID="padded" EntryDatasize="16" Length="4" Datasize="128"/>
  <ColDef ID="split" Type="rgb" Bitdepth="4" BigEndian="true">
    <Layout RedShift="0" RedSize="2" GreenShift="4" GreenSize="4" BlueShift="8" BlueSize="4"/>
    <Layout RedShift="12" RedSize="2"/>
  </ColDef>
  <ColDef ID="cga" Type="ref">
    <Color>#000000</Color>
    <Color>#55ffff</Color>
    <Color>#ff55ff</Color>
    <Color>#ffffff</Color>
  </ColDef>
  <Profile ID="custom" ChrDef="2bpp-linear" PalDef="padded" ColDef="cga">
    <Description>Custom format</Description>
  </Profile>
</GfxDefs>`

func TestImport(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Import(strings.NewReader(document)))

	chr, err := c.ChrDef("2bpp-linear")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, chr.PlaneOffsets())
	assert.Equal(t, []int{0, 2, 4, 6}, chr.PixelOffsets())
	assert.Equal(t, 2, chr.DatasizeBytes())

	pal, err := c.PalDef("padded")
	require.NoError(t, err)
	assert.Equal(t, 128, pal.Datasize())

	col, err := c.ColDef("split")
	require.NoError(t, err)
	rgb, ok := col.(*gfxdef.RGBColDef)
	require.True(t, ok)
	assert.True(t, rgb.BigEndian())
	assert.Equal(t, []gfxdef.RGBLayout{
		{RedShift: 0, RedSize: 2, GreenShift: 4, GreenSize: 4, BlueShift: 8, BlueSize: 4},
		{RedShift: 12, RedSize: 2},
	}, rgb.Layout())

	col, err = c.ColDef("cga")
	require.NoError(t, err)
	ref, ok := col.(*gfxdef.RefColDef)
	require.True(t, ok)
	assert.Equal(t, basic.Color{R: 0x55, G: 0xff, B: 0xff}, ref.Color(1))

	p, err := c.Profile("custom")
	require.NoError(t, err)
	assert.Equal(t, gfxdef.Profile{ID: "custom", Description: "Custom format", ChrDef: "2bpp-linear", PalDef: "padded", ColDef: "cga"}, p)
}

func TestImportRejects(t *testing.T) {
	tests := map[string]string{
		"bad chrdef":   `<GfxDefs><ChrDef ID="x" Width="8" Height="8" Bitdepth="1"><PlaneOffsets>0</PlaneOffsets></ChrDef></GfxDefs>`,
		"bad offsets":  `<GfxDefs><ChrDef ID="x" Width="1" Height="1" Bitdepth="1"><PlaneOffsets>zero</PlaneOffsets></ChrDef></GfxDefs>`,
		"bad paldef":   `<GfxDefs><PalDef ID="x" EntryDatasize="0" Length="16"/></GfxDefs>`,
		"bad coltype":  `<GfxDefs><ColDef ID="x" Type="hsv"/></GfxDefs>`,
		"bad color":    `<GfxDefs><ColDef ID="x" Type="ref"><Color>red</Color></ColDef></GfxDefs>`,
		"missing refs": `<GfxDefs><Profile ID="x" ChrDef="nowhere"/></GfxDefs>`,
		"not xml":      `{"GfxDefs": []}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			c := newCatalog(t)
			assert.Error(t, c.Import(strings.NewReader(doc)))

			ids, err := c.IDs(KindChrDef)
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}

func TestAddReplaces(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.LoadBuiltins())

	d, err := gfxdef.NewPalDef("md", 16, 64, 0)
	require.NoError(t, err)
	require.NoError(t, c.AddPalDef(d))

	got, err := c.PalDef("md")
	require.NoError(t, err)
	assert.Equal(t, 64, got.Length())

	// Built-ins do not overwrite user changes
	require.NoError(t, c.LoadBuiltins())
	got, err = c.PalDef("md")
	require.NoError(t, err)
	assert.Equal(t, 64, got.Length())
}

func TestEncodingHelpers(t *testing.T) {
	v, err := parseInts(" 1, 2\t3\n")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)
	assert.Equal(t, "1 2 3", formatInts(v))

	layout := []gfxdef.RGBLayout{{1, 3, 5, 3, 9, 3}, {12, 1, 0, 0, 0, 0}}
	parsed, err := parseLayout(formatLayout(layout))
	require.NoError(t, err)
	assert.Equal(t, layout, parsed)

	_, err = parseLayout("1 2 3")
	assert.Error(t, err)

	c, err := parseColor("#0a0B0c")
	require.NoError(t, err)
	assert.Equal(t, basic.Color{R: 0x0a, G: 0x0b, B: 0x0c}, c)
	assert.Equal(t, "#0a0b0c", formatColor(c))
}
