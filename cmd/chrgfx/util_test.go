package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/chrgfx"
	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/catalog"
	"github.com/bodgit/chrgfx/gfxdef"
	"github.com/bodgit/chrgfx/imgconv"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, name := range []string{"db", "output", "profile", "chrdef", "paldef", "coldef"} {
		set.String(name, "", "")
	}
	set.Bool("verbose", false, "")
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestOutput(t *testing.T) {
	tables := map[string]struct {
		args []string
		ext  string
		want string
	}{
		"extension": {
			args: []string{"sprites.chr"},
			ext:  ".png",
			want: "sprites.png",
		},
		"compressed": {
			args: []string{"dir/sprites.chr.zst"},
			ext:  ".png",
			want: "dir/sprites.png",
		},
		"no extension": {
			args: []string{"sprites"},
			ext:  ".chr",
			want: "sprites.chr",
		},
		"flag": {
			args: []string{"--output", "out.bin", "sprites.png"},
			ext:  ".chr",
			want: "out.bin",
		},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, table.want, output(newContext(t, table.args...), table.ext))
		})
	}
}

func TestResolve(t *testing.T) {
	db := filepath.Join(t.TempDir(), "chrgfx.db")

	c := newContext(t, "--db", db, "--profile", "md", "--chrdef", "gba")
	cat, err := openCatalog(c)
	require.NoError(t, err)
	defer cat.Close()

	defs, err := resolve(c, cat)
	require.NoError(t, err)
	require.NotNil(t, defs.ChrDef)
	require.NotNil(t, defs.PalDef)
	require.NotNil(t, defs.ColDef)
	assert.Equal(t, "gba", defs.ChrDef.ID())
	assert.Equal(t, "md", defs.PalDef.ID())
	assert.Equal(t, "md", defs.ColDef.ID())

	defs, err = resolve(newContext(t, "--paldef", "snes"), cat)
	require.NoError(t, err)
	assert.Nil(t, defs.ChrDef)
	require.NotNil(t, defs.PalDef)
	assert.Equal(t, "snes", defs.PalDef.ID())

	_, err = resolve(newContext(t, "--profile", "missing"), cat)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	data := []byte("tile data tile data tile data")

	plain := filepath.Join(dir, "tiles.chr")
	require.NoError(t, os.WriteFile(plain, data, 0644))

	b, err := readInput(plain)
	require.NoError(t, err)
	assert.Equal(t, data, b)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := filepath.Join(dir, "tiles.chr.zst")
	require.NoError(t, os.WriteFile(compressed, enc.EncodeAll(data, nil), 0644))
	require.NoError(t, enc.Close())

	b, err = readInput(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, b)

	_, err = readInput(filepath.Join(dir, "missing.zst"))
	assert.Error(t, err)

	// Not a zstd stream
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.zst"), data, 0644))
	_, err = readInput(filepath.Join(dir, "bad.zst"))
	assert.Error(t, err)
}

func TestWriteChr(t *testing.T) {
	var d *gfxdef.ChrDef
	for _, def := range gfxdef.BuiltinChrDefs() {
		if def.ID() == "1bpp" {
			d = def
		}
	}
	require.NotNil(t, d)

	m := basic.NewImage(8, 8)
	m.Set(0, 0, 1)

	dir := t.TempDir()
	file := filepath.Join(dir, "tiles.chr")
	require.NoError(t, writeChr(context.Background(), chrgfx.New(nil), d, m, file))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0, 0, 0, 0, 0, 0, 0}, b)

	assert.Error(t, writeChr(context.Background(), chrgfx.New(nil), d, m, filepath.Join(dir, "missing", "tiles.chr")))
}

func TestWritePNG(t *testing.T) {
	m := basic.NewImage(8, 8)
	m.Palette = imgconv.GrayPalette(1)
	pm, err := imgconv.ToPaletted(m, imgconv.NoTransparency)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "tiles.png")
	require.NoError(t, writePNG(file, pm))

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	header := make([]byte, 8)
	_, err = f.Read(header)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), header)
}
