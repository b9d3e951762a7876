package main

import (
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/chrgfx"
	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/catalog"
	"github.com/bodgit/chrgfx/gfxdef"
	"github.com/hashicorp/go-hclog"
	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v2"
)

const zstdExt = ".zst"

func newLogger(c *cli.Context) hclog.Logger {
	level := hclog.Warn
	if c.Bool("verbose") {
		level = hclog.Debug
	}
	if s := os.Getenv("CHRGFX_LOG_LEVEL"); s != "" {
		if l := hclog.LevelFromString(s); l != hclog.NoLevel {
			level = l
		}
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   c.App.Name,
		Level:  level,
		Output: os.Stderr,
	})
}

func openCatalog(c *cli.Context) (*catalog.Catalog, error) {
	cat, err := catalog.New(c.String("db"))
	if err != nil {
		return nil, err
	}
	if err := cat.LoadBuiltins(); err != nil {
		cat.Close()
		return nil, err
	}
	return cat, nil
}

// resolve applies any descriptor flags on top of the selected profile
func resolve(c *cli.Context, cat *catalog.Catalog) (*catalog.Defs, error) {
	var p gfxdef.Profile
	if id := c.String("profile"); id != "" {
		var err error
		if p, err = cat.Profile(id); err != nil {
			return nil, err
		}
	}
	return cat.Resolve(p.Merge(gfxdef.Profile{
		ChrDef: c.String("chrdef"),
		PalDef: c.String("paldef"),
		ColDef: c.String("coldef"),
	}))
}

type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

// openInput opens file, transparently decompressing it if it ends in .zst
func openInput(file string) (io.ReadCloser, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(file) != zstdExt {
		return f, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return zstdReadCloser{dec, f}, nil
}

func readInput(file string) ([]byte, error) {
	r, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// output returns the --output flag, or the input file with its extension
// replaced by ext
func output(c *cli.Context, ext string) string {
	if file := c.String("output"); file != "" {
		return file
	}
	file := strings.TrimSuffix(c.Args().First(), zstdExt)
	return strings.TrimSuffix(file, filepath.Ext(file)) + ext
}

func writePNG(file string, m image.Image) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, m)
}

func writeChr(ctx context.Context, conv *chrgfx.Converter, d *gfxdef.ChrDef, m *basic.Image, file string) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return conv.ImageToChr(ctx, d, m, f)
}
