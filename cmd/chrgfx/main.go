package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bodgit/chrgfx"
	"github.com/bodgit/chrgfx/catalog"
	"github.com/bodgit/chrgfx/codec"
	"github.com/bodgit/chrgfx/imgconv"
	"github.com/urfave/cli/v2"
)

const defaultDB = "chrgfx.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var descriptorFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "profile naming the default descriptors",
	},
	&cli.StringFlag{
		Name:  "chrdef",
		Usage: "tile descriptor, overrides the profile",
	},
	&cli.StringFlag{
		Name:  "paldef",
		Usage: "palette descriptor, overrides the profile",
	},
	&cli.StringFlag{
		Name:  "coldef",
		Usage: "color descriptor, overrides the profile",
	},
}

func flags(extra ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, descriptorFlags...), extra...)
}

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file, derived from the input file by default",
	}
	subpaletteFlag = &cli.IntFlag{
		Name:  "subpalette",
		Usage: "index of the palette to use within the palette data",
	}
	scaleFlag = &cli.IntFlag{
		Name:  "scale",
		Value: 1,
		Usage: "enlarge the image by this factor",
	}
)

func chr2png(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	cat, err := openCatalog(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer cat.Close()

	defs, err := resolve(c, cat)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if defs.ChrDef == nil {
		return cli.Exit("no tile descriptor, use --profile or --chrdef", 1)
	}

	conv := chrgfx.New(logger)

	var palette []byte
	if file := c.String("palette"); file != "" {
		if defs.PalDef == nil || defs.ColDef == nil {
			return cli.Exit("palette data needs a palette and color descriptor", 1)
		}
		if palette, err = readInput(file); err != nil {
			return cli.Exit(err, 1)
		}
	}

	r, err := openInput(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m, err := conv.ChrToImage(ctx, defs.ChrDef, r, c.Int("columns"), nil)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if palette != nil {
		sub, err := codec.Subpalette(defs.PalDef, palette, c.Int("subpalette"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		if m.Palette, err = codec.DecodePalette(defs.PalDef, defs.ColDef, sub); err != nil {
			return cli.Exit(err, 1)
		}
	}

	trns := imgconv.NoTransparency
	if c.Bool("trns") {
		trns = 0
	}
	pm, err := imgconv.ToPaletted(m, trns)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := writePNG(output(c, ".png"), imgconv.Scale(pm, c.Int("scale"))); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func png2chr(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	cat, err := openCatalog(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer cat.Close()

	defs, err := resolve(c, cat)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if defs.ChrDef == nil {
		return cli.Exit("no tile descriptor, use --profile or --chrdef", 1)
	}

	r, err := openInput(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer r.Close()

	img, format, err := image.Decode(r)
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger.Debug("decoded image", "format", format, "bounds", img.Bounds())

	m, err := imgconv.FromImage(img, 1<<uint(defs.ChrDef.Bitdepth()), c.Bool("dither"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	conv := chrgfx.New(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := writeChr(ctx, conv, defs.ChrDef, m, output(c, ".chr")); err != nil {
		return cli.Exit(err, 1)
	}

	if file := c.String("palette-output"); file != "" {
		if defs.PalDef == nil || defs.ColDef == nil {
			return cli.Exit("palette output needs a palette and color descriptor", 1)
		}
		b, err := conv.ImageToPal(defs.PalDef, defs.ColDef, m.Palette)
		if err != nil {
			return cli.Exit(err, 1)
		}
		if err := os.WriteFile(file, b, 0644); err != nil {
			return cli.Exit(err, 1)
		}
	}

	return nil
}

func pal2png(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	cat, err := openCatalog(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer cat.Close()

	defs, err := resolve(c, cat)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if defs.PalDef == nil || defs.ColDef == nil {
		return cli.Exit("no palette or color descriptor, use --profile or --paldef and --coldef", 1)
	}

	data, err := readInput(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	conv := chrgfx.New(logger)

	var img image.Image
	if c.Bool("full") {
		m, err := conv.PalToFullImage(defs.PalDef, defs.ColDef, data)
		if err != nil {
			return cli.Exit(err, 1)
		}
		if img, err = imgconv.FromRGB(m); err != nil {
			return cli.Exit(err, 1)
		}
	} else {
		m, err := conv.PalToImage(defs.PalDef, defs.ColDef, data, c.Int("subpalette"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		if img, err = imgconv.ToPaletted(m, imgconv.NoTransparency); err != nil {
			return cli.Exit(err, 1)
		}
	}

	if err := writePNG(output(c, ".png"), imgconv.Scale(img, c.Int("scale"))); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func importXML(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cat, err := openCatalog(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer cat.Close()

	for _, file := range c.Args().Slice() {
		if err := cat.ImportXML(file); err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
		}
		newLogger(c).Info("imported definitions", "file", file)
	}

	return nil
}

func list(c *cli.Context) error {
	cat, err := openCatalog(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer cat.Close()

	kinds := []catalog.Kind{catalog.KindProfile, catalog.KindChrDef, catalog.KindPalDef, catalog.KindColDef}
	if c.NArg() > 0 {
		kinds = []catalog.Kind{catalog.Kind(c.Args().First())}
	}

	for _, kind := range kinds {
		ids, err := cat.IDs(kind)
		if err != nil {
			return cli.Exit(err, 1)
		}
		for _, id := range ids {
			if kind != catalog.KindProfile {
				fmt.Printf("%s\t%s\n", kind, id)
				continue
			}
			p, err := cat.Profile(id)
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Printf("%s\t%s\t%s\n", kind, id, p.Description)
		}
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "chrgfx"
	app.Usage = "Retro console tile and palette conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CHRGFX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "chr2png",
			Usage:     "Convert tile data to a PNG image",
			ArgsUsage: "FILE",
			Flags: flags(
				&cli.IntFlag{
					Name:  "columns",
					Value: 16,
					Usage: "number of tiles per row",
				},
				&cli.StringFlag{
					Name:  "palette",
					Usage: "palette data to color the tiles with",
				},
				subpaletteFlag,
				&cli.BoolFlag{
					Name:  "trns",
					Usage: "make palette entry 0 transparent",
				},
				scaleFlag,
				outputFlag,
			),
			Action: chr2png,
		},
		{
			Name:      "png2chr",
			Usage:     "Convert an image to tile data",
			ArgsUsage: "FILE",
			Flags: flags(
				&cli.BoolFlag{
					Name:  "dither",
					Usage: "dither truecolor images while reducing colors",
				},
				&cli.StringFlag{
					Name:  "palette-output",
					Usage: "also write the image palette to this file",
				},
				outputFlag,
			),
			Action: png2chr,
		},
		{
			Name:      "pal2png",
			Usage:     "Render palette data as a PNG image",
			ArgsUsage: "FILE",
			Flags: flags(
				subpaletteFlag,
				&cli.BoolFlag{
					Name:  "full",
					Usage: "render every palette in the file",
				},
				scaleFlag,
				outputFlag,
			),
			Action: pal2png,
		},
		{
			Name:      "import",
			Usage:     "Import descriptor and profile definitions from XML",
			ArgsUsage: "FILE...",
			Action:    importXML,
		},
		{
			Name:      "list",
			Usage:     "List known descriptors and profiles",
			ArgsUsage: "[chrdef|paldef|coldef|profile]",
			Action:    list,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
