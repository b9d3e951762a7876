package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
)

type xmlGfxDefs struct {
	XMLName  xml.Name     `xml:"GfxDefs"`
	ChrDefs  []xmlChrDef  `xml:"ChrDef"`
	PalDefs  []xmlPalDef  `xml:"PalDef"`
	ColDefs  []xmlColDef  `xml:"ColDef"`
	Profiles []xmlProfile `xml:"Profile"`
}

type xmlChrDef struct {
	ID           string `xml:"ID,attr"`
	Width        int    `xml:"Width,attr"`
	Height       int    `xml:"Height,attr"`
	Bitdepth     int    `xml:"Bitdepth,attr"`
	PlaneOffsets string `xml:"PlaneOffsets"`
	PixelOffsets string `xml:"PixelOffsets"`
	RowOffsets   string `xml:"RowOffsets"`
}

type xmlPalDef struct {
	ID            string `xml:"ID,attr"`
	EntryDatasize int    `xml:"EntryDatasize,attr"`
	Length        int    `xml:"Length,attr"`
	Datasize      int    `xml:"Datasize,attr"`
}

type xmlLayout struct {
	RedShift   int `xml:"RedShift,attr"`
	RedSize    int `xml:"RedSize,attr"`
	GreenShift int `xml:"GreenShift,attr"`
	GreenSize  int `xml:"GreenSize,attr"`
	BlueShift  int `xml:"BlueShift,attr"`
	BlueSize   int `xml:"BlueSize,attr"`
}

type xmlColDef struct {
	ID        string      `xml:"ID,attr"`
	Type      string      `xml:"Type,attr"`
	Bitdepth  int         `xml:"Bitdepth,attr"`
	BigEndian bool        `xml:"BigEndian,attr"`
	Layout    []xmlLayout `xml:"Layout"`
	Colors    []string    `xml:"Color"`
}

type xmlProfile struct {
	ID          string `xml:"ID,attr"`
	Description string `xml:"Description"`
	ChrDef      string `xml:"ChrDef,attr"`
	PalDef      string `xml:"PalDef,attr"`
	ColDef      string `xml:"ColDef,attr"`
}

func (x xmlChrDef) chrDef() (*gfxdef.ChrDef, error) {
	var offsets [3][]int
	for i, s := range []string{x.PlaneOffsets, x.PixelOffsets, x.RowOffsets} {
		v, err := parseInts(s)
		if err != nil {
			return nil, fmt.Errorf("catalog: chrdef %q: %v: %w", x.ID, err, gfxdef.ErrConfiguration)
		}
		offsets[i] = v
	}
	return gfxdef.NewChrDef(x.ID, x.Width, x.Height, x.Bitdepth, offsets[0], offsets[1], offsets[2])
}

func (x xmlColDef) colDef() (gfxdef.ColDef, error) {
	switch x.Type {
	case colTypeRGB, "":
		layout := make([]gfxdef.RGBLayout, len(x.Layout))
		for i, l := range x.Layout {
			layout[i] = gfxdef.RGBLayout(l)
		}
		return gfxdef.NewRGBColDef(x.ID, x.Bitdepth, layout, x.BigEndian)
	case colTypeRef:
		table := make([]basic.Color, len(x.Colors))
		for i, s := range x.Colors {
			c, err := parseColor(s)
			if err != nil {
				return nil, fmt.Errorf("catalog: coldef %q: %v: %w", x.ID, err, gfxdef.ErrConfiguration)
			}
			table[i] = c
		}
		return gfxdef.NewRefColDef(x.ID, table, x.BigEndian)
	default:
		return nil, fmt.Errorf("catalog: coldef %q: unknown type %q: %w", x.ID, x.Type, gfxdef.ErrConfiguration)
	}
}

// Import reads a GfxDefs XML document from r. Every definition is
// validated before anything is written and the whole document is stored
// in a single transaction, replacing entries with the same ids.
func (c *Catalog) Import(r io.Reader) (err error) {
	var x xmlGfxDefs
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return err
	}

	chrs := make([]*gfxdef.ChrDef, 0, len(x.ChrDefs))
	for _, xc := range x.ChrDefs {
		d, err := xc.chrDef()
		if err != nil {
			return err
		}
		chrs = append(chrs, d)
	}

	pals := make([]*gfxdef.PalDef, 0, len(x.PalDefs))
	for _, xp := range x.PalDefs {
		d, err := gfxdef.NewPalDef(xp.ID, xp.EntryDatasize, xp.Length, xp.Datasize)
		if err != nil {
			return err
		}
		pals = append(pals, d)
	}

	cols := make([]gfxdef.ColDef, 0, len(x.ColDefs))
	for _, xc := range x.ColDefs {
		d, err := xc.colDef()
		if err != nil {
			return err
		}
		cols = append(cols, d)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	const verb = "INSERT OR REPLACE"
	for _, d := range chrs {
		if err = insertChrDef(tx, verb, d); err != nil {
			return err
		}
	}
	for _, d := range pals {
		if err = insertPalDef(tx, verb, d); err != nil {
			return err
		}
	}
	for _, d := range cols {
		if err = insertColDef(tx, verb, d); err != nil {
			return err
		}
	}
	for _, p := range x.Profiles {
		if err = insertProfile(tx, verb, gfxdef.Profile(p)); err != nil {
			return err
		}
	}
	return nil
}

// ImportXML imports the GfxDefs XML document stored in file
func (c *Catalog) ImportXML(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Import(f)
}
