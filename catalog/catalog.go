/*
Package catalog implements a SQLite backed store of named graphics
descriptors and the profiles that combine them.

The catalog can be seeded with the built-in definitions from package gfxdef
and extended by importing XML documents. Everything read back out of the
catalog is validated by the gfxdef constructors.
*/
package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/chrgfx/gfxdef"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no descriptor or profile has the given id
var ErrNotFound = errors.New("not found")

// Kind selects one of the descriptor tables
type Kind string

// The descriptor kinds
const (
	KindChrDef  Kind = "chrdef"
	KindPalDef  Kind = "paldef"
	KindColDef  Kind = "coldef"
	KindProfile Kind = "profile"
)

const (
	colTypeRGB = "rgb"
	colTypeRef = "ref"
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS chrdef (id TEXT PRIMARY KEY NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, bitdepth INTEGER NOT NULL, plane_offsets TEXT NOT NULL, pixel_offsets TEXT NOT NULL, row_offsets TEXT NOT NULL)",
	"CREATE TABLE IF NOT EXISTS paldef (id TEXT PRIMARY KEY NOT NULL, entry_datasize INTEGER NOT NULL, length INTEGER NOT NULL, datasize INTEGER NOT NULL)",
	"CREATE TABLE IF NOT EXISTS coldef (id TEXT PRIMARY KEY NOT NULL, type TEXT NOT NULL CHECK (type IN ('rgb', 'ref')), bitdepth INTEGER, layout TEXT, ref_table TEXT, big_endian INTEGER NOT NULL)",
	"CREATE TABLE IF NOT EXISTS profile (id TEXT PRIMARY KEY NOT NULL, description TEXT NOT NULL, chrdef_id TEXT, paldef_id TEXT, coldef_id TEXT, FOREIGN KEY(chrdef_id) REFERENCES chrdef(id), FOREIGN KEY(paldef_id) REFERENCES paldef(id), FOREIGN KEY(coldef_id) REFERENCES coldef(id))",
}

// Catalog is the descriptor database
type Catalog struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// New opens, creating if necessary, the catalog stored in file
func New(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database
func (c *Catalog) Close() error {
	return c.db.Close()
}

func insertChrDef(e execer, verb string, d *gfxdef.ChrDef) error {
	_, err := e.Exec(verb+" INTO chrdef (id, width, height, bitdepth, plane_offsets, pixel_offsets, row_offsets) VALUES (?, ?, ?, ?, ?, ?, ?)",
		d.ID(), d.Width(), d.Height(), d.Bitdepth(), formatInts(d.PlaneOffsets()), formatInts(d.PixelOffsets()), formatInts(d.RowOffsets()))
	return err
}

func insertPalDef(e execer, verb string, d *gfxdef.PalDef) error {
	_, err := e.Exec(verb+" INTO paldef (id, entry_datasize, length, datasize) VALUES (?, ?, ?, ?)",
		d.ID(), d.EntryDatasize(), d.Length(), d.Datasize())
	return err
}

func insertColDef(e execer, verb string, d gfxdef.ColDef) error {
	var (
		typ      string
		bitdepth sql.NullInt64
		layout   sql.NullString
		table    sql.NullString
	)
	switch d := d.(type) {
	case *gfxdef.RGBColDef:
		typ = colTypeRGB
		bitdepth = sql.NullInt64{Int64: int64(d.Bitdepth()), Valid: true}
		layout = sql.NullString{String: formatLayout(d.Layout()), Valid: true}
	case *gfxdef.RefColDef:
		typ = colTypeRef
		table = sql.NullString{String: formatTable(d.Table()), Valid: true}
	default:
		return fmt.Errorf("catalog: unsupported coldef %T: %w", d, gfxdef.ErrInvalidOperation)
	}
	_, err := e.Exec(verb+" INTO coldef (id, type, bitdepth, layout, ref_table, big_endian) VALUES (?, ?, ?, ?, ?, ?)",
		d.ID(), typ, bitdepth, layout, table, d.BigEndian())
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func insertProfile(e execer, verb string, p gfxdef.Profile) error {
	if p.ID == "" {
		return errors.New("catalog: profile has no id")
	}
	_, err := e.Exec(verb+" INTO profile (id, description, chrdef_id, paldef_id, coldef_id) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.Description, nullString(p.ChrDef), nullString(p.PalDef), nullString(p.ColDef))
	return err
}

// LoadBuiltins adds the built-in descriptors and profiles, leaving any
// existing entries with the same id untouched
func (c *Catalog) LoadBuiltins() (err error) {
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

	const verb = "INSERT OR IGNORE"
	for _, d := range gfxdef.BuiltinChrDefs() {
		if err = insertChrDef(tx, verb, d); err != nil {
			return err
		}
	}
	for _, d := range gfxdef.BuiltinPalDefs() {
		if err = insertPalDef(tx, verb, d); err != nil {
			return err
		}
	}
	for _, d := range gfxdef.BuiltinColDefs() {
		if err = insertColDef(tx, verb, d); err != nil {
			return err
		}
	}
	for _, p := range gfxdef.BuiltinProfiles() {
		if err = insertProfile(tx, verb, p); err != nil {
			return err
		}
	}
	return nil
}

// AddChrDef stores d, replacing any tile descriptor with the same id
func (c *Catalog) AddChrDef(d *gfxdef.ChrDef) error {
	return insertChrDef(c.db, "INSERT OR REPLACE", d)
}

// AddPalDef stores d, replacing any palette descriptor with the same id
func (c *Catalog) AddPalDef(d *gfxdef.PalDef) error {
	return insertPalDef(c.db, "INSERT OR REPLACE", d)
}

// AddColDef stores d, replacing any color descriptor with the same id
func (c *Catalog) AddColDef(d gfxdef.ColDef) error {
	return insertColDef(c.db, "INSERT OR REPLACE", d)
}

// AddProfile stores p, replacing any profile with the same id. Every
// descriptor it names must already exist.
func (c *Catalog) AddProfile(p gfxdef.Profile) error {
	return insertProfile(c.db, "INSERT OR REPLACE", p)
}

// ChrDef returns the tile descriptor called id
func (c *Catalog) ChrDef(id string) (*gfxdef.ChrDef, error) {
	var width, height, bitdepth int
	var planes, pixels, rows string
	switch err := c.db.QueryRow("SELECT width, height, bitdepth, plane_offsets, pixel_offsets, row_offsets FROM chrdef WHERE id = ?", id).Scan(&width, &height, &bitdepth, &planes, &pixels, &rows); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("catalog: chrdef %q: %w", id, ErrNotFound)
	case nil:
	default:
		return nil, err
	}

	var offsets [3][]int
	for i, s := range []string{planes, pixels, rows} {
		v, err := parseInts(s)
		if err != nil {
			return nil, fmt.Errorf("catalog: chrdef %q: %v: %w", id, err, gfxdef.ErrConfiguration)
		}
		offsets[i] = v
	}
	return gfxdef.NewChrDef(id, width, height, bitdepth, offsets[0], offsets[1], offsets[2])
}

// PalDef returns the palette descriptor called id
func (c *Catalog) PalDef(id string) (*gfxdef.PalDef, error) {
	var entryDatasize, length, datasize int
	switch err := c.db.QueryRow("SELECT entry_datasize, length, datasize FROM paldef WHERE id = ?", id).Scan(&entryDatasize, &length, &datasize); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("catalog: paldef %q: %w", id, ErrNotFound)
	case nil:
		return gfxdef.NewPalDef(id, entryDatasize, length, datasize)
	default:
		return nil, err
	}
}

// ColDef returns the color descriptor called id
func (c *Catalog) ColDef(id string) (gfxdef.ColDef, error) {
	var (
		typ       string
		bitdepth  sql.NullInt64
		layout    sql.NullString
		table     sql.NullString
		bigEndian bool
	)
	switch err := c.db.QueryRow("SELECT type, bitdepth, layout, ref_table, big_endian FROM coldef WHERE id = ?", id).Scan(&typ, &bitdepth, &layout, &table, &bigEndian); err {
	case sql.ErrNoRows:
		return nil, fmt.Errorf("catalog: coldef %q: %w", id, ErrNotFound)
	case nil:
	default:
		return nil, err
	}

	switch typ {
	case colTypeRGB:
		l, err := parseLayout(layout.String)
		if err != nil {
			return nil, fmt.Errorf("catalog: coldef %q: %v: %w", id, err, gfxdef.ErrConfiguration)
		}
		return gfxdef.NewRGBColDef(id, int(bitdepth.Int64), l, bigEndian)
	case colTypeRef:
		t, err := parseTable(table.String)
		if err != nil {
			return nil, fmt.Errorf("catalog: coldef %q: %v: %w", id, err, gfxdef.ErrConfiguration)
		}
		return gfxdef.NewRefColDef(id, t, bigEndian)
	default:
		return nil, fmt.Errorf("catalog: coldef %q: unknown type %q: %w", id, typ, gfxdef.ErrConfiguration)
	}
}

// Profile returns the profile called id
func (c *Catalog) Profile(id string) (gfxdef.Profile, error) {
	var description string
	var chr, pal, col sql.NullString
	switch err := c.db.QueryRow("SELECT description, chrdef_id, paldef_id, coldef_id FROM profile WHERE id = ?", id).Scan(&description, &chr, &pal, &col); err {
	case sql.ErrNoRows:
		return gfxdef.Profile{}, fmt.Errorf("catalog: profile %q: %w", id, ErrNotFound)
	case nil:
		return gfxdef.Profile{
			ID:          id,
			Description: description,
			ChrDef:      chr.String,
			PalDef:      pal.String,
			ColDef:      col.String,
		}, nil
	default:
		return gfxdef.Profile{}, err
	}
}

// IDs returns the sorted ids of every entry of the given kind
func (c *Catalog) IDs(kind Kind) ([]string, error) {
	switch kind {
	case KindChrDef, KindPalDef, KindColDef, KindProfile:
	default:
		return nil, fmt.Errorf("catalog: unknown kind %q", kind)
	}

	rows, err := c.db.Query("SELECT id FROM " + string(kind) + " ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Defs holds the descriptors a profile resolves to. Fields the profile
// leaves unset are nil.
type Defs struct {
	ChrDef *gfxdef.ChrDef
	PalDef *gfxdef.PalDef
	ColDef gfxdef.ColDef
}

// Resolve looks up every descriptor named by p
func (c *Catalog) Resolve(p gfxdef.Profile) (*Defs, error) {
	var (
		d   Defs
		err error
	)
	if p.ChrDef != "" {
		if d.ChrDef, err = c.ChrDef(p.ChrDef); err != nil {
			return nil, err
		}
	}
	if p.PalDef != "" {
		if d.PalDef, err = c.PalDef(p.PalDef); err != nil {
			return nil, err
		}
	}
	if p.ColDef != "" {
		if d.ColDef, err = c.ColDef(p.ColDef); err != nil {
			return nil, err
		}
	}
	return &d, nil
}
