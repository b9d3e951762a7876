package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
)

// Offsets, layouts and tables are stored as short text columns so the
// catalog stays readable with the sqlite3 shell.

func formatInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, " ")
}

func parseInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	v := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		v[i] = n
	}
	return v, nil
}

func formatLayout(layout []gfxdef.RGBLayout) string {
	s := make([]string, len(layout))
	for i, l := range layout {
		s[i] = formatInts([]int{l.RedShift, l.RedSize, l.GreenShift, l.GreenSize, l.BlueShift, l.BlueSize})
	}
	return strings.Join(s, ";")
}

func parseLayout(s string) ([]gfxdef.RGBLayout, error) {
	var layout []gfxdef.RGBLayout
	for _, pass := range strings.Split(s, ";") {
		if strings.TrimSpace(pass) == "" {
			continue
		}
		v, err := parseInts(pass)
		if err != nil {
			return nil, err
		}
		if len(v) != 6 {
			return nil, fmt.Errorf("layout pass %q: want 6 values, got %d", pass, len(v))
		}
		layout = append(layout, gfxdef.RGBLayout{
			RedShift: v[0], RedSize: v[1],
			GreenShift: v[2], GreenSize: v[3],
			BlueShift: v[4], BlueSize: v[5],
		})
	}
	return layout, nil
}

func formatColor(c basic.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseColor(s string) (basic.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return basic.Color{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return basic.Color{}, err
	}
	return basic.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func formatTable(table []basic.Color) string {
	s := make([]string, len(table))
	for i, c := range table {
		s[i] = formatColor(c)
	}
	return strings.Join(s, " ")
}

func parseTable(s string) ([]basic.Color, error) {
	fields := strings.Fields(s)
	table := make([]basic.Color, len(fields))
	for i, f := range fields {
		c, err := parseColor(f)
		if err != nil {
			return nil, err
		}
		table[i] = c
	}
	return table, nil
}
