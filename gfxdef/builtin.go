package gfxdef

import "github.com/bodgit/chrgfx/basic"

// Sequence returns n offsets starting at start and increasing by step
func Sequence(start, step, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = start + i*step
	}
	return s
}

func mustChr(d *ChrDef, err error) *ChrDef {
	if err != nil {
		panic(err)
	}
	return d
}

func mustPal(d *PalDef, err error) *PalDef {
	if err != nil {
		panic(err)
	}
	return d
}

func mustRGB(d *RGBColDef, err error) ColDef {
	if err != nil {
		panic(err)
	}
	return d
}

func mustRef(d *RefColDef, err error) ColDef {
	if err != nil {
		panic(err)
	}
	return d
}

// bgr returns a single pass layout with blue, green and red fields of size
// bits packed from the least significant bit upwards, each field starting
// at a multiple of stride
func bgr(start, size, stride int) []RGBLayout {
	return []RGBLayout{
		{
			RedShift: start, RedSize: size,
			GreenShift: start + stride, GreenSize: size,
			BlueShift: start + stride*2, BlueSize: size,
		},
	}
}

var builtinChrDefs = []*ChrDef{
	mustChr(NewChrDef("1bpp", 8, 8, 1, []int{0}, Sequence(0, 1, 8), Sequence(0, 8, 8))),
	// Planes stored as separate 8 byte blocks
	mustChr(NewChrDef("nes", 8, 8, 2, []int{0, 64}, Sequence(0, 1, 8), Sequence(0, 8, 8))),
	// Planes interleaved per row
	mustChr(NewChrDef("gb", 8, 8, 2, []int{0, 8}, Sequence(0, 1, 8), Sequence(0, 16, 8))),
	// Two gb style tiles back to back
	mustChr(NewChrDef("snes", 8, 8, 4, []int{0, 8, 128, 136}, Sequence(0, 1, 8), Sequence(0, 16, 8))),
	mustChr(NewChrDef("sms", 8, 8, 4, []int{0, 8, 16, 24}, Sequence(0, 1, 8), Sequence(0, 32, 8))),
	// Packed nibbles, left pixel in the high nibble
	mustChr(NewChrDef("md", 8, 8, 4, []int{3, 2, 1, 0}, Sequence(0, 4, 8), Sequence(0, 32, 8))),
	// Packed nibbles, left pixel in the low nibble
	mustChr(NewChrDef("gba", 8, 8, 4, []int{3, 2, 1, 0}, []int{4, 0, 12, 8, 20, 16, 28, 24}, Sequence(0, 32, 8))),
	mustChr(NewChrDef("8bpp", 8, 8, 8, []int{7, 6, 5, 4, 3, 2, 1, 0}, Sequence(0, 8, 8), Sequence(0, 64, 8))),
}

var builtinPalDefs = []*PalDef{
	mustPal(NewPalDef("md", 16, 16, 0)),
	mustPal(NewPalDef("snes", 16, 16, 0)),
	mustPal(NewPalDef("gba", 16, 16, 0)),
	mustPal(NewPalDef("sms", 8, 16, 0)),
	mustPal(NewPalDef("gg", 16, 16, 0)),
	mustPal(NewPalDef("dmg", 2, 4, 0)),
}

var builtinColDefs = []ColDef{
	// 0000BBB0GGG0RRR0
	mustRGB(NewRGBColDef("md", 3, bgr(1, 3, 4), true)),
	// 0BBBBBGGGGGRRRRR
	mustRGB(NewRGBColDef("snes", 5, bgr(0, 5, 5), false)),
	mustRGB(NewRGBColDef("gba", 5, bgr(0, 5, 5), false)),
	// 00BBGGRR
	mustRGB(NewRGBColDef("sms", 2, bgr(0, 2, 2), false)),
	// 0000BBBBGGGGRRRR
	mustRGB(NewRGBColDef("gg", 4, bgr(0, 4, 4), false)),
	mustRef(NewRefColDef("dmg", []basic.Color{
		{R: 0xe0, G: 0xf8, B: 0xd0},
		{R: 0x88, G: 0xc0, B: 0x70},
		{R: 0x34, G: 0x68, B: 0x56},
		{R: 0x08, G: 0x18, B: 0x20},
	}, false)),
}

var builtinProfiles = []Profile{
	{ID: "1bpp", Description: "Generic 1bpp", ChrDef: "1bpp"},
	{ID: "nes", Description: "Nintendo Famicom / NES", ChrDef: "nes"},
	{ID: "gb", Description: "Nintendo Game Boy", ChrDef: "gb", PalDef: "dmg", ColDef: "dmg"},
	{ID: "snes", Description: "Nintendo Super Famicom / SNES", ChrDef: "snes", PalDef: "snes", ColDef: "snes"},
	{ID: "gba", Description: "Nintendo Game Boy Advance", ChrDef: "gba", PalDef: "gba", ColDef: "gba"},
	{ID: "sms", Description: "Sega Master System", ChrDef: "sms", PalDef: "sms", ColDef: "sms"},
	{ID: "gg", Description: "Sega Game Gear", ChrDef: "sms", PalDef: "gg", ColDef: "gg"},
	{ID: "md", Description: "Sega Mega Drive / Genesis", ChrDef: "md", PalDef: "md", ColDef: "md"},
}

// BuiltinChrDefs returns the compiled in tile descriptors
func BuiltinChrDefs() []*ChrDef { return append([]*ChrDef(nil), builtinChrDefs...) }

// BuiltinPalDefs returns the compiled in palette descriptors
func BuiltinPalDefs() []*PalDef { return append([]*PalDef(nil), builtinPalDefs...) }

// BuiltinColDefs returns the compiled in color descriptors
func BuiltinColDefs() []ColDef { return append([]ColDef(nil), builtinColDefs...) }

// BuiltinProfiles returns the compiled in profiles
func BuiltinProfiles() []Profile { return append([]Profile(nil), builtinProfiles...) }

// BuiltinProfile returns the compiled in profile called id
func BuiltinProfile(id string) (Profile, bool) {
	for _, p := range builtinProfiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}
