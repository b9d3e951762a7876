/*
Package basic implements the hardware-independent representation that every
codec converges on: 8-bit RGB colors, 256 entry palettes and images made of
8-bit palette indices.
*/
package basic

import "fmt"

// PaletteSize is the number of entries in every Palette
const PaletteSize = 256

// Color is an 8-bit per channel RGB triplet
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) | uint32(c.R)<<8
	g = uint32(c.G) | uint32(c.G)<<8
	b = uint32(c.B) | uint32(c.B)<<8
	a = 0xffff
	return
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Pixel is an index into a Palette
type Pixel uint8

// Palette is an ordered sequence of colors indexed by pixel value
type Palette []Color

// NewPalette returns a full palette with every entry black
func NewPalette() Palette {
	return make(Palette, PaletteSize)
}

// Image is a rectangular bitmap of indexed pixels with an optional palette
type Image struct {
	Width   int
	Height  int
	Pix     []Pixel
	Palette Palette
}

// NewImage returns a w by h image with every pixel set to 0 and no palette
func NewImage(w, h int) *Image {
	return &Image{
		Width:  w,
		Height: h,
		Pix:    make([]Pixel, w*h),
	}
}

// PixOffset returns the index of the pixel at (x, y)
func (m *Image) PixOffset(x, y int) int {
	return y*m.Width + x
}

// At returns the pixel at (x, y)
func (m *Image) At(x, y int) Pixel {
	return m.Pix[m.PixOffset(x, y)]
}

// Set stores p at (x, y)
func (m *Image) Set(x, y int, p Pixel) {
	m.Pix[m.PixOffset(x, y)] = p
}

// RGBImage is a rectangular bitmap of direct RGB colors
type RGBImage struct {
	Width  int
	Height int
	Pix    []Color
}

// NewRGBImage returns a w by h image with every pixel black
func NewRGBImage(w, h int) *RGBImage {
	return &RGBImage{
		Width:  w,
		Height: h,
		Pix:    make([]Color, w*h),
	}
}

// Set stores c at (x, y)
func (m *RGBImage) Set(x, y int, c Color) {
	m.Pix[y*m.Width+x] = c
}

// At returns the color at (x, y)
func (m *RGBImage) At(x, y int) Color {
	return m.Pix[y*m.Width+x]
}
