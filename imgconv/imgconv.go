/*
Package imgconv converts between the basic image types and the standard
library image.Image interface, so that results can be handed to any image
encoder such as image/png.

Truecolor input is reduced to at most maxColors colors with a median cut
quantizer, optionally with error diffusion dithering.
*/
package imgconv

import (
	"errors"
	"image"
	"image/color"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/codec"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/esimov/colorquant"
	"golang.org/x/image/draw"
)

// NoTransparency disables marking a palette entry as transparent
const NoTransparency = -1

var (
	errNoImage   = errors.New("imgconv: no image")
	errNoPalette = errors.New("imgconv: image has no palette")
	errColors    = errors.New("imgconv: invalid number of colors")
)

// Floyd-Steinberg weights
var floydSteinberg = colorquant.Dither{
	[][]float32{
		{0, 0, 7.0 / 16.0},
		{3.0 / 16.0, 5.0 / 16.0, 1.0 / 16.0},
	},
}

// GrayPalette returns a palette of 1<<bitdepth evenly spaced grays from
// black to white, used when no palette is available
func GrayPalette(bitdepth int) basic.Palette {
	p := basic.NewPalette()
	if bitdepth <= 0 || bitdepth > 8 {
		return p
	}
	for i := 0; i < 1<<uint(bitdepth); i++ {
		v := codec.Expand(uint32(i), bitdepth)
		p[i] = basic.Color{R: v, G: v, B: v}
	}
	return p
}

// ToPaletted returns m as an *image.Paletted. The palette is padded to
// basic.PaletteSize entries so every pixel value is valid. If trns is not
// NoTransparency that entry is made fully transparent.
func ToPaletted(m *basic.Image, trns int) (*image.Paletted, error) {
	if m == nil {
		return nil, errNoImage
	}
	if m.Palette == nil {
		return nil, errNoPalette
	}

	cp := make(color.Palette, basic.PaletteSize)
	for i := range cp {
		var c basic.Color
		if i < len(m.Palette) {
			c = m.Palette[i]
		}
		if i == trns {
			cp[i] = color.NRGBA{R: c.R, G: c.G, B: c.B}
			continue
		}
		cp[i] = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}

	pm := image.NewPaletted(image.Rect(0, 0, m.Width, m.Height), cp)
	for i, p := range m.Pix {
		pm.Pix[i] = uint8(p)
	}
	return pm, nil
}

// FromRGB returns m as an *image.RGBA
func FromRGB(m *basic.RGBImage) (*image.RGBA, error) {
	if m == nil {
		return nil, errNoImage
	}
	rgba := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := m.At(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return rgba, nil
}

func toBasicColor(c color.Color) basic.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return basic.Color{R: n.R, G: n.G, B: n.B}
}

func validPalette(p color.Palette, n int) bool {
	if len(p) == 0 || len(p) > n {
		return false
	}
	for _, c := range p {
		if c == nil {
			return false
		}
	}
	return true
}

// quantized reduces m to at most n colors
func quantized(m image.Image, n int, dither bool) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	if dither {
		// Diffuse the error against the median cut palette
		dst := image.NewPaletted(b, append(color.Palette(nil), pm.Palette...))
		if dm, ok := floydSteinberg.Quantize(m, dst, len(dst.Palette), true, false).(*image.Paletted); ok && validPalette(dm.Palette, n) {
			return dm
		}
	}
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// usedColors returns one more than the highest palette index m uses
func usedColors(m *image.Paletted) int {
	b := m.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if i := int(m.ColorIndexAt(x, y)) + 1; i > n {
				n = i
			}
		}
	}
	return n
}

// FromImage converts m to an indexed image with an attached palette.
// Paletted images, or images whose color model is a palette, keep their
// indices provided every index used is below maxColors, however long the
// palette; anything else is quantized. Palette entries from maxColors
// onwards are dropped.
func FromImage(m image.Image, maxColors int, dither bool) (*basic.Image, error) {
	if m == nil {
		return nil, errNoImage
	}
	if maxColors <= 0 || maxColors > basic.PaletteSize {
		return nil, errColors
	}
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}
	if pm == nil || usedColors(pm) > maxColors {
		pm = quantized(m, maxColors, dither)
	}

	out := basic.NewImage(b.Dx(), b.Dy())
	out.Palette = basic.NewPalette()
	for i := 0; i < len(pm.Palette) && i < maxColors; i++ {
		out.Palette[i] = toBasicColor(pm.Palette[i])
	}

	// Adjust image so that top-left corner is at (0, 0)
	pb := pm.Bounds()
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			out.Set(x, y, basic.Pixel(pm.ColorIndexAt(pb.Min.X+x, pb.Min.Y+y)))
		}
	}

	return out, nil
}

// Scale enlarges m by an integer factor using nearest neighbour sampling.
// Paletted images stay paletted.
func Scale(m image.Image, factor int) image.Image {
	if factor <= 1 {
		return m
	}
	b := m.Bounds()
	r := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)

	var dst draw.Image
	if pm, ok := m.(*image.Paletted); ok {
		dst = image.NewPaletted(r, pm.Palette)
	} else {
		dst = image.NewRGBA(r)
	}
	draw.NearestNeighbor.Scale(dst, r, m, b, draw.Src, nil)
	return dst
}
