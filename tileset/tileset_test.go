package tileset

import (
	"math/rand"
	"testing"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/gfxdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chrDef(t *testing.T, w, h int) *gfxdef.ChrDef {
	t.Helper()
	d, err := gfxdef.NewChrDef("test", w, h, 1, []int{0}, gfxdef.Sequence(0, 1, w), gfxdef.Sequence(0, w, h))
	require.NoError(t, err)
	return d
}

// Every pixel of tile n is n+1
func solidTiles(d *gfxdef.ChrDef, n int) []basic.Pixel {
	pix := make([]basic.Pixel, 0, n*d.Pixels())
	for i := 0; i < n; i++ {
		for j := 0; j < d.Pixels(); j++ {
			pix = append(pix, basic.Pixel(i+1))
		}
	}
	return pix
}

func TestRenderPartialRow(t *testing.T) {
	d := chrDef(t, 8, 8)

	m, err := Render(d, solidTiles(d, 5), 5, 4)
	require.NoError(t, err)
	assert.Equal(t, 32, m.Width)
	assert.Equal(t, 16, m.Height)
	assert.Nil(t, m.Palette)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			var want basic.Pixel
			switch {
			case y < 8:
				want = basic.Pixel(x/8 + 1)
			case x < 8:
				want = 5
			}
			require.Equal(t, want, m.At(x, y), "pixel (%d, %d)", x, y)
		}
	}
}

func TestRenderLayout(t *testing.T) {
	d := chrDef(t, 2, 2)
	// Two 2x2 tiles: 0 1 / 2 3 and 4 5 / 6 7
	pix := []basic.Pixel{0, 1, 2, 3, 4, 5, 6, 7}

	m, err := Render(d, pix, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []basic.Pixel{0, 1, 4, 5, 2, 3, 6, 7}, m.Pix)

	m, err = Render(d, pix, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Width)
	assert.Equal(t, 4, m.Height)
	assert.Equal(t, pix, m.Pix)
}

func TestRenderErrors(t *testing.T) {
	d := chrDef(t, 8, 8)

	_, err := Render(d, solidTiles(d, 1), 0, 4)
	assert.ErrorIs(t, err, gfxdef.ErrInvalidOperation)

	_, err = Render(d, solidTiles(d, 1), 1, 0)
	assert.ErrorIs(t, err, gfxdef.ErrInvalidOperation)

	_, err = Render(nil, nil, 1, 1)
	assert.ErrorIs(t, err, gfxdef.ErrInvalidOperation)

	_, err = Render(d, solidTiles(d, 1), 2, 4)
	assert.ErrorIs(t, err, gfxdef.ErrDataUnderrun)
}

func TestMake(t *testing.T) {
	d := chrDef(t, 2, 2)
	m := &basic.Image{Width: 4, Height: 2, Pix: []basic.Pixel{0, 1, 4, 5, 2, 3, 6, 7}}

	pix, err := Make(d, m)
	require.NoError(t, err)
	assert.Equal(t, []basic.Pixel{0, 1, 2, 3, 4, 5, 6, 7}, pix)

	// Partial tiles on the edges are dropped
	m = basic.NewImage(5, 3)
	pix, err = Make(d, m)
	require.NoError(t, err)
	assert.Len(t, pix, 2*d.Pixels())
	assert.Equal(t, 2, TileCount(d, 5, 3))

	_, err = Make(d, basic.NewImage(1, 8))
	assert.ErrorIs(t, err, gfxdef.ErrInvalidOperation)

	_, err = Make(d, nil)
	assert.ErrorIs(t, err, gfxdef.ErrInvalidOperation)
}

func TestMakeRenderInverse(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	d := chrDef(t, 8, 4)

	for _, size := range [][2]int{{8, 4}, {32, 16}, {24, 40}, {128, 8}} {
		m := basic.NewImage(size[0], size[1])
		for i := range m.Pix {
			m.Pix[i] = basic.Pixel(r.Intn(256))
		}

		pix, err := Make(d, m)
		require.NoError(t, err)

		count := TileCount(d, m.Width, m.Height)
		for _, rowSize := range []int{1, 3, size[0] / d.Width()} {
			rendered, err := Render(d, pix, count, rowSize)
			require.NoError(t, err)

			again, err := Make(d, rendered)
			require.NoError(t, err)
			assert.Equal(t, pix, again[:len(pix)], "%v row size %d", size, rowSize)
		}

		rendered, err := Render(d, pix, count, size[0]/d.Width())
		require.NoError(t, err)
		assert.Equal(t, m, rendered)
	}
}
