package grid

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayDimensionsAndOrder(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(10*y + x)})
		}
	}

	g := Gray(img)

	want := Grid[uint8]{
		{0, 1, 2},
		{10, 11, 12},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("Gray() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
}

func TestGrayOffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates.
	parent := image.NewGray(image.Rect(0, 0, 4, 4))
	parent.SetGray(2, 3, color.Gray{Y: 200})
	sub := parent.SubImage(image.Rect(1, 2, 4, 4)).(*image.Gray)

	g := Gray(sub)

	require.Equal(t, 2, g.Height())
	require.Equal(t, 3, g.Width())
	assert.Equal(t, uint8(200), g[1][1])
	assert.Equal(t, uint8(0), g[0][0])
}

func TestFromImageMatchesAt(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 9, 8))
	for y := 5; y < 8; y++ {
		for x := 5; x < 9; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x * y), A: 255})
		}
	}

	g := Colors(img)

	require.Equal(t, 3, g.Height())
	for y := range g {
		require.Len(t, g[y], 4)
		for x := range g[y] {
			c := img.NRGBAAt(5+x, 5+y)
			assert.Equal(t, RGBA{c.R, c.G, c.B, c.A}, g[y][x], "cell (%d,%d)", x, y)
		}
	}
}

func TestZeroSizedImage(t *testing.T) {
	tests := []struct {
		name   string
		rect   image.Rectangle
		height int
	}{
		{"zero width", image.Rect(0, 0, 0, 3), 3},
		{"zero height", image.Rect(0, 0, 3, 0), 0},
		{"empty", image.Rect(0, 0, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Gray(image.NewRGBA(tt.rect))
			assert.Equal(t, tt.height, g.Height())
			assert.Equal(t, 0, g.Width())
			assert.ErrorIs(t, g.Validate(), ErrEmpty)
		})
	}
}

func TestExtractPicksCellType(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	_, ok := Extract(image.NewGray(rect)).(Grid[uint8])
	assert.True(t, ok, "gray image should give uint8 cells")

	_, ok = Extract(image.NewGray16(rect)).(Grid[uint16])
	assert.True(t, ok, "gray16 image should give uint16 cells")

	_, ok = Extract(image.NewRGBA(rect)).(Grid[RGBA])
	assert.True(t, ok, "rgba image should give tuple cells")
}

func TestGray16KeepsDepth(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 1, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 4097})

	assert.Equal(t, uint16(4097), Gray16(img)[0][0])
}

func TestValidateRagged(t *testing.T) {
	g := Grid[int]{{1, 2}, {3}}
	assert.ErrorIs(t, g.Validate(), ErrRagged)
	assert.NoError(t, Grid[int]{{1, 2}, {3, 4}}.Validate())
}

func TestCrop(t *testing.T) {
	g := Grid[int]{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}

	out, err := g.Crop(image.Rect(1, 1, 3, 3))
	require.NoError(t, err)
	if diff := cmp.Diff(Grid[int]{{5, 6}, {8, 9}}, out); diff != "" {
		t.Errorf("Crop() mismatch (-want +got):\n%s", diff)
	}

	// The crop owns its cells.
	out[0][0] = 50
	assert.Equal(t, 5, g[1][1])

	_, err = g.Crop(image.Rect(2, 2, 4, 4))
	assert.Error(t, err)
	_, err = g.Crop(image.Rect(1, 1, 1, 1))
	assert.Error(t, err)
}

func TestMapLuma(t *testing.T) {
	g := Grid[RGBA]{
		{{255, 255, 255, 255}, {0, 0, 0, 255}},
		{{255, 0, 0, 255}, {0, 255, 0, 255}},
	}

	got := Map(g, RGBA.Luma)

	want := Grid[uint8]{{255, 0}, {76, 150}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

func TestDense(t *testing.T) {
	d, err := Dense(Grid[uint8]{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, d.At(1, 2))
	assert.Equal(t, 2.0, d.At(0, 1))

	_, err = Dense(Grid[uint8]{})
	assert.ErrorIs(t, err, ErrEmpty)
}
