package grid

import (
	"image"
	"image/color"
)

// RGBA is a non-premultiplied color tuple as stored in a multi-channel grid.
type RGBA [4]uint8

// Luma reduces the tuple to 8-bit luminance using the ITU-R 601-2 weights.
func (c RGBA) Luma() uint8 {
	l := (299*uint32(c[0]) + 587*uint32(c[1]) + 114*uint32(c[2]) + 500) / 1000
	return uint8(l)
}

// FromImage walks the image row by row and stores cell(pixel) at grid[y][x].
// Coordinates are relative to img.Bounds().Min.
func FromImage[T any](img image.Image, cell func(color.Color) T) Grid[T] {
	b := img.Bounds()
	g := make(Grid[T], b.Dy())
	for y := range g {
		row := make([]T, b.Dx())
		for x := range row {
			row[x] = cell(img.At(b.Min.X+x, b.Min.Y+y))
		}
		g[y] = row
	}
	return g
}

// Gray extracts 8-bit luminance cells.
func Gray(img image.Image) Grid[uint8] {
	if gray, ok := img.(*image.Gray); ok {
		b := gray.Bounds()
		g := make(Grid[uint8], b.Dy())
		for y := range g {
			off := gray.PixOffset(b.Min.X, b.Min.Y+y)
			row := make([]uint8, b.Dx())
			copy(row, gray.Pix[off:off+b.Dx()])
			g[y] = row
		}
		return g
	}
	return FromImage(img, func(c color.Color) uint8 {
		return color.GrayModel.Convert(c).(color.Gray).Y
	})
}

// Gray16 extracts 16-bit luminance cells, keeping the full depth of
// 16-bit sources such as camera TIFF frames.
func Gray16(img image.Image) Grid[uint16] {
	return FromImage(img, func(c color.Color) uint16 {
		return color.Gray16Model.Convert(c).(color.Gray16).Y
	})
}

// Colors extracts one RGBA tuple per pixel.
func Colors(img image.Image) Grid[RGBA] {
	return FromImage(img, func(c color.Color) RGBA {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		return RGBA{n.R, n.G, n.B, n.A}
	})
}

// Extract picks the cell type from the image model: Grid[uint8] for 8-bit
// gray, Grid[uint16] for 16-bit gray and Grid[RGBA] for everything else.
func Extract(img image.Image) any {
	switch img.ColorModel() {
	case color.GrayModel:
		return Gray(img)
	case color.Gray16Model:
		return Gray16(img)
	default:
		return Colors(img)
	}
}
