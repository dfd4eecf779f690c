package render

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/ivlev/specprofile/internal/grid"
)

// ToGray builds an 8-bit grayscale image with pixel (x, y) = g[y][x].
// Values are rounded to the nearest integer and clamped to 0..255.
func ToGray[T grid.Scalar](g grid.Grid[T]) (*image.Gray, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	i := 0
	for _, row := range g {
		for _, v := range row {
			img.Pix[i] = uint8(clamp(float64(v), math.MaxUint8))
			i++
		}
	}
	return img, nil
}

// ToGray16 is ToGray for 16-bit output, clamped to 0..65535.
func ToGray16[T grid.Scalar](g grid.Grid[T]) (*image.Gray16, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	img := image.NewGray16(image.Rect(0, 0, g.Width(), g.Height()))
	i := 0
	for _, row := range g {
		for _, v := range row {
			binary.BigEndian.PutUint16(img.Pix[i:], uint16(clamp(float64(v), math.MaxUint16)))
			i += 2
		}
	}
	return img, nil
}

func clamp(v, limit float64) float64 {
	v = math.Round(v)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
