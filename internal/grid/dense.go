package grid

import (
	"gonum.org/v1/gonum/mat"
)

// Dense copies a scalar grid into a gonum matrix with one matrix row per
// grid row.
func Dense[T Scalar](g Grid[T]) (*mat.Dense, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	h, w := g.Height(), g.Width()
	data := make([]float64, 0, h*w)
	for _, row := range g {
		for _, v := range row {
			data = append(data, float64(v))
		}
	}
	return mat.NewDense(h, w, data), nil
}
