package projection

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/specprofile/internal/grid"
)

// Project reduces a scalar grid to one sum per column (ColumnSum) or one sum
// per row (RowSum). Sums are accumulated in float64.
func Project[T grid.Scalar](g grid.Grid[T], o Orientation) ([]float64, error) {
	if o != ColumnSum && o != RowSum {
		return nil, fmt.Errorf("%w: %d", ErrOrientation, int(o))
	}

	m, err := grid.Dense(g)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", o, err)
	}

	rows, cols := m.Dims()
	if o == ColumnSum {
		out := make([]float64, cols)
		col := make([]float64, rows)
		for j := range out {
			out[j] = floats.Sum(mat.Col(col, j, m))
		}
		return out, nil
	}

	out := make([]float64, rows)
	for i := range out {
		out[i] = floats.Sum(m.RawRowView(i))
	}
	return out, nil
}

// Total is the sum of every value in v.
func Total(v []float64) float64 {
	return floats.Sum(v)
}
