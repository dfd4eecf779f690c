// Package normalize rescales projections against their peak value.
package normalize

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty is returned for a sequence with no values.
	ErrEmpty = errors.New("normalize: empty sequence")
	// ErrZeroPeak is returned when the maximum is zero and division is undefined.
	ErrZeroPeak = errors.New("normalize: peak value is zero")
)

// Normalize divides every value by the maximum of v. The maximum maps to
// exactly 1.0. Only the peak is used, not the range, so negative inputs stay
// negative.
func Normalize(v []float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, ErrEmpty
	}
	peak := floats.Max(v)
	if peak == 0 {
		return nil, ErrZeroPeak
	}

	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / peak
	}
	return out, nil
}

// Peak returns the index and value of the first maximum in v.
func Peak(v []float64) (int, float64, error) {
	if len(v) == 0 {
		return 0, 0, ErrEmpty
	}
	i := floats.MaxIdx(v)
	return i, v[i], nil
}
