package grid

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrEmpty is returned when an operation needs at least one cell.
	ErrEmpty = errors.New("grid is empty")
	// ErrRagged is returned when rows differ in length.
	ErrRagged = errors.New("grid rows have different lengths")
)

// Scalar lists the cell types that can be summed and rendered.
// Tuple cells (RGBA) have to be reduced with Map first.
type Scalar interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~float32 | ~float64
}

// Grid is a row-major 2D container of pixel values: g[y][x].
type Grid[T any] [][]T

// New allocates a zeroed grid of the given size.
func New[T any](width, height int) Grid[T] {
	g := make(Grid[T], height)
	for y := range g {
		g[y] = make([]T, width)
	}
	return g
}

// Height returns the number of rows.
func (g Grid[T]) Height() int {
	return len(g)
}

// Width returns the length of the first row, or 0 for a grid without rows.
func (g Grid[T]) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate checks that the grid has at least one cell and that every row
// has the same length.
func (g Grid[T]) Validate() error {
	if g.Height() == 0 || g.Width() == 0 {
		return fmt.Errorf("%dx%d: %w", g.Width(), g.Height(), ErrEmpty)
	}
	w := g.Width()
	for y, row := range g {
		if len(row) != w {
			return fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), w, ErrRagged)
		}
	}
	return nil
}

// Crop copies the cells inside r into a new grid. r is expressed in grid
// coordinates and must lie within the grid.
func (g Grid[T]) Crop(r image.Rectangle) (Grid[T], error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	bounds := image.Rect(0, 0, g.Width(), g.Height())
	if r.Empty() || !r.In(bounds) {
		return nil, fmt.Errorf("crop %v outside %v", r, bounds)
	}

	out := make(Grid[T], r.Dy())
	for y := range out {
		row := make([]T, r.Dx())
		copy(row, g[r.Min.Y+y][r.Min.X:r.Max.X])
		out[y] = row
	}
	return out, nil
}

// Map builds a new grid by applying f to every cell. It is the way to turn
// tuple cells into scalars before projecting.
func Map[T, S any](g Grid[T], f func(T) S) Grid[S] {
	out := make(Grid[S], len(g))
	for y, row := range g {
		mapped := make([]S, len(row))
		for x, v := range row {
			mapped[x] = f(v)
		}
		out[y] = mapped
	}
	return out
}
