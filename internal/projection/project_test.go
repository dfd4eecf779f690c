package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/specprofile/internal/grid"
)

func TestProjectSmallGrid(t *testing.T) {
	g := grid.Grid[int]{{1, 2}, {3, 4}}

	cols, err := Project(g, ColumnSum)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, cols)

	rows, err := Project(g, RowSum)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, rows)
}

func TestProjectLengthsAndTotals(t *testing.T) {
	g := grid.New[uint8](5, 3)
	cellSum := 0.0
	for y := range g {
		for x := range g[y] {
			g[y][x] = uint8(x*7 + y*31)
			cellSum += float64(g[y][x])
		}
	}

	cols, err := Project(g, ColumnSum)
	require.NoError(t, err)
	rows, err := Project(g, RowSum)
	require.NoError(t, err)

	assert.Len(t, cols, 5)
	assert.Len(t, rows, 3)
	assert.Equal(t, cellSum, Total(cols))
	assert.Equal(t, cellSum, Total(rows))
}

func TestProjectNoOverflow(t *testing.T) {
	g := grid.New[uint8](1, 4)
	for y := range g {
		g[y][0] = 255
	}

	cols, err := Project(g, ColumnSum)
	require.NoError(t, err)
	assert.Equal(t, []float64{1020}, cols)
}

func TestProjectErrors(t *testing.T) {
	tests := []struct {
		name string
		g    grid.Grid[int]
		o    Orientation
		want error
	}{
		{"no rows", grid.Grid[int]{}, ColumnSum, grid.ErrEmpty},
		{"empty rows", grid.Grid[int]{{}, {}}, RowSum, grid.ErrEmpty},
		{"ragged", grid.Grid[int]{{1, 2}, {3}}, ColumnSum, grid.ErrRagged},
		{"bad orientation", grid.Grid[int]{{1}}, Orientation(7), ErrOrientation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(tt.g, tt.o)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"x", ColumnSum, false},
		{"", ColumnSum, false}, // default
		{"Y", RowSum, false},
		{" y ", RowSum, false},
		{"z", 0, true},
		{"rows", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOrientation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrientationYAML(t *testing.T) {
	var doc struct {
		Orientation Orientation `yaml:"orientation"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("orientation: y\n"), &doc))
	assert.Equal(t, RowSum, doc.Orientation)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	doc.Orientation = ColumnSum
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, RowSum, doc.Orientation)

	assert.Error(t, yaml.Unmarshal([]byte("orientation: z\n"), &doc))
}
