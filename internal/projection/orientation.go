package projection

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrOrientation is returned for orientation names other than "x" and "y".
var ErrOrientation = errors.New("unknown orientation")

// Orientation selects the axis a projection runs along.
type Orientation int

const (
	// ColumnSum sums down each column; the result has one value per x.
	ColumnSum Orientation = iota
	// RowSum sums across each row; the result has one value per y.
	RowSum
)

// ParseOrientation maps "x" to ColumnSum and "y" to RowSum.
// An empty string selects the default, ColumnSum.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "":
		return ColumnSum, nil
	case "y":
		return RowSum, nil
	default:
		return 0, fmt.Errorf("%w: %q (want x or y)", ErrOrientation, s)
	}
}

func (o Orientation) String() string {
	switch o {
	case ColumnSum:
		return "x"
	case RowSum:
		return "y"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// MarshalYAML stores the orientation as its axis name.
func (o Orientation) MarshalYAML() (interface{}, error) {
	if o != ColumnSum && o != RowSum {
		return nil, fmt.Errorf("%w: %d", ErrOrientation, int(o))
	}
	return o.String(), nil
}

// UnmarshalYAML accepts the same names as ParseOrientation.
func (o *Orientation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
