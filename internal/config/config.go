package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/specprofile/internal/projection"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	InputPath   string                 `yaml:"input"`
	OutputDir   string                 `yaml:"output_dir"`
	Orientation projection.Orientation `yaml:"orientation"`
	Region      Region                 `yaml:"region"`
	DPI         int                    `yaml:"dpi"`
	Workers     int                    `yaml:"workers"`
	Plot        bool                   `yaml:"plot"`
	Chart       bool                   `yaml:"chart"`
	SaveGray    bool                   `yaml:"save_gray"`
	ImageFormat string                 `yaml:"image_format"`
	LogLevel    string                 `yaml:"log_level"`
	ShowStats   bool                   `yaml:"show_stats"`

	BuildVersion string `yaml:"-"`
}

// Region is a crop rectangle in pixel coordinates. A zero Region means the
// whole frame.
type Region struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Region) IsZero() bool {
	return r == Region{}
}

func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

// ParseRegion reads "x,y,w,h".
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("%w: region %q, want x,y,w,h", ErrInvalid, s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("%w: region %q: %v", ErrInvalid, s, err)
		}
		v[i] = n
	}
	return Region{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

func Default() *Config {
	return &Config{
		OutputDir:   "output",
		Orientation: projection.ColumnSum,
		DPI:         300,
		Workers:     runtime.NumCPU(),
		Plot:        true,
		ImageFormat: "png",
		LogLevel:    "info",
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is empty", ErrInvalid)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %d", ErrInvalid, c.DPI)
	}
	r := c.Region
	if r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0 {
		return fmt.Errorf("%w: negative region %s", ErrInvalid, r)
	}
	if !r.IsZero() && (r.W == 0 || r.H == 0) {
		return fmt.Errorf("%w: region %s has no area", ErrInvalid, r)
	}
	switch c.ImageFormat {
	case "png", "tiff", "bmp":
	default:
		return fmt.Errorf("%w: image_format %q (png, tiff, bmp)", ErrInvalid, c.ImageFormat)
	}
	return nil
}
