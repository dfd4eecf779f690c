package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ivlev/specprofile/internal/logger"
)

// ErrNoImages is returned when a directory holds no supported image files.
var ErrNoImages = errors.New("no images found")

// Extensions lists the image formats ImageSource can decode.
var Extensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

type ImageSource struct {
	paths []string
	log   zerolog.Logger
}

// NewImageSource accepts a single image file or a directory; directory
// entries are taken in name order.
func NewImageSource(path string, log zerolog.Logger) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && IsImage(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
		if len(paths) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrNoImages)
		}
	} else {
		paths = []string{path}
	}

	src := &ImageSource{paths: paths, log: logger.Component(log, "source")}
	src.log.Debug().Str("path", path).Int("frames", len(paths)).Msg("images found")
	return src, nil
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

func (s *ImageSource) GetPageDimensions(index int) (float64, float64, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	img, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return float64(img.Width), float64(img.Height), nil
}

// RenderPage decodes the file; dpi only matters for PDF sources.
func (s *ImageSource) RenderPage(index int, dpi int) (image.Image, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.paths[index], err)
	}
	s.log.Debug().Int("page", index).Str("format", format).Msg("frame decoded")
	return img, nil
}

// Name keeps the extension ("a.png" becomes "a_png") so frames that differ
// only by format get distinct output files.
func (s *ImageSource) Name(index int) string {
	base := filepath.Base(s.paths[index])
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext) + "_" + ext[1:]
}

func (s *ImageSource) Close() error {
	return nil
}
