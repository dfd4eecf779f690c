package export

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SaveImage encodes img to path as png, tiff (deflate) or bmp.
func SaveImage(img image.Image, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case "png", "":
		err = png.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		err = fmt.Errorf("unsupported image format %q", format)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Extension returns the file suffix for an image format.
func Extension(format string) string {
	switch format {
	case "tiff":
		return ".tiff"
	case "bmp":
		return ".bmp"
	default:
		return ".png"
	}
}
