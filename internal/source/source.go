package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"

	"github.com/ivlev/specprofile/internal/logger"
)

// Source yields the frames a profile run works on: image files or PDF pages.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Name(index int) string
	Close() error
}

// Open returns a PDF source for .pdf paths and an image source otherwise.
func Open(path string, log zerolog.Logger) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path, log)
	}
	return NewImageSource(path, log)
}

type FitzPDFSource struct {
	doc  *fitz.Document
	path string
	log  zerolog.Logger
}

func NewFitzPDFSource(path string, log zerolog.Logger) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	src := &FitzPDFSource{doc: doc, path: path, log: logger.Component(log, "source")}
	src.log.Debug().Str("path", path).Int("pages", doc.NumPage()).Msg("pdf opened")
	return src, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderPage opens its own document so pages can be rendered from several
// goroutines at once.
func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	f.log.Debug().Int("page", index).Int("dpi", dpi).Msg("rendering page")
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Name(index int) string {
	base := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
	return fmt.Sprintf("%s_p%03d", base, index+1)
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
