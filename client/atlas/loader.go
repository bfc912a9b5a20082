package atlas

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"github.com/cbodonnell/hexfantasy/pkg/log"
	"github.com/klauspost/compress/gzip"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Loader opens the encoded bytes of a sprite sheet.
type Loader interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileLoader reads a sprite sheet from disk. Paths ending in .gz are
// decompressed while reading.
type FileLoader struct {
	Path string
}

var _ Loader = FileLoader{}

func (l FileLoader) Name() string {
	return l.Path
}

func (l FileLoader) Open() (io.ReadCloser, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(l.Path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return zerr
}

// BytesLoader serves a sprite sheet that is already in memory, such as an
// embedded asset.
type BytesLoader struct {
	Label string
	Data  []byte
}

var _ Loader = BytesLoader{}

func (l BytesLoader) Name() string {
	return l.Label
}

func (l BytesLoader) Open() (io.ReadCloser, error) {
	if len(l.Data) == 0 {
		return nil, fmt.Errorf("no data")
	}
	return io.NopCloser(bytes.NewReader(l.Data)), nil
}

// Source is a decoded sprite sheet in RGBA form. It holds no display resources
// and can be produced off the main goroutine.
type Source struct {
	name  string
	image *image.RGBA
	grid  Grid
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Image() *image.RGBA {
	return s.image
}

func (s *Source) Grid() Grid {
	return s.grid
}

// Size returns the pixel dimensions of the decoded sheet.
func (s *Source) Size() (int, int) {
	b := s.image.Bounds()
	return b.Dx(), b.Dy()
}

// NewSource wraps an already decoded image. The image is copied into RGBA form
// unless it already is one anchored at the origin.
func NewSource(name string, img image.Image, grid Grid) (*Source, error) {
	if err := grid.Validate(); err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	if img == nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("nil image")}
	}
	b := img.Bounds()
	if b.Dx() < grid.Columns || b.Dy() < grid.Rows {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("image %dx%d is smaller than grid %dx%d", b.Dx(), b.Dy(), grid.Columns, grid.Rows)}
	}
	return &Source{
		name:  name,
		image: toRGBA(img),
		grid:  grid,
	}, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// LoadSource opens and decodes a sprite sheet. Decoding runs on its own
// goroutine so the context deadline bounds how long the caller waits; an
// abandoned decode finishes in the background and its result is dropped.
// It must not be given anything bound to the display.
func LoadSource(ctx context.Context, loader Loader, grid Grid) (*Source, error) {
	if err := grid.Validate(); err != nil {
		return nil, &LoadError{Source: loader.Name(), Err: err}
	}

	type result struct {
		source *Source
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		src, err := decodeSource(loader, grid)
		ch <- result{source: src, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &LoadError{Source: loader.Name(), Err: ctx.Err()}
	case r := <-ch:
		return r.source, r.err
	}
}

func decodeSource(loader Loader, grid Grid) (*Source, error) {
	rc, err := loader.Open()
	if err != nil {
		return nil, &LoadError{Source: loader.Name(), Err: err}
	}
	defer rc.Close()

	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, &LoadError{Source: loader.Name(), Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	src, err := NewSource(loader.Name(), img, grid)
	if err != nil {
		return nil, err
	}
	w, h := src.Size()
	log.Debug("Decoded %s atlas source %s: %dx%d", format, loader.Name(), w, h)
	return src, nil
}

// LoadResult is the single value delivered by LoadSourceAsync.
type LoadResult struct {
	Source *Source
	Err    error
}

// LoadSourceAsync runs LoadSource on a background goroutine. The returned
// channel receives exactly one result and is then closed.
func LoadSourceAsync(ctx context.Context, loader Loader, grid Grid) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		src, err := LoadSource(ctx, loader, grid)
		ch <- LoadResult{Source: src, Err: err}
	}()
	return ch
}
