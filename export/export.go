// Package export turns a rendered visual tree into a downloadable raster
// file. The rasterization itself is delegated to a Capturer.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cover-photo/render"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WebP Format = "webp"
)

// Formats lists every format a user may request.
var Formats = []Format{PNG, JPEG, WebP}

var (
	// ErrUnknownFormat is returned for formats outside Formats.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrUnsupportedFormat is returned by a Capturer that cannot natively
	// emit a requested format. It is never downgraded to another format.
	ErrUnsupportedFormat = errors.New("export format not supported by rasterizer")
	// ErrCapture wraps any failure to read or paint the visual tree.
	ErrCapture = errors.New("capture failed")
)

// ParseFormat accepts the format names case-insensitively; "jpg" is an
// alias for jpeg.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, JPEG, WebP:
		return f, nil
	case "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Filename is the name offered to the browser's save dialog.
func Filename(f Format) string {
	return "cover-photo." + string(f)
}

func ContentType(f Format) string {
	return "image/" + string(f)
}

// Capturer rasterizes a visual tree into encoded image bytes.
type Capturer interface {
	Capture(ctx context.Context, tree render.Tree, format Format) ([]byte, error)
}

// File is a finished export ready to be saved on the client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Exporter struct {
	capturer Capturer
}

func NewExporter(c Capturer) *Exporter {
	return &Exporter{capturer: c}
}

// Export captures tree in format. Unsupported formats surface as
// ErrUnsupportedFormat; every other capturer failure is wrapped in
// ErrCapture.
func (e *Exporter) Export(ctx context.Context, tree render.Tree, format Format) (File, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return File{}, err
	}
	data, err := e.capturer.Capture(ctx, tree, format)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrCapture) {
			return File{}, err
		}
		return File{}, fmt.Errorf("%w: %w", ErrCapture, err)
	}
	if len(data) == 0 {
		return File{}, fmt.Errorf("%w: rasterizer returned no data", ErrCapture)
	}
	return File{Name: Filename(format), ContentType: ContentType(format), Data: data}, nil
}
