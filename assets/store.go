// Package assets decodes uploaded pictures and keeps them, per session, behind
// opaque URL references that the rasterizer can resolve.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotFound = errors.New("asset not found")
	ErrNotImage = errors.New("upload is not a decodable image")
)

// Resolver maps an image reference to pixels.
type Resolver interface {
	Resolve(ref string) (image.Image, error)
}

// Decode reads an uploaded image, applying its EXIF orientation.
// PNG, JPEG, GIF, BMP, TIFF and WebP are accepted.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotImage, err)
	}
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// Store holds the images of one session. References handed out by Put are
// prefix + escaped id, so the API can serve them back under the same URL.
type Store struct {
	mu     sync.RWMutex
	prefix string
	images map[string]image.Image
}

func NewStore(prefix string) *Store {
	return &Store{prefix: prefix, images: make(map[string]image.Image)}
}

// Put stores img under id and returns its reference.
func (s *Store) Put(id string, img image.Image) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[id] = img
	return s.prefix + url.PathEscape(id)
}

// Get looks an image up by id.
func (s *Store) Get(id string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	return img, ok
}

// Delete forgets the image behind ref. Unknown references are ignored.
func (s *Store) Delete(ref string) {
	id, ok := s.idOf(ref)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, id)
}

// Resolve implements Resolver. Session uploads are tried first, then the
// built-in artwork.
func (s *Store) Resolve(ref string) (image.Image, error) {
	if id, ok := s.idOf(ref); ok {
		if img, ok := s.Get(id); ok {
			return img, nil
		}
	}
	if img, ok := Builtin(ref); ok {
		return img, nil
	}
	return nil, fmt.Errorf("%q: %w", ref, ErrNotFound)
}

// Encode returns the image stored under id as PNG bytes.
func (s *Store) Encode(id string) ([]byte, error) {
	img, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %q: %w", id, err)
	}
	return buf.Bytes(), nil
}

// Len reports how many uploads are held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

func (s *Store) idOf(ref string) (string, bool) {
	rest, ok := strings.CutPrefix(ref, s.prefix)
	if !ok || rest == "" {
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return id, true
}
