package raster

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// The rasterizer cannot reach the browser's system fonts, so each supported
// family is drawn with the closest embedded Go font.
type fontClass int

const (
	classRegular fontClass = iota
	classBold
	classItalic
	classMono
)

var familyClass = map[string]fontClass{
	"Arial Black": classBold,
	"Impact":      classBold,
	"Oswald":      classBold,
	"Stencil Std": classBold,
	"Blippo":      classBold,
	"Herculanum":  classBold,
	"Chalkduster": classBold,

	"Brush Script MT": classItalic,
	"Snell Roundhand": classItalic,
	"Bradley Hand":    classItalic,
	"Marker Felt":     classItalic,
	"Party LET":       classItalic,
	"Jazz LET":        classItalic,
	"Luminari":        classItalic,
	"Trattatello":     classItalic,
	"Papyrus":         classItalic,
	"Comic Sans MS":   classItalic,

	"Courier": classMono,
}

var classTTF = map[fontClass][]byte{
	classRegular: goregular.TTF,
	classBold:    gobold.TTF,
	classItalic:  goitalic.TTF,
	classMono:    gomono.TTF,
}

const maxCachedFaces = 64

type faceKey struct {
	class fontClass
	size  float64
}

type fontCache struct {
	mu      sync.Mutex
	sources map[fontClass]*text.FontSource
	faces   map[faceKey]text.Face
}

var fonts = &fontCache{
	sources: make(map[fontClass]*text.FontSource),
	faces:   make(map[faceKey]text.Face),
}

func (c *fontCache) face(family string, size float64) (text.Face, error) {
	key := faceKey{class: familyClass[family], size: size}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	src, ok := c.sources[key.class]
	if !ok {
		var err error
		src, err = text.NewFontSource(classTTF[key.class])
		if err != nil {
			return nil, fmt.Errorf("load font for %q: %w", family, err)
		}
		c.sources[key.class] = src
	}
	if len(c.faces) >= maxCachedFaces {
		c.faces = make(map[faceKey]text.Face)
	}
	f := src.Face(size)
	c.faces[key] = f
	return f, nil
}
