package assets

import (
	"fmt"
	"image"
	"log"
	"math"
	"sync"

	"github.com/gogpu/gg"
)

// PencilRef is the reference used by the stock presets.
const PencilRef = "/pencil.png"

const pencilEdge = 256

// artwork is drawn on first use and cached, including a failed draw.
type artwork struct {
	name string
	edge int
	draw func(n int) (image.Image, error)

	once sync.Once
	img  image.Image
	err  error
}

func (a *artwork) get() (image.Image, error) {
	a.once.Do(func() {
		a.img, a.err = a.draw(a.edge)
		if a.err != nil {
			a.img = nil
			log.Printf("builtin %s unavailable: %v", a.name, a.err)
		}
	})
	return a.img, a.err
}

var pencil = &artwork{name: PencilRef, edge: pencilEdge, draw: drawPencil}

// Builtin returns stock artwork shipped with the binary. It reports false
// for unknown refs and for artwork that could not be drawn.
func Builtin(ref string) (image.Image, bool) {
	if ref != PencilRef {
		return nil, false
	}
	img, err := pencil.get()
	if err != nil {
		return nil, false
	}
	return img, true
}

// drawPencil paints a pencil lying on the diagonal of an n×n transparent
// square, tip towards the bottom left.
func drawPencil(n int) (image.Image, error) {
	dc := gg.NewContext(n, n)
	defer dc.Close()

	s := float64(n)
	dc.RotateAbout(-math.Pi/4, s/2, s/2)

	var fillErr error
	fill := func(part string) {
		if err := dc.Fill(); err != nil && fillErr == nil {
			fillErr = fmt.Errorf("pencil %s: %w", part, err)
		}
	}

	body := s * 0.16
	top := s/2 - body/2
	left, right := s*0.14, s*0.86
	tip := left + s*0.16

	// eraser and ferrule
	dc.SetHexColor("#f48fb1")
	dc.DrawRoundedRectangle(right-s*0.08, top, s*0.08, body, body*0.25)
	fill("eraser")
	dc.SetHexColor("#b0bec5")
	dc.DrawRectangle(right-s*0.14, top, s*0.07, body)
	fill("ferrule")

	// painted body with a darker stripe
	dc.SetHexColor("#f4b400")
	dc.DrawRectangle(tip, top, right-s*0.14-tip, body)
	fill("body")
	dc.SetHexColor("#e09c00")
	dc.DrawRectangle(tip, top+body*0.62, right-s*0.14-tip, body*0.38)
	fill("stripe")

	// sharpened wood and graphite
	dc.SetHexColor("#f1c27d")
	dc.MoveTo(tip, top)
	dc.LineTo(tip, top+body)
	dc.LineTo(left, s/2)
	dc.ClosePath()
	fill("wood")
	dc.SetHexColor("#37474f")
	lead := (tip - left) * 0.35
	dc.MoveTo(left+lead, s/2-body*0.5*0.35)
	dc.LineTo(left+lead, s/2+body*0.5*0.35)
	dc.LineTo(left, s/2)
	dc.ClosePath()
	fill("graphite")

	if fillErr != nil {
		return nil, fillErr
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("pencil: %w", err)
	}
	return dc.Image(), nil
}
