// Package raster paints a visual tree with the gg software renderer and
// encodes the result.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"

	"cover-photo/assets"
	"cover-photo/export"
	"cover-photo/render"
)

// Options tune the output. Zero values select the defaults.
type Options struct {
	Scale       float64 // device pixels per CSS pixel, default 2
	JPEGQuality int     // 1-100, default 92
}

// Capturer implements export.Capturer. Image references in the tree are
// looked up through the Resolver; a reference that cannot be resolved makes
// the whole capture fail.
type Capturer struct {
	res  assets.Resolver
	opts Options
}

var _ export.Capturer = (*Capturer)(nil)

func New(res assets.Resolver, opts Options) *Capturer {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 92
	}
	return &Capturer{res: res, opts: opts}
}

// Capture paints tree and encodes it. WebP has no encoder in this
// rasterizer and fails with export.ErrUnsupportedFormat.
func (c *Capturer) Capture(ctx context.Context, tree render.Tree, format export.Format) ([]byte, error) {
	if format != export.PNG && format != export.JPEG {
		return nil, fmt.Errorf("%s: %w", format, export.ErrUnsupportedFormat)
	}
	dc, err := c.paint(ctx, tree)
	if err != nil {
		return nil, err
	}
	defer dc.Close()

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("%w: %w", export.ErrCapture, err)
	}
	var buf bytes.Buffer
	if format == export.JPEG {
		err = dc.EncodeJPEG(&buf, c.opts.JPEGQuality)
	} else {
		err = dc.EncodePNG(&buf)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", export.ErrCapture, format, err)
	}
	return buf.Bytes(), nil
}

// Paint renders tree into an image without encoding it.
func (c *Capturer) Paint(ctx context.Context, tree render.Tree) (image.Image, error) {
	dc, err := c.paint(ctx, tree)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("%w: %w", export.ErrCapture, err)
	}
	return dc.Image(), nil
}

func (c *Capturer) paint(ctx context.Context, tree render.Tree) (*gg.Context, error) {
	s := c.opts.Scale
	w := int(math.Round(float64(tree.Width) * s))
	h := int(math.Round(float64(tree.Height) * s))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty canvas %dx%d", export.ErrCapture, tree.Width, tree.Height)
	}
	dc := gg.NewContext(w, h)

	steps := []func() error{
		func() error { return c.background(dc, tree.Background, w, h) },
		func() error { return c.pattern(dc, tree.Pattern, w, h) },
		func() error { return c.images(dc, tree.Images) },
		func() error { return c.texts(dc, tree.Texts) },
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("%w: %w", export.ErrCapture, err)
		}
		if err := step(); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

func (c *Capturer) background(dc *gg.Context, bg render.Background, w, h int) error {
	s := c.opts.Scale
	switch bg.Kind {
	case render.BackgroundFill:
		dc.SetHexColor(bg.Color)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		return dc.Fill()
	case render.BackgroundGradient:
		g := bg.Gradient
		brush := gg.NewLinearGradientBrush(g.X0*s, g.Y0*s, g.X1*s, g.Y1*s).
			AddColorStop(0, gg.Hex(g.Colors[0])).
			AddColorStop(1, gg.Hex(g.Colors[1]))
		dc.SetFillBrush(brush)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		return dc.Fill()
	case render.BackgroundImage:
		src, err := c.resolve(bg.Image.Ref)
		if err != nil {
			return err
		}
		cover := imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
		dc.DrawImage(gg.ImageBufFromImage(cover), 0, 0)
	}
	return nil
}

func (c *Capturer) pattern(dc *gg.Context, p *render.PatternLayer, w, h int) error {
	if p == nil {
		return nil
	}
	dc.PushLayer(gg.BlendMultiply, p.Opacity)
	defer dc.PopLayer()

	s := c.opts.Scale
	for _, t := range p.Tiles {
		col := gg.Hex(t.Color)
		col.A *= t.Alpha
		dc.SetFillBrush(gg.Solid(col))

		step, weight := t.Size*s, t.Weight*s
		if step <= 0 {
			continue
		}
		switch t.Shape {
		case render.TileDot:
			for y := 0.0; y < float64(h); y += step {
				for x := 0.0; x < float64(w); x += step {
					dc.DrawCircle(x+step/2, y+step/2, weight)
				}
			}
		case render.TileLines:
			for x := 0.0; x < float64(w); x += step {
				dc.DrawRectangle(x, 0, weight, float64(h))
			}
			for y := 0.0; y < float64(h); y += step {
				dc.DrawRectangle(0, y, float64(w), weight)
			}
		}
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("%w: pattern: %w", export.ErrCapture, err)
		}
	}
	return nil
}

func (c *Capturer) images(dc *gg.Context, nodes []render.ImageNode) error {
	s := c.opts.Scale
	for _, n := range nodes {
		src, err := c.resolve(n.Ref)
		if err != nil {
			return err
		}
		box := float64(n.Size) * s
		fit := containFit(src, box)
		b := fit.Bounds()
		x := n.X*s + (box-float64(b.Dx()))/2
		y := n.Y*s + (box-float64(b.Dy()))/2
		dc.DrawImage(gg.ImageBufFromImage(fit), math.Round(x), math.Round(y))
	}
	return nil
}

// containFit scales src, up or down, so it fits a box×box square without
// cropping.
func containFit(src image.Image, box float64) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return src
	}
	ratio := math.Min(box/float64(b.Dx()), box/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*ratio)))
	h := max(1, int(math.Round(float64(b.Dy())*ratio)))
	return imaging.Resize(src, w, h, imaging.Lanczos)
}

func (c *Capturer) texts(dc *gg.Context, nodes []render.TextNode) error {
	s := c.opts.Scale
	for _, n := range nodes {
		if n.Text == "" {
			continue
		}
		face, err := fonts.face(n.Font, n.Size*s)
		if err != nil {
			return fmt.Errorf("%w: %w", export.ErrCapture, err)
		}
		dc.SetFont(face)
		dc.SetHexColor(n.Color)
		// Nodes are anchored at their top-left corner; DrawString wants the baseline.
		dc.DrawString(n.Text, n.X*s, n.Y*s+face.Metrics().Ascent)
	}
	return nil
}

func (c *Capturer) resolve(ref string) (image.Image, error) {
	if c.res == nil {
		return nil, fmt.Errorf("%w: no resolver for %q", export.ErrCapture, ref)
	}
	img, err := c.res.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", export.ErrCapture, err)
	}
	return img, nil
}
