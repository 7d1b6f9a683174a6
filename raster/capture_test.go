package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"cover-photo/assets"
	"cover-photo/compose"
	"cover-photo/export"
	"cover-photo/preset"
	"cover-photo/render"
)

func solidConfig() compose.Config {
	cfg := preset.Default().Select(1500)
	cfg.BackgroundType = compose.BackgroundColor
	cfg.BackgroundColor = "#ff0000"
	cfg.PatternType = compose.PatternNone
	cfg.Images = nil
	cfg.Title, cfg.Subtitle = "", ""
	return cfg
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func rgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestCapturePNGDimensions(t *testing.T) {
	store := assets.NewStore("/s/")
	c := New(store, Options{Scale: 1})
	tree := render.Render(preset.Default().Select(1500), render.Canvas{Width: 200, Height: 100})

	data, err := c.Capture(context.Background(), tree, export.PNG)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestCaptureScale(t *testing.T) {
	c := New(assets.NewStore("/s/"), Options{Scale: 2})
	tree := render.Render(solidConfig(), render.Canvas{Width: 50, Height: 40})
	img, err := c.Paint(context.Background(), tree)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Fatalf("expected 100x80, got %v", b)
	}
}

func TestCaptureJPEG(t *testing.T) {
	c := New(assets.NewStore("/s/"), Options{Scale: 1})
	tree := render.Render(solidConfig(), render.Canvas{Width: 64, Height: 32})
	data, err := c.Capture(context.Background(), tree, export.JPEG)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("not a JPEG: %v", err)
	}
}

func TestCaptureWebPUnsupported(t *testing.T) {
	c := New(assets.NewStore("/s/"), Options{Scale: 1})
	tree := render.Render(solidConfig(), render.Canvas{Width: 10, Height: 10})
	data, err := c.Capture(context.Background(), tree, export.WebP)
	if !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if data != nil {
		t.Fatal("no bytes may be produced for an unsupported format")
	}
}

func TestCaptureSolidFill(t *testing.T) {
	c := New(assets.NewStore("/s/"), Options{Scale: 1})
	img, err := c.Paint(context.Background(), render.Render(solidConfig(), render.Canvas{Width: 40, Height: 20}))
	if err != nil {
		t.Fatal(err)
	}
	px := rgbaAt(img, 20, 10)
	if !near(px.R, 0xff) || !near(px.G, 0) || !near(px.B, 0) || !near(px.A, 0xff) {
		t.Fatalf("expected red, got %+v", px)
	}
}

func TestZeroOpacityPatternInvisible(t *testing.T) {
	c := New(assets.NewStore("/s/"), Options{Scale: 1})
	canvas := render.Canvas{Width: 60, Height: 60}

	plain, err := c.Paint(context.Background(), render.Render(solidConfig(), canvas))
	if err != nil {
		t.Fatal(err)
	}
	cfg := solidConfig()
	cfg.PatternType = compose.PatternDots
	cfg.PatternColor = "#000000"
	cfg.PatternOpacity = 0
	dotted, err := c.Paint(context.Background(), render.Render(cfg, canvas))
	if err != nil {
		t.Fatal(err)
	}
	// Center of the first dot tile.
	a, b := rgbaAt(plain, 15, 15), rgbaAt(dotted, 15, 15)
	if !near(a.R, b.R) || !near(a.G, b.G) || !near(a.B, b.B) {
		t.Fatalf("zero-opacity pattern changed pixels: %+v vs %+v", a, b)
	}
}

func TestCaptureMissingImage(t *testing.T) {
	cfg := solidConfig()
	cfg.Images = []compose.OverlayImage{compose.NewOverlayImage("x", "/s/missing")}
	c := New(assets.NewStore("/s/"), Options{Scale: 1})
	_, err := c.Capture(context.Background(), render.Render(cfg, render.Canvas{Width: 20, Height: 20}), export.PNG)
	if !errors.Is(err, export.ErrCapture) || !errors.Is(err, assets.ErrNotFound) {
		t.Fatalf("expected capture failure wrapping ErrNotFound, got %v", err)
	}
}

func TestCaptureCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(assets.NewStore("/s/"), Options{Scale: 1})
	_, err := c.Capture(ctx, render.Render(solidConfig(), render.Canvas{Width: 20, Height: 20}), export.PNG)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCaptureDeterministic(t *testing.T) {
	c := New(assets.NewStore("/s/"), Options{Scale: 1})
	tree := render.Render(preset.Default().Select(500), render.Canvas{Width: 120, Height: 64})
	a, err := c.Capture(context.Background(), tree, export.PNG)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Capture(context.Background(), tree, export.PNG)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("identical trees produced different PNG bytes")
	}
}

func TestContainFit(t *testing.T) {
	wide := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	got := containFit(wide, 200).Bounds()
	if got.Dx() != 200 || got.Dy() != 50 {
		t.Fatalf("expected 200x50, got %v", got)
	}
	small := image.NewNRGBA(image.Rect(0, 0, 10, 20))
	got = containFit(small, 100).Bounds()
	if got.Dx() != 50 || got.Dy() != 100 {
		t.Fatalf("expected upscale to 50x100, got %v", got)
	}
}
