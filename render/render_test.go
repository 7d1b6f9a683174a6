package render

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"cover-photo/compose"
	"cover-photo/preset"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRenderDeterministic(t *testing.T) {
	for _, bp := range preset.Default().Breakpoints {
		a := Render(bp.Config, DefaultCanvas)
		b := Render(bp.Config, DefaultCanvas)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: trees differ", bp.Name)
		}
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		if !bytes.Equal(ja, jb) {
			t.Fatalf("%s: JSON differs", bp.Name)
		}
	}
}

func TestPatternNoneAbsent(t *testing.T) {
	cfg := preset.Default().Select(1500)
	cfg.PatternType = compose.PatternNone
	if tree := Render(cfg, DefaultCanvas); tree.Pattern != nil {
		t.Fatalf("expected no pattern layer, got %+v", tree.Pattern)
	}
}

func TestPatternZeroOpacityPresent(t *testing.T) {
	cfg := preset.Default().Select(1500)
	cfg.PatternType = compose.PatternDots
	cfg.PatternOpacity = 0
	tree := Render(cfg, DefaultCanvas)
	if tree.Pattern == nil {
		t.Fatal("expected pattern layer present")
	}
	if tree.Pattern.Opacity != 0 || tree.Pattern.Blend != BlendMultiply {
		t.Fatalf("unexpected layer %+v", tree.Pattern)
	}
	tile := tree.Pattern.Tiles[0]
	if tile.Shape != TileDot || tile.Size != 30 || tile.Weight != 3 {
		t.Fatalf("unexpected dot tile %+v", tile)
	}
}

func TestPatternGeometry(t *testing.T) {
	cfg := preset.Default().Select(1500)
	cfg.PatternOpacity = 40

	cfg.PatternType = compose.PatternGrid
	grid := Render(cfg, DefaultCanvas).Pattern
	if len(grid.Tiles) != 1 || grid.Tiles[0].Size != 100 || grid.Opacity != 0.4 {
		t.Fatalf("unexpected grid %+v", grid)
	}

	cfg.PatternType = compose.PatternGraph
	graph := Render(cfg, DefaultCanvas).Pattern
	if len(graph.Tiles) != 2 {
		t.Fatalf("expected two graph layers, got %d", len(graph.Tiles))
	}
	if graph.Tiles[0].Size != 100 || graph.Tiles[0].Alpha != 1 {
		t.Fatalf("unexpected major grid %+v", graph.Tiles[0])
	}
	if graph.Tiles[1].Size != 20 || graph.Tiles[1].Alpha >= 1 {
		t.Fatalf("unexpected minor grid %+v", graph.Tiles[1])
	}
}

func TestBackgroundKinds(t *testing.T) {
	cfg := preset.Default().Select(1500)

	cfg.BackgroundType = compose.BackgroundColor
	if bg := Render(cfg, DefaultCanvas).Background; bg.Kind != BackgroundFill || bg.Color != cfg.BackgroundColor {
		t.Fatalf("unexpected fill %+v", bg)
	}

	cfg.BackgroundType = compose.BackgroundImage
	if bg := Render(cfg, DefaultCanvas).Background; bg.Kind != BackgroundNone {
		t.Fatalf("missing background image should render empty, got %+v", bg)
	}
	ref := "/bg.png"
	cfg.BackgroundImage = &ref
	if bg := Render(cfg, DefaultCanvas).Background; bg.Kind != BackgroundImage || bg.Image.Ref != ref {
		t.Fatalf("unexpected image background %+v", bg)
	}

	cfg.BackgroundType = compose.BackgroundPattern
	if bg := Render(cfg, DefaultCanvas).Background; bg.Kind != BackgroundNone {
		t.Fatalf("pattern background type should not paint a background, got %+v", bg)
	}

	cfg.BackgroundType = compose.BackgroundGradient
	bg := Render(cfg, DefaultCanvas).Background
	if bg.Kind != BackgroundGradient || bg.Gradient.Colors != cfg.GradientColors {
		t.Fatalf("unexpected gradient %+v", bg)
	}
}

func TestGradientLine(t *testing.T) {
	g := GradientLine("to bottom", 200, 100)
	if !near(g.X0, 100) || !near(g.Y0, 0) || !near(g.X1, 100) || !near(g.Y1, 100) {
		t.Fatalf("to bottom: %+v", g)
	}
	g = GradientLine("to right", 200, 100)
	if !near(g.X0, 0) || !near(g.Y0, 50) || !near(g.X1, 200) || !near(g.Y1, 50) {
		t.Fatalf("to right: %+v", g)
	}
	g = GradientLine("to bottom right", 100, 100)
	if !near(g.X0, 0) || !near(g.Y0, 0) || !near(g.X1, 100) || !near(g.Y1, 100) {
		t.Fatalf("to bottom right on a square: %+v", g)
	}
	g = GradientLine("to top left", 100, 100)
	if !near(g.X0, 100) || !near(g.Y0, 100) || !near(g.X1, 0) || !near(g.Y1, 0) {
		t.Fatalf("to top left on a square: %+v", g)
	}
	a, b := GradientLine("180deg", 300, 100), GradientLine("to bottom", 300, 100)
	if !near(a.X0, b.X0) || !near(a.Y1, b.Y1) {
		t.Fatalf("180deg should equal to bottom: %+v vs %+v", a, b)
	}
}

func TestElementsPlacement(t *testing.T) {
	cfg := preset.Default().Select(1500)
	cfg.Images = append(cfg.Images, compose.OverlayImage{ID: "top", URL: "/t.png", Size: 50, Position: compose.Position{X: 50, Y: 50}})
	tree := Render(cfg, Canvas{Width: 1000, Height: 500})

	if len(tree.Images) != 2 || tree.Images[0].ID != "pencil" || tree.Images[1].ID != "top" {
		t.Fatalf("images out of order: %+v", tree.Images)
	}
	if tree.Images[1].X != 500 || tree.Images[1].Y != 250 || tree.Images[1].Size != 50 {
		t.Fatalf("unexpected placement %+v", tree.Images[1])
	}
	title := tree.Texts[0]
	if title.ID != compose.ElementTitle || title.X != 100 || title.Y != 100 || !title.NoWrap || !title.Draggable {
		t.Fatalf("unexpected title node %+v", title)
	}
	if tree.Texts[1].ID != compose.ElementSubtitle || tree.Texts[1].Y != 200 {
		t.Fatalf("unexpected subtitle node %+v", tree.Texts[1])
	}
}
