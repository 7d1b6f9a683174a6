package render

import (
	"math"

	"cover-photo/compose"
)

// Pattern tile geometry.
const (
	dotTile       = 30
	dotRadius     = 3
	gridTile      = 100
	graphMinor    = 20
	lineWeight    = 1
	graphMinorAlp = float64(0x40) / 0xff
)

// Render builds the visual tree for cfg on canvas c.
func Render(cfg compose.Config, c Canvas) Tree {
	t := Tree{
		Width:      c.Width,
		Height:     c.Height,
		Background: background(cfg, c),
		Pattern:    pattern(cfg),
		Images:     make([]ImageNode, 0, len(cfg.Images)),
		Texts:      make([]TextNode, 0, 2),
	}
	for _, img := range cfg.Images {
		x, y := toPixels(img.Position, c)
		t.Images = append(t.Images, ImageNode{
			ID:        img.ID,
			Ref:       img.URL,
			X:         x,
			Y:         y,
			Size:      img.Size,
			Position:  img.Position,
			Draggable: true,
		})
	}
	t.Texts = append(t.Texts,
		textNode(compose.ElementTitle, cfg.Title, cfg.TitleFont, cfg.TitleSize, cfg.TitleColor, cfg.TitlePosition, c),
		textNode(compose.ElementSubtitle, cfg.Subtitle, cfg.SubtitleFont, cfg.SubtitleSize, cfg.SubtitleColor, cfg.SubtitlePosition, c),
	)
	return t
}

func textNode(id, text, font string, size float64, color string, pos compose.Position, c Canvas) TextNode {
	x, y := toPixels(pos, c)
	return TextNode{
		ID:        id,
		Text:      text,
		Font:      font,
		Size:      size,
		Color:     color,
		X:         x,
		Y:         y,
		Position:  pos,
		NoWrap:    true,
		Draggable: true,
	}
}

func toPixels(p compose.Position, c Canvas) (float64, float64) {
	return p.X / 100 * float64(c.Width), p.Y / 100 * float64(c.Height)
}

func background(cfg compose.Config, c Canvas) Background {
	switch cfg.BackgroundType {
	case compose.BackgroundColor:
		return Background{Kind: BackgroundFill, Color: cfg.BackgroundColor}
	case compose.BackgroundGradient:
		g := GradientLine(cfg.GradientDir, float64(c.Width), float64(c.Height))
		g.Colors = cfg.GradientColors
		return Background{Kind: BackgroundGradient, Gradient: &g}
	case compose.BackgroundImage:
		if cfg.BackgroundImage == nil || *cfg.BackgroundImage == "" {
			return Background{Kind: BackgroundNone}
		}
		return Background{Kind: BackgroundImage, Image: &CoverImage{Ref: *cfg.BackgroundImage}}
	}
	return Background{Kind: BackgroundNone}
}

func pattern(cfg compose.Config) *PatternLayer {
	var tiles []Tile
	col := cfg.PatternColor
	switch cfg.PatternType {
	case compose.PatternDots:
		tiles = []Tile{{Shape: TileDot, Size: dotTile, Weight: dotRadius, Color: col, Alpha: 1}}
	case compose.PatternGrid:
		tiles = []Tile{{Shape: TileLines, Size: gridTile, Weight: lineWeight, Color: col, Alpha: 1}}
	case compose.PatternGraph:
		tiles = []Tile{
			{Shape: TileLines, Size: gridTile, Weight: lineWeight, Color: col, Alpha: 1},
			{Shape: TileLines, Size: graphMinor, Weight: lineWeight, Color: col, Alpha: graphMinorAlp},
		}
	default:
		return nil
	}
	return &PatternLayer{
		Kind:    cfg.PatternType,
		Opacity: float64(cfg.PatternOpacity) / 100,
		Blend:   BlendMultiply,
		Tiles:   tiles,
	}
}

// GradientLine computes the start and end points of a CSS linear-gradient
// over a w×h box. Corner keywords produce a line perpendicular to the
// diagonal joining the two other corners. An unparsable direction falls
// back to "to bottom".
func GradientLine(dir compose.GradientDirection, w, h float64) Gradient {
	d, err := compose.ParseGradientDirection(dir)
	if err != nil {
		d = compose.Direction{Angle: 180}
	}
	var dx, dy float64
	if d.Corner {
		dx, dy = float64(d.DX)*h, float64(d.DY)*w
		if n := math.Hypot(dx, dy); n > 0 {
			dx, dy = dx/n, dy/n
		}
	} else {
		rad := d.Angle * math.Pi / 180
		dx, dy = math.Sin(rad), -math.Cos(rad)
	}
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return Gradient{
		X0: cx - dx*half,
		Y0: cy - dy*half,
		X1: cx + dx*half,
		Y1: cy + dy*half,
	}
}
