package compose

import "errors"

// Element ids for the two text labels. Overlay images are addressed by their
// own OverlayImage.ID.
const (
	ElementTitle    = "title"
	ElementSubtitle = "subtitle"
)

// Defaults applied to a freshly uploaded image.
const (
	DefaultImageSize = 100
	MinImageSize     = 20
	MaxImageSize     = 600
)

// DefaultImagePosition is where uploads land before the user drags them.
var DefaultImagePosition = Position{X: 70, Y: 50}

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrInvalidColor   = errors.New("invalid hex color")
	ErrInvalidFont    = errors.New("font not in the supported list")
	ErrInvalidValue   = errors.New("invalid value")
)

// Position is a normalized coordinate: percentages of the composition's
// width and height, each in [0, 100].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BackgroundType string

const (
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundPattern  BackgroundType = "pattern"
	BackgroundImage    BackgroundType = "image"
)

func (b BackgroundType) Valid() bool {
	switch b {
	case BackgroundColor, BackgroundGradient, BackgroundPattern, BackgroundImage:
		return true
	}
	return false
}

type PatternType string

const (
	PatternNone  PatternType = "none"
	PatternGrid  PatternType = "grid"
	PatternDots  PatternType = "dots"
	PatternGraph PatternType = "graph"
)

func (p PatternType) Valid() bool {
	switch p {
	case PatternNone, PatternGrid, PatternDots, PatternGraph:
		return true
	}
	return false
}

// OverlayImage is one uploaded picture placed on the composition.
type OverlayImage struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Size     int      `json:"size"` // edge of the square bounding box, px
	Position Position `json:"position"`
}

// Config is the single source of truth for one composition. Values are
// treated as immutable: every change produces a new Config.
type Config struct {
	Title            string            `json:"title"`
	TitleFont        string            `json:"titleFont"`
	TitleSize        float64           `json:"titleSize"`
	TitleColor       string            `json:"titleColor"`
	TitlePosition    Position          `json:"titlePosition"`
	Subtitle         string            `json:"subtitle"`
	SubtitleFont     string            `json:"subtitleFont"`
	SubtitleSize     float64           `json:"subtitleSize"`
	SubtitleColor    string            `json:"subtitleColor"`
	SubtitlePosition Position          `json:"subtitlePosition"`
	Images           []OverlayImage    `json:"images"`
	BackgroundType   BackgroundType    `json:"backgroundType"`
	BackgroundColor  string            `json:"backgroundColor"`
	GradientColors   [2]string         `json:"gradientColors"`
	GradientDir      GradientDirection `json:"gradientDirection"`
	PatternType      PatternType       `json:"patternType"`
	PatternColor     string            `json:"patternColor"`
	PatternOpacity   int               `json:"patternOpacity"`
	BackgroundImage  *string           `json:"backgroundImage"`
}

// Clone returns a copy that shares no mutable state with c.
func (c Config) Clone() Config {
	out := c
	out.Images = make([]OverlayImage, len(c.Images))
	copy(out.Images, c.Images)
	if c.BackgroundImage != nil {
		ref := *c.BackgroundImage
		out.BackgroundImage = &ref
	}
	return out
}

// HasElement reports whether id names a draggable element of c.
func (c Config) HasElement(id string) bool {
	if id == ElementTitle || id == ElementSubtitle {
		return true
	}
	_, ok := c.imageIndex(id)
	return ok
}

func (c Config) imageIndex(id string) (int, bool) {
	for i, img := range c.Images {
		if img.ID == id {
			return i, true
		}
	}
	return -1, false
}
