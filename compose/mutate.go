package compose

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

// Patch is a partial update. Nil fields are left untouched.
// An empty BackgroundImage clears the background image.
type Patch struct {
	Title            *string            `json:"title,omitempty"`
	TitleFont        *string            `json:"titleFont,omitempty"`
	TitleSize        *float64           `json:"titleSize,omitempty"`
	TitleColor       *string            `json:"titleColor,omitempty"`
	TitlePosition    *Position          `json:"titlePosition,omitempty"`
	Subtitle         *string            `json:"subtitle,omitempty"`
	SubtitleFont     *string            `json:"subtitleFont,omitempty"`
	SubtitleSize     *float64           `json:"subtitleSize,omitempty"`
	SubtitleColor    *string            `json:"subtitleColor,omitempty"`
	SubtitlePosition *Position          `json:"subtitlePosition,omitempty"`
	BackgroundType   *BackgroundType    `json:"backgroundType,omitempty"`
	BackgroundColor  *string            `json:"backgroundColor,omitempty"`
	GradientColors   *[2]string         `json:"gradientColors,omitempty"`
	GradientDir      *GradientDirection `json:"gradientDirection,omitempty"`
	PatternType      *PatternType       `json:"patternType,omitempty"`
	PatternColor     *string            `json:"patternColor,omitempty"`
	PatternOpacity   *int               `json:"patternOpacity,omitempty"`
	BackgroundImage  *string            `json:"backgroundImage,omitempty"`
}

// Empty reports whether p changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply returns a copy of c with p applied. c itself is never modified, and
// on error no partial result is returned.
func (c Config) Apply(p Patch) (Config, error) {
	out := c.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.TitleFont != nil {
		out.TitleFont = *p.TitleFont
	}
	if p.TitleSize != nil {
		out.TitleSize = *p.TitleSize
	}
	if p.TitleColor != nil {
		out.TitleColor = *p.TitleColor
	}
	if p.TitlePosition != nil {
		out.TitlePosition = *p.TitlePosition
	}
	if p.Subtitle != nil {
		out.Subtitle = *p.Subtitle
	}
	if p.SubtitleFont != nil {
		out.SubtitleFont = *p.SubtitleFont
	}
	if p.SubtitleSize != nil {
		out.SubtitleSize = *p.SubtitleSize
	}
	if p.SubtitleColor != nil {
		out.SubtitleColor = *p.SubtitleColor
	}
	if p.SubtitlePosition != nil {
		out.SubtitlePosition = *p.SubtitlePosition
	}
	if p.BackgroundType != nil {
		out.BackgroundType = *p.BackgroundType
	}
	if p.BackgroundColor != nil {
		out.BackgroundColor = *p.BackgroundColor
	}
	if p.GradientColors != nil {
		out.GradientColors = *p.GradientColors
	}
	if p.GradientDir != nil {
		out.GradientDir = *p.GradientDir
	}
	if p.PatternType != nil {
		out.PatternType = *p.PatternType
	}
	if p.PatternColor != nil {
		out.PatternColor = *p.PatternColor
	}
	if p.PatternOpacity != nil {
		out.PatternOpacity = *p.PatternOpacity
	}
	if p.BackgroundImage != nil {
		if *p.BackgroundImage == "" {
			out.BackgroundImage = nil
		} else {
			ref := *p.BackgroundImage
			out.BackgroundImage = &ref
		}
	}
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

// Validate checks every field constraint of the model. Image sizes are only
// required to be positive; the [20, 600] range belongs to the editing control.
func (c Config) Validate() error {
	for _, f := range []struct{ name, font string }{
		{"titleFont", c.TitleFont},
		{"subtitleFont", c.SubtitleFont},
	} {
		if !ValidFont(f.font) {
			return fmt.Errorf("%s %q: %w", f.name, f.font, ErrInvalidFont)
		}
	}
	colors := []struct{ name, hex string }{
		{"titleColor", c.TitleColor},
		{"subtitleColor", c.SubtitleColor},
		{"backgroundColor", c.BackgroundColor},
		{"gradientColors[0]", c.GradientColors[0]},
		{"gradientColors[1]", c.GradientColors[1]},
		{"patternColor", c.PatternColor},
	}
	for _, col := range colors {
		if !ValidHex(col.hex) {
			return fmt.Errorf("%s %q: %w", col.name, col.hex, ErrInvalidColor)
		}
	}
	if c.TitleSize <= 0 || c.SubtitleSize <= 0 {
		return fmt.Errorf("font size must be positive: %w", ErrInvalidValue)
	}
	if !c.BackgroundType.Valid() {
		return fmt.Errorf("backgroundType %q: %w", c.BackgroundType, ErrInvalidValue)
	}
	if !c.PatternType.Valid() {
		return fmt.Errorf("patternType %q: %w", c.PatternType, ErrInvalidValue)
	}
	if c.PatternOpacity < 0 || c.PatternOpacity > 100 {
		return fmt.Errorf("patternOpacity %d: %w", c.PatternOpacity, ErrInvalidValue)
	}
	if _, err := ParseGradientDirection(c.GradientDir); err != nil {
		return err
	}
	if err := checkPosition(c.TitlePosition); err != nil {
		return fmt.Errorf("titlePosition: %w", err)
	}
	if err := checkPosition(c.SubtitlePosition); err != nil {
		return fmt.Errorf("subtitlePosition: %w", err)
	}
	seen := make(map[string]bool, len(c.Images))
	for _, img := range c.Images {
		if img.ID == "" || seen[img.ID] {
			return fmt.Errorf("image id %q not unique: %w", img.ID, ErrInvalidValue)
		}
		seen[img.ID] = true
		if img.Size <= 0 {
			return fmt.Errorf("image %s size %d: %w", img.ID, img.Size, ErrInvalidValue)
		}
		if err := checkPosition(img.Position); err != nil {
			return fmt.Errorf("image %s: %w", img.ID, err)
		}
	}
	return nil
}

func checkPosition(p Position) error {
	if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
		return fmt.Errorf("position (%g, %g) outside [0,100]: %w", p.X, p.Y, ErrInvalidValue)
	}
	return nil
}

// AddImage appends img so that it renders on top of every existing image.
func (c Config) AddImage(img OverlayImage) (Config, error) {
	if _, ok := c.imageIndex(img.ID); ok {
		return c, fmt.Errorf("image id %q already present: %w", img.ID, ErrInvalidValue)
	}
	if img.Size <= 0 {
		return c, fmt.Errorf("image size %d: %w", img.Size, ErrInvalidValue)
	}
	out := c.Clone()
	out.Images = append(out.Images, img)
	return out, nil
}

// RemoveImage drops the image with the given id, keeping the relative order
// of the rest.
func (c Config) RemoveImage(id string) (Config, error) {
	i, ok := c.imageIndex(id)
	if !ok {
		return c, fmt.Errorf("image %q: %w", id, ErrUnknownElement)
	}
	out := c.Clone()
	out.Images = append(out.Images[:i], out.Images[i+1:]...)
	return out, nil
}

func (c Config) ResizeImage(id string, size int) (Config, error) {
	i, ok := c.imageIndex(id)
	if !ok {
		return c, fmt.Errorf("image %q: %w", id, ErrUnknownElement)
	}
	if size <= 0 {
		return c, fmt.Errorf("image size %d: %w", size, ErrInvalidValue)
	}
	out := c.Clone()
	out.Images[i].Size = size
	return out, nil
}

// MoveElement sets the normalized position of the title, the subtitle or
// one overlay image.
func (c Config) MoveElement(id string, pos Position) (Config, error) {
	if err := checkPosition(pos); err != nil {
		return c, err
	}
	switch id {
	case ElementTitle:
		out := c.Clone()
		out.TitlePosition = pos
		return out, nil
	case ElementSubtitle:
		out := c.Clone()
		out.SubtitlePosition = pos
		return out, nil
	}
	i, ok := c.imageIndex(id)
	if !ok {
		return c, fmt.Errorf("element %q: %w", id, ErrUnknownElement)
	}
	out := c.Clone()
	out.Images[i].Position = pos
	return out, nil
}

// NewImageID builds the {timestamp}-{filename} id given to an upload.
// Directory components of filename are dropped.
func NewImageID(t time.Time, filename string) string {
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." {
		name = "image"
	}
	return strconv.FormatInt(t.UnixMilli(), 10) + "-" + name
}

// NewOverlayImage returns an image with the upload defaults.
func NewOverlayImage(id, url string) OverlayImage {
	return OverlayImage{
		ID:       id,
		URL:      url,
		Size:     DefaultImageSize,
		Position: DefaultImagePosition,
	}
}

// ClampImageSize bounds a size coming from the editing control.
func ClampImageSize(n int) int {
	if n < MinImageSize {
		return MinImageSize
	}
	if n > MaxImageSize {
		return MaxImageSize
	}
	return n
}
