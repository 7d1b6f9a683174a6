// Package render maps a composition configuration to a visual tree: a flat,
// fully resolved description of what to paint, in paint order.
//
// Render is a pure function. The same configuration and canvas always yield
// an identical tree, and the tree marshals to identical JSON.
package render

import "cover-photo/compose"

// Canvas is the composition bounding box in CSS pixels.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultCanvas is the 1084×576 cover photo box.
var DefaultCanvas = Canvas{Width: 1084, Height: 576}

type BackgroundKind string

const (
	BackgroundNone     BackgroundKind = "none"
	BackgroundFill     BackgroundKind = "fill"
	BackgroundGradient BackgroundKind = "gradient"
	BackgroundImage    BackgroundKind = "image"
)

// Tree is the root of the visual tree. Paint order: Background, Pattern,
// Images (in order), Texts (title then subtitle).
type Tree struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Background Background    `json:"background"`
	Pattern    *PatternLayer `json:"pattern,omitempty"`
	Images     []ImageNode   `json:"images"`
	Texts      []TextNode    `json:"texts"`
}

type Background struct {
	Kind     BackgroundKind `json:"kind"`
	Color    string         `json:"color,omitempty"`
	Gradient *Gradient      `json:"gradient,omitempty"`
	Image    *CoverImage    `json:"image,omitempty"`
}

// Gradient is a two-stop linear gradient between two points in canvas
// pixels; the first stop sits at (X0, Y0).
type Gradient struct {
	X0     float64   `json:"x0"`
	Y0     float64   `json:"y0"`
	X1     float64   `json:"x1"`
	Y1     float64   `json:"y1"`
	Colors [2]string `json:"colors"`
}

// CoverImage fills the whole canvas, scaled to cover, centered and clipped.
type CoverImage struct {
	Ref string `json:"ref"`
}

type Blend string

const BlendMultiply Blend = "multiply"

type TileShape string

const (
	TileDot   TileShape = "dot"   // circle of Weight radius at the tile center
	TileLines TileShape = "lines" // Weight-thick lines along the tile's left and top edges
)

// Tile is one repeating layer of a pattern.
type Tile struct {
	Shape  TileShape `json:"shape"`
	Size   float64   `json:"size"` // square tile edge
	Weight float64   `json:"weight"`
	Color  string    `json:"color"`
	Alpha  float64   `json:"alpha"`
}

// PatternLayer covers the full canvas and is composited over the background.
type PatternLayer struct {
	Kind    compose.PatternType `json:"kind"`
	Opacity float64             `json:"opacity"`
	Blend   Blend               `json:"blend"`
	Tiles   []Tile              `json:"tiles"`
}

// ImageNode is a square box whose content is scaled to fit without cropping.
// X and Y are the top-left corner in canvas pixels.
type ImageNode struct {
	ID        string           `json:"id"`
	Ref       string           `json:"ref"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	Size      int              `json:"size"`
	Position  compose.Position `json:"position"`
	Draggable bool             `json:"draggable"`
}

// TextNode is a single line of text anchored at its top-left corner.
type TextNode struct {
	ID        string           `json:"id"`
	Text      string           `json:"text"`
	Font      string           `json:"font"`
	Size      float64          `json:"size"`
	Color     string           `json:"color"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	Position  compose.Position `json:"position"`
	NoWrap    bool             `json:"noWrap"`
	Draggable bool             `json:"draggable"`
}
