package compose

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Fonts is the fixed list of families offered for title and subtitle.
var Fonts = []string{
	"Arial", "Helvetica", "Times New Roman", "Courier", "Verdana", "Georgia", "Palatino",
	"Garamond", "Bookman", "Comic Sans MS", "Trebuchet MS", "Arial Black", "Impact",
	"Roboto", "Open Sans", "Lato", "Montserrat", "Raleway", "Oswald", "Merriweather",
	"Poppins", "Playfair Display", "Ubuntu", "Roboto Condensed", "Roboto Slab",
	"Source Sans Pro", "PT Sans", "Noto Sans", "Nunito", "Titillium Web", "Rubik",
	"Work Sans", "Fira Sans",
	"Brush Script MT", "Luminari", "Chalkduster", "Jazz LET", "Blippo", "Stencil Std",
	"Marker Felt", "Trattatello", "Papyrus", "Herculanum", "Party LET", "Snell Roundhand",
	"Bradley Hand",
}

// FontSizes are the sizes suggested by the text controls. Any positive size
// is accepted by the model.
var FontSizes = []float64{12, 14, 16, 18, 20, 24, 28, 32, 36, 40, 48, 56, 64, 72, 96, 128}

var ColorSwatches = []string{
	"#FCC8D1", "#DBC4F0", "#B2A4FF", "#67729D", "#7C93C3",
	"#7B8FA1", "#609966", "#A6BB8D", "#FFF6BD", "#F2D388",
	"#FFF3E2", "#FFC3A1", "#D3756B", "#FFABAB", "#000000",
	"#FFFFFF",
}

// GradientSwatch is a ready-made two-stop gradient.
type GradientSwatch struct {
	Colors    [2]string         `json:"colors"`
	Direction GradientDirection `json:"direction"`
}

var GradientSwatches = []GradientSwatch{
	{[2]string{"#FF416C", "#FF4B2B"}, "to right"},
	{[2]string{"#4158D0", "#C850C0"}, "to right"},
	{[2]string{"#00DBDE", "#FC00FF"}, "to right"},
	{[2]string{"#0093E9", "#80D0C7"}, "to bottom"},
	{[2]string{"#8EC5FC", "#E0C3FC"}, "to bottom"},
	{[2]string{"#85FFBD", "#FFFB7D"}, "to bottom"},
	{[2]string{"#FBAB7E", "#F7CE68"}, "to top"},
	{[2]string{"#FCCB90", "#D57EEB"}, "to bottom right"},
	{[2]string{"#A9C9FF", "#FFBBEC"}, "to bottom right"},
	{[2]string{"#74EBD5", "#9FACE6"}, "to bottom right"},
	{[2]string{"#6E45E2", "#88D3CE"}, "to bottom right"},
	{[2]string{"#D4FC79", "#96E6A1"}, "to bottom right"},
	{[2]string{"#FA709A", "#FEE140"}, "to bottom right"},
	{[2]string{"#FF6B6B", "#4ECDC4"}, "to right"},
	{[2]string{"#FBD3E9", "#BB377D"}, "to right"},
	{[2]string{"#00C9FF", "#92FE9D"}, "to right"},
	{[2]string{"#F857A6", "#FF5858"}, "to right"},
}

func ValidFont(name string) bool {
	for _, f := range Fonts {
		if f == name {
			return true
		}
	}
	return false
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHex accepts #rgb and #rrggbb.
func ValidHex(s string) bool {
	return hexColor.MatchString(s)
}

// GradientDirection is a compass keyword such as "to bottom right" or a
// custom angle such as "135deg".
type GradientDirection string

// Direction is a parsed GradientDirection. For corner keywords the angle
// depends on the box aspect ratio, so only the horizontal and vertical signs
// are kept and Corner is set.
type Direction struct {
	Angle  float64 // degrees, 0 = towards the top, clockwise
	Corner bool
	DX, DY int // corner signs, -1 or +1
}

// Compass keywords in clockwise order starting at "to top".
var Compass = []GradientDirection{
	"to top", "to top right", "to right", "to bottom right",
	"to bottom", "to bottom left", "to left", "to top left",
}

func ParseGradientDirection(d GradientDirection) (Direction, error) {
	s := strings.TrimSpace(string(d))
	switch s {
	case "to top":
		return Direction{Angle: 0}, nil
	case "to right":
		return Direction{Angle: 90}, nil
	case "to bottom":
		return Direction{Angle: 180}, nil
	case "to left":
		return Direction{Angle: 270}, nil
	case "to top right":
		return Direction{Angle: 45, Corner: true, DX: 1, DY: -1}, nil
	case "to bottom right":
		return Direction{Angle: 135, Corner: true, DX: 1, DY: 1}, nil
	case "to bottom left":
		return Direction{Angle: 225, Corner: true, DX: -1, DY: 1}, nil
	case "to top left":
		return Direction{Angle: 315, Corner: true, DX: -1, DY: -1}, nil
	}
	if num, ok := strings.CutSuffix(s, "deg"); ok {
		a, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err == nil && !math.IsNaN(a) && !math.IsInf(a, 0) {
			return Direction{Angle: a}, nil
		}
	}
	return Direction{}, fmt.Errorf("gradient direction %q: %w", d, ErrInvalidValue)
}
