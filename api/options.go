package api

import (
	"net/http"

	"cover-photo/compose"
	"cover-photo/export"
	"cover-photo/feedback"
	"cover-photo/render"
)

type sizeRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// editorOptions lists the choices the editing controls offer.
type editorOptions struct {
	Fonts              []string                    `json:"fonts"`
	FontSizes          []float64                   `json:"fontSizes"`
	ColorSwatches      []string                    `json:"colorSwatches"`
	GradientSwatches   []compose.GradientSwatch    `json:"gradientSwatches"`
	GradientDirections []compose.GradientDirection `json:"gradientDirections"`
	BackgroundTypes    []compose.BackgroundType    `json:"backgroundTypes"`
	PatternTypes       []compose.PatternType       `json:"patternTypes"`
	ImageSize          sizeRange                   `json:"imageSize"`
	ExportFormats      []export.Format             `json:"exportFormats"`
	FeedbackMinLength  int                         `json:"feedbackMinLength"`
	Canvas             render.Canvas               `json:"canvas"`
}

func (h *handler) getOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, editorOptions{
		Fonts:              compose.Fonts,
		FontSizes:          compose.FontSizes,
		ColorSwatches:      compose.ColorSwatches,
		GradientSwatches:   compose.GradientSwatches,
		GradientDirections: compose.Compass,
		BackgroundTypes: []compose.BackgroundType{
			compose.BackgroundColor, compose.BackgroundGradient,
			compose.BackgroundPattern, compose.BackgroundImage,
		},
		PatternTypes: []compose.PatternType{
			compose.PatternNone, compose.PatternGrid,
			compose.PatternDots, compose.PatternGraph,
		},
		ImageSize: sizeRange{
			Min:     compose.MinImageSize,
			Max:     compose.MaxImageSize,
			Default: compose.DefaultImageSize,
		},
		ExportFormats:     export.Formats,
		FeedbackMinLength: feedback.MinLength,
		Canvas:            h.manager.Canvas(),
	})
}
