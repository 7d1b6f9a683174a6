package preset

import (
	"cover-photo/assets"
	"cover-photo/compose"
)

// PencilURL references the built-in artwork every preset starts with.
const PencilURL = assets.PencilRef

func base(titleSize, subtitleSize float64, pencil int) compose.Config {
	return compose.Config{
		Title:            "THE COOLEST",
		TitleFont:        "Arial Black",
		TitleSize:        titleSize,
		TitleColor:       "#26309d",
		TitlePosition:    compose.Position{X: 10, Y: 20},
		Subtitle:         "Skool Group!",
		SubtitleFont:     "Arial Black",
		SubtitleSize:     subtitleSize,
		SubtitleColor:    "#e44434",
		SubtitlePosition: compose.Position{X: 10, Y: 40},
		Images: []compose.OverlayImage{{
			ID:       "pencil",
			URL:      PencilURL,
			Size:     pencil,
			Position: compose.Position{X: 70, Y: 50},
		}},
		BackgroundType:  compose.BackgroundGradient,
		BackgroundColor: "#5f90fd",
		GradientColors:  [2]string{"#e7b358", "#f2cb88"},
		GradientDir:     "to bottom right",
		PatternType:     compose.PatternGraph,
		PatternColor:    "#50b9f3",
		PatternOpacity:  17,
	}
}

// Default returns the built-in breakpoint table.
func Default() Table {
	return Table{Breakpoints: []Breakpoint{
		{Name: "mobile", MaxWidth: 768, Config: base(48, 28, 100)},
		{Name: "small-medium", MaxWidth: 900, Config: base(72, 40, 149)},
		{Name: "medium", MaxWidth: 1024, Config: base(72, 40, 149)},
		{Name: "medium-large", MaxWidth: 1200, Config: base(72, 40, 133)},
		{Name: "large", MaxWidth: 1400, Config: base(72, 40, 190)},
		{Name: "desktop", MaxWidth: 0, Config: base(72, 40, 190)},
	}}
}
