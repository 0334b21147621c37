package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Palette fills nodes that do not set a color, cycling by paint index.
var Palette = []string{
	"#5f87ff", "#ff5f87", "#5fd7af", "#ffaf5f", "#af87ff", "#87d7ff", "#d7d75f",
}

// Background is the canvas color of raster renderers.
const Background = "#1c1c1c"

// Fill resolves a node color. Invalid or empty colors fall back to the
// palette entry for index.
func Fill(hex string, index int) colorful.Color {
	if hex != "" {
		if c, err := colorful.Hex(hex); err == nil {
			return c
		}
	}
	c, _ := colorful.Hex(Palette[index%len(Palette)])
	return c
}

// Blend mixes c toward the background by opacity, for outputs without an
// alpha channel.
func Blend(c colorful.Color, opacity float64) colorful.Color {
	bg, _ := colorful.Hex(Background)
	return bg.BlendRgb(c, clamp01(opacity)).Clamped()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
