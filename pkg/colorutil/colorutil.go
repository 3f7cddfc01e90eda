// Package colorutil provides the shared palette for drawing selection boxes.
package colorutil

import (
	"fmt"
	"image/color"
)

// Colors used by every renderer so the window and the exported snapshots match.
var (
	Black       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Grey        = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange      = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	DarkOrange  = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Background  = color.RGBA{R: 34, G: 34, B: 38, A: 255}
	Transparent = color.RGBA{}
)

// Lerp blends two colors; t=0 returns a, t=1 returns b.
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Hex formats a color as #rrggbb for SVG styles.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
