package particle

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HueColor converts a hue in [0, 255) at full saturation and brightness and
// an alpha in [0, 1] to a non-premultiplied colour.
func HueColor(hue, alpha float64) color.NRGBA {
	return HSBColor(hue, 255, 255, alpha)
}

// HSBColor converts hue/saturation/brightness channels expressed on the
// 0-255 scale used throughout the engine (色相/饱和度/亮度 0-255).
func HSBColor(hue, sat, bri, alpha float64) color.NRGBA {
	h := math.Mod(hue, 255)
	if h < 0 {
		h += 255
	}
	c := colorful.Hsv(h/255*360, clamp01(sat/255), clamp01(bri/255)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
