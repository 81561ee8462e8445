// Package render provides the draw targets the firework engine renders onto:
// an ebiten image, an in-memory PNG frame and a terminal cell grid.
//
// Each target implements particle.Canvas and knows how to apply the
// background policy of game.Background and draw a game.Overlay.
package render

import (
	"image/color"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/game"
)

// Target is a canvas that also owns the frame background and score overlay.
type Target interface {
	particle.Canvas
	// Background clears or fades the frame according to game.Background.
	Background(celebrating bool)
	// DrawOverlay draws the laid-out score display.
	DrawOverlay(o game.Overlay)
}

// overlayMargin is the fraction of the frame width text may occupy.
const overlayMargin = 0.9

// fitSize shrinks a font size so text measured at size fits maxWidth.
func fitSize(size, measured, maxWidth float64) float64 {
	if measured <= 0 || measured <= maxWidth {
		return size
	}
	return size * maxWidth / measured
}

// toNRGBA converts any colour to its non-premultiplied form.
func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
