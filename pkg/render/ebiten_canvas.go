package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/fireworks/pkg/game"
)

// EbitenCanvas draws onto an ebiten image. The screen must not be cleared
// by ebiten between frames (ebiten.SetScreenClearedEveryFrame(false)),
// otherwise the celebration afterglow is lost.
type EbitenCanvas struct {
	dst    *ebiten.Image
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewEbitenCanvas creates a canvas with the Go Regular font for overlays.
func NewEbitenCanvas() (*EbitenCanvas, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &EbitenCanvas{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// SetTarget selects the image drawn on by subsequent calls. Call it at the
// start of every Draw with the screen image.
func (c *EbitenCanvas) SetTarget(dst *ebiten.Image) {
	c.dst = dst
}

// DrawDot implements particle.Canvas.
func (c *EbitenCanvas) DrawDot(x, y, radius float64, clr color.Color) {
	vector.FillCircle(c.dst, float32(x), float32(y), float32(radius), clr, true)
}

// Background clears to white, or lays the translucent black afterglow
// rectangle over the previous frame while celebrating.
func (c *EbitenCanvas) Background(celebrating bool) {
	bg := game.Background(celebrating)
	if bg.A == 255 {
		c.dst.Fill(bg)
		return
	}
	b := c.dst.Bounds()
	vector.FillRect(c.dst, float32(b.Min.X), float32(b.Min.Y),
		float32(b.Dx()), float32(b.Dy()), bg, false)
}

// DrawOverlay draws the headline, the score line and the tier shape.
func (c *EbitenCanvas) DrawOverlay(o game.Overlay) {
	switch o.Shape {
	case game.ShapeCircle:
		vector.FillCircle(c.dst, float32(o.ShapeX), float32(o.ShapeY), float32(o.ShapeSize/2), o.ShapeColor, true)
	case game.ShapeSquare:
		half := o.ShapeSize / 2
		vector.FillRect(c.dst, float32(o.ShapeX-half), float32(o.ShapeY-half),
			float32(o.ShapeSize), float32(o.ShapeSize), o.ShapeColor, true)
	}

	c.drawCentered(o.Headline, o.HeadlineX, o.HeadlineY, o.HeadlineSize, o.HeadlineColor)
	c.drawCentered(o.ScoreText, o.ScoreX, o.ScoreY, o.ScoreSize, o.ScoreColor)
}

func (c *EbitenCanvas) drawCentered(s string, x, y, size float64, clr color.Color) {
	face := c.face(size)
	w, _ := text.Measure(s, face, 0)
	if fitted := fitSize(size, w, float64(c.dst.Bounds().Dx())*overlayMargin); fitted != size {
		face = c.face(fitted)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.dst, s, face, op)
}

// face returns a cached face for size.
func (c *EbitenCanvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{
		Source:    c.source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	c.faces[size] = f
	return f
}
