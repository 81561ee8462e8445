package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/fireworks/pkg/game"
)

// PNGCanvas renders frames into an in-memory RGBA image with gg.
// The image persists between frames so the afterglow accumulates the same
// way it does on screen.
type PNGCanvas struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewPNGCanvas creates a white width×height frame.
func NewPNGCanvas(width, height int) (*PNGCanvas, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	c := &PNGCanvas{
		dc:    gg.NewContext(width, height),
		font:  f,
		faces: make(map[float64]font.Face),
	}
	c.dc.SetColor(color.White)
	c.dc.Clear()
	return c, nil
}

// Width returns the frame width in pixels.
func (c *PNGCanvas) Width() int { return c.dc.Width() }

// Height returns the frame height in pixels.
func (c *PNGCanvas) Height() int { return c.dc.Height() }

// DrawDot implements particle.Canvas.
func (c *PNGCanvas) DrawDot(x, y, radius float64, clr color.Color) {
	c.dc.SetColor(clr)
	c.dc.DrawCircle(x, y, radius)
	c.dc.Fill()
}

// Background clears to white, or blends the translucent black afterglow
// over the previous frame while celebrating.
func (c *PNGCanvas) Background(celebrating bool) {
	bg := game.Background(celebrating)
	c.dc.SetColor(bg)
	if bg.A == 255 {
		c.dc.Clear()
		return
	}
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	c.dc.Fill()
}

// DrawOverlay draws the headline, the score line and the tier shape.
func (c *PNGCanvas) DrawOverlay(o game.Overlay) {
	switch o.Shape {
	case game.ShapeCircle:
		c.dc.SetColor(o.ShapeColor)
		c.dc.DrawCircle(o.ShapeX, o.ShapeY, o.ShapeSize/2)
		c.dc.Fill()
	case game.ShapeSquare:
		half := o.ShapeSize / 2
		c.dc.SetColor(o.ShapeColor)
		c.dc.DrawRectangle(o.ShapeX-half, o.ShapeY-half, o.ShapeSize, o.ShapeSize)
		c.dc.Fill()
	}

	c.drawCentered(o.Headline, o.HeadlineX, o.HeadlineY, o.HeadlineSize, o.HeadlineColor)
	c.drawCentered(o.ScoreText, o.ScoreX, o.ScoreY, o.ScoreSize, o.ScoreColor)
}

func (c *PNGCanvas) drawCentered(s string, x, y, size float64, clr color.Color) {
	c.dc.SetFontFace(c.face(size))
	w, _ := c.dc.MeasureString(s)
	if fitted := fitSize(size, w, float64(c.dc.Width())*overlayMargin); fitted != size {
		c.dc.SetFontFace(c.face(fitted))
	}
	c.dc.SetColor(clr)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

func (c *PNGCanvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{Size: size})
	c.faces[size] = f
	return f
}

// Image returns the current frame.
func (c *PNGCanvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the current frame as PNG.
func (c *PNGCanvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}

// SavePNG writes the current frame to path.
func (c *PNGCanvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save frame %s: %w", path, err)
	}
	return nil
}
