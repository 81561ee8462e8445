package game

import (
	"image/color"

	"github.com/decker502/fireworks/internal/particle"
)

// Tier is the result band a score falls into.
type Tier int

const (
	// TierWaiting: no score yet (0%).
	TierWaiting Tier = iota
	// TierNeedsWork: above 0% and below 60%.
	TierNeedsWork
	// TierGood: 60% and above.
	TierGood
	// TierExcellent: 90% and above.
	TierExcellent
)

// Shape is the decoration drawn under the score.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeCircle
	ShapeSquare
)

// TierFor returns the tier for s. maxScore <= 0 is always TierWaiting.
func TierFor(s ScoreState) Tier {
	p := s.Percentage()
	switch {
	case p >= 90:
		return TierExcellent
	case p >= 60:
		return TierGood
	case p > 0:
		return TierNeedsWork
	default:
		return TierWaiting
	}
}

// String returns the tier name used in logs and reports.
func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	case TierNeedsWork:
		return "needs-work"
	default:
		return "waiting"
	}
}

// Headline returns the encouragement text shown above the score.
func (t Tier) Headline() string {
	switch t {
	case TierExcellent:
		return "Congratulations! Excellent result!"
	case TierGood:
		return "Good result, keep it up."
	case TierNeedsWork:
		return "Needs more effort!"
	default:
		return "Waiting for score..."
	}
}

// Color returns the headline colour (HSB on the 0-255 scale).
func (t Tier) Color() color.NRGBA {
	switch t {
	case TierExcellent:
		return particle.HSBColor(85, 255, 200, 1) // green
	case TierGood:
		return particle.HSBColor(32, 255, 255, 1) // yellow
	case TierNeedsWork:
		return particle.HSBColor(0, 200, 255, 1) // red
	default:
		return particle.HSBColor(0, 0, 150, 1) // grey
	}
}

// Shape returns the decoration for the tier: a circle for excellent, a
// square for good, nothing otherwise.
func (t Tier) Shape() Shape {
	switch t {
	case TierExcellent:
		return ShapeCircle
	case TierGood:
		return ShapeSquare
	default:
		return ShapeNone
	}
}

// Background returns the per-frame background fill. An opaque white clear
// when not celebrating; a translucent black overlay while celebrating, which
// leaves fading trails behind the particles.
func Background(celebrating bool) color.NRGBA {
	if celebrating {
		return color.NRGBA{A: 25}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}

// Overlay is the laid-out score display drawn on top of the fireworks.
type Overlay struct {
	Tier Tier

	Headline      string
	HeadlineColor color.NRGBA
	HeadlineX     float64
	HeadlineY     float64
	HeadlineSize  float64

	ScoreText  string
	ScoreColor color.NRGBA
	ScoreX     float64
	ScoreY     float64
	ScoreSize  float64

	Shape      Shape
	ShapeColor color.NRGBA
	ShapeX     float64
	ShapeY     float64
	ShapeSize  float64
}

// Overlay text sizes and offsets, in pixels.
const (
	headlineSize   = 80
	scoreSize      = 50
	shapeSize      = 150
	headlineOffset = 50
	scoreOffset    = 50
	shapeOffset    = 150
)

// LayoutOverlay positions the score display in a width×height area.
// All text is horizontally centred on the returned X coordinates.
func LayoutOverlay(s ScoreState, width, height float64) Overlay {
	tier := TierFor(s)
	cx, cy := width/2, height/2

	o := Overlay{
		Tier:          tier,
		Headline:      tier.Headline(),
		HeadlineColor: tier.Color(),
		HeadlineX:     cx,
		HeadlineY:     cy - headlineOffset,
		HeadlineSize:  headlineSize,
		ScoreText:     "Score: " + s.String(),
		ScoreX:        cx,
		ScoreY:        cy + scoreOffset,
		ScoreSize:     scoreSize,
		Shape:         tier.Shape(),
		ShapeX:        cx,
		ShapeY:        cy + shapeOffset,
		ShapeSize:     shapeSize,
	}
	if tier == TierWaiting {
		o.HeadlineY = cy
	}

	// White text on the dark celebration background, dark grey otherwise.
	if s.Celebrating {
		o.ScoreColor = particle.HSBColor(0, 0, 255, 1)
	} else {
		o.ScoreColor = particle.HSBColor(0, 0, 50, 1)
	}

	if o.Shape != ShapeNone {
		o.ShapeColor = o.HeadlineColor
		o.ShapeColor.A = 128
	}
	return o
}
