// Package particle implements the single simulated point of a firework:
// the ascending rocket and the fading sparks it bursts into.
//
// Particles are plain values updated once per frame. All randomness is drawn
// from an injected Rand at construction time, so a particle evolves
// deterministically after it has been created.
package particle

import (
	"fmt"
	"image/color"
)

// Kind selects the particle behaviour variant.
type Kind uint8

const (
	// KindRocket ascends with no drag and never decays.
	KindRocket Kind = iota
	// KindSpark radiates outward, falls under gravity, slows down and fades.
	KindSpark
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindRocket:
		return "rocket"
	case KindSpark:
		return "spark"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Style selects how particles are drawn. It is a presentation choice only.
type Style uint8

const (
	// StylePoint draws each particle as a single dot (trail look with an afterglow background).
	StylePoint Style = iota
	// StyleGlow draws a faint halo behind the dot.
	StyleGlow
)

// ParseStyle converts a config string ("point", "glow") to a Style.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "point":
		return StylePoint, nil
	case "glow":
		return StyleGlow, nil
	default:
		return StylePoint, fmt.Errorf("unknown particle style %q", s)
	}
}

// String returns the config name of the style.
func (s Style) String() string {
	if s == StyleGlow {
		return "glow"
	}
	return "point"
}

// Rand is the random source used for construction-time randomness.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Canvas is the draw sink particles render onto (渲染目标).
// Implementations live in pkg/render.
type Canvas interface {
	// DrawDot draws a filled circle centred at (x, y).
	DrawDot(x, y, radius float64, c color.Color)
}

// MaxLifespan is the lifespan every spark starts with. Alpha is derived from it.
const MaxLifespan = 255.0

// Params holds the physics and size constants shared by every particle of
// one engine configuration.
type Params struct {
	RocketSpeed Range // upward launch speed magnitude (pixels/tick)
	SparkSpeed  Range // radial burst speed magnitude (pixels/tick)

	Gravity float64 // downward force applied to sparks each tick
	Drag    float64 // velocity multiplier applied to sparks each tick, in (0, 1)
	Decay   float64 // lifespan lost by sparks each tick

	RocketSize float64 // rocket dot diameter in pixels
	SparkSize  float64 // spark dot diameter in pixels
}

// DefaultParams returns the classic preset: fast rockets, wide bursts and
// sparks that fade out in 64 ticks.
func DefaultParams() Params {
	return Params{
		RocketSpeed: Range{Min: 10, Max: 14},
		SparkSpeed:  Range{Min: 2, Max: 8},
		Gravity:     0.25,
		Drag:        0.92,
		Decay:       4,
		RocketSize:  4,
		SparkSize:   3,
	}
}

// Validate checks that the constants produce the intended qualitative
// shape: rockets rise, sparks slow down and expire in a bounded number of ticks.
func (p Params) Validate() error {
	if err := p.RocketSpeed.Validate(); err != nil {
		return fmt.Errorf("rocketSpeed: %w", err)
	}
	if p.RocketSpeed.Min <= 0 {
		return fmt.Errorf("rocketSpeed must be > 0, got %v", p.RocketSpeed)
	}
	if err := p.SparkSpeed.Validate(); err != nil {
		return fmt.Errorf("sparkSpeed: %w", err)
	}
	if p.SparkSpeed.Min < 0 {
		return fmt.Errorf("sparkSpeed must be >= 0, got %v", p.SparkSpeed)
	}
	if p.Gravity < 0 {
		return fmt.Errorf("gravity must be >= 0, got %v", p.Gravity)
	}
	if p.Drag <= 0 || p.Drag >= 1 {
		return fmt.Errorf("drag must be in (0, 1), got %v", p.Drag)
	}
	if p.Decay <= 0 {
		return fmt.Errorf("decay must be > 0, got %v", p.Decay)
	}
	if p.RocketSize <= 0 || p.SparkSize <= 0 {
		return fmt.Errorf("particle sizes must be > 0, got rocket=%v spark=%v", p.RocketSize, p.SparkSize)
	}
	return nil
}

// SparkTicks returns the number of Update calls after which a fresh spark
// reports Done.
func (p Params) SparkTicks() int {
	n := 0
	for life := MaxLifespan; life >= 0; life -= p.Decay {
		n++
	}
	return n
}
