package entities

import (
	"fmt"

	"github.com/decker502/fireworks/internal/particle"
)

// FireworkState is the one-way state of a firework.
type FireworkState uint8

const (
	// StateAscending: the rocket is rising toward its explosion height.
	StateAscending FireworkState = iota
	// StateExploded: the rocket has burst; only sparks remain.
	StateExploded
)

// String returns the state name.
func (s FireworkState) String() string {
	if s == StateExploded {
		return "exploded"
	}
	return "ascending"
}

// Bounds is the size of the display area fireworks launch into.
type Bounds struct {
	Width  float64
	Height float64
}

// Params configures one firework: the shared particle physics plus the
// launch geometry and burst size.
type Params struct {
	Particle particle.Params

	// SparkCount is the number of sparks created by the explosion.
	SparkCount int
	// LaunchBand is the horizontal launch position as fractions of the width
	// (0.2-0.8 keeps rockets in the central band).
	LaunchBand particle.Range
	// ExplosionBand is the explosion height as fractions of the height,
	// measured from the top edge.
	ExplosionBand particle.Range
}

// DefaultParams returns the classic firework: 120 sparks, launched from the
// central 60% of the width, bursting between 20% and 50% of the height.
func DefaultParams() Params {
	return Params{
		Particle:      particle.DefaultParams(),
		SparkCount:    120,
		LaunchBand:    particle.Range{Min: 0.2, Max: 0.8},
		ExplosionBand: particle.Range{Min: 0.2, Max: 0.5},
	}
}

// Validate checks the firework constants.
func (p Params) Validate() error {
	if err := p.Particle.Validate(); err != nil {
		return err
	}
	if p.SparkCount <= 0 {
		return fmt.Errorf("sparkCount must be > 0, got %d", p.SparkCount)
	}
	if err := validateBand("launchBand", p.LaunchBand); err != nil {
		return err
	}
	return validateBand("explosionBand", p.ExplosionBand)
}

func validateBand(name string, r particle.Range) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if r.Min < 0 || r.Max > 1 {
		return fmt.Errorf("%s must lie within [0, 1], got %v", name, r)
	}
	return nil
}

// Firework owns one rocket and, after the explosion, the sparks it produced
// (烟花实体). The spark collection is filled exactly once and only shrinks
// afterwards.
type Firework struct {
	hue             float64
	rocket          *particle.Particle
	sparks          []*particle.Particle
	exploded        bool
	explosionHeight float64

	params *Params
	rng    particle.Rand
}

// NewFirework launches a rocket from the bottom edge of bounds with a random
// hue, horizontal position and explosion height.
func NewFirework(bounds Bounds, params *Params, rng particle.Rand) *Firework {
	hue := rng.Float64() * 255
	x := bounds.Width * params.LaunchBand.Random(rng)
	explosionHeight := bounds.Height * params.ExplosionBand.Random(rng)

	return &Firework{
		hue:             hue,
		rocket:          particle.NewRocket(particle.Vec(x, bounds.Height), hue, &params.Particle, rng),
		explosionHeight: explosionHeight,
		params:          params,
		rng:             rng,
	}
}

// Update advances the firework by one tick.
//
// While ascending, the rocket moves and the explosion fires once its Y
// reaches the explosion height. Then every spark moves, and sparks that are
// done are removed in the same tick.
func (f *Firework) Update() {
	if !f.exploded {
		f.rocket.Update()
		if f.rocket.Position().Y <= f.explosionHeight {
			f.exploded = true
			f.explode()
		}
	}

	for i := len(f.sparks) - 1; i >= 0; i-- {
		f.sparks[i].Update()
		if f.sparks[i].Done() {
			f.sparks = append(f.sparks[:i], f.sparks[i+1:]...)
		}
	}
}

// explode fans the rocket out into SparkCount sparks at its current
// position. Update calls it exactly once, on the ascending → exploded edge.
func (f *Firework) explode() {
	pos := f.rocket.Position()
	if f.sparks == nil {
		f.sparks = make([]*particle.Particle, 0, f.params.SparkCount)
	}
	for i := 0; i < f.params.SparkCount; i++ {
		f.sparks = append(f.sparks, particle.NewSpark(pos, f.hue, &f.params.Particle, f.rng))
	}
}

// Done reports whether the firework has exploded and every spark expired.
func (f *Firework) Done() bool {
	return f.exploded && len(f.sparks) == 0
}

// Render draws the rocket while ascending and all live sparks.
func (f *Firework) Render(c particle.Canvas, style particle.Style) {
	if !f.exploded {
		f.rocket.Render(c, style)
	}
	for _, s := range f.sparks {
		s.Render(c, style)
	}
}

// State returns StateAscending or StateExploded.
func (f *Firework) State() FireworkState {
	if f.exploded {
		return StateExploded
	}
	return StateAscending
}

// Exploded reports whether the explosion has happened.
func (f *Firework) Exploded() bool { return f.exploded }

// Hue returns the colour shared by the rocket and every spark.
func (f *Firework) Hue() float64 { return f.hue }

// Rocket returns the rocket particle. After the explosion it is no longer
// updated or drawn.
func (f *Firework) Rocket() *particle.Particle { return f.rocket }

// ExplosionHeight returns the Y threshold chosen at launch.
func (f *Firework) ExplosionHeight() float64 { return f.explosionHeight }

// SparkCount returns the number of live sparks.
func (f *Firework) SparkCount() int { return len(f.sparks) }

// Sparks returns a copy of the live spark slice.
func (f *Firework) Sparks() []*particle.Particle {
	out := make([]*particle.Particle, len(f.sparks))
	copy(out, f.sparks)
	return out
}
