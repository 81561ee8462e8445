package particle

import "math"

// glowScale is the halo radius multiplier used by StyleGlow.
const glowScale = 3.0

// glowAlpha is the halo opacity relative to the dot opacity.
const glowAlpha = 0.25

// Particle is one simulated point (粒子): a rocket or a spark.
//
// Acceleration only holds the forces of the current tick; it is cleared
// after every integration step.
type Particle struct {
	pos Vector2
	vel Vector2
	acc Vector2

	hue      float64
	kind     Kind
	lifespan float64

	params *Params
}

// NewRocket creates an ascending rocket at pos. Its velocity points straight
// up with a magnitude drawn from params.RocketSpeed.
func NewRocket(pos Vector2, hue float64, params *Params, rng Rand) *Particle {
	return &Particle{
		pos:      pos,
		vel:      Vec(0, -params.RocketSpeed.Random(rng)),
		hue:      hue,
		kind:     KindRocket,
		lifespan: MaxLifespan,
		params:   params,
	}
}

// NewSpark creates a burst spark at pos heading in a uniformly random
// direction with a magnitude drawn from params.SparkSpeed.
func NewSpark(pos Vector2, hue float64, params *Params, rng Rand) *Particle {
	dir := FromAngle(rng.Float64() * 2 * math.Pi)
	return &Particle{
		pos:      pos,
		vel:      dir.Scale(params.SparkSpeed.Random(rng)),
		hue:      hue,
		kind:     KindSpark,
		lifespan: MaxLifespan,
		params:   params,
	}
}

// Kind returns the behaviour variant.
func (p *Particle) Kind() Kind { return p.kind }

// Position returns the current location.
func (p *Particle) Position() Vector2 { return p.pos }

// Velocity returns the per-tick displacement.
func (p *Particle) Velocity() Vector2 { return p.vel }

// Acceleration returns the forces accumulated since the last Update.
func (p *Particle) Acceleration() Vector2 { return p.acc }

// Hue returns the colour identity fixed at creation.
func (p *Particle) Hue() float64 { return p.hue }

// Lifespan returns the remaining lifespan. Rockets stay at MaxLifespan.
func (p *Particle) Lifespan() float64 { return p.lifespan }

// ApplyForce accumulates f into the acceleration of the current tick.
func (p *Particle) ApplyForce(f Vector2) {
	p.acc = p.acc.Add(f)
}

// Update advances the particle by one tick.
//
// Sparks first receive gravity, drag and decay; then every particle
// integrates acceleration into velocity and velocity into position, and the
// acceleration is cleared for the next tick.
func (p *Particle) Update() {
	switch p.kind {
	case KindSpark:
		p.ApplyForce(Vec(0, p.params.Gravity))
		p.vel = p.vel.Scale(p.params.Drag)
		p.lifespan -= p.params.Decay
	case KindRocket:
		// no drag, no decay
	}

	p.vel = p.vel.Add(p.acc)
	p.pos = p.pos.Add(p.vel)
	p.acc = Vector2{}
}

// Done reports whether a spark has faded out (lifespan < 0).
// A rocket never completes through Done; its Firework tracks the explosion.
func (p *Particle) Done() bool {
	if p.kind != KindSpark {
		return false
	}
	return p.lifespan < 0
}

// Alpha returns the draw opacity in [0, 1]: sparks fade with their lifespan,
// rockets are fully opaque.
func (p *Particle) Alpha() float64 {
	if p.kind != KindSpark {
		return 1
	}
	return clamp01(p.lifespan / MaxLifespan)
}

// Radius returns the dot radius for the particle's kind.
func (p *Particle) Radius() float64 {
	if p.kind == KindRocket {
		return p.params.RocketSize / 2
	}
	return p.params.SparkSize / 2
}

// Render draws the particle onto c.
func (p *Particle) Render(c Canvas, style Style) {
	alpha := p.Alpha()
	if alpha <= 0 {
		return
	}
	r := p.Radius()
	if style == StyleGlow {
		c.DrawDot(p.pos.X, p.pos.Y, r*glowScale, HueColor(p.hue, alpha*glowAlpha))
	}
	c.DrawDot(p.pos.X, p.pos.Y, r, HueColor(p.hue, alpha))
}
