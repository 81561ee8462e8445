package particle

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

// fixedRand returns the same value on every draw.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42)) // #nosec G404 -- deterministic test
}

func TestNewRocket_VelocityStraightUp(t *testing.T) {
	params := DefaultParams()
	rng := newTestRand()

	for i := 0; i < 200; i++ {
		p := NewRocket(Vec(100, 600), 10, &params, rng)
		if p.Kind() != KindRocket {
			t.Fatalf("kind = %v, want rocket", p.Kind())
		}
		v := p.Velocity()
		if v.X != 0 {
			t.Fatalf("rocket velocity X = %v, want 0", v.X)
		}
		if v.Y > -params.RocketSpeed.Min || v.Y < -params.RocketSpeed.Max {
			t.Fatalf("rocket velocity Y = %v, want in [-%v, -%v]", v.Y, params.RocketSpeed.Max, params.RocketSpeed.Min)
		}
		if !p.Acceleration().IsZero() {
			t.Fatalf("rocket acceleration = %v, want zero", p.Acceleration())
		}
	}
}

func TestNewSpark_SpeedWithinRange(t *testing.T) {
	params := DefaultParams()
	rng := newTestRand()

	for i := 0; i < 500; i++ {
		p := NewSpark(Vec(0, 0), 200, &params, rng)
		speed := p.Velocity().Len()
		if speed < params.SparkSpeed.Min-1e-9 || speed > params.SparkSpeed.Max+1e-9 {
			t.Fatalf("spark speed = %v, want in %v", speed, params.SparkSpeed)
		}
		if p.Lifespan() != MaxLifespan {
			t.Fatalf("spark lifespan = %v, want %v", p.Lifespan(), MaxLifespan)
		}
		if p.Hue() != 200 {
			t.Fatalf("spark hue = %v, want 200", p.Hue())
		}
	}
}

func TestNewSpark_DirectionFromRandom(t *testing.T) {
	params := DefaultParams()
	params.SparkSpeed = Fixed(4)

	// 0.25 of a full turn points straight down (Y grows downward).
	p := NewSpark(Vec(0, 0), 0, &params, fixedRand(0.25))
	v := p.Velocity()
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-4) > 1e-9 {
		t.Errorf("velocity = %v, want (0, 4)", v)
	}
}

func TestApplyForce_Accumulates(t *testing.T) {
	params := DefaultParams()
	p := NewSpark(Vec(0, 0), 0, &params, fixedRand(0))

	p.ApplyForce(Vec(1, 2))
	p.ApplyForce(Vec(0.5, -1))

	if got := p.Acceleration(); got != Vec(1.5, 1) {
		t.Errorf("acceleration = %v, want (1.5, 1)", got)
	}
	if p.Position() != Vec(0, 0) {
		t.Errorf("ApplyForce moved the particle to %v", p.Position())
	}
}

func TestUpdate_ClearsAcceleration(t *testing.T) {
	params := DefaultParams()
	for _, kind := range []Kind{KindRocket, KindSpark} {
		t.Run(kind.String(), func(t *testing.T) {
			var p *Particle
			if kind == KindRocket {
				p = NewRocket(Vec(0, 100), 0, &params, fixedRand(0.5))
			} else {
				p = NewSpark(Vec(0, 100), 0, &params, fixedRand(0.5))
			}
			p.ApplyForce(Vec(3, 3))
			p.Update()
			if !p.Acceleration().IsZero() {
				t.Errorf("acceleration after update = %v, want zero", p.Acceleration())
			}
		})
	}
}

func TestUpdate_SparkOrder(t *testing.T) {
	params := DefaultParams()
	params.SparkSpeed = Fixed(4)

	// Heading right: vel = (4, 0).
	p := NewSpark(Vec(10, 10), 0, &params, fixedRand(0))
	p.Update()

	// Drag applies to the old velocity, then gravity is integrated.
	wantVel := Vec(4*params.Drag, params.Gravity)
	if math.Abs(p.Velocity().X-wantVel.X) > 1e-9 || math.Abs(p.Velocity().Y-wantVel.Y) > 1e-9 {
		t.Errorf("velocity = %v, want %v", p.Velocity(), wantVel)
	}
	wantPos := Vec(10, 10).Add(wantVel)
	if math.Abs(p.Position().X-wantPos.X) > 1e-9 || math.Abs(p.Position().Y-wantPos.Y) > 1e-9 {
		t.Errorf("position = %v, want %v", p.Position(), wantPos)
	}
	if p.Lifespan() != MaxLifespan-params.Decay {
		t.Errorf("lifespan = %v, want %v", p.Lifespan(), MaxLifespan-params.Decay)
	}
}

func TestSpark_LifespanStrictlyDecreasesAndExpires(t *testing.T) {
	params := DefaultParams()
	p := NewSpark(Vec(0, 0), 0, &params, newTestRand())

	want := params.SparkTicks()
	prev := p.Lifespan()
	ticks := 0
	for !p.Done() {
		p.Update()
		ticks++
		if p.Lifespan() >= prev {
			t.Fatalf("tick %d: lifespan %v did not decrease from %v", ticks, p.Lifespan(), prev)
		}
		prev = p.Lifespan()
		if ticks > want+1 {
			t.Fatalf("spark still alive after %d ticks", ticks)
		}
	}
	if ticks != want {
		t.Errorf("spark expired after %d ticks, want %d", ticks, want)
	}
	if ticks != 64 {
		t.Errorf("classic spark expired after %d ticks, want 64", ticks)
	}
}

func TestRocket_AscendsWithoutDecay(t *testing.T) {
	params := DefaultParams()
	p := NewRocket(Vec(50, 500), 0, &params, newTestRand())
	speed := p.Velocity()

	prevY := p.Position().Y
	for i := 0; i < 100; i++ {
		p.Update()
		if p.Position().Y > prevY {
			t.Fatalf("tick %d: rocket moved down from %v to %v", i, prevY, p.Position().Y)
		}
		prevY = p.Position().Y
	}
	if p.Velocity() != speed {
		t.Errorf("rocket velocity changed from %v to %v without forces", speed, p.Velocity())
	}
	if p.Lifespan() != MaxLifespan {
		t.Errorf("rocket lifespan = %v, want untouched %v", p.Lifespan(), MaxLifespan)
	}
	if p.Done() {
		t.Error("rocket reported Done")
	}
}

func TestAlpha(t *testing.T) {
	params := DefaultParams()
	rocket := NewRocket(Vec(0, 0), 0, &params, fixedRand(0))
	spark := NewSpark(Vec(0, 0), 0, &params, fixedRand(0))

	if rocket.Alpha() != 1 {
		t.Errorf("rocket alpha = %v, want 1", rocket.Alpha())
	}
	if spark.Alpha() != 1 {
		t.Errorf("fresh spark alpha = %v, want 1", spark.Alpha())
	}
	for !spark.Done() {
		spark.Update()
	}
	if spark.Alpha() != 0 {
		t.Errorf("expired spark alpha = %v, want 0", spark.Alpha())
	}
}

type dot struct {
	x, y, r float64
	a       uint8
}

type recordingCanvas struct {
	dots []dot
}

func (c *recordingCanvas) DrawDot(x, y, radius float64, col color.Color) {
	_, _, _, a := col.RGBA()
	c.dots = append(c.dots, dot{x: x, y: y, r: radius, a: uint8(a >> 8)})
}

func TestRender_Styles(t *testing.T) {
	params := DefaultParams()
	rocket := NewRocket(Vec(5, 6), 0, &params, fixedRand(0))

	var point recordingCanvas
	rocket.Render(&point, StylePoint)
	if len(point.dots) != 1 {
		t.Fatalf("point style drew %d dots, want 1", len(point.dots))
	}
	if point.dots[0].r != params.RocketSize/2 {
		t.Errorf("rocket radius = %v, want %v", point.dots[0].r, params.RocketSize/2)
	}

	var glow recordingCanvas
	rocket.Render(&glow, StyleGlow)
	if len(glow.dots) != 2 {
		t.Fatalf("glow style drew %d dots, want 2", len(glow.dots))
	}
	if glow.dots[0].r <= glow.dots[1].r {
		t.Errorf("halo radius %v should exceed core radius %v", glow.dots[0].r, glow.dots[1].r)
	}
}

func TestRender_SkipsInvisibleSpark(t *testing.T) {
	params := DefaultParams()
	spark := NewSpark(Vec(0, 0), 0, &params, fixedRand(0))
	for !spark.Done() {
		spark.Update()
	}

	var c recordingCanvas
	spark.Render(&c, StylePoint)
	if len(c.dots) != 0 {
		t.Errorf("expired spark drew %d dots", len(c.dots))
	}
}

func TestKindString(t *testing.T) {
	if KindRocket.String() != "rocket" || KindSpark.String() != "spark" {
		t.Errorf("unexpected kind names %q %q", KindRocket, KindSpark)
	}
	if Kind(9).String() != "kind(9)" {
		t.Errorf("unknown kind = %q", Kind(9).String())
	}
}
