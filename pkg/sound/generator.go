// Package sound synthesises the firework sound effects and plays them either
// through the beep speaker (terminal front-end) or as PCM for ebiten/audio.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is shared by every generator and both playback paths.
const SampleRate = beep.SampleRate(48000)

const (
	// PopDuration is the length of one explosion crackle.
	PopDuration = 300 * time.Millisecond
	// LaunchDuration is the length of the rocket launch whistle.
	LaunchDuration = 250 * time.Millisecond
)

// PopGenerator produces a decaying crackle: filtered noise over a low thump.
// The noise comes from a linear congruential sequence, so equal seeds give
// equal samples.
type PopGenerator struct {
	sr    beep.SampleRate
	pos   int
	seed  int64
	thump float64
	last  float64
}

// NewPopGenerator creates a crackle generator. pitch in [0, 1] moves the
// thump between 60 Hz and 120 Hz.
func NewPopGenerator(sr beep.SampleRate, seed int64, pitch float64) *PopGenerator {
	return &PopGenerator{
		sr:    sr,
		seed:  seed & 0x7fffffff,
		thump: 60 + 60*math.Max(0, math.Min(1, pitch)),
	}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 快速起音，指数衰减
		envelope := math.Exp(-t * 12)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		// one-pole low-pass for crackle instead of hiss
		g.last += 0.35 * (noise - g.last)

		thump := 0.4 * math.Sin(2*math.Pi*g.thump*t) * math.Exp(-t*20)
		sample := envelope * (0.5*g.last + thump)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}

// LaunchGenerator produces a short rising whistle.
type LaunchGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

// NewLaunchGenerator creates a whistle lasting LaunchDuration.
func NewLaunchGenerator(sr beep.SampleRate) *LaunchGenerator {
	return &LaunchGenerator{sr: sr, total: sr.N(LaunchDuration)}
}

func (g *LaunchGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := float64(g.pos) / float64(g.total)
		if progress > 1 {
			progress = 1
		}

		// Frequency sweep from 600Hz to 1400Hz
		freq := 600 + 800*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		amplitude := 0.08 * math.Sin(progress*math.Pi)

		sample := amplitude * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *LaunchGenerator) Err() error {
	return nil
}

// Pop returns one finite explosion crackle.
func Pop(seed int64, pitch float64) beep.Streamer {
	return beep.Take(SampleRate.N(PopDuration), NewPopGenerator(SampleRate, seed, pitch))
}

// Launch returns one finite launch whistle.
func Launch() beep.Streamer {
	return beep.Take(SampleRate.N(LaunchDuration), NewLaunchGenerator(SampleRate))
}
