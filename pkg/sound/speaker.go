package sound

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/systems"
)

// SpeakerPlayer plays effects through the system speaker using one beep
// mixer. Every method is safe to call before Initialize or after Cleanup;
// sounds are then dropped.
type SpeakerPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	enabled     bool
	launches    bool
	seed        int64
}

// NewSpeakerPlayer creates an enabled player at full volume.
func NewSpeakerPlayer() *SpeakerPlayer {
	mixer := &beep.Mixer{}
	return &SpeakerPlayer{
		mixer:   mixer,
		volume:  &effects.Volume{Streamer: mixer, Base: 2},
		enabled: true,
	}
}

// Initialize opens the speaker. It fails on machines without an audio device.
func (p *SpeakerPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(p.volume)
	p.initialized = true
	log.Printf("[Sound] Speaker initialized at %d Hz", SampleRate)
	return nil
}

// Cleanup drops every queued sound.
func (p *SpeakerPlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetEnabled mutes or unmutes new sounds.
func (p *SpeakerPlayer) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// SetLaunchSounds toggles the whistle played on every launch.
func (p *SpeakerPlayer) SetLaunchSounds(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.launches = on
}

// SetVolume sets the output level in [0, 1].
func (p *SpeakerPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	silent, level := volumeLevel(v)
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Silent = silent
	p.volume.Volume = level
}

// volumeLevel maps a linear volume to beep's base-2 exponent.
func volumeLevel(v float64) (silent bool, level float64) {
	if v <= 0 {
		return true, 0
	}
	if v > 1 {
		v = 1
	}
	return false, math.Log2(v)
}

// PlayPop queues an explosion crackle. hue picks the pitch so bursts of
// different colours sound slightly different.
func (p *SpeakerPlayer) PlayPop(hue float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.enabled {
		return
	}
	p.seed++
	p.add(Pop(p.seed, hue/255))
}

// PlayLaunch queues a launch whistle if launch sounds are on.
func (p *SpeakerPlayer) PlayLaunch() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.enabled || !p.launches {
		return
	}
	p.add(Launch())
}

// add must be called with p.mu held.
func (p *SpeakerPlayer) add(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Listener returns hooks that play a whistle on launch and a crackle on
// every explosion.
func (p *SpeakerPlayer) Listener() systems.Listener {
	return systems.Listener{
		FireworkSpawned:  func(*entities.Firework) { p.PlayLaunch() },
		FireworkExploded: func(f *entities.Firework) { p.PlayPop(f.Hue()) },
	}
}
