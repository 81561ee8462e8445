package systems

import (
	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
)

// DefaultSpawnChance is the per-tick probability of launching a firework
// while celebrating. At 60 ticks per second that is about six rockets a second.
const DefaultSpawnChance = 0.1

// Options configures a FireworkSystem.
type Options struct {
	// Bounds is the display area new rockets launch into.
	Bounds entities.Bounds
	// Firework holds the per-firework constants shared by every spawn.
	Firework entities.Params
	// SpawnChance is the per-tick spawn probability in [0, 1].
	SpawnChance float64
	// Style selects how particles are drawn.
	Style particle.Style
}

// DefaultOptions returns the classic configuration for a display of the given size.
func DefaultOptions(bounds entities.Bounds) Options {
	return Options{
		Bounds:      bounds,
		Firework:    entities.DefaultParams(),
		SpawnChance: DefaultSpawnChance,
		Style:       particle.StylePoint,
	}
}

// Listener receives firework lifecycle events. Any hook may be nil.
// Hooks run on the frame goroutine inside Tick and must not block.
type Listener struct {
	FireworkSpawned   func(f *entities.Firework)
	FireworkExploded  func(f *entities.Firework)
	FireworkCompleted func(f *entities.Firework)
}

// Stats counts firework lifecycle events since the system was created.
// Active always equals Spawned - Completed.
type Stats struct {
	Spawned   int
	Exploded  int
	Completed int
	Active    int
	Sparks    int
}

// FireworkSystem is the per-frame animation controller (烟花动画控制器).
//
// It owns the live fireworks, advances and draws them once per tick, prunes
// the completed ones and launches new ones while the score is celebrating.
// It is not safe for concurrent use; only the frame driver calls it.
type FireworkSystem struct {
	fireworks []*entities.Firework

	opts     Options
	params   *entities.Params
	rng      particle.Rand
	listener Listener

	spawned   int
	exploded  int
	completed int
}

// NewFireworkSystem creates an empty controller. rng supplies every random
// draw of the system and of the fireworks it spawns.
func NewFireworkSystem(opts Options, rng particle.Rand) *FireworkSystem {
	params := opts.Firework
	return &FireworkSystem{
		opts:   opts,
		params: &params,
		rng:    rng,
	}
}

// SetListener replaces the lifecycle hooks.
func (s *FireworkSystem) SetListener(l Listener) {
	s.listener = l
}

// Tick advances one frame.
//
// Every firework is updated, drawn onto canvas (when canvas is not nil) and
// removed once it is done, iterating from the end so removal does not skip
// entries. Afterwards, if state is celebrating, a single new firework is
// launched with probability SpawnChance. Fireworks in flight keep running
// after the celebration ends.
func (s *FireworkSystem) Tick(state game.ScoreState, canvas particle.Canvas) {
	for i := len(s.fireworks) - 1; i >= 0; i-- {
		f := s.fireworks[i]
		wasExploded := f.Exploded()
		f.Update()
		if !wasExploded && f.Exploded() {
			s.exploded++
			if s.listener.FireworkExploded != nil {
				s.listener.FireworkExploded(f)
			}
		}

		if canvas != nil {
			f.Render(canvas, s.opts.Style)
		}

		if f.Done() {
			s.fireworks = append(s.fireworks[:i], s.fireworks[i+1:]...)
			s.completed++
			if s.listener.FireworkCompleted != nil {
				s.listener.FireworkCompleted(f)
			}
		}
	}

	if state.Celebrating && s.rng.Float64() < s.opts.SpawnChance {
		s.spawn()
	}
}

// Update is Tick without drawing, for drivers with separate update and draw
// callbacks.
func (s *FireworkSystem) Update(state game.ScoreState) {
	s.Tick(state, nil)
}

// Draw renders the current fireworks without advancing them.
func (s *FireworkSystem) Draw(canvas particle.Canvas) {
	for _, f := range s.fireworks {
		f.Render(canvas, s.opts.Style)
	}
}

func (s *FireworkSystem) spawn() {
	f := entities.NewFirework(s.opts.Bounds, s.params, s.rng)
	s.fireworks = append(s.fireworks, f)
	s.spawned++
	if s.listener.FireworkSpawned != nil {
		s.listener.FireworkSpawned(f)
	}
}

// Resize changes the launch area. Fireworks already in flight keep their
// positions and explosion heights.
func (s *FireworkSystem) Resize(bounds entities.Bounds) {
	s.opts.Bounds = bounds
}

// Bounds returns the current launch area.
func (s *FireworkSystem) Bounds() entities.Bounds {
	return s.opts.Bounds
}

// Options returns the active configuration.
func (s *FireworkSystem) Options() Options {
	return s.opts
}

// Fireworks returns a copy of the live firework slice in launch order.
func (s *FireworkSystem) Fireworks() []*entities.Firework {
	out := make([]*entities.Firework, len(s.fireworks))
	copy(out, s.fireworks)
	return out
}

// Stats returns the lifecycle counters and the current live spark count.
func (s *FireworkSystem) Stats() Stats {
	sparks := 0
	for _, f := range s.fireworks {
		sparks += f.SparkCount()
	}
	return Stats{
		Spawned:   s.spawned,
		Exploded:  s.exploded,
		Completed: s.completed,
		Active:    len(s.fireworks),
		Sparks:    sparks,
	}
}
