// fireworks-render writes animation frames to PNG files without a window.
//
// Usage:
//
//	fireworks-render --out frames --frames 240 --every 4 --preset glow
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/systems"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag   = flag.String("config", "", "Fireworks preset file (default: data/fireworks.yaml if present)")
	presetFlag   = flag.String("preset", "", "Engine preset name")
	outFlag      = flag.String("out", "frames", "Output directory")
	framesFlag   = flag.Int("frames", 180, "Number of ticks to simulate")
	everyFlag    = flag.Int("every", 1, "Save every n-th frame")
	widthFlag    = flag.Int("width", 800, "Frame width")
	heightFlag   = flag.Int("height", 600, "Frame height")
	scoreFlag    = flag.Float64("score", 10, "Score")
	maxScoreFlag = flag.Float64("max-score", 10, "Maximum score")
	seedFlag     = flag.Int64("seed", 1, "Random seed")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.ResolveFireworksConfig(*configFlag)
	if err != nil {
		fatal(err)
	}
	preset, err := cfg.Preset(*presetFlag)
	if err != nil {
		fatal(err)
	}

	opts := preset.SystemOptions(entities.Bounds{Width: float64(*widthFlag), Height: float64(*heightFlag)})
	job := renderJob{
		opts:   opts,
		seed:   *seedFlag,
		state:  game.NewScoreState(*scoreFlag, *maxScoreFlag),
		frames: *framesFlag,
		every:  *everyFlag,
		outDir: *outFlag,
	}
	saved, stats, err := job.run()
	if err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %d frames to %s (spawned %d, exploded %d, completed %d)\n",
		saved, *outFlag, stats.Spawned, stats.Exploded, stats.Completed)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

type renderJob struct {
	opts   systems.Options
	seed   int64
	state  game.ScoreState
	frames int
	every  int
	outDir string
}

// run simulates the frames and saves every n-th one as frame_NNNN.png.
func (j renderJob) run() (int, systems.Stats, error) {
	if j.every < 1 {
		j.every = 1
	}
	if err := os.MkdirAll(j.outDir, 0755); err != nil {
		return 0, systems.Stats{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	w, h := int(j.opts.Bounds.Width), int(j.opts.Bounds.Height)
	canvas, err := render.NewPNGCanvas(w, h)
	if err != nil {
		return 0, systems.Stats{}, err
	}
	sys := systems.NewFireworkSystem(j.opts, rand.New(rand.NewSource(j.seed)))
	overlay := game.LayoutOverlay(j.state, float64(w), float64(h))

	saved := 0
	for i := 0; i < j.frames; i++ {
		canvas.Background(j.state.Celebrating)
		sys.Tick(j.state, canvas)
		canvas.DrawOverlay(overlay)

		if i%j.every != 0 {
			continue
		}
		path := filepath.Join(j.outDir, fmt.Sprintf("frame_%04d.png", i))
		if err := canvas.SavePNG(path); err != nil {
			return saved, sys.Stats(), err
		}
		saved++
		log.Printf("[Render] %s: %d fireworks, %d sparks", path, sys.Stats().Active, sys.Stats().Sparks)
	}
	return saved, sys.Stats(), nil
}
