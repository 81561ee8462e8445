// fireworks-tui runs the score fireworks in a terminal.
//
// Usage:
//
//	fireworks-tui [--preset gentle] [--score 10 --max-score 10] [--feed scores.jsonl]
//
// Keys: f full score, h half score, 0 reset, p pause, m mute, q quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/scorefeed"
	"github.com/decker502/fireworks/pkg/sound"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Write logs to fireworks-tui.log")
	configFlag   = flag.String("config", "", "Fireworks preset file (default: data/fireworks.yaml if present)")
	presetFlag   = flag.String("preset", "", "Engine preset name")
	scoreFlag    = flag.Float64("score", 0, "Initial score")
	maxScoreFlag = flag.Float64("max-score", 0, "Initial maximum score")
	feedFlag     = flag.String("feed", "", "Read score messages from a file")
	seedFlag     = flag.Int64("seed", 0, "Random seed (0 = time based)")
	muteFlag     = flag.Bool("mute", false, "Disable sound")
	volumeFlag   = flag.Float64("volume", 0.6, "Sound volume 0..1")
	launchFlag   = flag.Bool("launch-sound", false, "Whistle on every rocket launch")
)

func main() {
	flag.Parse()

	if *verboseFlag {
		f, err := tea.LogToFile("fireworks-tui.log", "fireworks")
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ResolveFireworksConfig(*configFlag)
	if err != nil {
		return err
	}
	preset, err := cfg.Preset(*presetFlag)
	if err != nil {
		return err
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	board := game.NewScoreBoard(game.NewScoreState(*scoreFlag, *maxScoreFlag))
	m := newModel(board, preset.SystemOptions(entities.Bounds{}), rand.New(rand.NewSource(seed)))

	if !*muteFlag {
		player := sound.NewSpeakerPlayer()
		if err := player.Initialize(); err != nil {
			log.Printf("[TUI] Sound disabled: %v", err)
		} else {
			defer player.Cleanup()
			player.SetVolume(*volumeFlag)
			player.SetLaunchSounds(*launchFlag)
			m.system.SetListener(player.Listener())
			m.player = player
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *feedFlag != "" {
		f, err := os.Open(*feedFlag)
		if err != nil {
			return fmt.Errorf("failed to open score feed: %w", err)
		}
		defer f.Close()
		go func() {
			if err := scorefeed.NewFeed(board).Run(ctx, f); err != nil && ctx.Err() == nil {
				log.Printf("[TUI] Score feed stopped: %v", err)
			}
		}()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	if fm, ok := final.(*model); ok {
		st := fm.system.Stats()
		log.Printf("[TUI] Done: spawned=%d exploded=%d completed=%d", st.Spawned, st.Exploded, st.Completed)
	}
	return nil
}
