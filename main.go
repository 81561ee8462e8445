package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/embedded"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag   = flag.String("config", "", "Fireworks preset file (default: embedded data/fireworks.yaml)")
	presetFlag   = flag.String("preset", "", "Engine preset name (classic, gentle, glow)")
	scoreFlag    = flag.Float64("score", 0, "Initial score")
	maxScoreFlag = flag.Float64("max-score", 0, "Initial maximum score")
	feedFlag     = flag.String("feed", "", "Read score messages from a file, or '-' for stdin")
	seedFlag     = flag.Int64("seed", 0, "Random seed (0 = time based)")
	widthFlag    = flag.Int("width", app.DefaultWidth, "Window width")
	heightFlag   = flag.Int("height", app.DefaultHeight, "Window height")
	muteFlag     = flag.Bool("mute", false, "Disable sound for this run")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（必须在任何配置加载之前）
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Preset:     *presetFlag,
		Width:      *widthFlag,
		Height:     *heightFlag,
		Seed:       *seedFlag,
		Score:      *scoreFlag,
		MaxScore:   *maxScoreFlag,
		FeedPath:   *feedFlag,
		Mute:       *muteFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to initialize: %v", err)
	}

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Score Fireworks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(a.Fullscreen())
	// 庆祝时的拖尾效果依赖上一帧的内容
	ebiten.SetScreenClearedEveryFrame(false)

	runErr := ebiten.RunGame(a)
	if err := a.Close(); err != nil {
		log.Printf("[Main] Warning: failed to save state: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
