// Package app 提供烟花窗口应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载预设、打开存档、
// 启动分数输入，并实现 ebiten.Game 接口驱动 FireworkSystem。
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/render"
	"github.com/decker502/fireworks/pkg/scorefeed"
	"github.com/decker502/fireworks/pkg/sound"
	"github.com/decker502/fireworks/pkg/systems"
)

// Default window size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath overrides the embedded preset file.
	ConfigPath string
	// Preset selects an engine preset; empty uses the stored setting, then the config default.
	Preset string
	// Width and Height are the initial window size.
	Width, Height int
	// Seed seeds the animation; 0 picks a time-based seed.
	Seed int64
	// Score and MaxScore are the initial score. When both are zero the
	// archived last score is restored.
	Score, MaxScore float64
	// FeedPath is a file of score messages, "-" for stdin, empty for none.
	FeedPath string
	// Mute disables sound for this run without changing the stored setting.
	Mute bool
}

// App 是烟花应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	fireworks *config.FireworksConfig
	preset    string

	board  *game.ScoreBoard
	system *systems.FireworkSystem
	canvas *render.EbitenCanvas
	rng    *rand.Rand

	settings *game.SettingsManager
	archive  *game.ScoreArchive
	audio    *AudioManager

	width, height int
	paused        bool
	lastVersion   uint64

	cancelFeed context.CancelFunc
	verbose    bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化烟花应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	fireworks, err := config.ResolveFireworksConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("烟花配置加载失败: %w", err)
	}
	log.Printf("[Config] Presets available: %v (default %s)", fireworks.PresetNames(), fireworks.DefaultPreset)

	storage := game.OpenStorage(game.AppName)
	settings, err := game.NewSettingsManager(storage)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}
	archive := game.NewScoreArchive(storage)

	canvas, err := render.NewEbitenCanvas()
	if err != nil {
		return nil, err
	}

	initial := game.NewScoreState(cfg.Score, cfg.MaxScore)
	if cfg.Score == 0 && cfg.MaxScore == 0 {
		initial = archive.Last()
		log.Printf("[App] Restored last score %s", initial)
	}

	a := &App{
		fireworks: fireworks,
		board:     game.NewScoreBoard(initial),
		canvas:    canvas,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		settings:  settings,
		archive:   archive,
		width:     cfg.Width,
		height:    cfg.Height,
		verbose:   cfg.Verbose,
	}

	preset := cfg.Preset
	if preset == "" {
		preset = settings.GetSettings().Preset
	}
	if err := a.usePreset(preset); err != nil {
		if cfg.Preset != "" {
			return nil, err
		}
		log.Printf("[App] Stored preset %q unusable: %v, using %s", preset, err, fireworks.DefaultPreset)
		if err := a.usePreset(""); err != nil {
			return nil, err
		}
	}

	if !cfg.Mute {
		a.audio = NewAudioManager(audio.NewContext(int(sound.SampleRate)), settings)
		a.system.SetListener(a.audio.Listener())
		log.Printf("[App] AudioManager initialized")
	}

	if cfg.FeedPath != "" {
		if err := a.startFeed(cfg.FeedPath); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// usePreset rebuilds the firework system from a preset. Fireworks in flight
// are dropped.
func (a *App) usePreset(name string) error {
	p, err := a.fireworks.Preset(name)
	if err != nil {
		return err
	}
	if name == "" {
		name = a.fireworks.DefaultPreset
	}

	opts := p.SystemOptions(entities.Bounds{Width: float64(a.width), Height: float64(a.height)})
	a.system = systems.NewFireworkSystem(opts, a.rng)
	if a.audio != nil {
		a.system.SetListener(a.audio.Listener())
	}
	a.preset = name
	log.Printf("[App] Using preset %s (style %s, spawn chance %.2f)", name, opts.Style, opts.SpawnChance)
	return nil
}

// startFeed reads score messages from path ("-" = stdin) in the background.
func (a *App) startFeed(path string) error {
	var r io.ReadCloser = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open score feed: %w", err)
		}
		r = f
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelFeed = cancel
	feed := scorefeed.NewFeed(a.board)
	go func() {
		defer r.Close()
		if err := feed.Run(ctx, r); err != nil && ctx.Err() == nil {
			log.Printf("[App] Score feed stopped: %v", err)
		}
	}()
	log.Printf("[App] Reading score messages from %s", path)
	return nil
}

// Update 更新烟花逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(DefaultWidth, DefaultHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if err := a.handleInput(); err != nil {
		return err
	}

	// 暂停时收到新分数则恢复
	select {
	case <-a.board.Wake():
		if a.paused {
			a.paused = false
			log.Printf("[App] Resumed by score update")
		}
	default:
	}

	state := a.board.Snapshot()
	if v := a.board.Version(); v != a.lastVersion {
		a.lastVersion = v
		a.archive.Record(state)
		log.Printf("[App] Score %s, celebrating=%v, tier=%s", state, state.Celebrating, game.TierFor(state))
	}

	if a.audio != nil {
		a.audio.Update()
	}
	if a.paused {
		return nil
	}
	a.system.Update(state)
	return nil
}

func (a *App) handleInput() error {
	state := a.board.Snapshot()
	maxScore := state.MaxScore
	if maxScore <= 0 {
		maxScore = 10
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		a.board.Apply(game.ScoreEvent{Score: maxScore, MaxScore: maxScore})
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.board.Apply(game.ScoreEvent{Score: maxScore / 2, MaxScore: maxScore})
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		a.board.Apply(game.ScoreEvent{})
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.paused = !a.paused
		log.Printf("[App] Paused=%v", a.paused)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		enabled := !a.settings.GetSettings().SoundEnabled
		a.settings.SetSoundEnabled(enabled)
		log.Printf("[App] Sound enabled=%v", enabled)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		a.nextPreset()
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		a.toggleFullscreen()
	}
	return nil
}

func (a *App) nextPreset() {
	names := a.fireworks.PresetNames()
	next := names[0]
	for i, n := range names {
		if n == a.preset {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := a.usePreset(next); err != nil {
		log.Printf("[App] Warning: %v", err)
		return
	}
	a.settings.SetPreset(next)
}

// F11 切换全屏
func (a *App) toggleFullscreen() {
	fullscreen := ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(!fullscreen)
}

// Draw 绘制画面
// 暂停时不绘制，屏幕保留最后一帧（需要 SetScreenClearedEveryFrame(false)）
func (a *App) Draw(screen *ebiten.Image) {
	if a.paused {
		return
	}
	state := a.board.Snapshot()
	a.canvas.SetTarget(screen)
	a.canvas.Background(state.Celebrating)
	a.system.Draw(a.canvas)
	a.canvas.DrawOverlay(game.LayoutOverlay(state, float64(a.width), float64(a.height)))
}

// Layout 跟随窗口尺寸，新发射的烟花使用新尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.width, a.height
	}
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.system.Resize(entities.Bounds{Width: float64(a.width), Height: float64(a.height)})
	}
	return a.width, a.height
}

// Board returns the score board fed by the keyboard and the score feed.
func (a *App) Board() *game.ScoreBoard {
	return a.board
}

// Stats returns the firework statistics of the active preset.
func (a *App) Stats() systems.Stats {
	return a.system.Stats()
}

// Fullscreen reports the stored fullscreen preference.
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// Close stops the score feed and persists settings and the score archive.
func (a *App) Close() error {
	if a.cancelFeed != nil {
		a.cancelFeed()
	}
	if err := a.settings.Save(); err != nil {
		return err
	}
	return a.archive.Save()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
