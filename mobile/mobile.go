//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	# Android
//	go generate ./mobile && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.fireworks -o build/android/fireworks.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	go generate ./mobile && ebitenmobile bind -target ios -tags mobile -o build/ios/Fireworks.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/fireworks/pkg/app"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/game"
)

var fireworksApp *app.App

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("烟花初始化失败: %v", err)
	}
	fireworksApp = a

	// 注册到 ebitenmobile
	mobile.SetGame(a)
}

// SetScore forwards a score result from the host application (for example
// an H5P web view bridge) to the animation.
func SetScore(score, maxScore float64) {
	fireworksApp.Board().Apply(game.ScoreEvent{Score: score, MaxScore: maxScore})
}

// Save persists settings and the score archive; call it when the host app
// goes to the background.
func Save() {
	if err := fireworksApp.Close(); err != nil {
		log.Printf("[Mobile] Warning: %v", err)
	}
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
