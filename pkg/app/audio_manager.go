package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/game"
	"github.com/decker502/fireworks/pkg/sound"
	"github.com/decker502/fireworks/pkg/systems"
)

// popVariants is the number of pre-rendered crackles; explosions pick one
// by hue so neighbouring bursts do not sound identical.
const popVariants = 4

// AudioManager 音频管理器
// 职责：
//   - 预渲染烟花爆炸音效（PCM）
//   - 根据 SettingsManager 的设置决定是否播放以及音量
//   - 回收播放完毕的 audio.Player
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager // 可为 nil：始终以默认音量播放
	pops            [][]byte
	players         []*audio.Player
}

// NewAudioManager renders the crackle variants for context.
func NewAudioManager(context *audio.Context, sm *game.SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         context,
		settingsManager: sm,
	}
	for i := 0; i < popVariants; i++ {
		pitch := float64(i) / (popVariants - 1)
		am.pops = append(am.pops, sound.EncodePCM(sound.Pop(int64(i+1), pitch), sound.SampleRate.N(sound.PopDuration)))
	}
	log.Printf("[AudioManager] Rendered %d pop variants", len(am.pops))
	return am
}

// PlayPop plays one crackle. It returns false when sound is disabled.
func (am *AudioManager) PlayPop(hue float64) bool {
	volume := game.DefaultSettings().SoundVolume
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		volume = settings.SoundVolume
	}

	idx := int(hue/255*popVariants) % popVariants
	if idx < 0 {
		idx = 0
	}
	player := am.context.NewPlayerFromBytes(am.pops[idx])
	player.SetVolume(volume)
	player.Play()
	am.players = append(am.players, player)
	return true
}

// Update closes players that have finished. Call it once per tick.
func (am *AudioManager) Update() {
	alive := am.players[:0]
	for _, p := range am.players {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close player: %v", err)
		}
	}
	for i := len(alive); i < len(am.players); i++ {
		am.players[i] = nil
	}
	am.players = alive
}

// Playing returns the number of crackles still playing.
func (am *AudioManager) Playing() int {
	return len(am.players)
}

// Listener returns the hook that pops on every explosion.
func (am *AudioManager) Listener() systems.Listener {
	return systems.Listener{
		FireworkExploded: func(f *entities.Firework) { am.PlayPop(f.Hue()) },
	}
}
