package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name; it selects the storage directory.
const AppName = "score_fireworks"

// Settings 全局设置
// Settings are global and persist across runs.
type Settings struct {
	// Preset is the engine preset name from the fireworks config ("" = config default).
	Preset string `yaml:"preset"`

	// 音频设置
	SoundEnabled bool    `yaml:"soundEnabled"` // play a pop on every explosion
	SoundVolume  float64 `yaml:"soundVolume"`  // 0.0 ~ 1.0

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() *Settings {
	return &Settings{
		Preset:       "",
		SoundEnabled: true,
		SoundVolume:  0.6,
		Fullscreen:   false,
	}
}

// SettingsManager loads and saves Settings through gdata.
// A nil gdata manager puts it in memory-only mode (降级模式).
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *Settings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// OpenStorage opens the gdata manager for appName.
// It returns nil when storage is unavailable; callers then run memory-only.
func OpenStorage(appName string) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: gdata unavailable: %v (settings and scores will not persist)", err)
		return nil
	}
	return m
}

// NewSettingsManager creates a manager and loads stored settings.
// A failed load is logged and the defaults are used.
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load reads the settings from gdata.
// With no manager or no stored settings the defaults are used.
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (preset=%q sound=%v)", loaded.Preset, loaded.SoundEnabled)
	return nil
}

// Save writes the settings to gdata. Memory-only mode returns nil.
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings returns the current settings.
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetPreset selects the engine preset. Call Save to persist.
func (sm *SettingsManager) SetPreset(name string) {
	sm.settings.Preset = name
}

// SetSoundEnabled toggles the explosion sound. Call Save to persist.
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume sets the volume, clamped to 0.0 ~ 1.0. Call Save to persist.
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetFullscreen sets the start-up display mode. Call Save to persist.
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
