package config

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/internal/particle"
	"github.com/decker502/fireworks/pkg/embedded"
	"github.com/decker502/fireworks/pkg/entities"
	"github.com/decker502/fireworks/pkg/systems"
)

// DefaultConfigPath is the embedded preset file.
const DefaultConfigPath = "data/fireworks.yaml"

// FireworksConfig 烟花引擎配置
type FireworksConfig struct {
	DefaultPreset string             `yaml:"defaultPreset"` // preset used when none is selected
	Presets       map[string]*Preset `yaml:"presets"`       // preset name -> constants
}

// Preset is one consistent set of engine constants.
type Preset struct {
	RocketSpeed particle.Range `yaml:"rocketSpeed"` // upward speed magnitude
	SparkSpeed  particle.Range `yaml:"sparkSpeed"`  // burst speed magnitude
	Gravity     float64        `yaml:"gravity"`
	Drag        float64        `yaml:"drag"`
	Decay       float64        `yaml:"decay"`

	SparkCount    int            `yaml:"sparkCount"`
	LaunchBand    particle.Range `yaml:"launchBand"`    // width fractions
	ExplosionBand particle.Range `yaml:"explosionBand"` // height fractions

	SpawnChance float64 `yaml:"spawnChance"` // per-tick spawn probability while celebrating
	Style       string  `yaml:"style"`       // point | glow
	RocketSize  float64 `yaml:"rocketSize"`
	SparkSize   float64 `yaml:"sparkSize"`
}

// LoadFireworksConfig 从 YAML 文件加载烟花配置
func LoadFireworksConfig(filePath string) (*FireworksConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fireworks config file: %w", err)
	}
	return ParseFireworksConfig(data)
}

// ParseFireworksConfig parses and validates a fireworks config document.
func ParseFireworksConfig(data []byte) (*FireworksConfig, error) {
	var cfg FireworksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse fireworks config YAML: %w", err)
	}

	if err := validateFireworksConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid fireworks config: %w", err)
	}

	return &cfg, nil
}

// DefaultFireworksConfig returns a config holding only the classic preset.
func DefaultFireworksConfig() *FireworksConfig {
	return &FireworksConfig{
		DefaultPreset: "classic",
		Presets:       map[string]*Preset{"classic": ClassicPreset()},
	}
}

// ClassicPreset returns the built-in classic constants.
func ClassicPreset() *Preset {
	p := entities.DefaultParams()
	return &Preset{
		RocketSpeed:   p.Particle.RocketSpeed,
		SparkSpeed:    p.Particle.SparkSpeed,
		Gravity:       p.Particle.Gravity,
		Drag:          p.Particle.Drag,
		Decay:         p.Particle.Decay,
		SparkCount:    p.SparkCount,
		LaunchBand:    p.LaunchBand,
		ExplosionBand: p.ExplosionBand,
		SpawnChance:   systems.DefaultSpawnChance,
		Style:         particle.StylePoint.String(),
		RocketSize:    p.Particle.RocketSize,
		SparkSize:     p.Particle.SparkSize,
	}
}

// validateFireworksConfig 验证配置的有效性
func validateFireworksConfig(cfg *FireworksConfig) error {
	if len(cfg.Presets) == 0 {
		return fmt.Errorf("presets cannot be empty")
	}

	for name, p := range cfg.Presets {
		if name == "" {
			return fmt.Errorf("preset name cannot be empty")
		}
		if p == nil {
			return fmt.Errorf("preset %q is empty", name)
		}
		if err := p.validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}

	if cfg.DefaultPreset == "" {
		if len(cfg.Presets) != 1 {
			return fmt.Errorf("defaultPreset is required when more than one preset is defined")
		}
		for name := range cfg.Presets {
			cfg.DefaultPreset = name
		}
	}
	if _, ok := cfg.Presets[cfg.DefaultPreset]; !ok {
		return fmt.Errorf("defaultPreset %q is not defined", cfg.DefaultPreset)
	}

	return nil
}

func (p *Preset) validate() error {
	if err := p.FireworkParams().Validate(); err != nil {
		return err
	}
	if p.SpawnChance < 0 || p.SpawnChance > 1 {
		return fmt.Errorf("spawnChance must be between 0 and 1, got %v", p.SpawnChance)
	}
	if _, err := particle.ParseStyle(p.Style); err != nil {
		return err
	}
	return nil
}

// Preset returns the named preset; "" selects the default preset.
func (c *FireworksConfig) Preset(name string) (*Preset, error) {
	if name == "" {
		name = c.DefaultPreset
	}
	p, ok := c.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, c.PresetNames())
	}
	return p, nil
}

// PresetNames returns the preset names in sorted order.
func (c *FireworksConfig) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FireworkParams converts the preset to firework constants.
func (p *Preset) FireworkParams() entities.Params {
	return entities.Params{
		Particle: particle.Params{
			RocketSpeed: p.RocketSpeed,
			SparkSpeed:  p.SparkSpeed,
			Gravity:     p.Gravity,
			Drag:        p.Drag,
			Decay:       p.Decay,
			RocketSize:  p.RocketSize,
			SparkSize:   p.SparkSize,
		},
		SparkCount:    p.SparkCount,
		LaunchBand:    p.LaunchBand,
		ExplosionBand: p.ExplosionBand,
	}
}

// SystemOptions returns the animation controller options for a display of
// the given size. The preset must have been validated.
func (p *Preset) SystemOptions(bounds entities.Bounds) systems.Options {
	style, _ := particle.ParseStyle(p.Style)
	return systems.Options{
		Bounds:      bounds,
		Firework:    p.FireworkParams(),
		SpawnChance: p.SpawnChance,
		Style:       style,
	}
}

// LoadEmbeddedFireworksConfig loads the preset file compiled into the binary.
// embedded.Init must have been called.
func LoadEmbeddedFireworksConfig() (*FireworksConfig, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded fireworks config: %w", err)
	}
	return ParseFireworksConfig(data)
}

// ResolveFireworksConfig loads path when set, otherwise the embedded presets.
// Binaries without embedded data read DefaultConfigPath from the working
// directory if present, and fall back to the built-in classic preset.
func ResolveFireworksConfig(path string) (*FireworksConfig, error) {
	if path != "" {
		return LoadFireworksConfig(path)
	}
	if embedded.IsInitialized() {
		return LoadEmbeddedFireworksConfig()
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		log.Printf("[Config] Loading presets from %s", DefaultConfigPath)
		return LoadFireworksConfig(DefaultConfigPath)
	}
	log.Printf("[Config] No preset file, using built-in classic preset")
	return DefaultFireworksConfig(), nil
}
