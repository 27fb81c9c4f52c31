// Package config provides YAML-based configuration loading and board size
// presets for the towers game.
package config

// TowersConfig contains all configuration for the towers game.
type TowersConfig struct {
	Field    FieldConfig `yaml:"field"`
	Seed     SeedConfig  `yaml:"seed"`
	Sound    bool        `yaml:"sound"`
	TickRate int         `yaml:"tick_rate"` // Frames per second of the game loop
}

// FieldConfig defines the board size of a new game.
type FieldConfig struct {
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Preset SizePreset `yaml:"preset"` // Overrides width and height when set
}

// SeedConfig defines where the first puzzle seed comes from. The seed is
// only used when no saved settings exist yet.
type SeedConfig struct {
	Words     []uint32 `yaml:"words"`     // Four words, or empty for the built-in seed
	Randomize bool     `yaml:"randomize"` // Seed from the clock instead
}

// SizePreset represents a named board size.
type SizePreset string

const (
	PresetSmall  SizePreset = "small"
	PresetMedium SizePreset = "medium"
	PresetLarge  SizePreset = "large"
	PresetMax    SizePreset = "max"
)

// Presets lists every preset from smallest to largest.
var Presets = []SizePreset{PresetSmall, PresetMedium, PresetLarge, PresetMax}

// SizeForPreset returns the board size of a preset.
func SizeForPreset(preset SizePreset) (w, h int, ok bool) {
	switch preset {
	case PresetSmall:
		return 6, 5, true
	case PresetMedium:
		return 10, 10, true
	case PresetLarge:
		return 20, 15, true
	case PresetMax:
		return 30, 20, true
	default:
		return 0, 0, false
	}
}
