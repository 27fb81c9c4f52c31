package config

import (
	_ "embed"
)

//go:embed defaults/towers.yaml
var defaultTowersYAML []byte

// DefaultTowersConfig returns the default towers configuration.
func DefaultTowersConfig() TowersConfig {
	return TowersConfig{
		Field: FieldConfig{
			Width:  10,
			Height: 10,
		},
		Sound:    true,
		TickRate: 30,
	}
}
