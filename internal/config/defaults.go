package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration, matching defaults/t2048.yaml.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:         4,
			Target:       2048,
			NewTileValue: 2,
		},
		Animation: AnimationConfig{
			DurationMS: 100,
		},
		SSH: SSHConfig{
			Address:            ":2048",
			HostKeyPath:        ".ssh/t2048_ed25519",
			IdleTimeoutMinutes: 30,
		},
		HTTP: HTTPConfig{
			Address: ":8048",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
