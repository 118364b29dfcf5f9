// Package config loads the YAML configuration for the game and its servers.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	SSH       SSHConfig       `yaml:"ssh"`
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
}

// BoardConfig defines the rules of a game.
type BoardConfig struct {
	Size         int `yaml:"size"`
	Target       int `yaml:"target"`
	NewTileValue int `yaml:"new_tile_value"`
}

// AnimationConfig defines the delay between the two frames of a move.
type AnimationConfig struct {
	DurationMS int `yaml:"duration_ms"`
}

// Duration returns the animation delay as a time.Duration.
func (a AnimationConfig) Duration() time.Duration {
	return time.Duration(a.DurationMS) * time.Millisecond
}

// SSHConfig configures the wish server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the session idle timeout.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// HTTPConfig configures the JSON/websocket server.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// StorageConfig configures score persistence.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Validation bounds.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the values a game cannot run with.
func (c Config) Validate() error {
	if c.Board.Size < MinBoardSize || c.Board.Size > MaxBoardSize {
		return fmt.Errorf("config: board.size %d outside [%d, %d]: %w",
			c.Board.Size, MinBoardSize, MaxBoardSize, ErrInvalid)
	}
	if !powerOfTwo(c.Board.Target) || c.Board.Target < 4 {
		return fmt.Errorf("config: board.target %d is not a power of two >= 4: %w", c.Board.Target, ErrInvalid)
	}
	if !powerOfTwo(c.Board.NewTileValue) || c.Board.NewTileValue >= c.Board.Target {
		return fmt.Errorf("config: board.new_tile_value %d must be a power of two below the target: %w",
			c.Board.NewTileValue, ErrInvalid)
	}
	if c.Animation.DurationMS < 0 {
		return fmt.Errorf("config: animation.duration_ms is negative: %w", ErrInvalid)
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: ssh.idle_timeout_minutes is negative: %w", ErrInvalid)
	}
	return nil
}

func powerOfTwo(v int) bool {
	return v > 1 && v&(v-1) == 0
}
