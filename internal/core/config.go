package core

import (
	"time"

	"github.com/charmbracelet/log"
)

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Platform ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickInterval returns the wall time covered by one tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	MaxTile  int
	Moves    int
	Won      bool
	GameOver bool // Terminal: no further moves, or the target was reached
	Paused   bool
}

// StepResult is returned by every simulation tick.
type StepResult struct {
	State GameState
	Moved bool // An accepted move was made this tick
}

// GameOptions carries the tunables a game factory needs beyond the board
// variant itself.
type GameOptions struct {
	Target       int
	NewTileValue int
	Animation    time.Duration
	Logger       *log.Logger
}
