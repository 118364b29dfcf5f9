package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

var flagSize int

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board variant",
	Long: `Start playing the given variant, or open the menu when none is given.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  P                - Pause
  R                - Restart (after the game ends)
  Esc/B            - Leave a paused or finished game
  Ctrl+S           - Save a text screenshot to ~/.t2048/screenshots
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play 2048
  t2048 play 2048-6x6
  t2048 play --size 3
  t2048 play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size, shorthand for the 2048-<n>x<n> variant")
}

func runPlay(cmd *cobra.Command, args []string) error {
	var gameID string
	switch {
	case len(args) == 1:
		gameID = args[0]
	case flagSize != 0:
		gameID = t2048.VariantID(flagSize)
	default:
		return runMenuLoop()
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 't2048 list' to see available boards", gameID)
	}

	game, err := registry.Create(gameID, gameOptions())
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
