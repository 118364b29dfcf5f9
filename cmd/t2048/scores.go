package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the top results for a board variant, the configured board
when none is given.

Examples:
  t2048 scores
  t2048 scores 2048-5x5 --limit 20
  t2048 scores 2048-3x3 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every result of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := defaultVariant()
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 't2048 list' to see available boards", gameID)
	}

	store, err := storage.Open(appConfig.DBPath())
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared results for %s\n", gameID)
		return nil
	}

	results, err := store.TopResults(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", gameID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %-4s  %s\n", "Rank", "Score", "Max", "Moves", "Won", "From", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %-4s  %s\n", "----", "-----", "---", "-----", "---", "----", "----")

	for i, r := range results {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-3s  %-4s  %s\n",
			i+1, r.Score, r.MaxTile, r.Moves, won, r.Source, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Wins: %d  Best tile: %d  Average: %.0f\n",
			stats.HighScore, stats.Games, stats.Wins, stats.BestTile, stats.AvgScore)
	}
	return nil
}
