// t2048 plays 2048 in the terminal, over SSH, or over HTTP.
//
// Usage:
//
//	t2048 list               - List board variants
//	t2048 play [variant]     - Play a variant (menu when omitted)
//	t2048 menu               - Pick variants interactively
//	t2048 serve              - Start SSH server for remote play
//	t2048 web                - Start HTTP/websocket server
//	t2048 scores [variant]   - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.t2048/scores.db)
//	--config <path>     - Use a specific config file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/t2048"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

// Loaded once by the root command before any subcommand runs.
var (
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile game for the terminal.

Play locally, host it over SSH, or drive it through a JSON API with a
websocket frame stream. Boards from 2x2 to 8x8 are available.

Available commands:
  list     - Show all board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  web      - Start HTTP server
  scores   - View high scores

Examples:
  t2048 play
  t2048 play 2048-5x5
  t2048 serve --ssh :2222
  t2048 web --http :8080
  t2048 scores 2048`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup loads the configuration and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})

	appConfig, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		appConfig.Storage.DBPath = flagDBPath
	}
	return nil
}

// gameOptions builds the per-game tunables from the configuration.
func gameOptions() core.GameOptions {
	return core.GameOptions{
		Target:       appConfig.Board.Target,
		NewTileValue: appConfig.Board.NewTileValue,
		Animation:    appConfig.Animation.Duration(),
		Logger:       logger,
	}
}

// defaultVariant is the variant of the configured board size.
func defaultVariant() string {
	return t2048.VariantID(appConfig.Board.Size)
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the results database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.DBPath())
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}
