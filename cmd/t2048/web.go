package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server",
	Long: `Start an HTTP server exposing games as a JSON API.

Endpoints:
  POST   /api/games              - Start a game ({"size": 5} optional)
  GET    /api/games              - List live games
  GET    /api/games/{id}         - Current snapshot
  POST   /api/games/{id}/moves   - Move ({"direction": "up"})
  POST   /api/games/{id}/reset   - Start over
  DELETE /api/games/{id}         - Drop the game
  GET    /api/games/{id}/ws      - Websocket stream of committed frames
  GET    /api/scores             - Top results (?variant=2048&limit=10)
  GET    /health                 - Liveness probe

Examples:
  t2048 web
  t2048 web --http :8080`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (default from config)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	addr := appConfig.HTTP.Address
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(web.ServerConfig{
		Address:     addr,
		Store:       store,
		GameOptions: gameOptions(),
		Logger:      logger.WithPrefix("t2048-web"),
	})

	fmt.Printf("Starting t2048 HTTP server on %s\n", addr)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
