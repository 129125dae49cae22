package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whale-rescue/internal/games/whale"
	"github.com/vovakirdan/whale-rescue/internal/platform/tui"
	"github.com/vovakirdan/whale-rescue/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Whale Rescue",
	Long: `Start playing. The variant defaults to "whale".

Variants:
  whale          - The whale swims in all four directions
  whale_classic  - The whale only moves up and down

Controls:
  Arrows/WASD  - Swim (keeps going until stopped)
  Space        - Stop
  P/Esc        - Pause
  L/Tab        - Show leaderboard
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower current, gentle escalation
  normal - Shipped defaults
  hard   - Faster current, steep escalation
  fixed  - Speeds never increase

Examples:
  whale play
  whale play whale_classic
  whale play --difficulty hard
  whale play --config ./my-whale.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := whale.IDWhale
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'whale list' to see available variants.")
		os.Exit(1)
	}

	store := openStore()

	svc := tui.Services{
		Store:  store,
		Boards: tui.NewBoards(store, leaderboardSize),
		Logger: logger,
	}
	runErr := tui.Run(game, svc, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game exited with error", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
