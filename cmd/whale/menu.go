package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whale-rescue/internal/platform/tui"
	"github.com/vovakirdan/whale-rescue/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After quitting a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab/L        - Leaderboards
  Q            - Quit`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	svc := tui.Services{
		Store:  store,
		Boards: tui.NewBoards(store, leaderboardSize),
		Logger: logger,
	}
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(svc.Boards, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(svc.Boards, menuResult.GameID, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			return
		}
		if err := tui.Run(game, svc, cfg); err != nil {
			logger.Error("game exited with error", "error", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
	}
}
