package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whale-rescue/internal/games/whale"
	"github.com/vovakirdan/whale-rescue/internal/leaderboard"
	"github.com/vovakirdan/whale-rescue/internal/registry"
	"github.com/vovakirdan/whale-rescue/internal/storage"
)

var flagResetScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard",
	Long: `Display the top 10 sessions of a variant, ordered by score and then
by the shorter time. The variant defaults to "whale".

Examples:
  whale scores
  whale scores whale_classic
  whale scores --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagResetScores, "reset", false, "Erase the leaderboard and run history of the variant")
}

func runScores(_ *cobra.Command, args []string) {
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

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResetScores {
		if err := resetScores(store, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Leaderboard of %s erased.\n", game.Title())
		return
	}

	board := leaderboard.New(store.Leaderboard(storage.LeaderboardKey(gameID)), leaderboardSize(gameID))
	records, err := board.Top()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'whale play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Time")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, r := range records {
		fmt.Printf("  %-4d  %-10d  %ds\n", i+1, r.Score, r.Time)
	}
}

func resetScores(store *storage.Store, gameID string) error {
	if err := store.Delete(storage.LeaderboardKey(gameID)); err != nil {
		return err
	}
	if err := store.ClearRuns(gameID); err != nil {
		return err
	}
	logger.Info("leaderboard reset", "game", gameID)
	return nil
}
