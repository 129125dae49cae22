package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whale-rescue/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run history statistics",
	Long: `Summarise every recorded run: number of games, best and average
score, total and longest time at sea.

Examples:
  whale stats
  whale stats --recent 5`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent runs")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %5s  %6s  %8s  %9s  %8s  %s\n", "Variant", "Runs", "Best", "Average", "Total", "Longest", "Last played")
	for _, id := range ids {
		s := all[id]
		last := "-"
		if !s.LastPlayed.IsZero() {
			last = s.LastPlayed.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-14s  %5d  %6d  %8.1f  %8ds  %7ds  %s\n",
			s.GameID, s.Runs, s.BestScore, s.AvgScore, s.TotalSeconds, s.LongestRun, last)
	}

	if flagRecent <= 0 {
		return
	}

	runs, err := store.RecentRuns("", flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	for _, r := range runs {
		fmt.Printf("  %s  %-14s  score %-6d  %4ds  level %d\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.GameID, r.Score, r.Seconds, r.Level)
	}
}
