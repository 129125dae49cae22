// whale is a terminal arcade game: steer a whale through a scrolling sea,
// dodge obstacles and collect floating trash.
//
// Usage:
//
//	whale play [variant]     - Play (whale or whale_classic)
//	whale menu               - Pick a variant interactively
//	whale list               - List available variants
//	whale scores [variant]   - Show the top-10 leaderboard
//	whale stats              - Show run history statistics
//	whale config [variant]   - Print the effective configuration
//	whale serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.whale/whale.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write logs to a file
//
// WHALE_DB, WHALE_CONFIG, WHALE_LOG and WHALE_FPS may be set in the
// environment or in a .env file in the working directory.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/whale-rescue/internal/config"
	"github.com/vovakirdan/whale-rescue/internal/core"
	"github.com/vovakirdan/whale-rescue/internal/games/whale"
	"github.com/vovakirdan/whale-rescue/internal/storage"
)

const defaultDBPath = "~/.whale/whale.db"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string

	logger = log.New(io.Discard)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whale",
	Short: "Whale Rescue - a terminal arcade game",
	Long: `Whale Rescue puts you in control of a whale swimming through a
polluted sea. Dodge the obstacles, collect the trash, and watch the current
speed up as you go.

Available commands:
  play     - Play a variant directly
  menu     - Interactive variant picker
  list     - Show all variants
  scores   - View the leaderboard
  stats    - View run statistics
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  whale play
  whale play whale_classic --difficulty hard
  whale scores
  whale serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", defaultDBPath, "Path to the database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup applies .env overrides for flags not given explicitly, opens the
// log and hands config options to the game package.
func setup(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	flags := cmd.Flags()
	if env.DBPath != "" && !flags.Changed("db") {
		flagDBPath = env.DBPath
	}
	if env.ConfigPath != "" && !flags.Changed("config") {
		flagConfig = env.ConfigPath
	}
	if env.LogPath != "" && !flags.Changed("log") {
		flagLogPath = env.LogPath
	}
	if env.FPS > 0 && !flags.Changed("fps") {
		flagFPS = env.FPS
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "whale"})
	}

	whale.SetConfigPath(flagConfig)
	whale.SetDifficultyPreset(flagDifficulty)
	return nil
}

// openStore opens the database, or returns nil with a warning so the
// game stays playable with in-memory leaderboards.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// leaderboardSize returns the configured list length for a variant.
func leaderboardSize(gameID string) int {
	cfg, err := whale.LoadConfig(gameID)
	if err != nil {
		logger.Warn("using default config", "game", gameID, "error", err)
	}
	return cfg.Leaderboard.Size
}
