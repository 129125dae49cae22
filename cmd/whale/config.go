package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whale-rescue/internal/config"
	"github.com/vovakirdan/whale-rescue/internal/games/whale"
	"github.com/vovakirdan/whale-rescue/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the effective configuration",
	Long: `Print the configuration a variant would run with, after the config
file search, the --config flag and the --difficulty preset are applied.
The output is valid YAML and can be used as a starting point:

  whale config > ~/.whale/configs/whale.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := whale.IDWhale
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		os.Exit(1)
	}

	cfg, err := whale.LoadConfig(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (showing defaults)\n", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
