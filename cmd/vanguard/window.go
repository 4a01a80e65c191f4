package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/vertical-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/vertical-vanguard/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a game in a desktop window rendered with Ebitengine.

Controls are the same as in the terminal. Finished runs are saved to the
run journal.

Examples:
  vanguard window
  vanguard window --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	game, err := vanguard.New(cfg, preset, logger)
	if err != nil {
		return err
	}

	store := openStore()
	defer closeStore(store)

	w := window.New(game, store, logger, runtimeConfig(cfg))
	return window.Run(w, game.Title())
}
