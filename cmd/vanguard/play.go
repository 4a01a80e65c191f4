package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vertical-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/vertical-vanguard/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  WASD/Arrows  - Move
  Space/J      - Fire
  P/Esc        - Pause
  R            - Restart (after game over)
  T            - Toggle autopilot
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Finished runs are saved to the run journal and can be replayed.

Examples:
  vanguard play
  vanguard play --difficulty easy
  vanguard play --seed 42 --config ./my-vanguard.yaml`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationTerminal: "true"},
	RunE:        runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	game, err := vanguard.New(cfg, preset, logger)
	if err != nil {
		return err
	}
	rc := runtimeConfig(cfg)

	// Check terminal size up front; the game keeps running if it is small
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && (w < rc.ScreenW || h < rc.ScreenH+2) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the game needs %dx%d\n", w, h, rc.ScreenW, rc.ScreenH+2)
	}

	store := openStore()
	defer closeStore(store)

	if err := tui.Run(game, store, logger, rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
