package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vertical-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/vertical-vanguard/internal/platform/tui"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded run",
	Long: `Re-simulate a recorded run from its seed, tuning and inputs and check
that it ends in the recorded state.

With --watch the run is also played back in the terminal.

Examples:
  vanguard replay 12
  vanguard replay 12 --watch`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationTerminal: "true"},
	RunE:        runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the run back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer closeStore(store)

	run, err := store.Run(id)
	if err != nil {
		return err
	}
	rec, err := replay.FromRun(*run)
	if err != nil {
		return err
	}

	final, err := replay.Verify(rec, run.FinalHash)
	if err != nil {
		logger.Error("replay diverged", "id", id, "error", err)
		return err
	}
	logger.Info("replay verified", "id", id, "ticks", len(rec.Inputs))
	fmt.Printf("Run #%d verified: %d ticks, score %d, level %d, hash %016x\n",
		id, len(rec.Inputs), final.Score, final.Level, final.Hash())

	if !flagWatch {
		return nil
	}
	return watchRecording(rec)
}

// watchRun plays a journaled run back in the terminal.
func watchRun(store *storage.Store, id int64) error {
	run, err := store.Run(id)
	if err != nil {
		return err
	}
	rec, err := replay.FromRun(*run)
	if err != nil {
		return err
	}
	return watchRecording(rec)
}

func watchRecording(rec replay.Recording) error {
	game, err := vanguard.NewPlayback(rec, logger)
	if err != nil {
		return err
	}
	rc := runtimeConfig(rec.Config)
	rc.Seed = rec.Seed
	rc.TickRate = rec.TickRate

	// Playback is never journaled again
	return tui.Run(game, nil, logger, rc)
}
