package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vertical-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
)

var (
	flagSeconds float64
	flagSave    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fly the autopilot without a display",
	Long: `Run a game headless with the built-in autopilot and print a summary.

The run ends on game over or after --seconds of simulated time. Level ups
and lost lives are logged; use --log-level debug for every event.

Examples:
  vanguard simulate
  vanguard simulate --seconds 600 --seed 7
  vanguard simulate --difficulty hard --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSeconds, "seconds", 120, "Upper bound on simulated seconds")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Save the run to the journal")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	rc := runtimeConfig(cfg)
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	start := time.Now()
	rec, final, err := vanguard.Simulate(cfg, vanguard.SimulateOptions{
		Seed:     rc.Seed,
		Preset:   preset,
		TickRate: rc.TickRate,
		Seconds:  flagSeconds,
		OnEvent:  logEvent,
	})
	if err != nil {
		return err
	}
	logger.Info("simulation finished", "ticks", len(rec.Inputs), "took", time.Since(start).Round(time.Millisecond))

	fmt.Printf("Seed:    %d\n", rec.Seed)
	fmt.Printf("Preset:  %s\n", rec.Preset)
	fmt.Printf("Ticks:   %d (%.1fs)\n", len(rec.Inputs), final.Elapsed)
	fmt.Printf("Score:   %d\n", final.Score)
	fmt.Printf("Level:   %d\n", final.Level)
	fmt.Printf("Lives:   %d\n", max(0, final.Player.Lives))
	fmt.Printf("Over:    %v\n", final.Terminal)
	fmt.Printf("Hash:    %016x\n", final.Hash())

	if !flagSave {
		return nil
	}
	store := openStore()
	if store == nil {
		return errors.New("cannot save run: journal unavailable")
	}
	defer closeStore(store)

	id, err := replay.Save(store, rec, final)
	if err != nil {
		return err
	}
	fmt.Printf("Saved:   run #%d\n", id)
	return nil
}

func logEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventLevelUp:
		logger.Info("level up", "level", e.Level, "tick", e.Tick)
	case sim.EventLifeLost:
		logger.Info("life lost", "lives", int(e.Amount), "tick", e.Tick)
	case sim.EventGameOver:
		logger.Info("game over", "score", int(e.Amount), "tick", e.Tick)
	default:
		logger.Debug(e.Kind.String(), "tick", e.Tick, "id", e.ID, "amount", e.Amount)
	}
}
