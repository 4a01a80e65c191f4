package vanguard

import (
	"fmt"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
)

// SimulateOptions controls a headless autopilot run.
type SimulateOptions struct {
	Seed     int64
	Preset   config.DifficultyPreset
	TickRate int
	Seconds  float64 // Upper bound on simulated time; the run also ends on game over
	OnEvent  func(sim.Event)
}

// Simulate flies the autopilot without any presentation and returns the
// recording with the final snapshot.
func Simulate(cfg config.VanguardConfig, opts SimulateOptions) (replay.Recording, sim.Snapshot, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.Timing.TickRate
	}
	if opts.Seconds <= 0 {
		return replay.Recording{}, sim.Snapshot{}, fmt.Errorf("vanguard: simulate: seconds must be positive, got %v", opts.Seconds)
	}

	state, err := sim.NewGame(cfg, sim.NewRNG(opts.Seed))
	if err != nil {
		return replay.Recording{}, sim.Snapshot{}, fmt.Errorf("vanguard: simulate: %w", err)
	}
	rec := replay.NewRecorder(opts.Seed, opts.Preset, opts.TickRate, cfg)

	dt := 1 / float64(opts.TickRate)
	ticks := int(opts.Seconds * float64(opts.TickRate))
	for range ticks {
		in := Autopilot(state.Snapshot())
		res := state.Advance(dt, in)
		rec.Record(in)

		if opts.OnEvent != nil {
			for _, e := range res.Events {
				opts.OnEvent(e)
			}
		}
		if res.Terminal {
			break
		}
	}

	return rec.Recording(), state.Snapshot(), nil
}
