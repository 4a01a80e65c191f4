package replay

import (
	"fmt"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

// ToRun converts a recording and the snapshot it ended in into a journal
// record.
func ToRun(rec Recording, final sim.Snapshot) (storage.Run, error) {
	cfg, err := config.Marshal(rec.Config)
	if err != nil {
		return storage.Run{}, fmt.Errorf("replay: %w", err)
	}
	return storage.Run{
		Seed:      rec.Seed,
		Preset:    string(rec.Preset),
		TickRate:  rec.TickRate,
		Ticks:     len(rec.Inputs),
		Score:     final.Score,
		Level:     final.Level,
		Elapsed:   final.Elapsed,
		FinalHash: final.Hash(),
		Config:    cfg,
		Inputs:    append([]byte(nil), rec.Inputs...),
	}, nil
}

// FromRun rebuilds a recording from a journal record.
func FromRun(run storage.Run) (Recording, error) {
	cfg, err := config.Unmarshal(run.Config)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: run %d: %w", run.ID, err)
	}
	preset, err := config.ParsePreset(run.Preset)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: run %d: %w", run.ID, err)
	}
	return Recording{
		Seed:     run.Seed,
		Preset:   preset,
		TickRate: run.TickRate,
		Config:   cfg,
		Inputs:   run.Inputs,
	}, nil
}

// Save journals a finished run and returns its ID.
func Save(store *storage.Store, rec Recording, final sim.Snapshot) (int64, error) {
	run, err := ToRun(rec, final)
	if err != nil {
		return 0, err
	}
	id, err := store.SaveRun(run)
	if err != nil {
		return 0, fmt.Errorf("replay: %w", err)
	}
	return id, nil
}
