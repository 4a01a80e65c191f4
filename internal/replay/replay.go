// Package replay records the per-tick input of a game and re-simulates it.
//
// A Recording holds everything needed to reproduce a run: the seed, the
// tuning, the tick rate and one input byte per simulated tick. Because the
// simulation is deterministic, playing a recording back yields the same
// final snapshot as the original run.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
)

// ErrHashMismatch is returned by Verify when the re-simulated state differs
// from the recorded one.
var ErrHashMismatch = errors.New("replay: final state hash mismatch")

// Input bits, one per held intent.
const (
	bitUp byte = 1 << iota
	bitDown
	bitLeft
	bitRight
	bitFire
)

// Encode packs an input into one byte. Quit is not encoded: a quit tick
// never advances the simulation.
func Encode(in sim.Input) byte {
	var b byte
	if in.Up {
		b |= bitUp
	}
	if in.Down {
		b |= bitDown
	}
	if in.Left {
		b |= bitLeft
	}
	if in.Right {
		b |= bitRight
	}
	if in.Fire {
		b |= bitFire
	}
	return b
}

// Decode unpacks a byte produced by Encode.
func Decode(b byte) sim.Input {
	return sim.Input{
		Up:    b&bitUp != 0,
		Down:  b&bitDown != 0,
		Left:  b&bitLeft != 0,
		Right: b&bitRight != 0,
		Fire:  b&bitFire != 0,
	}
}

// Recording is a reproducible run.
type Recording struct {
	Seed     int64
	Preset   config.DifficultyPreset
	TickRate int
	Config   config.VanguardConfig
	Inputs   []byte
}

// DT returns the seconds simulated per recorded tick.
func (r Recording) DT() float64 {
	if r.TickRate <= 0 {
		return 0
	}
	return 1 / float64(r.TickRate)
}

// Recorder accumulates the inputs of a running game.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a game created with the given seed and
// configuration. The preset is informational; cfg must already include it.
func NewRecorder(seed int64, preset config.DifficultyPreset, tickRate int, cfg config.VanguardConfig) *Recorder {
	return &Recorder{rec: Recording{
		Seed:     seed,
		Preset:   preset,
		TickRate: tickRate,
		Config:   cfg,
	}}
}

// Record appends the input of one advanced tick.
func (r *Recorder) Record(in sim.Input) {
	r.rec.Inputs = append(r.rec.Inputs, Encode(in))
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int {
	return len(r.rec.Inputs)
}

// Recording returns a copy of the recording so far.
func (r *Recorder) Recording() Recording {
	rec := r.rec
	rec.Inputs = append([]byte(nil), r.rec.Inputs...)
	return rec
}

// Play re-simulates a recording from a fresh game and returns the final
// snapshot.
func Play(rec Recording) (sim.Snapshot, error) {
	if rec.TickRate <= 0 {
		return sim.Snapshot{}, fmt.Errorf("replay: invalid tick rate %d", rec.TickRate)
	}
	state, err := sim.NewGame(rec.Config, sim.NewRNG(rec.Seed))
	if err != nil {
		return sim.Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	dt := rec.DT()
	for _, b := range rec.Inputs {
		state.Advance(dt, Decode(b))
	}
	return state.Snapshot(), nil
}

// Verify re-simulates a recording and compares the final snapshot hash.
// The snapshot is returned even on a mismatch.
func Verify(rec Recording, wantHash uint64) (sim.Snapshot, error) {
	snap, err := Play(rec)
	if err != nil {
		return snap, err
	}
	if got := snap.Hash(); got != wantHash {
		return snap, fmt.Errorf("%w: got %016x, want %016x", ErrHashMismatch, got, wantHash)
	}
	return snap, nil
}
