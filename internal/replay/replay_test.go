package replay

import (
	"errors"
	"testing"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
)

func TestEncodeDecode(t *testing.T) {
	tests := []sim.Input{
		{},
		{Up: true},
		{Down: true, Fire: true},
		{Left: true, Right: true},
		{Up: true, Down: true, Left: true, Right: true, Fire: true},
	}

	for _, in := range tests {
		if got := Decode(Encode(in)); got != in {
			t.Errorf("Decode(Encode(%+v)) = %+v", in, got)
		}
	}

	if Encode(sim.Input{Quit: true}) != 0 {
		t.Error("quit should not be encoded")
	}
}

func TestRecorderCopies(t *testing.T) {
	r := NewRecorder(1, config.DifficultyNormal, 60, config.DefaultVanguardConfig())
	r.Record(sim.Input{Fire: true})

	rec := r.Recording()
	rec.Inputs[0] = 0
	r.Record(sim.Input{})

	if r.Len() != 2 {
		t.Errorf("Len = %d, expected 2", r.Len())
	}
	if got := r.Recording().Inputs[0]; got != bitFire {
		t.Errorf("first input = %08b, recording should not share memory", got)
	}
}

// record plays a scripted game and returns its recording and final hash.
func record(t *testing.T, seed int64, ticks int) (Recording, uint64) {
	t.Helper()
	cfg := config.DefaultVanguardConfig()
	state, err := sim.NewGame(cfg, sim.NewRNG(seed))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	r := NewRecorder(seed, config.DifficultyNormal, 60, cfg)

	for i := range ticks {
		in := sim.Input{
			Fire:  i%4 == 0,
			Left:  (i/45)%2 == 0,
			Right: (i/45)%2 == 1,
		}
		state.Advance(1.0/60, in)
		r.Record(in)
	}
	snap := state.Snapshot()
	return r.Recording(), snap.Hash()
}

func TestPlayReproducesRun(t *testing.T) {
	rec, want := record(t, 99, 2400)

	snap, err := Verify(rec, want)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if snap.Tick != 2400 {
		t.Errorf("replayed %d ticks, expected 2400", snap.Tick)
	}
}

func TestPlaySurvivesConfigRoundTrip(t *testing.T) {
	rec, want := record(t, 7, 1200)

	data, err := config.Marshal(rec.Config)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	rec.Config, err = config.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if _, err := Verify(rec, want); err != nil {
		t.Errorf("Verify after YAML round trip failed: %v", err)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	rec, want := record(t, 5, 600)
	rec.Seed++

	_, err := Verify(rec, want)
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("expected ErrHashMismatch, got %v", err)
	}
}

func TestPlayRejectsBadRecording(t *testing.T) {
	rec := Recording{Seed: 1, TickRate: 0, Config: config.DefaultVanguardConfig()}
	if _, err := Play(rec); err == nil {
		t.Error("zero tick rate should fail")
	}

	rec.TickRate = 60
	rec.Config.Player.Lives = 0
	if _, err := Play(rec); err == nil {
		t.Error("invalid config should fail")
	}
}
