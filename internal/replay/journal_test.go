package replay

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

func TestJournalRoundTrip(t *testing.T) {
	rec, want := record(t, 21, 1500)
	rec.Preset = config.DifficultyHard

	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	snap, err := Play(rec)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	run, err := ToRun(rec, snap)
	if err != nil {
		t.Fatalf("ToRun failed: %v", err)
	}
	if run.FinalHash != want || run.Ticks != 1500 || run.Preset != "hard" {
		t.Errorf("ToRun = %+v", run)
	}

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	loaded, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	back, err := FromRun(*loaded)
	if err != nil {
		t.Fatalf("FromRun failed: %v", err)
	}
	if back.Seed != rec.Seed || back.Preset != rec.Preset || back.TickRate != rec.TickRate {
		t.Errorf("FromRun = %+v", back)
	}
	if _, err := Verify(back, loaded.FinalHash); err != nil {
		t.Errorf("stored run does not replay: %v", err)
	}
}

func TestFromRunRejectsBadPreset(t *testing.T) {
	if _, err := FromRun(storage.Run{Preset: "nightmare"}); err == nil {
		t.Error("unknown preset should fail")
	}
}
