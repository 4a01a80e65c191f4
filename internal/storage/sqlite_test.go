package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	want := Run{
		Seed:      -42,
		Preset:    "hard",
		TickRate:  60,
		Ticks:     3600,
		Score:     250,
		Level:     2,
		Elapsed:   60,
		FinalHash: 0xfedcba9876543210, // Does not fit a signed integer
		Config:    []byte("player:\n  lives: 2\n"),
		Inputs:    []byte{0, 1, 2, 16, 31},
	}

	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if got.ID != id || got.Seed != want.Seed || got.Preset != want.Preset {
		t.Errorf("identity fields mismatch: %+v", got)
	}
	if got.TickRate != want.TickRate || got.Ticks != want.Ticks || got.Score != want.Score ||
		got.Level != want.Level || got.Elapsed != want.Elapsed {
		t.Errorf("summary fields mismatch: %+v", got)
	}
	if got.FinalHash != want.FinalHash {
		t.Errorf("FinalHash = %x, expected %x", got.FinalHash, want.FinalHash)
	}
	if !bytes.Equal(got.Config, want.Config) || !bytes.Equal(got.Inputs, want.Inputs) {
		t.Error("blobs were not stored intact")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreRunNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Run(99); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run() error = %v, expected ErrRunNotFound", err)
	}
	if err := store.DeleteRun(99); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("DeleteRun() error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveRun(Run{Seed: int64(i), TickRate: 60, Score: i * 10, Config: []byte{}, Inputs: []byte{}}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	// Newest first
	if runs[0].Seed != 4 || runs[1].Seed != 3 || runs[2].Seed != 2 {
		t.Errorf("Runs not in recency order: %v", runs)
	}
	if runs[0].Inputs != nil {
		t.Error("RecentRuns should not load input blobs")
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Seed: 1, TickRate: 60, Config: []byte{}, Inputs: []byte{}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
		t.Error("deleted run should be gone")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty journal stats = %+v", stats)
	}

	store.SaveRun(Run{TickRate: 60, Ticks: 600, Elapsed: 10, Level: 1, Config: []byte{}, Inputs: []byte{}})
	store.SaveRun(Run{TickRate: 60, Ticks: 9000, Elapsed: 150, Level: 2, Config: []byte{}, Inputs: []byte{}})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.TotalTicks != 9600 || stats.TotalPlayed != 160 || stats.BestLevel != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestHashText(t *testing.T) {
	for _, h := range []uint64{0, 1, 1 << 63, ^uint64(0)} {
		got, err := parseHash(formatHash(h))
		if err != nil || got != h {
			t.Errorf("parseHash(formatHash(%x)) = %x, %v", h, got, err)
		}
	}
	if _, err := parseHash("not hex"); err == nil {
		t.Error("parseHash should reject garbage")
	}
}
