package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

func TestHistoryModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var ids []int64
	for i := range 3 {
		id, err := store.SaveRun(storage.Run{Seed: int64(i), Preset: "normal", TickRate: 60, Score: 10 * i, Level: 1, Elapsed: 75})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	m := NewHistoryModel(store, 100, 30)
	if len(m.runs) != 3 {
		t.Fatalf("loaded %d runs, want 3", len(m.runs))
	}
	view := m.View()
	if !strings.Contains(view, "3 runs") || !strings.Contains(view, "1:15") {
		t.Errorf("view missing stats or time:\n%s", view)
	}

	// Delete the newest run.
	next, _ := m.Update(runeKey("x"))
	m = next.(HistoryModel)
	if len(m.runs) != 2 {
		t.Fatalf("%d runs after delete, want 2", len(m.runs))
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(HistoryModel)
	if cmd == nil || m.Selected() != ids[1] {
		t.Errorf("Selected() = %d, want %d", m.Selected(), ids[1])
	}
}

func TestHistoryModelEmpty(t *testing.T) {
	m := NewHistoryModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty history should say so")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(HistoryModel).Selected() != 0 {
		t.Error("nothing to select in an empty history")
	}
}

func TestClockText(t *testing.T) {
	for in, want := range map[float64]string{0: "0:00", 59.9: "0:59", 61: "1:01", 3600: "60:00"} {
		if got := clockText(in); got != want {
			t.Errorf("clockText(%v) = %q, want %q", in, got, want)
		}
	}
}
