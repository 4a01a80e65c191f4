package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/core"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	resets    []core.RuntimeConfig
	frames    []core.InputFrame
	state     core.GameState
	overAt    int // Steps after which the game ends, 0 for never
	autopilot bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
	g.frames = nil
	g.state = core.GameState{Level: 1, Lives: 3}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Has(core.ActionQuit) {
		g.state.Quit = true
	}
	if g.overAt > 0 && len(g.frames) >= g.overAt {
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColored(1, 1, "fake", core.ColorDefault)
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Result() (replay.Recording, sim.Snapshot, bool) {
	if !g.state.GameOver {
		return replay.Recording{}, sim.Snapshot{}, false
	}
	rec := replay.Recording{
		Seed:     g.resets[len(g.resets)-1].Seed,
		Preset:   config.DifficultyNormal,
		TickRate: 60,
		Config:   config.DefaultVanguardConfig(),
		Inputs:   make([]byte, len(g.frames)),
	}
	return rec, sim.Snapshot{Score: 42, Level: 1, Elapsed: 1}, true
}

func (g *fakeGame) SetAutopilot(on bool) { g.autopilot = on }
func (g *fakeGame) Autopilot() bool      { return g.autopilot }

var tickBase = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, g *fakeGame, store *storage.Store) Model {
	t.Helper()
	m := NewModel(g, store, nil, core.RuntimeConfig{ScreenW: 66, ScreenH: 38, TickRate: 60, Seed: 7})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should start ticking")
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// ticks delivers n ticks one fixed step apart.
func ticks(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		at := tickBase
		if !m.lastTick.IsZero() {
			at = m.lastTick.Add(m.clock.Step())
		}
		m, _ = update(t, m, TickMsg(at))
	}
	return m
}

func TestModelInitResetsGame(t *testing.T) {
	g := &fakeGame{}
	newTestModel(t, g, nil)
	if len(g.resets) != 1 || g.resets[0].Seed != 7 {
		t.Errorf("resets = %+v", g.resets)
	}
}

func TestModelHeldKeys(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, runeKey("a"))
	m = ticks(t, m, 25)

	if len(g.frames) != 25 {
		t.Fatalf("stepped %d times, want 25", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionLeft) || !g.frames[10].Has(core.ActionLeft) {
		t.Error("a pressed key should hold across steps")
	}
	if g.frames[24].Has(core.ActionLeft) {
		t.Error("hold should expire without repeats")
	}
}

func TestModelOneShotActions(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, runeKey("p"))
	ticks(t, m, 2)

	if !g.frames[0].Has(core.ActionPause) {
		t.Error("pause should reach the next step")
	}
	if g.frames[1].Has(core.ActionPause) {
		t.Error("pause should not repeat")
	}
}

func TestModelQuit(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if len(g.frames) != 1 || !g.frames[0].Has(core.ActionQuit) {
		t.Error("quit should be passed to the game")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelAutopilotToggle(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	m, _ = update(t, m, runeKey("t"))
	if !g.autopilot {
		t.Error("t should engage autopilot")
	}
	update(t, m, runeKey("t"))
	if g.autopilot {
		t.Error("t should disengage autopilot")
	}
}

func TestModelSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{overAt: 3}
	m := newTestModel(t, g, store)
	m = ticks(t, m, 10)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Score != 42 || runs[0].Seed != 7 || runs[0].Ticks != 3 {
		t.Errorf("saved run = %+v", runs[0])
	}
	if !strings.Contains(m.View(), "saved") {
		t.Error("status should report the saved run")
	}

	// Restart starts a new game that can be saved again.
	m, _ = update(t, m, runeKey("r"))
	m = ticks(t, m, 1)
	if len(g.resets) != 2 {
		t.Fatalf("resets = %d, want 2", len(g.resets))
	}
	if m.State().GameOver {
		t.Error("restarted game should not be over")
	}
	ticks(t, m, 5)

	runs, _ = store.RecentRuns(10)
	if len(runs) != 2 {
		t.Errorf("saved %d runs after restart, want 2", len(runs))
	}
}

func TestModelView(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)

	view := m.View()
	if !strings.Contains(view, "fake") || !strings.Contains(view, "quit") {
		t.Errorf("view missing game or help:\n%s", view)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(m.View(), "too small") {
		t.Error("small terminal should be reported")
	}
	if m.screen.Width() != 66 || m.screen.Height() != 38 {
		t.Errorf("screen = %dx%d, want 66x38", m.screen.Width(), m.screen.Height())
	}
}
