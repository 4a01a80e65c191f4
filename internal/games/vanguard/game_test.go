package vanguard

import (
	"strings"
	"testing"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/core"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
)

func newTestGame(t *testing.T, cfg config.VanguardConfig, seed int64) *Game {
	t.Helper()
	g, err := New(cfg, config.DifficultyNormal, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 66, ScreenH: 38, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// deadlyConfig makes every enemy open fire at once, so games end quickly.
func deadlyConfig() config.VanguardConfig {
	cfg := config.DefaultVanguardConfig()
	cfg.Player.Lives = 1
	cfg.Enemy.FireStartAt = 0
	cfg.Enemy.FireBackAfter = 0
	cfg.Enemy.FireRate = 1e6
	cfg.Enemy.AimJitter = 0
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultVanguardConfig()
	cfg.Playfield.Width = 0
	if _, err := New(cfg, config.DifficultyNormal, nil); err == nil {
		t.Error("New should reject an invalid config")
	}
}

func TestFrameInput(t *testing.T) {
	in := FrameInput(frame(core.ActionUp, core.ActionLeft, core.ActionFire))
	if !in.Up || !in.Left || !in.Fire || in.Down || in.Right || in.Quit {
		t.Errorf("FrameInput = %+v", in)
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultVanguardConfig()
	inputs := make([]core.InputFrame, 1800)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%5 == 0 {
			inputs[i].Set(core.ActionFire)
		}
		if (i/60)%2 == 0 {
			inputs[i].Set(core.ActionLeft)
		} else {
			inputs[i].Set(core.ActionRight)
		}
	}

	g1 := newTestGame(t, cfg, 12345)
	g2 := newTestGame(t, cfg, 12345)
	for _, in := range inputs {
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%x, Run2=%x", s1.Hash(), s2.Hash())
	}
	if g1.State() != g2.State() {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", g1.State(), g2.State())
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, config.DefaultVanguardConfig(), 1)
	g.Step(frame())

	if st := g.Step(frame(core.ActionPause)).State; !st.Paused {
		t.Fatal("game should be paused")
	}
	tick := g.Snapshot().Tick
	for range 10 {
		g.Step(frame(core.ActionFire))
	}
	if g.Snapshot().Tick != tick {
		t.Error("paused game must not advance")
	}

	if st := g.Step(frame(core.ActionPause)).State; st.Paused {
		t.Fatal("game should resume")
	}
	if g.Snapshot().Tick != tick+1 {
		t.Error("resumed game should advance on the same step")
	}

	rec, _ := g.Partial()
	if len(rec.Inputs) != 2 {
		t.Errorf("recorded %d ticks, expected 2 (paused steps are not recorded)", len(rec.Inputs))
	}
}

func TestGameQuit(t *testing.T) {
	g := newTestGame(t, config.DefaultVanguardConfig(), 1)
	if st := g.Step(frame(core.ActionQuit)).State; !st.Quit {
		t.Error("quit should be reported")
	}
}

func TestGamePartialReplays(t *testing.T) {
	g := newTestGame(t, config.DefaultVanguardConfig(), 77)
	for i := range 900 {
		if i%3 == 0 {
			g.Step(frame(core.ActionFire, core.ActionRight))
		} else {
			g.Step(frame(core.ActionLeft))
		}
	}

	rec, snap := g.Partial()
	if _, err := replay.Verify(rec, snap.Hash()); err != nil {
		t.Errorf("recording does not replay: %v", err)
	}
}

func TestGameOverResult(t *testing.T) {
	g := newTestGame(t, deadlyConfig(), 3)

	if _, _, ok := g.Result(); ok {
		t.Fatal("running game should have no result")
	}

	for range 1200 {
		if g.Step(frame()).State.GameOver {
			break
		}
	}
	if !g.State().GameOver {
		t.Fatal("game should be over after sustained enemy fire")
	}

	rec, final, ok := g.Result()
	if !ok {
		t.Fatal("finished game should have a result")
	}
	if final.Player.Lives != 0 || !final.Terminal {
		t.Errorf("final snapshot = lives %d terminal %v", final.Player.Lives, final.Terminal)
	}

	// Later steps only age particles and do not change the result.
	for range 30 {
		g.Step(frame(core.ActionFire))
	}
	rec2, final2, _ := g.Result()
	if final2.Hash() != final.Hash() || len(rec2.Inputs) != len(rec.Inputs) {
		t.Error("result changed after game over")
	}

	if _, err := replay.Verify(rec, final.Hash()); err != nil {
		t.Errorf("finished game does not replay: %v", err)
	}
}

func TestGameAutopilotRecorded(t *testing.T) {
	g := newTestGame(t, config.DefaultVanguardConfig(), 9)
	g.SetAutopilot(true)
	for range 600 {
		g.Step(frame(core.ActionLeft))
	}

	rec, snap := g.Partial()
	if _, err := replay.Verify(rec, snap.Hash()); err != nil {
		t.Errorf("autopilot run does not replay: %v", err)
	}
}

func TestGamePlayback(t *testing.T) {
	g := newTestGame(t, config.DefaultVanguardConfig(), 9)
	g.SetAutopilot(true)
	for range 600 {
		g.Step(frame())
	}
	rec, want := g.Partial()

	pb, err := NewPlayback(rec, nil)
	if err != nil {
		t.Fatalf("NewPlayback failed: %v", err)
	}
	pb.Reset(core.RuntimeConfig{TickRate: 30, Seed: 424242})
	if pb.Seed() != 9 {
		t.Errorf("playback seed = %d, want the recorded 9", pb.Seed())
	}

	// Player input is ignored and steps past the end hold the last frame.
	for range 700 {
		pb.Step(frame(core.ActionRight, core.ActionFire))
	}
	got := pb.Snapshot()
	if got := got.Hash(); got != want.Hash() {
		t.Errorf("playback hash = %x, want %x", got, want.Hash())
	}
	if playing, shown := pb.Playing(); !playing || shown != 600 {
		t.Errorf("Playing() = %v, %d", playing, shown)
	}
	if _, _, ok := pb.Result(); ok {
		t.Error("playback should never report a result")
	}
}

func TestNewPlaybackRejectsBadRecording(t *testing.T) {
	if _, err := NewPlayback(replay.Recording{Config: config.DefaultVanguardConfig()}, nil); err == nil {
		t.Error("zero tick rate should fail")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, config.DefaultVanguardConfig(), 1)
	w, h := ScreenSize(64, 64)
	if w != 66 || h != 38 {
		t.Fatalf("ScreenSize = %dx%d, expected 66x38", w, h)
	}
	screen := core.NewScreen(w, h)

	g.Step(frame())
	g.Render(screen)

	if screen.GetCell(0, 0).Rune != '┌' || screen.GetCell(w-1, 33).Rune != '┘' {
		t.Error("playfield frame not drawn")
	}
	// Player spawns at (31, 54): column 1+31, row 1+27.
	if screen.GetCell(33, 28).Rune != '▲' {
		t.Errorf("player sprite not found, row = %q", screen.Row(28))
	}
	out := screen.String()
	for _, want := range []string{"SCORE", "LEVEL 1", "HP", "AM", "FU", "seed 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
	if screen.GetCell(1, 34).Color != core.ColorBrightWhite {
		t.Error("HUD should be colored")
	}
}

func TestGameRenderOverlays(t *testing.T) {
	g := newTestGame(t, deadlyConfig(), 3)
	screen := core.NewScreen(ScreenSize(64, 64))

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause banner missing")
	}
	// The 21-wide message box starts at column 22, row 14; titles are
	// centered inside it.
	row := []rune(screen.Row(15))
	if string(row[29:35]) != "PAUSED" || row[22] != '│' || row[42] != '│' {
		t.Errorf("pause title not centered in its box, row = %q", screen.Row(15))
	}
	g.Step(frame(core.ActionPause))

	for range 1200 {
		if g.Step(frame()).State.GameOver {
			break
		}
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over banner missing")
	}
}

func TestLayoutClipsToPlayfield(t *testing.T) {
	screen := core.NewScreen(66, 38)
	l := layout{x: 1, y: 1, cols: 64, rows: 32}

	tests := []struct {
		name   string
		x, y   int
		inside bool
	}{
		{"top-left interior", 1, 1, true},
		{"bottom-right interior", 64, 32, true},
		{"left frame", 0, 1, false},
		{"right frame", 65, 1, false},
		{"top frame", 1, 0, false},
		{"below playfield", 64, 33, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			screen.Clear()
			l.set(screen, tc.x, tc.y, '#', core.ColorRed)
			if drawn := screen.GetCell(tc.x, tc.y).Rune == '#'; drawn != tc.inside {
				t.Errorf("set(%d, %d) drawn = %v, expected %v", tc.x, tc.y, drawn, tc.inside)
			}
		})
	}
}
