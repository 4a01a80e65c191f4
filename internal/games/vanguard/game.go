// Package vanguard adapts the shooter simulation to the terminal and window front-ends.
// It translates platform actions into simulation input, records every
// advanced tick for replay, and draws snapshots into a character screen.
package vanguard

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/core"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
)

const (
	gameID    = "vanguard"
	gameTitle = "Vertical Vanguard"
)

// Game implements the platform game contract on top of sim.State.
type Game struct {
	cfg     config.VanguardConfig
	preset  config.DifficultyPreset
	runtime core.RuntimeConfig
	logger  *log.Logger

	state     *sim.State
	rec       *replay.Recorder
	final     *sim.Snapshot // Captured on the tick the game ended
	paused    bool
	autopilot bool

	playback *replay.Recording // Inputs come from a recording instead of the player
	cursor   int
}

// New creates a game with the given tuning. The preset must already be
// applied to cfg; it is only kept for the run journal.
func New(cfg config.VanguardConfig, preset config.DifficultyPreset, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("vanguard: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    cfg,
		preset: preset,
		logger: logger,
	}, nil
}

// NewPlayback creates a game that replays a recording. Player input other
// than pause and quit is ignored, and the run is never reported as a result.
func NewPlayback(rec replay.Recording, logger *log.Logger) (*Game, error) {
	if rec.TickRate <= 0 {
		return nil, fmt.Errorf("vanguard: playback: invalid tick rate %d", rec.TickRate)
	}
	g, err := New(rec.Config, rec.Preset, logger)
	if err != nil {
		return nil, err
	}
	g.playback = &rec
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return gameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return gameTitle
}

// Reset starts a fresh game with the seed from rc.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.playback != nil {
		rc.Seed = g.playback.Seed
		rc.TickRate = g.playback.TickRate
	}
	if rc.TickRate <= 0 {
		rc.TickRate = g.cfg.Timing.TickRate
	}
	g.runtime = rc
	g.cursor = 0

	state, err := sim.NewGame(g.cfg, sim.NewRNG(rc.Seed))
	if err != nil {
		// The config was validated in New.
		panic(fmt.Sprintf("vanguard: reset: %v", err))
	}
	g.state = state
	g.rec = replay.NewRecorder(rc.Seed, g.preset, rc.TickRate, g.cfg)
	g.final = nil
	g.paused = false

	g.logger.Debug("game reset", "seed", rc.Seed, "tick_rate", rc.TickRate, "preset", g.preset)
}

// SetAutopilot switches between player control and the built-in pilot.
// Autopilot input is recorded like player input, so such runs replay too.
func (g *Game) SetAutopilot(on bool) {
	g.autopilot = on
}

// Autopilot reports whether the built-in pilot is flying.
func (g *Game) Autopilot() bool {
	return g.autopilot
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		g.state.Advance(0, sim.Input{Quit: true})
		return core.StepResult{State: g.State()}
	}

	// Particles keep fading behind the game over banner.
	if g.state.IsTerminal() {
		g.state.Advance(g.dt(), sim.Input{})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	input := FrameInput(in)
	switch {
	case g.playback != nil:
		if g.cursor >= len(g.playback.Inputs) {
			return core.StepResult{State: g.State()}
		}
		input = replay.Decode(g.playback.Inputs[g.cursor])
		g.cursor++
	case g.autopilot:
		input = Autopilot(g.state.Snapshot())
	}

	res := g.state.Advance(g.dt(), input)
	g.rec.Record(input)
	g.logEvents(res.Events)

	if res.Terminal && g.final == nil {
		snap := g.state.Snapshot()
		g.final = &snap
	}

	return core.StepResult{State: g.State()}
}

// FrameInput converts platform actions into simulation input.
func FrameInput(in core.InputFrame) sim.Input {
	return sim.Input{
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Fire:  in.Has(core.ActionFire),
		Quit:  in.Has(core.ActionQuit),
	}
}

func (g *Game) dt() float64 {
	return 1 / float64(g.runtime.TickRate)
}

func (g *Game) logEvents(events []sim.Event) {
	for _, e := range events {
		switch e.Kind {
		case sim.EventLevelUp:
			g.logger.Info("level up", "level", e.Level, "tick", e.Tick)
		case sim.EventLifeLost:
			g.logger.Info("life lost", "lives", int(e.Amount), "tick", e.Tick)
		case sim.EventGameOver:
			g.logger.Info("game over", "score", int(e.Amount), "tick", e.Tick)
		case sim.EventPickupCollected:
			g.logger.Debug("pickup", "kind", e.Pickup, "amount", e.Amount, "tick", e.Tick)
		case sim.EventPowerupExpired:
			g.logger.Debug("powerup expired", "kind", e.Powerup, "tick", e.Tick)
		case sim.EventPlayerHit:
			g.logger.Debug("hit", "damage", e.Amount, "tick", e.Tick)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	p := g.state.Player()
	return core.GameState{
		Score:    g.state.Score(),
		Level:    g.state.Level(),
		Lives:    p.Lives,
		GameOver: g.state.IsTerminal(),
		Paused:   g.paused,
		Quit:     g.state.QuitRequested(),
	}
}

// Snapshot returns a copy of the current simulation state.
func (g *Game) Snapshot() sim.Snapshot {
	return g.state.Snapshot()
}

// Playing reports whether the game replays a recording, and how many of its
// ticks have been shown.
func (g *Game) Playing() (bool, int) {
	return g.playback != nil, g.cursor
}

// Seed returns the seed of the current game.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Result returns the recording and the final snapshot of a finished game.
// ok is false while the game is still running.
func (g *Game) Result() (rec replay.Recording, final sim.Snapshot, ok bool) {
	if g.final == nil || g.playback != nil {
		return replay.Recording{}, sim.Snapshot{}, false
	}
	return g.rec.Recording(), *g.final, true
}

// Partial returns the recording so far with the matching snapshot, for
// games abandoned before they ended.
func (g *Game) Partial() (replay.Recording, sim.Snapshot) {
	if rec, final, ok := g.Result(); ok {
		return rec, final
	}
	return g.rec.Recording(), g.state.Snapshot()
}
