// Package window runs the shooter in a desktop window with Ebitengine.
// Entities are drawn as filled rectangles scaled up from playfield units.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/vertical-vanguard/internal/core"
	"github.com/vovakirdan/vertical-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/vertical-vanguard/internal/replay"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

const (
	unitPixels  = 5  // Logical pixels per playfield unit
	hudHeight   = 56 // Logical pixels below the playfield
	windowScale = 2
)

var background = color.RGBA{0x10, 0x10, 0x18, 0xff}

// binding maps keys to an action. Held actions repeat while the key is
// down; the others fire once per press.
type binding struct {
	action core.Action
	keys   []ebiten.Key
	held   bool
}

var bindings = []binding{
	{core.ActionUp, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, true},
	{core.ActionDown, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, true},
	{core.ActionLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, true},
	{core.ActionRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, true},
	{core.ActionFire, []ebiten.Key{ebiten.KeySpace, ebiten.KeyJ}, true},
	{core.ActionPause, []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}, false},
	{core.ActionRestart, []ebiten.Key{ebiten.KeyR}, false},
	{core.ActionQuit, []ebiten.Key{ebiten.KeyQ}, false},
}

// readFrame builds an input frame from key state.
func readFrame(pressed, justPressed func(ebiten.Key) bool) core.InputFrame {
	frame := core.NewInputFrame()
	for _, b := range bindings {
		check := justPressed
		if b.held {
			check = pressed
		}
		for _, k := range b.keys {
			if check(k) {
				frame.Set(b.action)
				break
			}
		}
	}
	return frame
}

// Window is an ebiten.Game driving one vanguard game.
type Window struct {
	game    *vanguard.Game
	store   *storage.Store
	logger  *log.Logger
	runtime core.RuntimeConfig
	width   int // Playfield size in logical pixels
	height  int
	saved   bool
	status  string
}

// New creates a window for the game and starts it with rc.
func New(game *vanguard.Game, store *storage.Store, logger *log.Logger, rc core.RuntimeConfig) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	game.Reset(rc)

	snap := game.Snapshot()
	return &Window{
		game:    game,
		store:   store,
		logger:  logger,
		runtime: rc,
		width:   int(math.Ceil(snap.Width)) * unitPixels,
		height:  int(math.Ceil(snap.Height)) * unitPixels,
	}
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	frame := readFrame(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		w.game.SetAutopilot(!w.game.Autopilot())
	}

	if frame.Has(core.ActionQuit) {
		w.game.Step(frame)
		w.logger.Info("game quit", "score", w.game.State().Score)
		return ebiten.Termination
	}

	if frame.Has(core.ActionRestart) && w.game.State().GameOver {
		w.runtime.Seed = time.Now().UnixNano()
		w.game.Reset(w.runtime)
		w.saved = false
		w.status = ""
		w.logger.Info("game restarted", "seed", w.runtime.Seed)
		return nil
	}

	state := w.game.Step(frame).State
	if state.GameOver && !w.saved {
		w.saved = true
		w.status = w.saveRun()
	}
	return nil
}

func (w *Window) saveRun() string {
	rec, final, ok := w.game.Result()
	if !ok || w.store == nil {
		return ""
	}
	id, err := replay.Save(w.store, rec, final)
	if err != nil {
		w.logger.Warn("could not save run", "error", err)
		return "run not saved"
	}
	w.logger.Info("run saved", "id", id, "score", final.Score, "level", final.Level, "ticks", len(rec.Inputs))
	return fmt.Sprintf("run #%d saved", id)
}

// Draw renders the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := w.game.Snapshot()

	vector.StrokeRect(screen, 0, 0, float32(w.width), float32(w.height), 1, core.ColorGray.RGBA(), false)

	for _, p := range snap.Particles {
		fillUnits(screen, p.Pos, sim.Vec{X: 1, Y: 1}, particleColor(p))
	}
	for _, pk := range snap.Pickups {
		fillUnits(screen, pk.Pos, pk.Size, pk.Kind.Color())
	}
	for _, e := range snap.Enemies {
		c := core.ColorBrightRed
		if e.Health > 1 {
			c = core.ColorOrange
		}
		fillUnits(screen, e.Pos, e.Size, c)
	}
	for _, b := range snap.Bullets {
		c := core.ColorBrightMagenta
		if b.Owner == sim.OwnerPlayer {
			c = core.ColorBrightYellow
		}
		fillUnits(screen, b.Pos, b.Size, c)
	}
	if !snap.Terminal && !(snap.Player.Invulnerable() && (snap.Tick/4)%2 == 1) {
		fillUnits(screen, snap.Player.Pos, snap.Player.Size, core.ColorBrightCyan)
	}

	w.drawHUD(screen, snap)

	switch {
	case snap.Terminal:
		ebitenutil.DebugPrintAt(screen, "GAME OVER", w.width/2-27, w.height/2-16)
		ebitenutil.DebugPrintAt(screen, "press R to restart", w.width/2-54, w.height/2)
	case w.game.State().Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", w.width/2-18, w.height/2-8)
	}
}

func (w *Window) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	y := w.height + 4
	p := snap.Player

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("SCORE %06d  LV %d  LIVES %d", snap.Score, snap.Level, max(0, p.Lives)), 4, y)

	barW := float32(w.width-16) / 3
	meters := []struct {
		m sim.Meter
		c core.Color
	}{
		{p.Health, core.ColorBrightRed},
		{p.Ammo, core.ColorBrightYellow},
		{p.Fuel, core.ColorBrightGreen},
	}
	for i, m := range meters {
		x := 4 + float32(i)*(barW+4)
		vector.DrawFilledRect(screen, x, float32(y+20), barW, 6, core.ColorGray.RGBA(), false)
		vector.DrawFilledRect(screen, x, float32(y+20), barW*float32(m.m.Ratio()), 6, m.c.RGBA(), false)
	}

	info := w.status
	if w.game.Autopilot() {
		info = "AUTOPILOT " + info
	}
	ebitenutil.DebugPrintAt(screen, info, 4, y+30)
}

// fillUnits fills a playfield-unit box.
func fillUnits(dst *ebiten.Image, pos, size sim.Vec, c core.Color) {
	vector.DrawFilledRect(dst,
		float32(pos.X*unitPixels), float32(pos.Y*unitPixels),
		float32(size.X*unitPixels), float32(size.Y*unitPixels),
		c.RGBA(), false)
}

func particleColor(p sim.Particle) core.Color {
	if p.Kind == sim.ParticleBlink {
		return core.ColorBrightWhite
	}
	switch life := p.Life(); {
	case life > 0.66:
		return core.ColorBrightYellow
	case life > 0.33:
		return core.ColorOrange
	default:
		return core.ColorRed
	}
}

// Layout returns the fixed logical screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height + hudHeight
}

// Run opens the window and blocks until it is closed.
func Run(w *Window, title string) error {
	ebiten.SetWindowSize(w.width*windowScale, (w.height+hudHeight)*windowScale)
	ebiten.SetWindowTitle(title)
	tps := w.runtime.TickRate
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
