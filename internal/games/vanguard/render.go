package vanguard

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/vertical-vanguard/internal/core"
	"github.com/vovakirdan/vertical-vanguard/internal/sim"
)

// Each terminal row covers two playfield units so the square field looks
// square in a terminal with tall cells.
const rowUnits = 2

// hudRows is the number of text rows drawn below the playfield frame.
const hudRows = 4

// Sprites for 3x2 cell crafts. Spaces are transparent.
var (
	playerSprite = []string{" ▲ ", "◢█◣"}
	enemySprite  = []string{"▄█▄", " ▼ "}
)

// ScreenSize returns the character grid needed to show the whole game.
func ScreenSize(width, height float64) (cols, rows int) {
	return int(math.Ceil(width)) + 2, int(math.Ceil(height/rowUnits)) + 2 + hudRows
}

// layout maps playfield units to screen cells.
type layout struct {
	x, y       int // Top-left cell of the playfield interior
	cols, rows int
}

func newLayout(dst *core.Screen, snap sim.Snapshot) layout {
	cols := int(math.Ceil(snap.Width))
	rows := int(math.Ceil(snap.Height / rowUnits))
	x := max(1, (dst.Width()-cols-2)/2+1)
	return layout{x: x, y: 1, cols: cols, rows: rows}
}

// cellRect returns the screen cells covered by an entity.
func (l layout) cellRect(pos, size sim.Vec) core.Rect {
	r := core.NewBox(pos.X, pos.Y/rowUnits, size.X, size.Y/rowUnits).Rect()
	r.X += l.x
	r.Y += l.y
	return r
}

// interior returns the screen cells inside the playfield frame.
func (l layout) interior() core.Rect {
	return core.NewRect(l.x, l.y, l.cols, l.rows)
}

// set draws a cell only when it lies inside the playfield interior.
func (l layout) set(dst *core.Screen, x, y int, r rune, c core.Color) {
	if !l.interior().Contains(x, y) {
		return
	}
	dst.SetColored(x, y, r, c)
}

func (l layout) fill(dst *core.Screen, r core.Rect, glyph rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			l.set(dst, x, y, glyph, c)
		}
	}
}

// sprite draws a sprite anchored at the rect origin. Cells of the rect the
// sprite does not cover are filled with the given rune.
func (l layout) sprite(dst *core.Screen, r core.Rect, rows []string, filler rune, c core.Color) {
	for dy := range r.H {
		var line []rune
		if dy < len(rows) {
			line = []rune(rows[dy])
		}
		for dx := range r.W {
			glyph := filler
			if dx < len(line) {
				glyph = line[dx]
			}
			if glyph == ' ' {
				continue
			}
			l.set(dst, r.X+dx, r.Y+dy, glyph, c)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.state.Snapshot()
	l := newLayout(dst, snap)

	in := l.interior()
	dst.DrawBox(core.NewRect(in.X-1, in.Y-1, in.W+2, in.H+2), core.ColorGray)

	for _, p := range snap.Particles {
		drawParticle(dst, l, p)
	}
	for _, pk := range snap.Pickups {
		l.fill(dst, l.cellRect(pk.Pos, pk.Size), pk.Kind.Glyph(), pk.Kind.Color())
	}
	for _, e := range snap.Enemies {
		color := core.ColorBrightRed
		if e.Health > 1 {
			color = core.ColorOrange
		}
		l.sprite(dst, l.cellRect(e.Pos, e.Size), enemySprite, '█', color)
	}
	for _, b := range snap.Bullets {
		if b.Owner == sim.OwnerPlayer {
			l.fill(dst, l.cellRect(b.Pos, b.Size), '│', core.ColorBrightYellow)
		} else {
			l.fill(dst, l.cellRect(b.Pos, b.Size), '•', core.ColorBrightMagenta)
		}
	}
	if !snap.Terminal && !blinking(snap) {
		p := snap.Player
		l.sprite(dst, l.cellRect(p.Pos, p.Size), playerSprite, '█', core.ColorBrightCyan)
	}

	g.drawHUD(dst, l, snap)

	switch {
	case snap.Terminal:
		drawCenteredMessage(dst, l, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case g.paused:
		drawCenteredMessage(dst, l, "PAUSED", "Press P to resume")
	}
}

// blinking hides the player on alternate frames while invulnerable.
func blinking(snap sim.Snapshot) bool {
	return snap.Player.Invulnerable() && (snap.Tick/4)%2 == 1
}

func drawParticle(dst *core.Screen, l layout, p sim.Particle) {
	x := l.x + int(math.Floor(p.Pos.X))
	y := l.y + int(math.Floor(p.Pos.Y/rowUnits))

	if p.Kind == sim.ParticleBlink {
		l.set(dst, x, y, '○', core.ColorBrightWhite)
		return
	}
	switch life := p.Life(); {
	case life > 0.66:
		l.set(dst, x, y, '*', core.ColorBrightYellow)
	case life > 0.33:
		l.set(dst, x, y, '+', core.ColorOrange)
	default:
		l.set(dst, x, y, '.', core.ColorRed)
	}
}

func (g *Game) drawHUD(dst *core.Screen, l layout, snap sim.Snapshot) {
	x := l.x
	y := l.y + l.rows + 1
	p := snap.Player

	// Score, level, lives and time
	line := fmt.Sprintf("SCORE %06d  LEVEL %d  TIME %s  LIVES ", snap.Score, snap.Level, clock(snap.Elapsed))
	dst.DrawTextColored(x, y, line, core.ColorBrightWhite)
	dst.DrawTextColored(x+len(line), y, strings.Repeat("♥", max(0, p.Lives)), core.ColorBrightRed)

	// Meters
	barW := (l.cols - 12) / 3
	meters := []struct {
		label string
		m     sim.Meter
		c     core.Color
	}{
		{"HP", p.Health, core.ColorBrightRed},
		{"AM", p.Ammo, core.ColorBrightYellow},
		{"FU", p.Fuel, core.ColorBrightGreen},
	}
	for i, m := range meters {
		mx := x + i*(barW+4)
		dst.DrawTextColored(mx, y+1, m.label, m.c)
		dst.DrawBar(mx+3, y+1, barW, m.m.Ratio(), '█', '░', m.c)
	}

	// Powerup timers
	cfg := g.cfg.Powerups
	px := x
	active := 0
	for _, kind := range sim.AllPowerupKinds {
		if !p.Powerups.Active(kind) {
			continue
		}
		active++
		label := strings.ToUpper(kind.String())
		c := powerupColor(kind)
		dst.DrawTextColored(px, y+2, label, c)
		px += len(label) + 1
		ratio := 1.0
		if d := kind.Duration(cfg); d > 0 {
			ratio = p.Powerups.Remaining(kind) / d
		}
		dst.DrawBar(px, y+2, 8, ratio, '▮', '▯', c)
		px += 10
	}
	if active == 0 {
		dst.DrawTextColored(x, y+2, "no powerups", core.ColorGray)
	}

	// Run info
	info := fmt.Sprintf("seed %d  tick %d", g.runtime.Seed, snap.Tick)
	switch {
	case g.playback != nil:
		info += fmt.Sprintf("  REPLAY %d/%d", g.cursor, len(g.playback.Inputs))
	case g.autopilot:
		info += "  AUTOPILOT"
	}
	dst.DrawTextColored(x, y+3, info, core.ColorGray)
}

func powerupColor(kind sim.PowerupKind) core.Color {
	switch kind {
	case sim.PowerupSpeedBoost:
		return core.ColorBrightGreen
	case sim.PowerupRapidFire:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightMagenta
	}
}

// clock formats seconds as mm:ss.
func clock(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// drawCenteredMessage draws a message box in the center of the playfield.
func drawCenteredMessage(dst *core.Screen, l layout, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := l.x + (l.cols-boxW)/2
	boxY := l.y + (l.rows-boxH)/2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextCenteredColored(box, boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box, boxY+3, subtitle, core.ColorWhite)
}
