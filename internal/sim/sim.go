// Package sim implements the fixed-timestep shooter simulation.
//
// A State is created with NewGame and advanced one tick at a time with
// Advance. The package performs no I/O and draws randomness only from the
// RNG handed to NewGame, so a seed plus an input sequence fully determines
// a run. Presentation adapters read the settled state through Snapshot.
package sim

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/tsujio/game-util/mathutil"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
	"github.com/vovakirdan/vertical-vanguard/internal/core"
)

// Input is the per-tick player intent.
type Input struct {
	Up, Down, Left, Right bool
	Fire                  bool
	Quit                  bool
}

// State owns every entity of one game. It is not safe for concurrent use;
// exactly one goroutine advances and reads it.
type State struct {
	cfg     config.VanguardConfig
	diff    config.DifficultyController
	spawner *Spawner

	player    Player
	bullets   []Bullet
	enemies   []Enemy
	pickups   []Pickup
	particles []Particle

	tick          uint64
	elapsed       float64
	level         int
	score         int
	survivalTimer float64
	terminal      bool
	quit          bool
	nextID        EntityID

	events []Event
}

// NewGame creates a fresh game. The RNG is owned by the game from here on.
func NewGame(cfg config.VanguardConfig, rng RNG) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: new game: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("sim: new game: nil rng")
	}

	s := &State{
		cfg:     cfg,
		diff:    config.NewDifficultyController(cfg),
		spawner: NewSpawner(cfg, rng),
		level:   1,
	}
	s.player = Player{
		Pos:    Vec{X: cfg.Player.SpawnX, Y: cfg.Player.SpawnY},
		Size:   Vec{X: cfg.Player.Width, Y: cfg.Player.Height},
		Health: NewMeter(cfg.Resources.MaxHealth),
		Ammo:   NewMeter(cfg.Resources.MaxAmmo),
		Fuel:   NewMeter(cfg.Resources.MaxFuel),
		Lives:  cfg.Player.Lives,
	}
	s.clampPlayer()
	return s, nil
}

// Config returns the configuration the game was created with.
func (s *State) Config() config.VanguardConfig {
	return s.cfg
}

// IsTerminal reports whether the game is over.
func (s *State) IsTerminal() bool {
	return s.terminal
}

// QuitRequested reports whether a quit intent has been received.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Tick returns the number of simulated ticks.
func (s *State) Tick() uint64 {
	return s.tick
}

// Elapsed returns the simulated seconds since the game started.
func (s *State) Elapsed() float64 {
	return s.elapsed
}

// Level returns the current difficulty level.
func (s *State) Level() int {
	return s.level
}

// Score returns the current score.
func (s *State) Score() int {
	return s.score
}

// Player returns a copy of the player.
func (s *State) Player() Player {
	return s.player
}

// Advance runs one simulation tick of length dt with the given input.
//
// A quit intent is recorded and the tick is skipped. Once the game is
// terminal only particles keep aging; gameplay input is ignored.
func (s *State) Advance(dt float64, in Input) StepResult {
	s.events = nil
	dt = s.sanitizeDT(dt)

	if in.Quit {
		s.quit = true
		return StepResult{Tick: s.tick, Terminal: s.terminal, Quit: true}
	}

	s.tick++
	if s.terminal {
		s.moveParticles(dt)
		s.sweep()
		return s.result(dt)
	}

	// 1. Time and level
	s.elapsed += dt
	if level := s.diff.Level(s.elapsed); level != s.level {
		s.level = level
		s.emit(Event{Kind: EventLevelUp, Level: level})
	}

	// 2. Input
	s.applyInput(in)

	// 3. Movement and culling
	s.move(dt)

	// 4. Spawning
	s.spawn(dt)

	// 5. Return fire
	s.enemyFire(dt)

	// 6. Collisions
	s.resolveCollisions()

	// 7. Lives
	s.resolveLives()

	// 8. Timers and resources
	s.updateTimers(dt)
	s.sweep()

	return s.result(dt)
}

func (s *State) result(dt float64) StepResult {
	return StepResult{
		Tick:     s.tick,
		DT:       dt,
		Events:   s.events,
		Terminal: s.terminal,
	}
}

// sanitizeDT maps NaN, infinite and negative dt to zero and clamps large dt
// to max_dt.
func (s *State) sanitizeDT(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > s.cfg.Timing.MaxDT {
		return s.cfg.Timing.MaxDT
	}
	return dt
}

func (s *State) emit(e Event) {
	e.Tick = s.tick
	s.events = append(s.events, e)
}

func (s *State) newID() EntityID {
	s.nextID++
	return s.nextID
}

// axis converts a pair of opposing intents into -1, 0 or +1.
func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

// fuelFactor returns the movement speed factor for the current fuel level.
// At or above the slow threshold the factor is 1; below it the factor falls
// linearly to the floor at zero fuel.
func (s *State) fuelFactor() float64 {
	r := s.cfg.Resources
	ratio := s.player.Fuel.Ratio() / r.FuelSlowThreshold
	if ratio >= 1 {
		return 1
	}
	return r.FuelSpeedFloor + (1-r.FuelSpeedFloor)*ratio
}

func (s *State) applyInput(in Input) {
	p := &s.player
	mods := p.Powerups.Modifiers(s.cfg.Powerups)

	speed := s.cfg.Player.BaseSpeed * s.fuelFactor() * mods.Speed
	p.Vel = Vec{X: axis(in.Left, in.Right) * speed, Y: axis(in.Up, in.Down) * speed}

	if !in.Fire || p.Cooldown > timerEpsilon {
		return
	}
	if p.Ammo.Value < 1 {
		s.emit(Event{Kind: EventFireRejected})
		return
	}

	p.Ammo.Drain(1)
	p.Cooldown = s.cfg.Player.FireCooldown * mods.Cooldown

	pc := s.cfg.Player
	origin := Vec{
		X: p.Pos.X + (p.Size.X-pc.BulletWidth)/2,
		Y: p.Pos.Y - pc.BulletHeight,
	}
	spreads := []float64{0}
	if mods.Spread {
		spreads = []float64{0, -pc.SpreadVX, pc.SpreadVX}
	}
	for _, vx := range spreads {
		s.bullets = append(s.bullets, Bullet{
			ID:     s.newID(),
			Pos:    origin,
			Vel:    Vec{X: vx, Y: -pc.BulletSpeed},
			Size:   Vec{X: pc.BulletWidth, Y: pc.BulletHeight},
			Owner:  OwnerPlayer,
			Damage: pc.BulletDamage,
		})
	}
	s.emit(Event{Kind: EventShot, Amount: float64(len(spreads))})
}

func (s *State) clampPlayer() {
	p := &s.player
	pf := s.cfg.Playfield
	p.Pos.X = core.ClampF(p.Pos.X, 0, pf.Width-p.Size.X)
	p.Pos.Y = core.ClampF(p.Pos.Y, 0, pf.Height-p.Size.Y)
}

// outside reports whether a box has left the playfield plus its margin.
func (s *State) outside(b core.Box) bool {
	pf := s.cfg.Playfield
	return b.Right() < -pf.Margin || b.X > pf.Width+pf.Margin ||
		b.Bottom() < -pf.Margin || b.Y > pf.Height+pf.Margin
}

func (s *State) move(dt float64) {
	s.player.Pos = s.player.Pos.Add(s.player.Vel.Scale(dt))
	s.clampPlayer()

	for i := range s.bullets {
		b := &s.bullets[i]
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		if s.outside(b.Box()) {
			b.dead = true
		}
	}

	ec := s.cfg.Enemy
	for i := range s.enemies {
		e := &s.enemies[i]
		e.Age += dt
		if ec.DriftInterval > 0 {
			e.driftTimer += dt
			for e.driftTimer >= ec.DriftInterval {
				e.driftTimer -= ec.DriftInterval
				e.Drift = s.spawner.Drift(e.Drift)
			}
		}
		e.Vel.X = float64(e.Drift) * ec.DriftSpeed
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
		e.Pos.X = core.ClampF(e.Pos.X, 0, s.cfg.Playfield.Width-e.Size.X)
		if s.outside(e.Box()) {
			e.dead = true
		}
	}

	fall := s.diff.PickupFallSpeed(s.level)
	for i := range s.pickups {
		pk := &s.pickups[i]
		pk.Vel.Y = fall
		pk.Pos = pk.Pos.Add(pk.Vel.Scale(dt))
		if s.outside(pk.Box()) {
			pk.dead = true
		}
	}

	s.moveParticles(dt)
}

func (s *State) moveParticles(dt float64) {
	g := s.cfg.Particles.Gravity
	pf := s.cfg.Playfield
	for i := range s.particles {
		p := &s.particles[i]
		p.Vel.Y += g * dt
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.TTL -= dt
	}
	s.particles = lo.Filter(s.particles, func(p Particle, _ int) bool {
		return p.TTL > 0 && p.Pos.X >= -pf.Margin && p.Pos.X <= pf.Width+pf.Margin &&
			p.Pos.Y >= -pf.Margin && p.Pos.Y <= pf.Height+pf.Margin
	})
}

// avoidPoints returns the centers new spawns should keep away from.
func (s *State) avoidPoints() []Vec {
	points := []Vec{s.player.Center()}
	for _, e := range s.enemies {
		if !e.dead {
			points = append(points, e.center())
		}
	}
	return points
}

func (s *State) spawn(dt float64) {
	avoid := s.avoidPoints()

	for _, e := range s.spawner.Enemies(dt, s.level, avoid) {
		e.ID = s.newID()
		s.enemies = append(s.enemies, e)
		avoid = append(avoid, e.center())
		s.emit(Event{Kind: EventEnemySpawned, ID: e.ID})
	}

	for _, pk := range s.spawner.AmbientPickups(dt, s.level, avoid) {
		s.addPickup(pk)
	}
}

func (s *State) addPickup(pk Pickup) {
	pk.ID = s.newID()
	s.pickups = append(s.pickups, pk)
	s.emit(Event{Kind: EventPickupSpawned, ID: pk.ID, Pickup: pk.Kind})
}

func (s *State) enemyFire(dt float64) {
	ec := s.cfg.Enemy
	if s.elapsed < ec.FireStartAt {
		return
	}

	chance := s.diff.FireChance(s.level, dt)
	target := s.player.Center()
	for i := range s.enemies {
		e := &s.enemies[i]
		if e.dead || !e.FiresBack(ec.FireBackAfter) {
			continue
		}
		if !s.spawner.Fire(chance) {
			continue
		}

		origin := Vec{X: e.Pos.X + e.Size.X/2, Y: e.Pos.Y + e.Size.Y}
		vel := aim(origin, target, ec.BulletSpeed)
		vel.X += s.spawner.Jitter(ec.AimJitter)

		s.bullets = append(s.bullets, Bullet{
			ID:     s.newID(),
			Pos:    Vec{X: origin.X - ec.BulletSize/2, Y: origin.Y},
			Vel:    vel,
			Size:   Vec{X: ec.BulletSize, Y: ec.BulletSize},
			Owner:  OwnerEnemy,
			Damage: ec.BulletDamage,
		})
	}
}

// aim returns a velocity of the given speed from origin toward target.
// A target on top of the origin yields a straight downward shot.
func aim(origin, target Vec, speed float64) Vec {
	dir := mathutil.NewVector2D(target.X, target.Y).Sub(mathutil.NewVector2D(origin.X, origin.Y))
	n := dir.Norm()
	if n == 0 {
		return Vec{Y: speed}
	}
	return Vec{X: dir.X / n * speed, Y: dir.Y / n * speed}
}

// resolveLives applies at most one life transition per tick.
func (s *State) resolveLives() {
	p := &s.player
	if !p.Health.Empty() {
		return
	}

	if p.Lives > 1 {
		p.Lives--
		p.Health.Fill()
		p.Pos = Vec{X: s.cfg.Player.SpawnX, Y: s.cfg.Player.SpawnY}
		p.Vel = Vec{}
		s.clampPlayer()
		p.Invuln = s.cfg.Player.RespawnInvuln
		s.emit(Event{Kind: EventLifeLost, Amount: float64(p.Lives)})
		return
	}

	p.Lives = 0
	p.Vel = Vec{}
	s.terminal = true
	s.emit(Event{Kind: EventGameOver, Amount: float64(s.score)})
}

func (s *State) updateTimers(dt float64) {
	p := &s.player

	for _, kind := range p.Powerups.Tick(dt) {
		s.emit(Event{Kind: EventPowerupExpired, Powerup: kind})
	}
	p.Invuln = math.Max(0, p.Invuln-dt)
	p.Cooldown = math.Max(0, p.Cooldown-dt)
	p.Fuel.Drain(s.cfg.Resources.FuelDrainPerSec * dt)

	sc := s.cfg.Scoring
	if sc.SurvivalInterval > 0 && !s.terminal {
		s.survivalTimer += dt
		for s.survivalTimer >= sc.SurvivalInterval {
			s.survivalTimer -= sc.SurvivalInterval
			s.score += sc.SurvivalPoints
		}
	}
}

// sweep removes every entity marked dead during the tick.
func (s *State) sweep() {
	s.bullets = lo.Filter(s.bullets, func(b Bullet, _ int) bool { return !b.dead })
	s.enemies = lo.Filter(s.enemies, func(e Enemy, _ int) bool { return !e.dead })
	s.pickups = lo.Filter(s.pickups, func(p Pickup, _ int) bool { return !p.dead })
}
