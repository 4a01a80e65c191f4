package sim

import "math"

// Snapshot is a deep copy of the settled game state for rendering, replay
// verification and tests. Taking a snapshot has no side effects.
type Snapshot struct {
	Tick     uint64
	Elapsed  float64
	Level    int
	Score    int
	Terminal bool

	Width  float64
	Height float64

	Player    Player
	Bullets   []Bullet
	Enemies   []Enemy
	Pickups   []Pickup
	Particles []Particle
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Tick:     s.tick,
		Elapsed:  s.elapsed,
		Level:    s.level,
		Score:    s.score,
		Terminal: s.terminal,

		Width:  s.cfg.Playfield.Width,
		Height: s.cfg.Playfield.Height,

		Player:    s.player,
		Bullets:   append([]Bullet(nil), s.bullets...),
		Enemies:   append([]Enemy(nil), s.enemies...),
		Pickups:   append([]Pickup(nil), s.pickups...),
		Particles: append([]Particle(nil), s.particles...),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floats are hashed by their exact bit patterns.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) {
		h = h*31 + v
	}
	mixF := func(f float64) {
		mix(math.Float64bits(f))
	}
	mixVec := func(v Vec) {
		mixF(v.X)
		mixF(v.Y)
	}

	mixF(snap.Elapsed)
	mix(uint64(snap.Level)) //#nosec G115 -- hash computation
	mix(uint64(snap.Score)) //#nosec G115 -- hash computation
	if snap.Terminal {
		mix(1)
	}

	p := snap.Player
	mixVec(p.Pos)
	mixF(p.Health.Value)
	mixF(p.Ammo.Value)
	mixF(p.Fuel.Value)
	mix(uint64(p.Lives)) //#nosec G115 -- hash computation
	mixF(p.Invuln)
	mixF(p.Cooldown)
	for _, kind := range AllPowerupKinds {
		mixF(p.Powerups.Remaining(kind))
	}

	mix(uint64(len(snap.Bullets)))
	for _, b := range snap.Bullets {
		mix(uint64(b.ID))
		mixVec(b.Pos)
		mixVec(b.Vel)
	}
	mix(uint64(len(snap.Enemies)))
	for _, e := range snap.Enemies {
		mix(uint64(e.ID))
		mixVec(e.Pos)
		mixF(e.Health)
		mixF(e.Age)
	}
	mix(uint64(len(snap.Pickups)))
	for _, pk := range snap.Pickups {
		mix(uint64(pk.ID))
		mix(uint64(pk.Kind)) //#nosec G115 -- hash computation
		mixVec(pk.Pos)
	}
	mix(uint64(len(snap.Particles)))
	for _, pt := range snap.Particles {
		mixVec(pt.Pos)
		mixF(pt.TTL)
	}
	return h
}
