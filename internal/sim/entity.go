package sim

import "github.com/vovakirdan/vertical-vanguard/internal/core"

// EntityID identifies an entity for the lifetime of one game.
type EntityID uint64

// Vec is a 2D vector in playfield units.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * f.
func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// Owner tells who fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// String returns the owner name.
func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// Bullet is a projectile fired by the player or an enemy.
type Bullet struct {
	ID     EntityID
	Pos    Vec
	Vel    Vec
	Size   Vec
	Owner  Owner
	Damage float64

	dead bool
}

// Box returns the bullet hitbox.
func (b Bullet) Box() core.Box {
	return core.NewBox(b.Pos.X, b.Pos.Y, b.Size.X, b.Size.Y)
}

// Enemy is a hostile craft descending from the top edge.
type Enemy struct {
	ID     EntityID
	Pos    Vec
	Vel    Vec
	Size   Vec
	Health float64
	Age    float64 // Seconds since spawn
	Drift  int     // Horizontal wiggle direction: -1, 0 or +1

	driftTimer float64
	dead       bool
}

// Box returns the enemy hitbox.
func (e Enemy) Box() core.Box {
	return core.NewBox(e.Pos.X, e.Pos.Y, e.Size.X, e.Size.Y)
}

func (e Enemy) center() Vec {
	return e.Pos.Add(e.Size.Scale(0.5))
}

// FiresBack reports whether the enemy has lived long enough to return fire.
func (e Enemy) FiresBack(threshold float64) bool {
	return e.Age >= threshold
}

// PickupKind tags the effect a pickup applies when collected.
type PickupKind int

const (
	PickupAmmo PickupKind = iota
	PickupFuel
	PickupSpreadShot
	PickupHealth
	pickupKindCount
)

// AllPickupKinds lists every pickup kind in a stable order.
var AllPickupKinds = []PickupKind{PickupAmmo, PickupFuel, PickupSpreadShot, PickupHealth}

// String returns the configuration name of the pickup kind.
func (k PickupKind) String() string {
	switch k {
	case PickupAmmo:
		return "ammo"
	case PickupFuel:
		return "fuel"
	case PickupSpreadShot:
		return "spread"
	case PickupHealth:
		return "health"
	default:
		return "unknown"
	}
}

// Color returns the display color for the pickup kind.
func (k PickupKind) Color() core.Color {
	switch k {
	case PickupAmmo:
		return core.ColorBrightYellow
	case PickupFuel:
		return core.ColorBrightGreen
	case PickupSpreadShot:
		return core.ColorBrightMagenta
	case PickupHealth:
		return core.ColorBrightRed
	default:
		return core.ColorDefault
	}
}

// Glyph returns the terminal character for the pickup kind.
func (k PickupKind) Glyph() rune {
	switch k {
	case PickupAmmo:
		return 'A'
	case PickupFuel:
		return 'F'
	case PickupSpreadShot:
		return 'S'
	case PickupHealth:
		return '+'
	default:
		return '?'
	}
}

// Pickup is a falling resource item.
type Pickup struct {
	ID   EntityID
	Pos  Vec
	Vel  Vec
	Size Vec
	Kind PickupKind

	dead bool
}

// Box returns the pickup hitbox.
func (p Pickup) Box() core.Box {
	return core.NewBox(p.Pos.X, p.Pos.Y, p.Size.X, p.Size.Y)
}

func (p Pickup) center() Vec {
	return p.Pos.Add(p.Size.Scale(0.5))
}

// ParticleKind distinguishes cosmetic effects.
type ParticleKind int

const (
	ParticleExplosion ParticleKind = iota
	ParticleBlink
)

// Particle is a short-lived cosmetic point.
type Particle struct {
	Pos    Vec
	Vel    Vec
	TTL    float64
	MaxTTL float64
	Kind   ParticleKind
}

// Life returns the remaining life as a fraction in [0, 1].
func (p Particle) Life() float64 {
	if p.MaxTTL <= 0 {
		return 0
	}
	return core.ClampF(p.TTL/p.MaxTTL, 0, 1)
}

// Player is the player craft and its resources.
type Player struct {
	Pos      Vec
	Vel      Vec
	Size     Vec
	Health   Meter
	Ammo     Meter
	Fuel     Meter
	Lives    int
	Powerups Powerups
	Invuln   float64 // Seconds of remaining invulnerability
	Cooldown float64 // Seconds until the next shot is allowed
}

// Box returns the player hitbox.
func (p Player) Box() core.Box {
	return core.NewBox(p.Pos.X, p.Pos.Y, p.Size.X, p.Size.Y)
}

// Center returns the center of the player craft.
func (p Player) Center() Vec {
	x, y := p.Box().Center()
	return Vec{X: x, Y: y}
}

// Invulnerable reports whether hits currently pass through the player.
func (p Player) Invulnerable() bool {
	return p.Invuln > timerEpsilon
}
