package sim

import "github.com/vovakirdan/vertical-vanguard/internal/config"

// timerEpsilon absorbs float drift when countdown timers approach zero.
const timerEpsilon = 1e-9

// PowerupKind identifies a timed modifier.
type PowerupKind int

const (
	PowerupSpeedBoost PowerupKind = iota
	PowerupRapidFire
	PowerupSpreadShot
	powerupKindCount
)

// AllPowerupKinds lists every powerup kind in a stable order.
var AllPowerupKinds = []PowerupKind{PowerupSpeedBoost, PowerupRapidFire, PowerupSpreadShot}

// String returns the name of the powerup kind.
func (k PowerupKind) String() string {
	switch k {
	case PowerupSpeedBoost:
		return "speed"
	case PowerupRapidFire:
		return "rapid"
	case PowerupSpreadShot:
		return "spread"
	default:
		return "unknown"
	}
}

// Duration returns the full duration granted by one pickup.
func (k PowerupKind) Duration(cfg config.PowerupConfig) float64 {
	switch k {
	case PowerupSpeedBoost:
		return cfg.SpeedBoostDuration
	case PowerupRapidFire:
		return cfg.RapidFireDuration
	case PowerupSpreadShot:
		return cfg.SpreadDuration
	default:
		return 0
	}
}

// Modifiers is the combined effect of all active powerups.
type Modifiers struct {
	Speed    float64 // Movement speed multiplier
	Cooldown float64 // Fire cooldown multiplier
	Spread   bool    // Fire three bullets per shot
}

// modifierTable maps each powerup to its effect on Modifiers.
var modifierTable = [powerupKindCount]func(*Modifiers, config.PowerupConfig){
	PowerupSpeedBoost: func(m *Modifiers, cfg config.PowerupConfig) { m.Speed *= cfg.SpeedBoostMult },
	PowerupRapidFire:  func(m *Modifiers, cfg config.PowerupConfig) { m.Cooldown *= cfg.RapidFireFactor },
	PowerupSpreadShot: func(m *Modifiers, _ config.PowerupConfig) { m.Spread = true },
}

// Powerups holds the remaining duration of each powerup.
// A zero duration means the powerup is inactive. The zero value is ready to use.
type Powerups struct {
	remaining [powerupKindCount]float64
}

// Grant activates a powerup for d seconds. A second grant of an active
// powerup resets its timer instead of adding to it.
func (p *Powerups) Grant(kind PowerupKind, d float64) {
	if kind < 0 || kind >= powerupKindCount || !(d > 0) {
		return
	}
	p.remaining[kind] = d
}

// Active reports whether the powerup is running.
func (p Powerups) Active(kind PowerupKind) bool {
	return p.Remaining(kind) > 0
}

// Remaining returns the seconds left on a powerup.
func (p Powerups) Remaining(kind PowerupKind) float64 {
	if kind < 0 || kind >= powerupKindCount {
		return 0
	}
	return p.remaining[kind]
}

// Tick decrements every active timer by dt and returns the powerups that
// expired during this tick.
func (p *Powerups) Tick(dt float64) []PowerupKind {
	var expired []PowerupKind
	for kind := range p.remaining {
		if p.remaining[kind] <= 0 {
			continue
		}
		p.remaining[kind] -= dt
		if p.remaining[kind] <= timerEpsilon {
			p.remaining[kind] = 0
			expired = append(expired, PowerupKind(kind))
		}
	}
	return expired
}

// Modifiers folds the active powerups through the modifier table.
func (p Powerups) Modifiers(cfg config.PowerupConfig) Modifiers {
	m := Modifiers{Speed: 1, Cooldown: 1}
	for kind, rem := range p.remaining {
		if rem > 0 {
			modifierTable[kind](&m, cfg)
		}
	}
	return m
}
