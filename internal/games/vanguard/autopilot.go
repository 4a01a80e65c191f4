package vanguard

import (
	"math"

	"github.com/samber/lo"

	"github.com/vovakirdan/vertical-vanguard/internal/sim"
)

// Autopilot tuning in playfield units.
const (
	pilotDeadZone    = 1.0  // Horizontal slack before steering
	pilotAimWindow   = 1.5  // Max horizontal offset to open fire
	pilotThreatRange = 14.0 // Vertical look-ahead for incoming fire
	pilotThreatWidth = 3.5  // Horizontal half-width of the danger lane
	pilotLowMeter    = 0.35 // Meter ratio that makes pickups attractive
	pilotHomeOffset  = 8.0  // Preferred distance above the bottom edge
)

// Autopilot returns a deterministic input for the given state. It dodges
// incoming bullets and low enemies first, then detours to pickups when a
// meter runs low, and otherwise lines up under the lowest enemy and fires.
func Autopilot(snap sim.Snapshot) sim.Input {
	p := snap.Player
	c := p.Center()
	var in sim.Input

	// Stay near the bottom of the field.
	homeY := snap.Height - pilotHomeOffset
	if c.Y < homeY-2 {
		in.Down = true
	} else if c.Y > homeY+2 {
		in.Up = true
	}

	if x, ok := threat(snap, c); ok {
		steer(&in, c.X, dodgeTarget(snap.Width, c.X, x))
		return in
	}

	if pk, ok := wantedPickup(snap, c); ok {
		steer(&in, c.X, pk.Pos.X+pk.Size.X/2)
		return in
	}

	above := lo.Filter(snap.Enemies, func(e sim.Enemy, _ int) bool { return e.Pos.Y+e.Size.Y <= p.Pos.Y })
	if len(above) == 0 {
		steer(&in, c.X, snap.Width/2)
		return in
	}
	target := lo.MaxBy(above, func(a, b sim.Enemy) bool { return a.Pos.Y > b.Pos.Y })
	tx := target.Pos.X + target.Size.X/2
	steer(&in, c.X, tx)
	in.Fire = p.Ammo.Value >= 1 && math.Abs(tx-c.X) <= pilotAimWindow
	return in
}

// threat returns the x of the closest enemy bullet or enemy about to reach
// the player's lane.
func threat(snap sim.Snapshot, c sim.Vec) (float64, bool) {
	type danger struct{ x, dist float64 }
	var found []danger

	for _, b := range snap.Bullets {
		if b.Owner != sim.OwnerEnemy {
			continue
		}
		bx := b.Pos.X + b.Size.X/2
		dy := c.Y - b.Pos.Y
		if dy > 0 && dy < pilotThreatRange && math.Abs(bx-c.X) < pilotThreatWidth {
			found = append(found, danger{x: bx, dist: dy})
		}
	}
	for _, e := range snap.Enemies {
		ex := e.Pos.X + e.Size.X/2
		dy := c.Y - (e.Pos.Y + e.Size.Y)
		if dy > -e.Size.Y && dy < pilotThreatRange/2 && math.Abs(ex-c.X) < pilotThreatWidth {
			found = append(found, danger{x: ex, dist: dy})
		}
	}
	if len(found) == 0 {
		return 0, false
	}
	d := lo.MinBy(found, func(a, b danger) bool { return a.dist < b.dist })
	return d.x, true
}

// dodgeTarget picks a side to escape to, away from the threat unless that
// side is blocked by the wall.
func dodgeTarget(width, x, threatX float64) float64 {
	const step = 2 * pilotThreatWidth
	if x <= threatX {
		if x-step >= 1 {
			return x - step
		}
		return x + step
	}
	if x+step <= width-1 {
		return x + step
	}
	return x - step
}

// wantedPickup returns the closest pickup that refills a low meter or is a
// spread shot, as long as it is still above the player.
func wantedPickup(snap sim.Snapshot, c sim.Vec) (sim.Pickup, bool) {
	p := snap.Player
	wanted := func(k sim.PickupKind) bool {
		switch k {
		case sim.PickupAmmo:
			return p.Ammo.Ratio() < pilotLowMeter
		case sim.PickupFuel:
			return p.Fuel.Ratio() < pilotLowMeter
		case sim.PickupHealth:
			return p.Health.Ratio() < pilotLowMeter
		default:
			return true
		}
	}

	candidates := lo.Filter(snap.Pickups, func(pk sim.Pickup, _ int) bool {
		return wanted(pk.Kind) && pk.Pos.Y < c.Y
	})
	if len(candidates) == 0 {
		return sim.Pickup{}, false
	}
	return lo.MinBy(candidates, func(a, b sim.Pickup) bool {
		return math.Abs(a.Pos.X-c.X) < math.Abs(b.Pos.X-c.X)
	}), true
}

func steer(in *sim.Input, x, target float64) {
	switch {
	case target < x-pilotDeadZone:
		in.Left = true
	case target > x+pilotDeadZone:
		in.Right = true
	}
}
