package sim

import (
	"testing"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
)

func TestPowerupsGrantRefreshes(t *testing.T) {
	var p Powerups
	p.Grant(PowerupRapidFire, 5)
	p.Tick(3)
	p.Grant(PowerupRapidFire, 5)

	if got := p.Remaining(PowerupRapidFire); got != 5 {
		t.Errorf("Remaining after refresh = %v, expected 5 (no stacking)", got)
	}
}

func TestPowerupsTickExpires(t *testing.T) {
	var p Powerups
	p.Grant(PowerupSpeedBoost, 0.05)
	p.Grant(PowerupSpreadShot, 60)

	dt := 1.0 / 60
	var expired []PowerupKind
	for range 3 {
		expired = append(expired, p.Tick(dt)...)
	}

	if len(expired) != 1 || expired[0] != PowerupSpeedBoost {
		t.Errorf("expired = %v, expected [speed]", expired)
	}
	if p.Active(PowerupSpeedBoost) {
		t.Error("speed boost should be inactive")
	}
	if !p.Active(PowerupSpreadShot) {
		t.Error("spread shot should still be active")
	}
	if p.Tick(dt) != nil {
		t.Error("an expired powerup should not expire twice")
	}
}

func TestPowerupsModifiers(t *testing.T) {
	cfg := config.DefaultVanguardConfig().Powerups

	var p Powerups
	m := p.Modifiers(cfg)
	if m != (Modifiers{Speed: 1, Cooldown: 1}) {
		t.Errorf("no powerups: Modifiers = %+v", m)
	}

	p.Grant(PowerupSpeedBoost, 1)
	p.Grant(PowerupRapidFire, 1)
	p.Grant(PowerupSpreadShot, 1)
	m = p.Modifiers(cfg)
	if m.Speed != cfg.SpeedBoostMult || m.Cooldown != cfg.RapidFireFactor || !m.Spread {
		t.Errorf("all powerups: Modifiers = %+v", m)
	}
}

func TestPowerupsIgnoresInvalid(t *testing.T) {
	var p Powerups
	p.Grant(PowerupKind(99), 5)
	p.Grant(PowerupRapidFire, -1)

	if p.Active(PowerupRapidFire) || p.Remaining(PowerupKind(99)) != 0 {
		t.Error("invalid grants should be ignored")
	}
}
