package sim

// Collision resolution. Every check is pairwise over the live entities;
// there is no broad phase.

func (s *State) resolveCollisions() {
	// Player bullets hit at most one enemy each.
	for bi := range s.bullets {
		b := &s.bullets[bi]
		if b.dead || b.Owner != OwnerPlayer {
			continue
		}
		for ei := range s.enemies {
			e := &s.enemies[ei]
			if e.dead || !b.Box().Intersects(e.Box()) {
				continue
			}
			b.dead = true
			e.Health -= b.Damage
			if e.Health <= 0 {
				s.killEnemy(e)
			}
			break
		}
	}

	// Enemy bullets. A hit starts invulnerability, so later bullets in the
	// same tick pass through.
	for bi := range s.bullets {
		if s.player.Invulnerable() {
			break
		}
		b := &s.bullets[bi]
		if b.dead || b.Owner != OwnerEnemy || !b.Box().Intersects(s.player.Box()) {
			continue
		}
		b.dead = true
		s.damagePlayer(b.Damage, b.ID)
	}

	// Ramming destroys the enemy without scoring.
	for ei := range s.enemies {
		if s.player.Invulnerable() {
			break
		}
		e := &s.enemies[ei]
		if e.dead || !e.Box().Intersects(s.player.Box()) {
			continue
		}
		e.dead = true
		s.particles = append(s.particles, s.spawner.Explosion(e.Pos)...)
		s.damagePlayer(s.cfg.Enemy.ContactDamage, e.ID)
	}

	for pi := range s.pickups {
		pk := &s.pickups[pi]
		if pk.dead || !pk.Box().Intersects(s.player.Box()) {
			continue
		}
		pk.dead = true
		amount := s.applyPickup(pk.Kind)
		s.particles = append(s.particles, Particle{
			Pos:    pk.Pos,
			TTL:    s.cfg.Particles.BlinkTTL,
			MaxTTL: s.cfg.Particles.BlinkTTL,
			Kind:   ParticleBlink,
		})
		s.emit(Event{Kind: EventPickupCollected, ID: pk.ID, Pickup: pk.Kind, Amount: amount})
	}
}

func (s *State) killEnemy(e *Enemy) {
	e.dead = true
	s.score += s.cfg.Scoring.KillPoints
	s.particles = append(s.particles, s.spawner.Explosion(e.Pos)...)
	s.emit(Event{Kind: EventEnemyKilled, ID: e.ID})

	if drop, ok := s.spawner.Drop(e.Pos, s.level); ok {
		s.addPickup(drop)
	}
}

func (s *State) damagePlayer(amount float64, source EntityID) {
	taken := s.player.Health.Drain(amount)
	s.player.Invuln = s.cfg.Player.HitInvuln
	s.emit(Event{Kind: EventPlayerHit, ID: source, Amount: taken})
}

// applyPickup applies the payload of a pickup kind and returns the amount
// added to a meter, if any.
func (s *State) applyPickup(kind PickupKind) float64 {
	p := &s.player
	pc := s.cfg.Pickups
	pu := s.cfg.Powerups

	switch kind {
	case PickupAmmo:
		p.Powerups.Grant(PowerupRapidFire, PowerupRapidFire.Duration(pu))
		return p.Ammo.Add(pc.AmmoAmount)
	case PickupFuel:
		p.Powerups.Grant(PowerupSpeedBoost, PowerupSpeedBoost.Duration(pu))
		return p.Fuel.Add(pc.FuelAmount)
	case PickupSpreadShot:
		p.Powerups.Grant(PowerupSpreadShot, PowerupSpreadShot.Duration(pu))
		return 0
	case PickupHealth:
		return p.Health.Add(pc.HealthAmount)
	default:
		return 0
	}
}
