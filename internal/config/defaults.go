package config

import (
	_ "embed"
)

//go:embed defaults/vanguard.yaml
var defaultVanguardYAML []byte

// DefaultVanguardYAML returns the embedded default configuration document.
func DefaultVanguardYAML() []byte {
	return append([]byte(nil), defaultVanguardYAML...)
}

// DefaultVanguardConfig returns the default configuration.
// It mirrors defaults/vanguard.yaml and is used when the embedded file
// cannot be parsed.
func DefaultVanguardConfig() VanguardConfig {
	return VanguardConfig{
		Playfield: PlayfieldConfig{
			Width:  64,
			Height: 64,
			Margin: 4,
		},
		Timing: TimingConfig{
			TickRate: 60,
			MaxDT:    0.1,
		},
		Player: PlayerConfig{
			Width:         3,
			Height:        3,
			SpawnX:        31,
			SpawnY:        54,
			BaseSpeed:     60,
			Lives:         3,
			FireCooldown:  0.1,
			BulletSpeed:   150,
			BulletDamage:  1,
			BulletWidth:   1,
			BulletHeight:  2,
			SpreadVX:      36,
			HitInvuln:     0.18,
			RespawnInvuln: 1.2,
		},
		Resources: ResourceConfig{
			MaxHealth:         100,
			MaxAmmo:           35,
			MaxFuel:           160,
			FuelDrainPerSec:   1.8,
			FuelSlowThreshold: 1.0,
			FuelSpeedFloor:    0.4,
		},
		Enemy: EnemyConfig{
			Width:          3,
			Height:         3,
			BaseSpeed:      3.6,
			SpeedPerLevel:  3.6,
			BaseHealth:     1,
			HealthPerLevel: 0.5,
			DriftSpeed:     6,
			DriftInterval:  0.1667,
			DriftChance:    0.2,
			ContactDamage:  48,
			FireBackAfter:  1.5,
			FireStartAt:    20,
			FireRate:       0.08,
			FireLevelBoost: 0.12,
			BulletSpeed:    54,
			BulletDamage:   28,
			BulletSize:     1,
			AimJitter:      12,
		},
		Spawner: SpawnerConfig{
			EnemyInterval:    0.9333,
			IntervalStep:     0.0667,
			MinInterval:      0.3333,
			PickupInterval:   4,
			MinSpawnDistance: 6,
			SpawnAttempts:    8,
			DropChance:       0.45,
			DropWeights: map[string]float64{
				"fuel":   0.4,
				"ammo":   0.4,
				"spread": 0.1,
				"health": 0.1,
			},
			AmbientWeights: map[string]float64{
				"fuel":   0.4,
				"ammo":   0.4,
				"health": 0.2,
			},
		},
		Pickups: PickupConfig{
			Size:            2,
			FallSpeed:       24,
			FallEnemyFactor: 0.2,
			AmmoAmount:      12,
			FuelAmount:      60,
			HealthAmount:    40,
		},
		Powerups: PowerupConfig{
			SpeedBoostMult:     1.6,
			SpeedBoostDuration: 4,
			RapidFireFactor:    0.5,
			RapidFireDuration:  5,
			SpreadDuration:     60,
		},
		Particles: ParticleConfig{
			Count:    10,
			TTL:      0.6,
			Speed:    72,
			Gravity:  72,
			BlinkTTL: 0.12,
		},
		Difficulty: DifficultyConfig{
			LevelDuration: 120,
		},
		Scoring: ScoringConfig{
			KillPoints:       10,
			SurvivalPoints:   1,
			SurvivalInterval: 1,
		},
	}
}
