// Package config provides YAML-based tuning for the shooter simulation,
// difficulty presets, and the level-driven difficulty controller.
package config

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// VanguardConfig contains all tuning for one game session.
type VanguardConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Timing     TimingConfig     `yaml:"timing"`
	Player     PlayerConfig     `yaml:"player"`
	Resources  ResourceConfig   `yaml:"resources"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Pickups    PickupConfig     `yaml:"pickups"`
	Powerups   PowerupConfig    `yaml:"powerups"`
	Particles  ParticleConfig   `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
}

// PlayfieldConfig defines the logical playfield in simulation units.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // Entities this far outside the field are culled
}

// TimingConfig defines the fixed tick rate and the dt safety bound.
type TimingConfig struct {
	TickRate int     `yaml:"tick_rate"`
	MaxDT    float64 `yaml:"max_dt"` // Larger dt values are clamped to this
}

// PlayerConfig defines the player craft.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SpawnX        float64 `yaml:"spawn_x"`
	SpawnY        float64 `yaml:"spawn_y"`
	BaseSpeed     float64 `yaml:"base_speed"` // Units per second at full fuel
	Lives         int     `yaml:"lives"`
	FireCooldown  float64 `yaml:"fire_cooldown"` // Seconds between shots
	BulletSpeed   float64 `yaml:"bullet_speed"`
	BulletDamage  float64 `yaml:"bullet_damage"`
	BulletWidth   float64 `yaml:"bullet_width"`
	BulletHeight  float64 `yaml:"bullet_height"`
	SpreadVX      float64 `yaml:"spread_vx"` // Horizontal speed of side bullets
	HitInvuln     float64 `yaml:"hit_invuln"`
	RespawnInvuln float64 `yaml:"respawn_invuln"`
}

// ResourceConfig defines the three bounded meters.
type ResourceConfig struct {
	MaxHealth         float64 `yaml:"max_health"`
	MaxAmmo           float64 `yaml:"max_ammo"`
	MaxFuel           float64 `yaml:"max_fuel"`
	FuelDrainPerSec   float64 `yaml:"fuel_drain_per_sec"`
	FuelSlowThreshold float64 `yaml:"fuel_slow_threshold"` // Fraction of max fuel below which speed drops
	FuelSpeedFloor    float64 `yaml:"fuel_speed_floor"`    // Speed factor at zero fuel
}

// EnemyConfig defines enemy craft and their return fire.
type EnemyConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedPerLevel  float64 `yaml:"speed_per_level"`
	BaseHealth     int     `yaml:"base_health"`
	HealthPerLevel float64 `yaml:"health_per_level"`
	DriftSpeed     float64 `yaml:"drift_speed"`
	DriftInterval  float64 `yaml:"drift_interval"`
	DriftChance    float64 `yaml:"drift_chance"`
	ContactDamage  float64 `yaml:"contact_damage"`
	FireBackAfter  float64 `yaml:"fire_back_after"` // Enemy age before it may fire
	FireStartAt    float64 `yaml:"fire_start_at"`   // Session time before any enemy may fire
	FireRate       float64 `yaml:"fire_rate"`       // Expected shots per second at level 1
	FireLevelBoost float64 `yaml:"fire_level_boost"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletDamage   float64 `yaml:"bullet_damage"`
	BulletSize     float64 `yaml:"bullet_size"`
	AimJitter      float64 `yaml:"aim_jitter"`
}

// SpawnerConfig defines enemy and pickup emission.
type SpawnerConfig struct {
	EnemyInterval    float64            `yaml:"enemy_interval"`
	IntervalStep     float64            `yaml:"interval_step"` // Interval reduction per level
	MinInterval      float64            `yaml:"min_interval"`
	PickupInterval   float64            `yaml:"pickup_interval"`
	MinSpawnDistance float64            `yaml:"min_spawn_distance"`
	SpawnAttempts    int                `yaml:"spawn_attempts"`
	DropChance       float64            `yaml:"drop_chance"`
	DropWeights      map[string]float64 `yaml:"drop_weights"`
	AmbientWeights   map[string]float64 `yaml:"ambient_weights"`
}

// PickupConfig defines pickup payloads and motion.
type PickupConfig struct {
	Size            float64 `yaml:"size"`
	FallSpeed       float64 `yaml:"fall_speed"`
	FallEnemyFactor float64 `yaml:"fall_enemy_factor"` // Fraction of enemy speed added to fall speed
	AmmoAmount      float64 `yaml:"ammo_amount"`
	FuelAmount      float64 `yaml:"fuel_amount"`
	HealthAmount    float64 `yaml:"health_amount"`
}

// PowerupConfig defines timed modifiers.
type PowerupConfig struct {
	SpeedBoostMult     float64 `yaml:"speed_boost_mult"`
	SpeedBoostDuration float64 `yaml:"speed_boost_duration"`
	RapidFireFactor    float64 `yaml:"rapid_fire_factor"`
	RapidFireDuration  float64 `yaml:"rapid_fire_duration"`
	SpreadDuration     float64 `yaml:"spread_duration"`
}

// ParticleConfig defines cosmetic particles.
type ParticleConfig struct {
	Count    int     `yaml:"count"`
	TTL      float64 `yaml:"ttl"`
	Speed    float64 `yaml:"speed"`
	Gravity  float64 `yaml:"gravity"`
	BlinkTTL float64 `yaml:"blink_ttl"`
}

// DifficultyConfig defines the time-driven level progression.
type DifficultyConfig struct {
	LevelDuration float64 `yaml:"level_duration"` // Seconds per level
}

// ScoringConfig defines score rewards.
type ScoringConfig struct {
	KillPoints       int     `yaml:"kill_points"`
	SurvivalPoints   int     `yaml:"survival_points"`
	SurvivalInterval float64 `yaml:"survival_interval"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects configurations the simulation cannot run with.
func (c VanguardConfig) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"playfield.width", c.Playfield.Width},
		{"playfield.height", c.Playfield.Height},
		{"timing.max_dt", c.Timing.MaxDT},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.base_speed", c.Player.BaseSpeed},
		{"player.fire_cooldown", c.Player.FireCooldown},
		{"resources.max_health", c.Resources.MaxHealth},
		{"resources.max_ammo", c.Resources.MaxAmmo},
		{"resources.max_fuel", c.Resources.MaxFuel},
		{"resources.fuel_slow_threshold", c.Resources.FuelSlowThreshold},
		{"enemy.width", c.Enemy.Width},
		{"enemy.height", c.Enemy.Height},
		{"spawner.enemy_interval", c.Spawner.EnemyInterval},
		{"spawner.min_interval", c.Spawner.MinInterval},
		{"spawner.pickup_interval", c.Spawner.PickupInterval},
		{"pickups.size", c.Pickups.Size},
		{"difficulty.level_duration", c.Difficulty.LevelDuration},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v: %w", p.name, p.value, ErrInvalidConfig)
		}
	}

	if c.Timing.TickRate <= 0 {
		return fmt.Errorf("config: timing.tick_rate must be positive, got %d: %w", c.Timing.TickRate, ErrInvalidConfig)
	}
	if c.Player.Lives <= 0 {
		return fmt.Errorf("config: player.lives must be positive, got %d: %w", c.Player.Lives, ErrInvalidConfig)
	}
	if c.Resources.FuelSpeedFloor < 0 || c.Resources.FuelSpeedFloor > 1 {
		return fmt.Errorf("config: resources.fuel_speed_floor must be in [0, 1], got %v: %w", c.Resources.FuelSpeedFloor, ErrInvalidConfig)
	}
	if c.Spawner.DropChance < 0 || c.Spawner.DropChance > 1 {
		return fmt.Errorf("config: spawner.drop_chance must be in [0, 1], got %v: %w", c.Spawner.DropChance, ErrInvalidConfig)
	}
	if err := validateWeights("spawner.drop_weights", c.Spawner.DropWeights); err != nil {
		return err
	}
	if err := validateWeights("spawner.ambient_weights", c.Spawner.AmbientWeights); err != nil {
		return err
	}
	return nil
}

// PickupKindNames lists the pickup kinds accepted in weight tables.
var PickupKindNames = []string{"ammo", "fuel", "spread", "health"}

func validateWeights(name string, weights map[string]float64) error {
	total := 0.0
	for kind, w := range weights {
		if !lo.Contains(PickupKindNames, kind) {
			return fmt.Errorf("config: %s has unknown pickup kind %q: %w", name, kind, ErrInvalidConfig)
		}
		if w < 0 {
			return fmt.Errorf("config: %s[%s] is negative: %w", name, kind, ErrInvalidConfig)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("config: %s needs at least one positive weight: %w", name, ErrInvalidConfig)
	}
	return nil
}
