package config

import "math"

// DifficultyController derives level-dependent game parameters.
// Level is a pure function of elapsed simulated time, so the controller
// holds no mutable state and can be shared by value.
type DifficultyController struct {
	difficulty DifficultyConfig
	enemy      EnemyConfig
	spawner    SpawnerConfig
	pickups    PickupConfig
}

// NewDifficultyController creates a controller for the given configuration.
func NewDifficultyController(cfg VanguardConfig) DifficultyController {
	return DifficultyController{
		difficulty: cfg.Difficulty,
		enemy:      cfg.Enemy,
		spawner:    cfg.Spawner,
		pickups:    cfg.Pickups,
	}
}

// Level returns 1 + floor(elapsed / level_duration).
// Negative elapsed time is treated as zero.
func (d DifficultyController) Level(elapsed float64) int {
	if elapsed <= 0 || math.IsNaN(elapsed) {
		return 1
	}
	return 1 + int(math.Floor(elapsed/d.difficulty.LevelDuration))
}

// EnemySpeed returns the downward speed of enemies spawned at this level.
func (d DifficultyController) EnemySpeed(level int) float64 {
	return d.enemy.BaseSpeed + float64(level)*d.enemy.SpeedPerLevel
}

// EnemyHealth returns the hit points of enemies spawned at this level.
func (d DifficultyController) EnemyHealth(level int) int {
	hp := d.enemy.BaseHealth + int(float64(level-1)*d.enemy.HealthPerLevel)
	if hp < 1 {
		return 1
	}
	return hp
}

// EnemyInterval returns the seconds between enemy spawns at this level.
// The interval shrinks with level down to the configured floor.
func (d DifficultyController) EnemyInterval(level int) float64 {
	interval := d.spawner.EnemyInterval - float64(level-1)*d.spawner.IntervalStep
	return math.Max(d.spawner.MinInterval, interval)
}

// FireChance returns the probability that one eligible enemy fires during a
// tick of length dt.
func (d DifficultyController) FireChance(level int, dt float64) float64 {
	rate := d.enemy.FireRate * (1 + float64(level-1)*d.enemy.FireLevelBoost)
	return clampF(rate*dt, 0, 1)
}

// PickupFallSpeed returns the fall speed of pickups at this level.
func (d DifficultyController) PickupFallSpeed(level int) float64 {
	return d.pickups.FallSpeed + d.pickups.FallEnemyFactor*d.EnemySpeed(level)
}

// clampF restricts a value to [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
