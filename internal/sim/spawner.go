package sim

import (
	"math"
	"math/rand"

	"github.com/samber/lo"

	"github.com/vovakirdan/vertical-vanguard/internal/config"
)

// RNG is the random source used by the spawner.
// *rand.Rand satisfies it; tests may inject a scripted source.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewRNG returns a seeded pseudo-random generator.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness, not security
}

type weightedKind struct {
	kind   PickupKind
	weight float64
}

// Spawner decides when and where enemies, pickups and particles appear.
// It is the only component of the simulation that draws random numbers.
type Spawner struct {
	rng  RNG
	cfg  config.VanguardConfig
	diff config.DifficultyController

	enemyTimer  float64
	pickupTimer float64

	dropWeights    []weightedKind
	ambientWeights []weightedKind
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg config.VanguardConfig, rng RNG) *Spawner {
	return &Spawner{
		rng:            rng,
		cfg:            cfg,
		diff:           config.NewDifficultyController(cfg),
		dropWeights:    weightTable(cfg.Spawner.DropWeights),
		ambientWeights: weightTable(cfg.Spawner.AmbientWeights),
	}
}

// weightTable converts a name-keyed weight map into a slice in stable kind
// order, so the same seed always picks the same kinds.
func weightTable(weights map[string]float64) []weightedKind {
	return lo.FilterMap(AllPickupKinds, func(k PickupKind, _ int) (weightedKind, bool) {
		w := weights[k.String()]
		return weightedKind{kind: k, weight: w}, w > 0
	})
}

// Enemies advances the enemy timer and returns the enemies due this tick.
// Positions avoid the given points when possible.
func (sp *Spawner) Enemies(dt float64, level int, avoid []Vec) []Enemy {
	sp.enemyTimer += dt
	interval := sp.diff.EnemyInterval(level)

	var out []Enemy
	for sp.enemyTimer >= interval {
		sp.enemyTimer -= interval

		e := sp.cfg.Enemy
		pos := sp.placement(func() Vec {
			return Vec{X: sp.gridX(e.Width), Y: -e.Height}
		}, Vec{X: e.Width, Y: e.Height}, avoid)

		out = append(out, Enemy{
			Pos:    pos,
			Vel:    Vec{Y: sp.diff.EnemySpeed(level)},
			Size:   Vec{X: e.Width, Y: e.Height},
			Health: float64(sp.diff.EnemyHealth(level)),
			Drift:  sp.rng.Intn(3) - 1,
		})
		avoid = append(avoid, out[len(out)-1].center())
	}
	return out
}

// AmbientPickups advances the pickup timer and returns pickups due this tick.
// Ambient pickups appear anywhere in the upper half of the playfield.
func (sp *Spawner) AmbientPickups(dt float64, level int, avoid []Vec) []Pickup {
	sp.pickupTimer += dt
	interval := sp.cfg.Spawner.PickupInterval

	var out []Pickup
	for sp.pickupTimer >= interval {
		sp.pickupTimer -= interval

		kind, ok := sp.pick(sp.ambientWeights)
		if !ok {
			continue
		}
		size := sp.cfg.Pickups.Size
		pos := sp.placement(func() Vec {
			return Vec{X: sp.gridX(size), Y: float64(sp.rng.Intn(max(1, int(sp.cfg.Playfield.Height/2))))}
		}, Vec{X: size, Y: size}, avoid)

		out = append(out, sp.newPickup(kind, pos, level))
		avoid = append(avoid, out[len(out)-1].center())
	}
	return out
}

// Drop rolls whether a destroyed enemy leaves a pickup behind.
func (sp *Spawner) Drop(pos Vec, level int) (Pickup, bool) {
	if sp.rng.Float64() >= sp.cfg.Spawner.DropChance {
		return Pickup{}, false
	}
	kind, ok := sp.pick(sp.dropWeights)
	if !ok {
		return Pickup{}, false
	}
	return sp.newPickup(kind, pos, level), true
}

// Explosion returns a burst of particles flying in random directions.
func (sp *Spawner) Explosion(pos Vec) []Particle {
	p := sp.cfg.Particles
	out := make([]Particle, 0, p.Count)
	for range p.Count {
		out = append(out, Particle{
			Pos:    pos,
			Vel:    Vec{X: sp.uniform(p.Speed), Y: sp.uniform(p.Speed)},
			TTL:    p.TTL,
			MaxTTL: p.TTL,
			Kind:   ParticleExplosion,
		})
	}
	return out
}

// Drift rolls whether an enemy changes its wiggle direction and returns the
// direction to use.
func (sp *Spawner) Drift(current int) int {
	if sp.rng.Float64() >= sp.cfg.Enemy.DriftChance {
		return current
	}
	return sp.rng.Intn(3) - 1
}

// Fire rolls whether an eligible enemy fires with the given probability.
func (sp *Spawner) Fire(chance float64) bool {
	if chance <= 0 {
		return false
	}
	return sp.rng.Float64() < chance
}

// Jitter returns a random offset in [-amount, amount].
func (sp *Spawner) Jitter(amount float64) float64 {
	return sp.uniform(amount)
}

func (sp *Spawner) newPickup(kind PickupKind, pos Vec, level int) Pickup {
	size := sp.cfg.Pickups.Size
	return Pickup{
		Pos:  pos,
		Vel:  Vec{Y: sp.diff.PickupFallSpeed(level)},
		Size: Vec{X: size, Y: size},
		Kind: kind,
	}
}

// placement draws candidate positions until one keeps its center at least
// min_spawn_distance from every avoided point. When every attempt fails the
// last candidate is used.
func (sp *Spawner) placement(candidate func() Vec, size Vec, avoid []Vec) Vec {
	attempts := max(1, sp.cfg.Spawner.SpawnAttempts)
	minDist := sp.cfg.Spawner.MinSpawnDistance

	var pos Vec
	for range attempts {
		pos = candidate()
		center := pos.Add(size.Scale(0.5))
		ok := lo.EveryBy(avoid, func(a Vec) bool {
			return math.Hypot(center.X-a.X, center.Y-a.Y) >= minDist
		})
		if ok {
			return pos
		}
	}
	return pos
}

// gridX returns a whole-unit x position that keeps an entity of the given
// width inside the playfield.
func (sp *Spawner) gridX(width float64) float64 {
	span := int(sp.cfg.Playfield.Width - width)
	if span < 0 {
		return 0
	}
	return float64(sp.rng.Intn(span + 1))
}

func (sp *Spawner) pick(table []weightedKind) (PickupKind, bool) {
	total := lo.SumBy(table, func(w weightedKind) float64 { return w.weight })
	if total <= 0 {
		return 0, false
	}
	r := sp.rng.Float64() * total
	acc := 0.0
	for _, w := range table {
		acc += w.weight
		if r < acc {
			return w.kind, true
		}
	}
	return table[len(table)-1].kind, true
}

func (sp *Spawner) uniform(amount float64) float64 {
	return (sp.rng.Float64()*2 - 1) * amount
}
