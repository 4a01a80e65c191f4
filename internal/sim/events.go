package sim

import "github.com/samber/lo"

// EventKind classifies something notable that happened during a tick.
type EventKind int

const (
	EventShot EventKind = iota
	EventFireRejected
	EventEnemySpawned
	EventEnemyKilled
	EventPickupSpawned
	EventPickupCollected
	EventPlayerHit
	EventLifeLost
	EventGameOver
	EventPowerupExpired
	EventLevelUp
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventFireRejected:
		return "fire_rejected"
	case EventEnemySpawned:
		return "enemy_spawned"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPickupSpawned:
		return "pickup_spawned"
	case EventPickupCollected:
		return "pickup_collected"
	case EventPlayerHit:
		return "player_hit"
	case EventLifeLost:
		return "life_lost"
	case EventGameOver:
		return "game_over"
	case EventPowerupExpired:
		return "powerup_expired"
	case EventLevelUp:
		return "level_up"
	default:
		return "unknown"
	}
}

// Event records one occurrence. Fields that do not apply to the kind are zero.
type Event struct {
	Kind    EventKind
	Tick    uint64
	ID      EntityID    // Entity involved, if any
	Pickup  PickupKind  // EventPickupSpawned, EventPickupCollected
	Powerup PowerupKind // EventPowerupExpired
	Amount  float64     // Damage taken or resource gained
	Level   int         // EventLevelUp
}

// StepResult is the outcome of one Advance call.
type StepResult struct {
	Tick     uint64
	DT       float64 // The dt actually simulated after sanitizing
	Events   []Event
	Terminal bool
	Quit     bool
}

// Has reports whether an event of the given kind occurred.
func (r StepResult) Has(kind EventKind) bool {
	return lo.ContainsBy(r.Events, func(e Event) bool { return e.Kind == kind })
}

// Count returns how many events of the given kind occurred.
func (r StepResult) Count(kind EventKind) int {
	return lo.CountBy(r.Events, func(e Event) bool { return e.Kind == kind })
}
