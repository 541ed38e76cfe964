package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Event is emitted by the engine after a tick or transition completes.
type Event interface {
	snakeEvent()
}

// FoodEaten is emitted when a snake eats the food.
type FoodEaten struct {
	Tick     uint64
	Player   core.PlayerID
	Position core.Point
	Points   int
}

func (FoodEaten) snakeEvent() {}

// PowerUpSpawned is emitted when a new item appears.
type PowerUpSpawned struct {
	Tick     uint64
	Type     PowerUpType
	Position core.Point
}

func (PowerUpSpawned) snakeEvent() {}

// PowerUpCollected is emitted when a snake picks up an item.
type PowerUpCollected struct {
	Tick   uint64
	Player core.PlayerID
	Type   PowerUpType
}

func (PowerUpCollected) snakeEvent() {}

// PowerUpExpired is emitted when an uncollected item vanishes.
type PowerUpExpired struct {
	Tick     uint64
	Type     PowerUpType
	Position core.Point
}

func (PowerUpExpired) snakeEvent() {}

// EffectExpired is emitted when a timed effect wears off.
type EffectExpired struct {
	Tick   uint64
	Player core.PlayerID
	Type   PowerUpType
}

func (EffectExpired) snakeEvent() {}

// SnakeDied is emitted once per snake death.
type SnakeDied struct {
	Tick   uint64
	Player core.PlayerID
	Cause  DeathCause
}

func (SnakeDied) snakeEvent() {}

// ScoreChanged carries a snake's new total.
type ScoreChanged struct {
	Tick   uint64
	Player core.PlayerID
	Score  int
}

func (ScoreChanged) snakeEvent() {}

// StateChanged is emitted on every state machine transition.
type StateChanged struct {
	From State
	To   State
}

func (StateChanged) snakeEvent() {}

// Warning reports a non-fatal problem such as a failed high-score write.
type Warning struct {
	Message string
	Err     error
}

func (Warning) snakeEvent() {}

// TickCompleted closes the event batch of one tick.
type TickCompleted struct {
	Tick uint64
}

func (TickCompleted) snakeEvent() {}
