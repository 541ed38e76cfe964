package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// PowerUpType is the closed set of power-up kinds.
type PowerUpType int

const (
	PowerUpSpeedBoost PowerUpType = iota
	PowerUpSlowDown
	PowerUpDoublePoints
	PowerUpShrink
	PowerUpWallPhase
	PowerUpMultiplier
	powerUpCount // Sentinel for counting types
)

// PowerUpTypes returns every power-up kind in declaration order.
func PowerUpTypes() []PowerUpType {
	types := make([]PowerUpType, powerUpCount)
	for i := range types {
		types[i] = PowerUpType(i)
	}
	return types
}

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpSpeedBoost:
		return "SpeedBoost"
	case PowerUpSlowDown:
		return "SlowDown"
	case PowerUpDoublePoints:
		return "DoublePoints"
	case PowerUpShrink:
		return "Shrink"
	case PowerUpWallPhase:
		return "WallPhase"
	case PowerUpMultiplier:
		return "Multiplier"
	default:
		return "?"
	}
}

// Glyph returns the display character for a power-up type.
func (t PowerUpType) Glyph() rune {
	switch t {
	case PowerUpSpeedBoost:
		return '>'
	case PowerUpSlowDown:
		return '<'
	case PowerUpDoublePoints:
		return '2'
	case PowerUpShrink:
		return '-'
	case PowerUpWallPhase:
		return '~'
	case PowerUpMultiplier:
		return 'x'
	default:
		return '?'
	}
}

// PowerUp is an uncollected item on the grid.
type PowerUp struct {
	Type          PowerUpType
	Position      core.Point
	SpawnTick     uint64
	DurationTicks int    // Effect duration once collected
	ExpireTick    uint64 // Tick at which the uncollected item vanishes; 0 means never
}

// ActiveEffect is a timed effect attached to a snake.
type ActiveEffect struct {
	Type       PowerUpType
	ExpiryTick uint64  // First tick at which the effect is gone
	Value      float64 // Speed factor or score multiplier, depending on Type
}

// TicksRemaining returns how many ticks until the effect expires.
func (e ActiveEffect) TicksRemaining(currentTick uint64) int {
	if e.ExpiryTick <= currentTick {
		return 0
	}
	return int(e.ExpiryTick - currentTick)
}

// PowerUpRules holds power-up parameters converted to ticks.
type PowerUpRules struct {
	Enabled            bool
	SpawnIntervalTicks int
	LifetimeTicks      int // 0 keeps items until collected
	DurationTicks      int
	MaxLive            int
	SpeedBoostFactor   float64
	SlowDownFactor     float64
	MultiplierValue    float64
	MultiplierCap      float64
}

// effectFunc attaches a collected power-up to a snake.
type effectFunc func(pm *PowerUpManager, s *Snake, tick uint64)

// effectTable maps every power-up kind to its effect. Timed effects refresh
// their expiry on reapplication instead of stacking duration.
var effectTable = [powerUpCount]effectFunc{
	PowerUpSpeedBoost: func(pm *PowerUpManager, s *Snake, tick uint64) {
		s.removeEffect(PowerUpSlowDown)
		s.setEffect(pm.timed(PowerUpSpeedBoost, tick, pm.rules.SpeedBoostFactor))
	},
	PowerUpSlowDown: func(pm *PowerUpManager, s *Snake, tick uint64) {
		s.removeEffect(PowerUpSpeedBoost)
		s.setEffect(pm.timed(PowerUpSlowDown, tick, pm.rules.SlowDownFactor))
	},
	PowerUpDoublePoints: func(pm *PowerUpManager, s *Snake, tick uint64) {
		s.setEffect(pm.timed(PowerUpDoublePoints, tick, 2))
	},
	PowerUpShrink: func(_ *PowerUpManager, s *Snake, _ uint64) {
		s.Shrink()
	},
	PowerUpWallPhase: func(pm *PowerUpManager, s *Snake, tick uint64) {
		s.setEffect(pm.timed(PowerUpWallPhase, tick, 1))
	},
	PowerUpMultiplier: func(pm *PowerUpManager, s *Snake, tick uint64) {
		value := pm.rules.MultiplierValue
		if cur, ok := s.Effect(PowerUpMultiplier); ok {
			value = min(cur.Value*pm.rules.MultiplierValue, pm.rules.MultiplierCap)
		}
		s.setEffect(pm.timed(PowerUpMultiplier, tick, value))
	},
}

// PowerUpManager schedules power-up items and applies and expires their effects.
type PowerUpManager struct {
	rules     PowerUpRules
	rng       *rand.Rand
	items     []PowerUp
	nextSpawn uint64
}

// NewPowerUpManager creates a manager whose first spawn attempt is one interval in.
func NewPowerUpManager(rules PowerUpRules, rng *rand.Rand) *PowerUpManager {
	return &PowerUpManager{
		rules:     rules,
		rng:       rng,
		nextSpawn: uint64(max(rules.SpawnIntervalTicks, 1)),
	}
}

// Rules returns the manager's parameters.
func (pm *PowerUpManager) Rules() PowerUpRules {
	return pm.rules
}

// Items returns a copy of the live items.
func (pm *PowerUpManager) Items() []PowerUp {
	out := make([]PowerUp, len(pm.items))
	copy(out, pm.items)
	return out
}

// Place adds an item directly, bypassing the spawn timer.
func (pm *PowerUpManager) Place(t PowerUpType, p core.Point, tick uint64) PowerUp {
	item := PowerUp{
		Type:          t,
		Position:      p,
		SpawnTick:     tick,
		DurationTicks: pm.rules.DurationTicks,
	}
	if pm.rules.LifetimeTicks > 0 {
		item.ExpireTick = tick + uint64(pm.rules.LifetimeTicks)
	}
	pm.items = append(pm.items, item)
	return item
}

// Spawn runs the spawn timer for tick. When an attempt is due and fewer than
// MaxLive items exist, an item of uniformly random type is placed on a free
// cell. A full grid skips the attempt silently.
func (pm *PowerUpManager) Spawn(tick uint64, taken occupancy, grid core.Grid) (PowerUp, bool) {
	if !pm.rules.Enabled || pm.rules.SpawnIntervalTicks <= 0 || tick < pm.nextSpawn {
		return PowerUp{}, false
	}
	pm.nextSpawn = tick + uint64(pm.rules.SpawnIntervalTicks)

	if len(pm.items) >= pm.rules.MaxLive {
		return PowerUp{}, false
	}
	for _, item := range pm.items {
		taken.add(item.Position)
	}
	p, err := freeCell(grid, taken, pm.rng)
	if err != nil {
		return PowerUp{}, false
	}
	t := PowerUpType(pm.rng.Intn(int(powerUpCount)))
	return pm.Place(t, p, tick), true
}

// ExpireItems removes uncollected items whose lifetime ended at or before tick.
func (pm *PowerUpManager) ExpireItems(tick uint64) []PowerUp {
	var expired []PowerUp
	live := pm.items[:0]
	for _, item := range pm.items {
		if item.ExpireTick != 0 && item.ExpireTick <= tick {
			expired = append(expired, item)
		} else {
			live = append(live, item)
		}
	}
	pm.items = live
	return expired
}

// ExpireEffects removes a snake's effects whose expiry tick has been reached.
func (pm *PowerUpManager) ExpireEffects(s *Snake, tick uint64) []PowerUpType {
	var expired []PowerUpType
	active := s.Effects[:0]
	for _, e := range s.Effects {
		if e.ExpiryTick <= tick {
			expired = append(expired, e.Type)
		} else {
			active = append(active, e)
		}
	}
	s.Effects = active
	return expired
}

// ItemAt returns the index of the live item at p, or -1.
func (pm *PowerUpManager) ItemAt(p core.Point) int {
	for i, item := range pm.items {
		if item.Position == p {
			return i
		}
	}
	return -1
}

// Collect removes the item at index and applies its effect to s.
func (pm *PowerUpManager) Collect(index int, s *Snake, tick uint64) PowerUp {
	item := pm.items[index]
	pm.items = append(pm.items[:index], pm.items[index+1:]...)
	pm.Apply(item.Type, s, tick)
	return item
}

// Apply attaches the effect of t to s as if it had been collected at tick.
func (pm *PowerUpManager) Apply(t PowerUpType, s *Snake, tick uint64) {
	if t < 0 || t >= powerUpCount {
		return
	}
	effectTable[t](pm, s, tick)
}

func (pm *PowerUpManager) timed(t PowerUpType, tick uint64, value float64) ActiveEffect {
	return ActiveEffect{
		Type:       t,
		ExpiryTick: tick + uint64(pm.rules.DurationTicks),
		Value:      value,
	}
}
