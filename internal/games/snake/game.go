// Package snake implements the grid snake simulation: snakes, food,
// power-ups, collision resolution, scoring, the fixed-timestep clock and the
// game state machine. It has no terminal dependencies.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Mode selects single or two-player play. It is also the high-score table key.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

// Players returns the number of snakes in the mode.
func (m Mode) Players() int {
	if m == ModeMulti {
		return 2
	}
	return 1
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	if m == ModeMulti {
		return "Two Players"
	}
	return "Single Player"
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "1", "solo":
		return ModeSingle, nil
	case "multi", "2", "duo", "versus":
		return ModeMulti, nil
	default:
		return "", fmt.Errorf("snake: unknown mode %q (want single or multi)", s)
	}
}

// Settings fixes everything a game needs at start.
type Settings struct {
	Mode       Mode
	Difficulty config.Difficulty
	Config     config.SnakeConfig
	Seed       int64
	SessionID  string
}

// Game owns the simulation state of one round and advances it tick by tick.
type Game struct {
	settings   Settings
	grid       core.Grid
	tick       uint64
	snakes     []*Snake // Ordered by player ID
	food       *FoodSpawner
	powerups   *PowerUpManager
	resolver   CollisionResolver
	scorer     ScoreKeeper
	over       bool
	haltReason error
}

// NewGame creates snakes at their start cells and places the first food.
func NewGame(st Settings) (*Game, error) {
	if err := st.Config.Validate(); err != nil {
		return nil, err
	}
	grid, err := core.NewGrid(st.Config.Grid.Width, st.Config.Grid.Height)
	if err != nil {
		return nil, err
	}
	if st.Mode == "" {
		st.Mode = ModeSingle
	}

	rng := rand.New(rand.NewSource(st.Seed))
	g := &Game{
		settings: st,
		grid:     grid,
		snakes:   startingSnakes(grid, st.Mode),
		food:     NewFoodSpawner(grid, st.Config.Food.Value, rng),
		powerups: NewPowerUpManager(powerUpRules(st.Difficulty, st.Config.PowerUps), rng),
		resolver: NewCollisionResolver(grid),
		scorer:   NewScoreKeeper(st.Config.Food.Value, st.Difficulty.ScoreMultiplier),
	}

	for _, s := range g.snakes {
		for _, p := range s.Body {
			if !grid.Contains(p) {
				return nil, fmt.Errorf("snake: grid %dx%d too small for %s start positions", grid.Width, grid.Height, st.Mode)
			}
		}
	}
	if err := g.food.Spawn(g.occupied(false)); err != nil {
		return nil, fmt.Errorf("snake: cannot place initial food: %w", err)
	}
	return g, nil
}

// startingSnakes places player 1 at the center (single) or the left quarter
// (multi) heading right, and player 2 at the right quarter heading left.
func startingSnakes(grid core.Grid, mode Mode) []*Snake {
	if mode != ModeMulti {
		return []*Snake{NewSnake(core.Player1, grid.Center(), core.DirRight, StartLength)}
	}
	y := grid.Height / 2
	return []*Snake{
		NewSnake(core.Player1, core.Point{X: grid.Width / 4, Y: y}, core.DirRight, StartLength),
		NewSnake(core.Player2, core.Point{X: 3 * grid.Width / 4, Y: y}, core.DirLeft, StartLength),
	}
}

func powerUpRules(d config.Difficulty, c config.PowerUpConfig) PowerUpRules {
	return PowerUpRules{
		Enabled:            d.PowerupsEnabled && c.MaxLive > 0,
		SpawnIntervalTicks: d.Ticks(c.SpawnEvery()),
		LifetimeTicks:      d.Ticks(c.ItemLifetime()),
		DurationTicks:      d.Ticks(c.EffectFor()),
		MaxLive:            c.MaxLive,
		SpeedBoostFactor:   c.SpeedBoostFactor,
		SlowDownFactor:     c.SlowDownFactor,
		MultiplierValue:    c.MultiplierValue,
		MultiplierCap:      c.MultiplierCap,
	}
}

// occupied collects every snake cell and live item, plus the food when withFood is set.
func (g *Game) occupied(withFood bool) occupancy {
	taken := make(occupancy)
	for _, s := range g.snakes {
		for _, p := range s.Body {
			taken.add(p)
		}
	}
	for _, item := range g.powerups.items {
		taken.add(item.Position)
	}
	if f, ok := g.food.Food(); ok && withFood {
		taken.add(f.Position)
	}
	return taken
}

// Step advances the simulation by one tick and returns the tick's events.
// A non-nil error means the game cannot continue (the board is full); the
// game is marked over and the events up to that point are still returned.
func (g *Game) Step(input DirectionSource) ([]Event, error) {
	if g.over {
		return nil, nil
	}
	g.tick++
	tick := g.tick
	var events []Event

	// Expiry happens before anything moves.
	for _, s := range g.snakes {
		for _, t := range g.powerups.ExpireEffects(s, tick) {
			events = append(events, EffectExpired{Tick: tick, Player: s.ID, Type: t})
		}
	}
	for _, item := range g.powerups.ExpireItems(tick) {
		events = append(events, PowerUpExpired{Tick: tick, Type: item.Type, Position: item.Position})
	}

	for _, s := range g.snakes {
		if !s.Alive || input == nil {
			continue
		}
		if dir, ok := input.Direction(s.ID); ok {
			s.Steer(dir)
		}
	}

	food, hasFood := g.food.Food()
	intents := make([]Intent, len(g.snakes))
	for i, s := range g.snakes {
		in := Intent{ID: s.ID, Body: s.Body, Moving: s.Alive}
		if s.Alive {
			in.Next = s.NextHead(g.grid)
			in.Phasing = s.HasEffect(PowerUpWallPhase)
			in.KeepTail = s.KeepsTail(in.Next, food.Position, hasFood)
		}
		intents[i] = in
	}
	items := g.powerups.Items()
	res := g.resolver.Resolve(intents, food.Position, hasFood, items)

	for _, d := range res.Deaths {
		g.Snake(d.Player).Kill(d.Cause)
		events = append(events, SnakeDied{Tick: tick, Player: d.Player, Cause: d.Cause})
	}

	for i, s := range g.snakes {
		if s.Alive && intents[i].Moving {
			s.Advance(intents[i].Next, res.FoodEater == s.ID)
		}
	}

	if res.FoodEater != 0 {
		s := g.Snake(res.FoodEater)
		f := g.food.Consume()
		pts := g.scorer.Award(s)
		s.Grow(g.settings.Config.Food.Growth)
		events = append(events,
			FoodEaten{Tick: tick, Player: s.ID, Position: f.Position, Points: pts},
			ScoreChanged{Tick: tick, Player: s.ID, Score: s.Score},
		)
	}

	for _, p := range res.Pickups {
		item := items[p.Item]
		idx := g.powerups.ItemAt(item.Position)
		if idx < 0 {
			continue
		}
		g.powerups.Collect(idx, g.Snake(p.Player), tick)
		events = append(events, PowerUpCollected{Tick: tick, Player: p.Player, Type: item.Type})
	}

	if _, ok := g.food.Food(); !ok {
		if err := g.food.Spawn(g.occupied(false)); err != nil {
			g.over = true
			g.haltReason = fmt.Errorf("tick %d: food respawn: %w", tick, err)
			events = append(events, TickCompleted{Tick: tick})
			return events, g.haltReason
		}
	}

	if item, ok := g.powerups.Spawn(tick, g.occupied(true), g.grid); ok {
		events = append(events, PowerUpSpawned{Tick: tick, Type: item.Type, Position: item.Position})
	}

	if g.AliveCount() == 0 {
		g.over = true
	}

	events = append(events, TickCompleted{Tick: tick})
	return events, nil
}

// TickInterval returns the real-time duration of the next tick. Speed
// effects scale the shared clock; the fastest factor among living snakes wins.
func (g *Game) TickInterval() time.Duration {
	factor := 0.0
	for _, s := range g.snakes {
		if s.Alive {
			factor = max(factor, s.SpeedFactor())
		}
	}
	if factor <= 0 {
		factor = 1
	}
	return time.Duration(float64(g.settings.Difficulty.TickInterval()) / factor)
}

// Snake returns the snake for id, or nil.
func (g *Game) Snake(id core.PlayerID) *Snake {
	for _, s := range g.snakes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Snakes returns the snakes ordered by player ID.
func (g *Game) Snakes() []*Snake {
	return g.snakes
}

// AliveCount returns the number of living snakes.
func (g *Game) AliveCount() int {
	n := 0
	for _, s := range g.snakes {
		if s.Alive {
			n++
		}
	}
	return n
}

// Food returns the live food item.
func (g *Game) Food() (Food, bool) {
	return g.food.Food()
}

// PowerUps returns the live power-up items.
func (g *Game) PowerUps() []PowerUp {
	return g.powerups.Items()
}

// Tick returns the number of ticks simulated so far.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Over reports whether the round has ended.
func (g *Game) Over() bool {
	return g.over
}

// HaltReason returns the fatal error that ended the round early, if any.
func (g *Game) HaltReason() error {
	return g.haltReason
}

// Grid returns the playing field.
func (g *Game) Grid() core.Grid {
	return g.grid
}

// Settings returns the settings the game was started with.
func (g *Game) Settings() Settings {
	return g.settings
}

// Winner returns the player with the highest score, 0 on a tie.
func (g *Game) Winner() core.PlayerID {
	var best *Snake
	tie := false
	for _, s := range g.snakes {
		switch {
		case best == nil || s.Score > best.Score:
			best, tie = s, false
		case s.Score == best.Score:
			tie = true
		}
	}
	if best == nil || tie {
		return 0
	}
	return best.ID
}
