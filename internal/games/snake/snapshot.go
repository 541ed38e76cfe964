package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeSnapshot is a copy of one snake's state.
type SnakeSnapshot struct {
	ID            core.PlayerID
	Body          []core.Point
	Direction     core.Direction
	PendingGrowth int
	Alive         bool
	Cause         DeathCause
	Score         int
	Effects       []ActiveEffect
}

// Snapshot captures the complete game state for rendering and determinism tests.
type Snapshot struct {
	Tick           uint64
	Mode           Mode
	Difficulty     string
	TicksPerSecond int // Base rate, for converting tick counts to seconds
	Grid           core.Grid
	Snakes         []SnakeSnapshot
	Food           core.Point
	HasFood        bool
	PowerUps       []PowerUp
	Over           bool
}

// Snapshot returns a deep copy of the current state. It shares no slices
// with the game.
func (g *Game) Snapshot() Snapshot {
	snakes := make([]SnakeSnapshot, len(g.snakes))
	for i, s := range g.snakes {
		body := make([]core.Point, len(s.Body))
		copy(body, s.Body)
		effects := make([]ActiveEffect, len(s.Effects))
		copy(effects, s.Effects)
		snakes[i] = SnakeSnapshot{
			ID:            s.ID,
			Body:          body,
			Direction:     s.Direction,
			PendingGrowth: s.PendingGrowth,
			Alive:         s.Alive,
			Cause:         s.Cause,
			Score:         s.Score,
			Effects:       effects,
		}
	}

	food, hasFood := g.food.Food()
	return Snapshot{
		Tick:           g.tick,
		Mode:           g.settings.Mode,
		Difficulty:     g.settings.Difficulty.Name(),
		TicksPerSecond: g.settings.Difficulty.TicksPerSecond,
		Grid:           g.grid,
		Snakes:         snakes,
		Food:           food.Position,
		HasFood:        hasFood,
		PowerUps:       g.powerups.Items(),
		Over:           g.over,
	}
}

// DebugState renders the snapshot as a compact single-line summary.
func (s Snapshot) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick=%d mode=%s diff=%s", s.Tick, s.Mode, s.Difficulty)
	for _, sn := range s.Snakes {
		head := core.Point{}
		if len(sn.Body) > 0 {
			head = sn.Body[0]
		}
		fmt.Fprintf(&b, " %s[len=%d head=%s dir=%s score=%d alive=%t]",
			sn.ID, len(sn.Body), head, sn.Direction, sn.Score, sn.Alive)
	}
	if s.HasFood {
		fmt.Fprintf(&b, " food=%s", s.Food)
	}
	fmt.Fprintf(&b, " items=%d", len(s.PowerUps))
	if s.Over {
		b.WriteString(" over")
	}
	return b.String()
}
