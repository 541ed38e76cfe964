package snake

import (
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DeathCause explains why a snake died.
type DeathCause string

const (
	CauseNone       DeathCause = ""
	CauseWall       DeathCause = "wall-collision"
	CauseSelf       DeathCause = "self-collision"
	CauseSnake      DeathCause = "snake-collision"
	CauseHeadToHead DeathCause = "head-collision"
)

// Intent is one snake's view of the tick, captured before anything moves.
type Intent struct {
	ID       core.PlayerID
	Body     []core.Point // Current body, head first
	Next     core.Point   // Cell the head moves into
	Moving   bool         // False for snakes that are already dead
	Phasing  bool         // WallPhase active
	KeepTail bool         // Tail stays in place this tick
}

func (in Intent) head() core.Point {
	return in.Body[0]
}

// occupiesAfterMove reports whether p is covered by the body once the snake
// has moved: the current head becomes a body cell and the tail may leave.
func (in Intent) occupiesAfterMove(p core.Point) bool {
	n := len(in.Body)
	if in.Moving && !in.KeepTail {
		n--
	}
	return slices.Contains(in.Body[:n], p)
}

// Death records a snake killed this tick.
type Death struct {
	Player core.PlayerID
	Cause  DeathCause
}

// Pickup records a power-up claimed this tick.
type Pickup struct {
	Player core.PlayerID
	Item   int // Index into the live item list
}

// Resolution is the outcome of one tick's collision pass.
type Resolution struct {
	Deaths    []Death       // Ordered by player ID
	FoodEater core.PlayerID // 0 if nobody eats
	Pickups   []Pickup      // Ordered by item index
}

// Died reports whether id is in the death list.
func (r Resolution) Died(id core.PlayerID) bool {
	for _, d := range r.Deaths {
		if d.Player == id {
			return true
		}
	}
	return false
}

// CollisionResolver arbitrates one tick from a snapshot of intents.
type CollisionResolver struct {
	grid core.Grid
}

// NewCollisionResolver creates a resolver for grid.
func NewCollisionResolver(grid core.Grid) CollisionResolver {
	return CollisionResolver{grid: grid}
}

// Resolve evaluates walls, self, other snakes, food and power-ups in that
// order. Every check reads the snapshot only, so the result does not depend
// on the order of intents. intents must be sorted by player ID; ties on food
// and power-ups go to the lowest ID.
func (r CollisionResolver) Resolve(intents []Intent, food core.Point, hasFood bool, items []PowerUp) Resolution {
	causes := make(map[core.PlayerID]DeathCause)

	// 1. Walls
	for _, in := range intents {
		if in.Moving && !in.Phasing && !r.grid.Contains(in.Next) {
			causes[in.ID] = CauseWall
		}
	}

	// 2. Self
	for _, in := range intents {
		if !in.Moving || in.Phasing || causes[in.ID] != CauseNone {
			continue
		}
		if in.occupiesAfterMove(in.Next) {
			causes[in.ID] = CauseSelf
		}
	}

	// Snakes that die in steps 1-2 stay frozen in place for step 3.
	movers := make([]Intent, 0, len(intents))
	for _, in := range intents {
		if in.Moving && causes[in.ID] == CauseNone {
			movers = append(movers, in)
		}
	}

	// 3a. Head-to-head: both heads land on the same cell, or swap cells.
	for i := 0; i < len(movers); i++ {
		for j := i + 1; j < len(movers); j++ {
			a, b := movers[i], movers[j]
			if a.Next == b.Next || (a.Next == b.head() && b.Next == a.head()) {
				causes[a.ID] = CauseHeadToHead
				causes[b.ID] = CauseHeadToHead
			}
		}
	}

	// 3b. Bodies of other snakes. A snake killed here keeps its tail, which
	// can kill another mover, so repeat until no new death occurs.
	for changed := true; changed; {
		changed = false
		for _, a := range movers {
			if a.Phasing || causes[a.ID] != CauseNone {
				continue
			}
			for _, b := range intents {
				if b.ID == a.ID {
					continue
				}
				if causes[b.ID] != CauseNone {
					b.Moving = false
				}
				if b.occupiesAfterMove(a.Next) {
					causes[a.ID] = CauseSnake
					changed = true
					break
				}
			}
		}
	}

	var res Resolution
	for _, in := range intents {
		if c := causes[in.ID]; c != CauseNone {
			res.Deaths = append(res.Deaths, Death{Player: in.ID, Cause: c})
		}
	}

	// 4. Food
	if hasFood {
		for _, in := range movers {
			if causes[in.ID] == CauseNone && in.Next == food {
				res.FoodEater = in.ID
				break
			}
		}
	}

	// 5. Power-ups
	for idx, item := range items {
		for _, in := range movers {
			if causes[in.ID] == CauseNone && in.Next == item.Position {
				res.Pickups = append(res.Pickups, Pickup{Player: in.ID, Item: idx})
				break
			}
		}
	}

	return res
}
