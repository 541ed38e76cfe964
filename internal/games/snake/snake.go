package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// StartLength is the body length of a freshly spawned snake.
const StartLength = 3

// Snake is one player's entity. It is owned by the Game and only changes
// inside a tick; input reaches it through the InputBuffer.
type Snake struct {
	ID            core.PlayerID
	Body          []core.Point // Head at index 0
	Direction     core.Direction
	PendingGrowth int // Future ticks in which the tail is kept
	Alive         bool
	Cause         DeathCause
	Score         int
	Effects       []ActiveEffect // At most one entry per PowerUpType
}

// NewSnake builds a snake whose body trails behind head, opposite to dir.
func NewSnake(id core.PlayerID, head core.Point, dir core.Direction, length int) *Snake {
	body := make([]core.Point, 0, length)
	back := dir.Opposite().Vector()
	p := head
	for i := 0; i < length; i++ {
		body = append(body, p)
		p = p.Add(back)
	}
	return &Snake{
		ID:        id,
		Body:      body,
		Direction: dir,
		Alive:     true,
	}
}

// Head returns the first body cell.
func (s *Snake) Head() core.Point {
	return s.Body[0]
}

// Tail returns the last body cell.
func (s *Snake) Tail() core.Point {
	return s.Body[len(s.Body)-1]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Steer changes direction unless dir is invalid or reverses a snake of length >= 2.
func (s *Snake) Steer(dir core.Direction) bool {
	if !dir.Valid() {
		return false
	}
	if s.Len() >= 2 && dir == s.Direction.Opposite() {
		return false
	}
	s.Direction = dir
	return true
}

// NextHead returns the cell the head moves into this tick. With WallPhase
// active the cell wraps around the grid; otherwise it may lie outside.
func (s *Snake) NextHead(grid core.Grid) core.Point {
	next := s.Head().Add(s.Direction.Vector())
	if s.HasEffect(PowerUpWallPhase) {
		next = grid.Wrap(next)
	}
	return next
}

// KeepsTail reports whether the tail stays in place when moving into next.
func (s *Snake) KeepsTail(next core.Point, food core.Point, hasFood bool) bool {
	return s.PendingGrowth > 0 || (hasFood && next == food)
}

// Advance moves the snake one cell. On the tick the snake eats, the tail is
// kept without consuming pending growth; otherwise pending growth is spent
// one segment per tick before the tail starts moving again.
func (s *Snake) Advance(next core.Point, ate bool) {
	s.Body = append([]core.Point{next}, s.Body...)
	switch {
	case ate:
		// Tail kept; the meal's growth starts next tick.
	case s.PendingGrowth > 0:
		s.PendingGrowth--
	default:
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Grow schedules n more segments.
func (s *Snake) Grow(n int) {
	s.PendingGrowth += n
}

// Shrink halves the body, rounding down, keeping at least one segment.
// Cells are removed from the tail. Returns the number of cells removed.
func (s *Snake) Shrink() int {
	newLen := max(s.Len()/2, 1)
	removed := s.Len() - newLen
	s.Body = s.Body[:newLen]
	return removed
}

// Occupies reports whether p is one of the body cells. When skipTail is set,
// the last cell is ignored because it is vacated this tick.
func (s *Snake) Occupies(p core.Point, skipTail bool) bool {
	n := len(s.Body)
	if skipTail {
		n--
	}
	for i := 0; i < n; i++ {
		if s.Body[i] == p {
			return true
		}
	}
	return false
}

// Kill marks the snake dead. The body stays where it is.
func (s *Snake) Kill(cause DeathCause) {
	s.Alive = false
	s.Cause = cause
}

// HasEffect reports whether an effect of the given type is active.
func (s *Snake) HasEffect(t PowerUpType) bool {
	_, ok := s.Effect(t)
	return ok
}

// Effect returns the active effect of the given type.
func (s *Snake) Effect(t PowerUpType) (ActiveEffect, bool) {
	for _, e := range s.Effects {
		if e.Type == t {
			return e, true
		}
	}
	return ActiveEffect{}, false
}

// setEffect adds or refreshes an effect, keeping Effects ordered by type.
func (s *Snake) setEffect(e ActiveEffect) {
	for i := range s.Effects {
		if s.Effects[i].Type == e.Type {
			s.Effects[i] = e
			return
		}
	}
	i := 0
	for i < len(s.Effects) && s.Effects[i].Type < e.Type {
		i++
	}
	s.Effects = append(s.Effects, ActiveEffect{})
	copy(s.Effects[i+1:], s.Effects[i:])
	s.Effects[i] = e
}

// removeEffect drops an effect by type.
func (s *Snake) removeEffect(t PowerUpType) {
	for i, e := range s.Effects {
		if e.Type == t {
			s.Effects = append(s.Effects[:i], s.Effects[i+1:]...)
			return
		}
	}
}

// SpeedFactor returns the multiplier applied to the tick rate by speed effects.
func (s *Snake) SpeedFactor() float64 {
	for _, e := range s.Effects {
		if e.Type == PowerUpSpeedBoost || e.Type == PowerUpSlowDown {
			return e.Value
		}
	}
	return 1
}

// PointsMultiplier returns the product of active scoring effects.
func (s *Snake) PointsMultiplier() float64 {
	m := 1.0
	for _, e := range s.Effects {
		if e.Type == PowerUpDoublePoints || e.Type == PowerUpMultiplier {
			m *= e.Value
		}
	}
	return m
}
