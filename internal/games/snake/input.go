package snake

import (
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Signal is a mode-transition request from the input collaborator.
type Signal int

const (
	SignalNone Signal = iota
	SignalStartSingle
	SignalStartMulti
	SignalSettings
	SignalHighScores
	SignalPause // Toggles between Playing and Paused
	SignalRestart
	SignalMenu
	SignalBack
	SignalNextDifficulty
	SignalPrevDifficulty
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalStartSingle:
		return "start-single"
	case SignalStartMulti:
		return "start-multi"
	case SignalSettings:
		return "settings"
	case SignalHighScores:
		return "high-scores"
	case SignalPause:
		return "pause"
	case SignalRestart:
		return "restart"
	case SignalMenu:
		return "menu"
	case SignalBack:
		return "back"
	case SignalNextDifficulty:
		return "next-difficulty"
	case SignalPrevDifficulty:
		return "prev-difficulty"
	default:
		return "unknown"
	}
}

// DirectionSource yields at most one buffered direction per player per tick.
type DirectionSource interface {
	Direction(id core.PlayerID) (core.Direction, bool)
}

type heading struct {
	dir    core.Direction
	length int
}

// InputBuffer is the single-slot buffer between asynchronous key handling and
// the tick loop. Writers overwrite the slot at any time; the tick drains it once.
// It never blocks for longer than a mutex hand-off.
type InputBuffer struct {
	mu       sync.Mutex
	pending  map[core.PlayerID]core.Direction
	headings map[core.PlayerID]heading
	signal   Signal
}

// NewInputBuffer creates an empty buffer.
func NewInputBuffer() *InputBuffer {
	return &InputBuffer{
		pending:  make(map[core.PlayerID]core.Direction),
		headings: make(map[core.PlayerID]heading),
	}
}

// PushDirection buffers dir for the player. Invalid directions and the exact
// reverse of the current heading are rejected, leaving any earlier command in place.
func (b *InputBuffer) PushDirection(id core.PlayerID, dir core.Direction) bool {
	if !dir.Valid() {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if h, ok := b.headings[id]; ok && h.length >= 2 && dir == h.dir.Opposite() {
		return false
	}
	b.pending[id] = dir
	return true
}

// PushSignal records the latest mode-transition request, replacing an undrained one.
func (b *InputBuffer) PushSignal(sig Signal) {
	if sig == SignalNone {
		return
	}
	b.mu.Lock()
	b.signal = sig
	b.mu.Unlock()
}

// Direction drains the buffered direction for the player.
func (b *InputBuffer) Direction(id core.PlayerID) (core.Direction, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	dir, ok := b.pending[id]
	if ok {
		delete(b.pending, id)
	}
	return dir, ok
}

// Signal drains the buffered mode-transition request.
func (b *InputBuffer) Signal() (Signal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sig := b.signal
	b.signal = SignalNone
	return sig, sig != SignalNone
}

// Track records a snake's heading after a tick so reversals can be rejected
// at push time.
func (b *InputBuffer) Track(id core.PlayerID, dir core.Direction, length int) {
	b.mu.Lock()
	b.headings[id] = heading{dir: dir, length: length}
	b.mu.Unlock()
}

// ClearDirections drops buffered directions and headings, used when a game starts or ends.
func (b *InputBuffer) ClearDirections() {
	b.mu.Lock()
	clear(b.pending)
	clear(b.headings)
	b.mu.Unlock()
}
