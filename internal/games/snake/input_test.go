package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestInputBufferLatestWins(t *testing.T) {
	b := NewInputBuffer()
	b.Track(core.Player1, core.DirRight, 3)

	b.PushDirection(core.Player1, core.DirUp)
	b.PushDirection(core.Player1, core.DirDown)

	dir, ok := b.Direction(core.Player1)
	if !ok || dir != core.DirDown {
		t.Errorf("Direction() = %v, %v; expected %v", dir, ok, core.DirDown)
	}
	if _, ok := b.Direction(core.Player1); ok {
		t.Error("Direction() should be drained after one read")
	}
}

func TestInputBufferRejectsReverse(t *testing.T) {
	b := NewInputBuffer()
	b.Track(core.Player1, core.DirRight, 3)
	b.Track(core.Player2, core.DirRight, 1)

	b.PushDirection(core.Player1, core.DirUp)
	if b.PushDirection(core.Player1, core.DirLeft) {
		t.Error("PushDirection(Left) should be rejected for a right-moving snake")
	}
	if dir, _ := b.Direction(core.Player1); dir != core.DirUp {
		t.Errorf("rejected command replaced the earlier one: %v", dir)
	}

	if !b.PushDirection(core.Player2, core.DirLeft) {
		t.Error("a length-1 snake may reverse")
	}
}

func TestInputBufferPlayersIndependent(t *testing.T) {
	b := NewInputBuffer()
	b.PushDirection(core.Player1, core.DirUp)
	b.PushDirection(core.Player2, core.DirDown)

	if dir, _ := b.Direction(core.Player2); dir != core.DirDown {
		t.Errorf("P2 Direction() = %v, expected %v", dir, core.DirDown)
	}
	if dir, _ := b.Direction(core.Player1); dir != core.DirUp {
		t.Errorf("P1 Direction() = %v, expected %v", dir, core.DirUp)
	}
}

func TestInputBufferSignal(t *testing.T) {
	b := NewInputBuffer()
	if _, ok := b.Signal(); ok {
		t.Error("empty buffer should have no signal")
	}

	b.PushSignal(SignalPause)
	b.PushSignal(SignalMenu)
	b.PushSignal(SignalNone)

	sig, ok := b.Signal()
	if !ok || sig != SignalMenu {
		t.Errorf("Signal() = %v, %v; expected %v", sig, ok, SignalMenu)
	}
	if _, ok := b.Signal(); ok {
		t.Error("Signal() should be drained after one read")
	}
}
