package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// KeyMapper translates Bubble Tea key messages to engine input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a semantic action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "m":
		return core.ActionMenu, false
	}
	return core.ActionNone, false
}

// MapSteer resolves a steering key during play. Player 1 uses WASD and
// player 2 the arrow keys; in single-player the arrows steer player 1 too.
func (km *KeyMapper) MapSteer(msg tea.KeyMsg, mode snake.Mode) (core.PlayerID, core.Direction, bool) {
	arrows := core.Player2
	if mode != snake.ModeMulti {
		arrows = core.Player1
	}

	action, _ := km.MapKey(msg)
	dir, ok := action.Direction()
	if !ok {
		return 0, 0, false
	}

	switch msg.String() {
	case "w", "a", "s", "d":
		return core.Player1, dir, true
	case "up", "down", "left", "right":
		return arrows, dir, true
	}
	return 0, 0, false
}

// Signal maps an action to the state machine signal it means in state.
// The menu is cursor driven and handled by the model.
func (km *KeyMapper) Signal(state snake.State, action core.Action) snake.Signal {
	switch state {
	case snake.StatePlaying:
		if action == core.ActionPause || action == core.ActionBack {
			return snake.SignalPause
		}
	case snake.StatePaused:
		switch action {
		case core.ActionPause, core.ActionBack:
			return snake.SignalPause
		case core.ActionRestart:
			return snake.SignalRestart
		case core.ActionMenu:
			return snake.SignalMenu
		}
	case snake.StateGameOver:
		switch action {
		case core.ActionRestart, core.ActionConfirm:
			return snake.SignalRestart
		case core.ActionMenu, core.ActionBack:
			return snake.SignalMenu
		}
	case snake.StateSettings:
		switch action {
		case core.ActionRight, core.ActionDown:
			return snake.SignalNextDifficulty
		case core.ActionLeft, core.ActionUp:
			return snake.SignalPrevDifficulty
		case core.ActionBack, core.ActionConfirm, core.ActionMenu:
			return snake.SignalBack
		}
	case snake.StateHighScores:
		if action == core.ActionBack || action == core.ActionMenu {
			return snake.SignalBack
		}
	}
	return snake.SignalNone
}
