package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Title  string
	Signal snake.Signal
	Quit   bool
}

// MenuModel tracks the cursor of the main menu.
type MenuModel struct {
	items  []MenuItem
	cursor int
}

// NewMenuModel creates the main menu.
func NewMenuModel() MenuModel {
	return MenuModel{
		items: []MenuItem{
			{Title: "Single Player", Signal: snake.SignalStartSingle},
			{Title: "Two Players", Signal: snake.SignalStartMulti},
			{Title: "Settings", Signal: snake.SignalSettings},
			{Title: "High Scores", Signal: snake.SignalHighScores},
			{Title: "Quit", Quit: true},
		},
	}
}

// Move applies a navigation action and returns the updated menu.
func (m MenuModel) Move(action core.Action) MenuModel {
	switch action {
	case core.ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case core.ActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	}
	return m
}

// Selected returns the item under the cursor.
func (m MenuModel) Selected() MenuItem {
	return m.items[m.cursor]
}

// Cursor returns the selected index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// drawMenu renders the title screen.
func drawMenu(s *core.Screen, m MenuModel, d config.Difficulty) {
	y := max(s.Height()/2-len(m.items)-3, 0)

	s.DrawTextCentered(y, "S N A K E", core.ColorBrightGreen)
	s.DrawTextCentered(y+2, "Difficulty: "+d.Name(), core.ColorGray)

	for i, item := range m.items {
		cursor := "  "
		color := core.ColorDefault
		if i == m.cursor {
			cursor = "> "
			color = core.ColorYellow
		}
		s.DrawTextCentered(y+4+i, fmt.Sprintf("%s%-14s", cursor, item.Title), color)
	}

	footer := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	s.DrawTextCentered(y+5+len(m.items), footer, core.ColorGray)
}

// drawSettings renders the difficulty picker.
func drawSettings(s *core.Screen, current config.Difficulty) {
	presets := config.Difficulties()
	y := max(s.Height()/2-len(presets)-3, 0)

	s.DrawTextCentered(y, "SETTINGS", core.ColorBrightGreen)
	s.DrawTextCentered(y+2, "Difficulty", core.ColorGray)

	for i, d := range presets {
		cursor := "  "
		color := core.ColorDefault
		if d.Preset == current.Preset {
			cursor = "> "
			color = core.ColorYellow
		}
		powerups := "on"
		if !d.PowerupsEnabled {
			powerups = "off"
		}
		line := fmt.Sprintf("%s%-7s %2d tps  x%.1f  power-ups %-3s", cursor, d.Name(), d.TicksPerSecond, d.ScoreMultiplier, powerups)
		s.DrawTextCentered(y+4+i, line, color)
	}

	s.DrawTextCentered(y+5+len(presets), "Left/Right: Change  |  Esc/Enter: Back", core.ColorGray)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
