package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const (
	hudHeight  = 1
	glyphHead  = '@'
	glyphBody  = 'o'
	glyphDead  = 'x'
	glyphFood  = '*'
	boardColor = core.ColorWhite
)

// snakeColors holds head and body colors per player.
var snakeColors = map[core.PlayerID][2]core.Color{
	core.Player1: {core.ColorBrightGreen, core.ColorGreen},
	core.Player2: {core.ColorBrightCyan, core.ColorCyan},
}

var powerUpColors = map[snake.PowerUpType]core.Color{
	snake.PowerUpSpeedBoost:   core.ColorYellow,
	snake.PowerUpSlowDown:     core.ColorBlue,
	snake.PowerUpDoublePoints: core.ColorMagenta,
	snake.PowerUpShrink:       core.ColorOrange,
	snake.PowerUpWallPhase:    core.ColorWhite,
	snake.PowerUpMultiplier:   core.ColorRed,
}

// boardFits reports whether the screen can hold the grid, its border and the HUD.
func boardFits(s *core.Screen, grid core.Grid) bool {
	return s.Width() >= grid.Width+2 && s.Height() >= grid.Height+2+hudHeight
}

// drawBoard renders a game snapshot: HUD on top, bordered grid below.
func drawBoard(s *core.Screen, snap snake.Snapshot) {
	grid := snap.Grid
	if !boardFits(s, grid) {
		drawTooSmall(s, grid.Width+2, grid.Height+2+hudHeight)
		return
	}

	ox := (s.Width() - grid.Width - 2) / 2
	oy := hudHeight
	s.DrawBox(core.NewRect(ox, oy, grid.Width+2, grid.Height+2), boardColor)
	cell := func(p core.Point, r rune, c core.Color) {
		if grid.Contains(p) {
			s.SetColor(ox+1+p.X, oy+1+p.Y, r, c)
		}
	}

	if snap.HasFood {
		cell(snap.Food, glyphFood, core.ColorRed)
	}
	for _, item := range snap.PowerUps {
		cell(item.Position, item.Type.Glyph(), powerUpColors[item.Type])
	}

	// Dead snakes first so living ones draw on top.
	for _, pass := range []bool{false, true} {
		for _, sn := range snap.Snakes {
			if sn.Alive != pass {
				continue
			}
			colors := snakeColors[sn.ID]
			for i := len(sn.Body) - 1; i >= 0; i-- {
				switch {
				case !sn.Alive:
					cell(sn.Body[i], glyphDead, core.ColorGray)
				case i == 0:
					cell(sn.Body[i], glyphHead, colors[0])
				default:
					cell(sn.Body[i], glyphBody, colors[1])
				}
			}
		}
	}

	drawHUD(s, snap)
}

// drawHUD writes difficulty, scores and active effects on the top row.
func drawHUD(s *core.Screen, snap snake.Snapshot) {
	parts := []string{"SNAKE", snap.Difficulty}
	for _, sn := range snap.Snakes {
		entry := fmt.Sprintf("%s %d", sn.ID, sn.Score)
		for _, e := range sn.Effects {
			entry += fmt.Sprintf(" [%s %ds]", e.Type, secondsLeft(e, snap))
		}
		parts = append(parts, entry)
	}
	s.DrawTextColor(0, 0, strings.Join(parts, "  "), core.ColorYellow)
}

// secondsLeft converts an effect's remaining ticks to whole seconds at the
// difficulty's base rate.
func secondsLeft(e snake.ActiveEffect, snap snake.Snapshot) int {
	tps := snap.TicksPerSecond
	if tps <= 0 {
		return 0
	}
	return (e.TicksRemaining(snap.Tick) + tps - 1) / tps
}

func drawTooSmall(s *core.Screen, w, h int) {
	y := s.Height() / 2
	s.DrawTextCentered(y-1, "Terminal too small", core.ColorRed)
	s.DrawTextCentered(y, fmt.Sprintf("need %dx%d, have %dx%d", w, h, s.Width(), s.Height()), core.ColorGray)
}

// drawOverlay draws a bordered panel with centered lines over the board.
func drawOverlay(s *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w, h := width+4, len(lines)+2
	x := core.Clamp((s.Width()-w)/2, 0, s.Width())
	y := core.Clamp((s.Height()-h)/2, 0, s.Height())

	s.DrawRect(core.NewRect(x, y, w, h), ' ')
	s.DrawBox(core.NewRect(x, y, w, h), c)
	for i, l := range lines {
		lx := x + (w-len([]rune(l)))/2
		s.DrawTextColor(lx, y+1+i, l, c)
	}
}

// pausedLines builds the pause panel.
func pausedLines() []string {
	return []string{
		"PAUSED",
		"",
		"p/esc: resume",
		"r: restart",
		"m: menu",
	}
}

// gameOverLines builds the game over panel for a finished game.
func gameOverLines(g *snake.Game, saved []snake.HighScore) []string {
	lines := []string{"GAME OVER", ""}
	for _, s := range g.Snakes() {
		line := fmt.Sprintf("%s: %d", s.ID.Name(), s.Score)
		if s.Cause != snake.CauseNone {
			line += fmt.Sprintf(" (%s)", s.Cause)
		}
		lines = append(lines, line)
	}
	if g.Settings().Mode == snake.ModeMulti {
		if w := g.Winner(); w != 0 {
			lines = append(lines, "", w.Name()+" wins!")
		} else {
			lines = append(lines, "", "Draw!")
		}
	}
	if g.HaltReason() != nil {
		lines = append(lines, "", "The board is full!")
	}
	for _, e := range saved {
		lines = append(lines, fmt.Sprintf("New high score: %s %d", e.Name, e.Score))
	}
	lines = append(lines, "", "r: restart  m: menu  q: quit")
	return lines
}
