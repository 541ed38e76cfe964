package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 3 * time.Second

// Options configures a session model.
type Options struct {
	Config     snake.ConfigSource
	Store      snake.HighScoreStore
	Logger     *log.Logger
	Difficulty config.Difficulty
	Runtime    core.RuntimeConfig
	User       string     // Shown in the menu title for SSH sessions
	StartMode  snake.Mode // Skips the menu when set
}

// Model is the Bubble Tea model for one player session. It owns a state
// machine and feeds it key input and frame time.
type Model struct {
	machine    *snake.Machine
	sink       *snake.ChannelSink
	screen     *core.Screen
	keys       *KeyMapper
	config     core.RuntimeConfig
	menu       MenuModel
	scoreboard ScoreboardModel
	user       string
	lastFrame  time.Time
	flash      string
	flashUntil time.Time
	quitting   bool
}

// NewModel creates a session model in the main menu.
func NewModel(opts Options) Model {
	cfg, def := opts.Runtime, core.DefaultConfig()
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = def.FrameRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	sink := snake.NewChannelSink(0)
	machine := snake.NewMachine(snake.MachineOptions{
		Config:     opts.Config,
		Store:      opts.Store,
		Sink:       sink,
		Logger:     opts.Logger,
		Difficulty: opts.Difficulty,
		Seed:       cfg.Seed,
	})
	switch opts.StartMode {
	case snake.ModeSingle:
		machine.Input().PushSignal(snake.SignalStartSingle)
	case snake.ModeMulti:
		machine.Input().PushSignal(snake.SignalStartMulti)
	}

	return Model{
		machine:    machine,
		sink:       sink,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:       NewKeyMapper(),
		config:     cfg,
		menu:       NewMenuModel(),
		scoreboard: NewScoreboardModel(cfg.ScreenW, cfg.ScreenH),
		user:       opts.User,
	}
}

// Machine returns the session's state machine.
func (m Model) Machine() *snake.Machine {
	return m.machine
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.scoreboard = m.scoreboard.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey routes a key by machine state. Engine input goes through the
// machine's input buffer and takes effect on the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.sink.Close()
		return m, tea.Quit
	}

	input := m.machine.Input()
	state := m.machine.State()

	switch state {
	case snake.StateMenu:
		switch action {
		case core.ActionUp, core.ActionDown:
			m.menu = m.menu.Move(action)
		case core.ActionConfirm:
			item := m.menu.Selected()
			if item.Quit {
				m.quitting = true
				m.sink.Close()
				return m, tea.Quit
			}
			input.PushSignal(item.Signal)
		}
		switch msg.String() {
		case "1":
			input.PushSignal(snake.SignalStartSingle)
		case "2":
			input.PushSignal(snake.SignalStartMulti)
		}
		return m, nil

	case snake.StatePlaying:
		if id, dir, ok := m.keys.MapSteer(msg, m.machine.Mode()); ok {
			input.PushDirection(id, dir)
			return m, nil
		}

	case snake.StateHighScores:
		keys := m.scoreboard.keys
		switch {
		case key.Matches(msg, keys.NextMode):
			m.showScores(m.scoreboard.NextMode(1))
			return m, nil
		case key.Matches(msg, keys.PrevMode):
			m.showScores(m.scoreboard.NextMode(-1))
			return m, nil
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
			var cmd tea.Cmd
			m.scoreboard, cmd = m.scoreboard.Update(msg)
			return m, cmd
		}
	}

	if sig := m.keys.Signal(state, action); sig != snake.SignalNone {
		input.PushSignal(sig)
	}
	return m, nil
}

func (m *Model) showScores(mode snake.Mode) {
	m.machine.ShowHighScores(mode)
	m.scoreboard = m.scoreboard.SetTable(m.machine.HighScores())
}

// handleFrame advances the machine by the real time since the last frame.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	var elapsed time.Duration
	if !m.lastFrame.IsZero() {
		elapsed = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	m.machine.Update(elapsed)
	m.consumeEvents(now)

	return m, frameCmd(m.config.FrameRate)
}

// consumeEvents turns engine events into status messages.
func (m *Model) consumeEvents(now time.Time) {
	for _, evt := range m.sink.Drain() {
		var text string
		switch e := evt.(type) {
		case snake.Warning:
			text = "! " + e.Message
		case snake.PowerUpCollected:
			text = fmt.Sprintf("%s picked up %s", e.Player, e.Type)
		case snake.EffectExpired:
			text = fmt.Sprintf("%s: %s wore off", e.Player, e.Type)
		case snake.SnakeDied:
			text = fmt.Sprintf("%s died (%s)", e.Player, e.Cause)
		case snake.StateChanged:
			if e.To == snake.StateHighScores {
				m.scoreboard = m.scoreboard.SetTable(m.machine.HighScores())
			}
			if e.To == snake.StateMenu || e.To == snake.StatePlaying {
				m.flash = ""
			}
		}
		if text != "" {
			m.flash = text
			m.flashUntil = now.Add(flashDuration)
		}
	}
	if now.After(m.flashUntil) {
		m.flash = ""
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.machine.State() == snake.StateHighScores {
		return m.scoreboard.View()
	}

	m.screen.Clear()
	switch m.machine.State() {
	case snake.StateMenu:
		drawMenu(m.screen, m.menu, m.machine.Difficulty())
		if m.user != "" {
			m.screen.DrawTextCentered(0, "welcome, "+m.user, core.ColorGray)
		}
	case snake.StateSettings:
		drawSettings(m.screen, m.machine.Difficulty())
	case snake.StatePlaying, snake.StatePaused, snake.StateGameOver:
		if g := m.machine.Game(); g != nil {
			drawBoard(m.screen, g.Snapshot())
			switch m.machine.State() {
			case snake.StatePaused:
				drawOverlay(m.screen, pausedLines(), core.ColorYellow)
			case snake.StateGameOver:
				drawOverlay(m.screen, gameOverLines(g, m.machine.LastSaved()), core.ColorRed)
			}
		}
	}

	if m.flash != "" {
		m.screen.DrawTextColor(0, m.screen.Height()-1, m.flash, core.ColorOrange)
	}
	return RenderScreen(m.screen)
}

// Run starts a local Bubble Tea program.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
