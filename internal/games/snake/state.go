package snake

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// State is a top-level application state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateSettings
	StateHighScores
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateSettings:
		return "settings"
	case StateHighScores:
		return "high_scores"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ConfigSource supplies the configuration used when a game starts.
// config.Watcher satisfies it.
type ConfigSource interface {
	Current() config.SnakeConfig
}

// StaticConfig is a ConfigSource that never changes.
type StaticConfig config.SnakeConfig

func (c StaticConfig) Current() config.SnakeConfig {
	return config.SnakeConfig(c)
}

// MachineOptions configures a Machine. Zero values fall back to defaults.
type MachineOptions struct {
	Config     ConfigSource
	Store      HighScoreStore
	Sink       EventSink
	Logger     *log.Logger
	Difficulty config.Difficulty
	Seed       int64
	Now        func() time.Time
}

// Machine drives the application through its states. It owns the current
// Game, the input buffer and the fixed-timestep clock, and hands finished
// games to the high-score store.
type Machine struct {
	state      State
	mode       Mode
	difficulty config.Difficulty
	game       *Game
	input      *InputBuffer
	clock      Clock
	seeds      *rand.Rand

	cfg    ConfigSource
	store  HighScoreStore
	sink   EventSink
	logger *log.Logger
	now    func() time.Time

	scoresMode Mode
	scores     []HighScore
	lastSaved  []HighScore // Entries added by the most recent game over
}

// NewMachine creates a machine in the Menu state.
func NewMachine(opts MachineOptions) *Machine {
	if opts.Config == nil {
		opts.Config = StaticConfig(config.DefaultSnakeConfig())
	}
	if opts.Sink == nil {
		opts.Sink = discardSink{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Difficulty.TicksPerSecond <= 0 {
		opts.Difficulty = config.DefaultDifficulty()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Machine{
		state:      StateMenu,
		mode:       ModeSingle,
		difficulty: opts.Difficulty,
		input:      NewInputBuffer(),
		seeds:      rand.New(rand.NewSource(opts.Seed)),
		cfg:        opts.Config,
		store:      opts.Store,
		sink:       opts.Sink,
		logger:     opts.Logger,
		now:        opts.Now,
		scoresMode: ModeSingle,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Mode returns the mode of the current or last game.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Difficulty returns the difficulty used for the next game.
func (m *Machine) Difficulty() config.Difficulty {
	return m.difficulty
}

// Game returns the current game, nil outside Playing, Paused and GameOver.
func (m *Machine) Game() *Game {
	return m.game
}

// Input returns the buffer that input handlers write to.
func (m *Machine) Input() *InputBuffer {
	return m.input
}

// HighScores returns the table shown in the HighScores state and its mode.
func (m *Machine) HighScores() (Mode, []HighScore) {
	return m.scoresMode, m.scores
}

// LastSaved returns the entries the most recent game over added to the table.
func (m *Machine) LastSaved() []HighScore {
	return m.lastSaved
}

// ShowHighScores loads the table for mode. Load failures leave an empty
// table and publish a Warning.
func (m *Machine) ShowHighScores(mode Mode) {
	m.scoresMode = mode
	m.scores = m.loadTable(mode)
}

// Handle applies a signal to the current state. It returns false when the
// signal has no meaning in that state.
func (m *Machine) Handle(sig Signal) bool {
	switch m.state {
	case StateMenu:
		switch sig {
		case SignalStartSingle:
			return m.start(ModeSingle)
		case SignalStartMulti:
			return m.start(ModeMulti)
		case SignalSettings:
			m.transition(StateSettings)
			return true
		case SignalHighScores:
			m.ShowHighScores(m.scoresMode)
			m.transition(StateHighScores)
			return true
		}

	case StateSettings:
		switch sig {
		case SignalNextDifficulty:
			m.difficulty = m.difficulty.Next()
			m.logger.Debug("difficulty changed", "difficulty", m.difficulty.Name())
			return true
		case SignalPrevDifficulty:
			m.difficulty = m.difficulty.Prev()
			m.logger.Debug("difficulty changed", "difficulty", m.difficulty.Name())
			return true
		case SignalBack, SignalMenu:
			m.transition(StateMenu)
			return true
		}

	case StateHighScores:
		switch sig {
		case SignalBack, SignalMenu:
			m.transition(StateMenu)
			return true
		}

	case StatePlaying:
		if sig == SignalPause {
			m.transition(StatePaused)
			return true
		}

	case StatePaused:
		switch sig {
		case SignalPause:
			m.transition(StatePlaying)
			return true
		case SignalRestart:
			return m.start(m.mode)
		case SignalMenu, SignalBack:
			m.game = nil
			m.transition(StateMenu)
			return true
		}

	case StateGameOver:
		switch sig {
		case SignalRestart:
			return m.start(m.mode)
		case SignalMenu, SignalBack:
			m.game = nil
			m.transition(StateMenu)
			return true
		}
	}
	return false
}

// Update drains the pending signal and runs as many whole ticks as elapsed
// time allows. Paused time is never accumulated. It returns the number of
// ticks run.
func (m *Machine) Update(elapsed time.Duration) int {
	if sig, ok := m.input.Signal(); ok {
		m.Handle(sig)
	}
	if m.state != StatePlaying {
		return 0
	}

	m.clock.Add(elapsed)
	ticks := 0
	for m.state == StatePlaying && m.clock.Take(m.game.TickInterval()) {
		m.Step()
		ticks++
		if ticks >= maxCatchUpTicks {
			m.clock.Reset()
			break
		}
	}
	return ticks
}

// Step runs exactly one tick when playing.
func (m *Machine) Step() {
	if m.state != StatePlaying || m.game == nil {
		return
	}

	events, err := m.game.Step(m.input)
	for _, s := range m.game.Snakes() {
		m.input.Track(s.ID, s.Direction, s.Len())
	}
	for _, evt := range events {
		m.sink.Publish(evt)
	}
	if err != nil {
		m.warn("game halted: no free cell for food", err)
	}
	if m.game.Over() {
		m.transition(StateGameOver)
		m.recordScores()
	}
}

func (m *Machine) start(mode Mode) bool {
	st := Settings{
		Mode:       mode,
		Difficulty: m.difficulty,
		Config:     m.cfg.Current(),
		Seed:       m.seeds.Int63(),
		SessionID:  uuid.NewString(),
	}
	g, err := NewGame(st)
	if err != nil {
		m.warn("cannot start game", err)
		return false
	}

	m.game = g
	m.mode = mode
	m.lastSaved = nil
	m.clock.Reset()
	m.input.ClearDirections()
	for _, s := range g.Snakes() {
		m.input.Track(s.ID, s.Direction, s.Len())
	}
	m.logger.Info("game started",
		"mode", mode,
		"difficulty", m.difficulty.Name(),
		"session", st.SessionID,
	)
	m.transition(StatePlaying)
	return true
}

func (m *Machine) transition(to State) {
	from := m.state
	m.state = to
	// Paused keeps the partial tick so resuming loses no time.
	if to != StatePlaying && to != StatePaused {
		m.clock.Reset()
	}
	m.logger.Debug("state changed", "from", from, "to", to)
	m.sink.Publish(StateChanged{From: from, To: to})
}

// recordScores offers every snake's score to the mode's table and saves it
// when anything qualified.
func (m *Machine) recordScores() {
	if m.store == nil || m.game == nil {
		return
	}
	st := m.game.Settings()
	size := st.Config.Scores.TableSize

	// Saving replaces the whole table, so a table that failed to load is
	// left alone rather than overwritten.
	table, err := m.store.LoadHighScores(st.Mode)
	if err != nil {
		m.warn("could not load high scores", err)
		return
	}
	SortHighScores(table)

	var added []HighScore
	for _, s := range m.game.Snakes() {
		if !Qualifies(table, s.Score, size) {
			continue
		}
		entry := HighScore{
			Name:       s.ID.Name(),
			Score:      s.Score,
			Difficulty: st.Difficulty.Name(),
			SessionID:  st.SessionID,
			RecordedAt: m.now(),
		}
		table = InsertHighScore(table, entry, size)
		added = append(added, entry)
	}
	if len(added) == 0 {
		return
	}

	if err := m.store.SaveHighScores(st.Mode, table); err != nil {
		m.warn("could not save high scores", err)
		return
	}
	m.lastSaved = added
	m.logger.Info("high scores saved", "mode", st.Mode, "entries", len(added))
}

func (m *Machine) loadTable(mode Mode) []HighScore {
	if m.store == nil {
		return nil
	}
	table, err := m.store.LoadHighScores(mode)
	if err != nil {
		m.warn("could not load high scores", err)
		return nil
	}
	SortHighScores(table)
	return table
}

func (m *Machine) warn(msg string, err error) {
	m.logger.Warn(msg, "error", err)
	m.sink.Publish(Warning{Message: msg, Err: err})
}
