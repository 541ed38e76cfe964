package snake

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// smallConfig puts a single snake five cells from the right wall.
func smallConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width = 10
	cfg.Grid.Height = 3
	cfg.PowerUps.MaxLive = 0
	return cfg
}

func newTestMachine(store HighScoreStore) (*Machine, *ChannelSink) {
	sink := NewChannelSink(1024)
	m := NewMachine(MachineOptions{
		Config: StaticConfig(smallConfig()),
		Store:  store,
		Sink:   sink,
		Seed:   1,
		Now:    func() time.Time { return fixedNow },
	})
	return m, sink
}

func playUntilOver(t *testing.T, m *Machine) {
	t.Helper()
	for i := 0; i < 50 && m.State() == StatePlaying; i++ {
		m.Step()
	}
	if m.State() != StateGameOver {
		t.Fatalf("State() = %v, expected %v", m.State(), StateGameOver)
	}
}

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name     string
		signals  []Signal
		expected State
	}{
		{"pause ignored in menu", []Signal{SignalPause}, StateMenu},
		{"start single", []Signal{SignalStartSingle}, StatePlaying},
		{"start multi", []Signal{SignalStartMulti}, StatePlaying},
		{"pause", []Signal{SignalStartSingle, SignalPause}, StatePaused},
		{"resume", []Signal{SignalStartSingle, SignalPause, SignalPause}, StatePlaying},
		{"quit from pause", []Signal{SignalStartSingle, SignalPause, SignalMenu}, StateMenu},
		{"restart from pause", []Signal{SignalStartSingle, SignalPause, SignalRestart}, StatePlaying},
		{"restart ignored while playing", []Signal{SignalStartSingle, SignalRestart}, StatePlaying},
		{"settings", []Signal{SignalSettings}, StateSettings},
		{"settings back", []Signal{SignalSettings, SignalBack}, StateMenu},
		{"high scores", []Signal{SignalHighScores}, StateHighScores},
		{"high scores back", []Signal{SignalHighScores, SignalBack}, StateMenu},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestMachine(NewMemoryStore())
			for _, sig := range tc.signals {
				m.Handle(sig)
			}
			if m.State() != tc.expected {
				t.Errorf("State() = %v, expected %v", m.State(), tc.expected)
			}
		})
	}
}

func TestMachineStateChangedEvents(t *testing.T) {
	m, sink := newTestMachine(nil)
	m.Handle(SignalStartSingle)
	m.Handle(SignalPause)

	changes := eventsOf[StateChanged](sink.Drain())
	expected := []StateChanged{
		{From: StateMenu, To: StatePlaying},
		{From: StatePlaying, To: StatePaused},
	}
	if len(changes) != len(expected) {
		t.Fatalf("StateChanged events = %v, expected %v", changes, expected)
	}
	for i := range expected {
		if changes[i] != expected[i] {
			t.Errorf("event %d = %v, expected %v", i, changes[i], expected[i])
		}
	}
}

func TestSettingsCycleDifficulty(t *testing.T) {
	m, _ := newTestMachine(nil)
	m.Handle(SignalSettings)

	if !m.Handle(SignalNextDifficulty) {
		t.Fatal("NextDifficulty should be handled in settings")
	}
	if got := m.Difficulty().Preset; got != config.DifficultyHard {
		t.Errorf("Difficulty() = %v, expected hard", got)
	}
	m.Handle(SignalNextDifficulty)
	if got := m.Difficulty().Preset; got != config.DifficultyEasy {
		t.Errorf("Difficulty() = %v, expected easy after wrapping", got)
	}

	m.Handle(SignalBack)
	if m.Handle(SignalNextDifficulty) {
		t.Error("NextDifficulty should be ignored outside settings")
	}

	m.Handle(SignalStartSingle)
	if got := m.Game().Settings().Difficulty.Preset; got != config.DifficultyEasy {
		t.Errorf("game difficulty = %v, expected easy", got)
	}
}

func TestUpdateRunsWholeTicks(t *testing.T) {
	m, _ := newTestMachine(nil)
	m.input.PushSignal(SignalStartSingle)
	if got := m.Update(0); got != 0 {
		t.Errorf("Update(0) = %d ticks, expected 0", got)
	}
	if m.State() != StatePlaying {
		t.Fatalf("State() = %v, expected playing", m.State())
	}

	interval := m.Game().TickInterval()
	if got := m.Update(3*interval + 10*time.Millisecond); got != 3 {
		t.Errorf("Update() = %d ticks, expected 3", got)
	}
	if got := m.Update(interval - 10*time.Millisecond); got != 1 {
		t.Errorf("Update() = %d ticks, expected 1", got)
	}
	if got := m.Game().Tick(); got != 4 {
		t.Errorf("Tick() = %d, expected 4", got)
	}
}

func TestUpdateCapsCatchUp(t *testing.T) {
	m := NewMachine(MachineOptions{Seed: 1})
	m.Handle(SignalStartSingle)

	if got := m.Update(time.Minute); got != maxCatchUpTicks {
		t.Errorf("Update(1m) = %d ticks, expected %d", got, maxCatchUpTicks)
	}
	if got := m.clock.Pending(); got != 0 {
		t.Errorf("Pending() = %v, expected 0 after a capped update", got)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	m := NewMachine(MachineOptions{Seed: 1})
	m.Handle(SignalStartSingle)
	interval := m.Game().TickInterval()

	if got := m.Update(interval * 3 / 4); got != 0 {
		t.Fatalf("Update() before pause = %d ticks, expected 0", got)
	}

	m.Input().PushSignal(SignalPause)
	if got := m.Update(10 * interval); got != 0 {
		t.Errorf("Update() while paused = %d ticks, expected 0", got)
	}
	if m.Game().Tick() != 0 {
		t.Errorf("Tick() = %d, expected 0 while paused", m.Game().Tick())
	}

	// The three quarters accumulated before the pause still count.
	m.Input().PushSignal(SignalPause)
	if got := m.Update(interval / 2); got != 1 {
		t.Errorf("Update() after resume = %d ticks, expected 1", got)
	}
	if got := m.Update(interval); got != 1 {
		t.Errorf("Update() = %d ticks, expected 1", got)
	}
	if m.Game().Tick() != 2 {
		t.Errorf("Tick() = %d, expected 2", m.Game().Tick())
	}
}

func TestMenuDropsPartialTick(t *testing.T) {
	m := NewMachine(MachineOptions{Seed: 1})
	m.Handle(SignalStartSingle)
	interval := m.Game().TickInterval()

	m.Update(interval * 3 / 4)
	m.Handle(SignalPause)
	m.Handle(SignalMenu)
	m.Handle(SignalStartSingle)

	if got := m.Update(interval / 2); got != 0 {
		t.Errorf("Update() in a new game = %d ticks, expected 0", got)
	}
}

func TestInputReachesSnake(t *testing.T) {
	m := NewMachine(MachineOptions{Seed: 1})
	m.Handle(SignalStartSingle)

	if m.Input().PushDirection(core.Player1, core.DirLeft) {
		t.Error("reverse direction should be rejected")
	}
	if !m.Input().PushDirection(core.Player1, core.DirUp) {
		t.Fatal("perpendicular direction should be accepted")
	}
	m.Step()

	if got := m.Game().Snake(core.Player1).Direction; got != core.DirUp {
		t.Errorf("Direction = %v, expected %v", got, core.DirUp)
	}
	if m.Input().PushDirection(core.Player1, core.DirDown) {
		t.Error("reversal of the new heading should be rejected")
	}
}

func TestGameOverRecordsHighScore(t *testing.T) {
	store := NewMemoryStore()
	m, sink := newTestMachine(store)
	m.Handle(SignalStartSingle)
	m.Game().food.Place(pt(6, 1))
	session := m.Game().Settings().SessionID

	playUntilOver(t, m)

	table, err := store.LoadHighScores(ModeSingle)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 1 {
		t.Fatalf("table = %v, expected one entry", table)
	}
	got := table[0]
	if got.Name != "Player 1" || got.Score < 15 || got.Difficulty != "Medium" {
		t.Errorf("entry = %+v", got)
	}
	if got.SessionID != session || session == "" {
		t.Errorf("SessionID = %q, expected %q", got.SessionID, session)
	}
	if !got.RecordedAt.Equal(fixedNow) {
		t.Errorf("RecordedAt = %v, expected %v", got.RecordedAt, fixedNow)
	}
	if len(m.LastSaved()) != 1 {
		t.Errorf("LastSaved() = %v, expected one entry", m.LastSaved())
	}

	if len(eventsOf[Warning](sink.Drain())) != 0 {
		t.Error("unexpected warning")
	}

	m.Handle(SignalRestart)
	if m.State() != StatePlaying {
		t.Fatalf("State() = %v after restart, expected playing", m.State())
	}
	if m.Game().Settings().SessionID == session {
		t.Error("restart should start a new session")
	}
}

func TestZeroScoreIsNotRecorded(t *testing.T) {
	store := NewMemoryStore()
	m, _ := newTestMachine(store)
	m.Handle(SignalStartSingle)
	m.Game().food.Place(pt(0, 0))

	playUntilOver(t, m)

	table, _ := store.LoadHighScores(ModeSingle)
	if len(table) != 0 {
		t.Errorf("table = %v, expected empty", table)
	}
}

func TestSaveFailureWarns(t *testing.T) {
	store := NewMemoryStore()
	store.SaveErr = errors.New("disk full")
	m, sink := newTestMachine(store)
	m.Handle(SignalStartSingle)
	m.Game().food.Place(pt(6, 1))

	playUntilOver(t, m)

	warnings := eventsOf[Warning](sink.Drain())
	if len(warnings) != 1 || !errors.Is(warnings[0].Err, store.SaveErr) {
		t.Errorf("warnings = %v, expected the save error", warnings)
	}
	if m.State() != StateGameOver {
		t.Errorf("State() = %v, expected game over", m.State())
	}
	if m.LastSaved() != nil {
		t.Errorf("LastSaved() = %v, expected nil", m.LastSaved())
	}
}

func TestLoadFailureKeepsStoredTable(t *testing.T) {
	store := NewMemoryStore()
	stored := []HighScore{{Name: "Player 1", Score: 5, Difficulty: "Easy"}}
	if err := store.SaveHighScores(ModeSingle, stored); err != nil {
		t.Fatalf("SaveHighScores() error = %v", err)
	}
	store.LoadErr = errors.New("locked")
	m, sink := newTestMachine(store)
	m.Handle(SignalStartSingle)
	m.Game().food.Place(pt(6, 1))

	playUntilOver(t, m)

	warnings := eventsOf[Warning](sink.Drain())
	if len(warnings) != 1 || !errors.Is(warnings[0].Err, store.LoadErr) {
		t.Errorf("warnings = %v, expected the load error", warnings)
	}
	if m.LastSaved() != nil {
		t.Errorf("LastSaved() = %v, expected nil", m.LastSaved())
	}

	store.LoadErr = nil
	table, err := store.LoadHighScores(ModeSingle)
	if err != nil {
		t.Fatalf("LoadHighScores() error = %v", err)
	}
	if len(table) != 1 || table[0].Score != 5 {
		t.Errorf("LoadHighScores() = %v, expected the stored table untouched", table)
	}
}

func TestLoadFailureShowsEmptyTable(t *testing.T) {
	store := NewMemoryStore()
	store.LoadErr = errors.New("corrupt")
	m, sink := newTestMachine(store)

	if !m.Handle(SignalHighScores) {
		t.Fatal("HighScores should be handled in the menu")
	}
	if m.State() != StateHighScores {
		t.Errorf("State() = %v, expected high scores", m.State())
	}
	if _, table := m.HighScores(); len(table) != 0 {
		t.Errorf("HighScores() = %v, expected empty", table)
	}
	if len(eventsOf[Warning](sink.Drain())) != 1 {
		t.Error("expected a warning for the load failure")
	}
}

func TestStartFailureStaysInMenu(t *testing.T) {
	bad := smallConfig()
	bad.Grid.Width = 4
	sink := NewChannelSink(16)
	m := NewMachine(MachineOptions{Config: StaticConfig(bad), Sink: sink, Seed: 1})

	if m.Handle(SignalStartSingle) {
		t.Error("Handle(StartSingle) should fail for an invalid grid")
	}
	if m.State() != StateMenu {
		t.Errorf("State() = %v, expected menu", m.State())
	}
	if len(eventsOf[Warning](sink.Drain())) != 1 {
		t.Error("expected a warning for the failed start")
	}
}

func TestLeavingGameOverDropsGame(t *testing.T) {
	m, _ := newTestMachine(nil)
	m.Handle(SignalStartSingle)
	m.Game().food.Place(pt(0, 0))
	playUntilOver(t, m)

	m.Handle(SignalMenu)
	if m.State() != StateMenu {
		t.Errorf("State() = %v, expected menu", m.State())
	}
	if m.Game() != nil {
		t.Error("Game() should be nil back in the menu")
	}
}
