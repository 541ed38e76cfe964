package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func TestLookupDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		tps        int
		multiplier float64
		powerups   bool
	}{
		{"easy", 8, 1.0, true},
		{"Medium", 12, 1.5, true},
		{"normal", 12, 1.5, true},
		{" hard ", 18, 2.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := LookupDifficulty(tc.name)
			if err != nil {
				t.Fatalf("LookupDifficulty(%q) error: %v", tc.name, err)
			}
			if d.TicksPerSecond != tc.tps {
				t.Errorf("TicksPerSecond = %d, expected %d", d.TicksPerSecond, tc.tps)
			}
			if d.ScoreMultiplier != tc.multiplier {
				t.Errorf("ScoreMultiplier = %v, expected %v", d.ScoreMultiplier, tc.multiplier)
			}
			if d.PowerupsEnabled != tc.powerups {
				t.Errorf("PowerupsEnabled = %v, expected %v", d.PowerupsEnabled, tc.powerups)
			}
		})
	}

	if _, err := LookupDifficulty("insane"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("LookupDifficulty(insane) error = %v, expected ErrUnknownDifficulty", err)
	}
}

func TestDifficultyTicks(t *testing.T) {
	medium, _ := LookupDifficulty("medium")

	if got := medium.Ticks(10 * time.Second); got != 120 {
		t.Errorf("Ticks(10s) = %d, expected 120", got)
	}
	if got := medium.Ticks(5 * time.Second); got != 60 {
		t.Errorf("Ticks(5s) = %d, expected 60", got)
	}
	if got := medium.Ticks(time.Millisecond); got != 1 {
		t.Errorf("Ticks(1ms) = %d, expected 1", got)
	}
	if got := medium.Ticks(0); got != 0 {
		t.Errorf("Ticks(0) = %d, expected 0", got)
	}
	if got := medium.TickInterval(); got != time.Second/12 {
		t.Errorf("TickInterval() = %v, expected %v", got, time.Second/12)
	}
}

func TestDifficultyCycle(t *testing.T) {
	easy, _ := LookupDifficulty("easy")
	hard, _ := LookupDifficulty("hard")

	if easy.Next().Preset != DifficultyMedium {
		t.Errorf("easy.Next() = %s, expected medium", easy.Next().Preset)
	}
	if hard.Next().Preset != DifficultyEasy {
		t.Errorf("hard.Next() = %s, expected easy", hard.Next().Preset)
	}
	if easy.Prev().Preset != DifficultyHard {
		t.Errorf("easy.Prev() = %s, expected hard", easy.Prev().Preset)
	}
	if easy.Name() != "Easy" {
		t.Errorf("Name() = %q, expected %q", easy.Name(), "Easy")
	}
}

func TestDifficultiesIsACopy(t *testing.T) {
	list := Difficulties()
	list[0].TicksPerSecond = 999

	easy, _ := LookupDifficulty("easy")
	if easy.TicksPerSecond != 8 {
		t.Errorf("presets were mutated through Difficulties(): tps = %d", easy.TicksPerSecond)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg SnakeConfig
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultSnakeConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	partial := "grid:\n  width: 30\n  height: 12\npowerups:\n  max_live: 1\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake error: %v", err)
	}
	if cfg.Grid.Width != 30 || cfg.Grid.Height != 12 {
		t.Errorf("grid = %dx%d, expected 30x12", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.PowerUps.MaxLive != 1 {
		t.Errorf("MaxLive = %d, expected 1", cfg.PowerUps.MaxLive)
	}
	if cfg.Food.Value != 10 {
		t.Errorf("omitted food value = %d, expected default 10", cfg.Food.Value)
	}
}

func TestLoadSnakeErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadSnake should fail for a missing custom path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("LoadSnake should fail for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("grid:\n  width: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(invalid); err == nil {
		t.Error("LoadSnake should reject a grid that is too small")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
	}{
		{"zero food value", func(c *SnakeConfig) { c.Food.Value = 0 }},
		{"negative growth", func(c *SnakeConfig) { c.Food.Growth = -1 }},
		{"zero spawn interval", func(c *SnakeConfig) { c.PowerUps.SpawnInterval = 0 }},
		{"cap below multiplier", func(c *SnakeConfig) { c.PowerUps.MultiplierCap = 1 }},
		{"empty score table", func(c *SnakeConfig) { c.Scores.TableSize = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  width: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, DefaultSnakeConfig(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if w.Current().Grid.Width != 40 {
		t.Errorf("initial width = %d, expected 40", w.Current().Grid.Width)
	}

	if err := os.WriteFile(path, []byte("grid:\n  width: 24\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if w.Current().Grid.Width == 24 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("width after reload = %d, expected 24", w.Current().Grid.Width)
}
