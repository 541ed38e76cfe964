// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SnakeConfig contains all tunable parameters of the simulation.
// Durations are expressed in seconds of simulated time and converted to
// ticks at the difficulty's base rate when a game starts.
type SnakeConfig struct {
	Grid     GridConfig    `yaml:"grid"`
	Food     FoodConfig    `yaml:"food"`
	PowerUps PowerUpConfig `yaml:"powerups"`
	Scores   ScoresConfig  `yaml:"scores"`
}

// GridConfig defines the playing field size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FoodConfig defines food value and growth.
type FoodConfig struct {
	Value  int `yaml:"value"`  // Base points per food
	Growth int `yaml:"growth"` // Segments added after eating
}

// PowerUpConfig defines power-up spawning and effect parameters.
type PowerUpConfig struct {
	SpawnInterval    float64 `yaml:"spawn_interval"`  // Seconds between spawn attempts
	Lifetime         float64 `yaml:"lifetime"`        // Seconds an uncollected item stays on the grid
	EffectDuration   float64 `yaml:"effect_duration"` // Seconds a timed effect lasts
	MaxLive          int     `yaml:"max_live"`
	SpeedBoostFactor float64 `yaml:"speed_boost_factor"`
	SlowDownFactor   float64 `yaml:"slow_down_factor"`
	MultiplierValue  float64 `yaml:"multiplier_value"`
	MultiplierCap    float64 `yaml:"multiplier_cap"`
}

// ScoresConfig defines high-score table parameters.
type ScoresConfig struct {
	TableSize int `yaml:"table_size"`
}

// SpawnEvery returns the spawn interval as a duration.
func (c PowerUpConfig) SpawnEvery() time.Duration {
	return seconds(c.SpawnInterval)
}

// ItemLifetime returns how long an uncollected power-up stays live.
func (c PowerUpConfig) ItemLifetime() time.Duration {
	return seconds(c.Lifetime)
}

// EffectFor returns how long a timed effect lasts.
func (c PowerUpConfig) EffectFor() time.Duration {
	return seconds(c.EffectDuration)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Validate checks that the configuration can drive a game.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Grid.Width < 10 || c.Grid.Height < 3 {
		errs = append(errs, fmt.Errorf("grid must be at least 10x3, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Food.Value <= 0 {
		errs = append(errs, fmt.Errorf("food value must be positive, got %d", c.Food.Value))
	}
	if c.Food.Growth < 0 {
		errs = append(errs, fmt.Errorf("food growth must not be negative, got %d", c.Food.Growth))
	}
	p := c.PowerUps
	if p.SpawnInterval <= 0 || p.EffectDuration <= 0 || p.Lifetime < 0 {
		errs = append(errs, errors.New("power-up timings must be positive"))
	}
	if p.MaxLive < 0 {
		errs = append(errs, fmt.Errorf("powerups max_live must not be negative, got %d", p.MaxLive))
	}
	if p.SpeedBoostFactor <= 0 || p.SlowDownFactor <= 0 {
		errs = append(errs, errors.New("speed factors must be positive"))
	}
	if p.MultiplierValue <= 0 || p.MultiplierCap < p.MultiplierValue {
		errs = append(errs, errors.New("multiplier value must be positive and not exceed the cap"))
	}
	if c.Scores.TableSize <= 0 {
		errs = append(errs, fmt.Errorf("scores table_size must be positive, got %d", c.Scores.TableSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid snake config: %w", errors.Join(errs...))
	}
	return nil
}
