package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrUnknownDifficulty is returned when a preset name does not match any difficulty.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// Difficulty fixes speed, scoring and power-up availability for one game.
// It is a plain value: a game copies it at start and never changes it.
type Difficulty struct {
	Preset          DifficultyPreset
	TicksPerSecond  int
	ScoreMultiplier float64
	PowerupsEnabled bool
}

var presets = [...]Difficulty{
	{Preset: DifficultyEasy, TicksPerSecond: 8, ScoreMultiplier: 1.0, PowerupsEnabled: true},
	{Preset: DifficultyMedium, TicksPerSecond: 12, ScoreMultiplier: 1.5, PowerupsEnabled: true},
	{Preset: DifficultyHard, TicksPerSecond: 18, ScoreMultiplier: 2.0, PowerupsEnabled: false},
}

// Difficulties returns all presets from easiest to hardest.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(presets))
	copy(out, presets[:])
	return out
}

// DefaultDifficulty returns the preset used when none is chosen.
func DefaultDifficulty() Difficulty {
	return presets[1]
}

// LookupDifficulty resolves a preset name. "normal" is accepted as an alias
// for medium to match the other arcade front ends.
func LookupDifficulty(name string) (Difficulty, error) {
	key := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if key == "normal" {
		key = DifficultyMedium
	}
	for _, d := range presets {
		if d.Preset == key {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

// Name returns the display name of the difficulty.
func (d Difficulty) Name() string {
	if d.Preset == "" {
		return "custom"
	}
	return strings.ToUpper(string(d.Preset[:1])) + string(d.Preset[1:])
}

// TickInterval returns the base duration of one tick.
func (d Difficulty) TickInterval() time.Duration {
	if d.TicksPerSecond <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(d.TicksPerSecond)
}

// Ticks converts a duration of simulated time into whole ticks at the base rate.
// Positive durations always map to at least one tick.
func (d Difficulty) Ticks(dur time.Duration) int {
	if dur <= 0 {
		return 0
	}
	n := int(math.Round(dur.Seconds() * float64(d.TicksPerSecond)))
	return max(n, 1)
}

// Next returns the following preset, wrapping from hard back to easy.
func (d Difficulty) Next() Difficulty {
	return presets[(d.index()+1)%len(presets)]
}

// Prev returns the preceding preset, wrapping from easy to hard.
func (d Difficulty) Prev() Difficulty {
	return presets[(d.index()+len(presets)-1)%len(presets)]
}

func (d Difficulty) index() int {
	for i, p := range presets {
		if p.Preset == d.Preset {
			return i
		}
	}
	return 1
}
