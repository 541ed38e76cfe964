package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the hardcoded snake configuration.
// It mirrors defaults/snake.yaml and is used when the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:  40,
			Height: 20,
		},
		Food: FoodConfig{
			Value:  10,
			Growth: 2,
		},
		PowerUps: PowerUpConfig{
			SpawnInterval:    10,
			Lifetime:         15,
			EffectDuration:   5,
			MaxLive:          3,
			SpeedBoostFactor: 2.0,
			SlowDownFactor:   0.5,
			MultiplierValue:  3.0,
			MultiplierCap:    9.0,
		},
		Scores: ScoresConfig{
			TableSize: 10,
		},
	}
}
