package snake

import "math"

// ScoreKeeper turns food pickups into points.
type ScoreKeeper struct {
	baseValue  int
	multiplier float64 // Difficulty score multiplier
}

// NewScoreKeeper creates a keeper for the given food value and difficulty multiplier.
func NewScoreKeeper(baseValue int, multiplier float64) ScoreKeeper {
	return ScoreKeeper{baseValue: baseValue, multiplier: multiplier}
}

// Points returns what a pickup by s is worth right now:
// base * difficulty * DoublePoints * Multiplier, rounded to the nearest integer.
func (k ScoreKeeper) Points(s *Snake) int {
	return int(math.Round(float64(k.baseValue) * k.multiplier * s.PointsMultiplier()))
}

// Award credits a pickup to s and returns the points added.
func (k ScoreKeeper) Award(s *Snake) int {
	pts := max(k.Points(s), 0)
	s.Score += pts
	return pts
}
