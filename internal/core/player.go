package core

import "fmt"

// PlayerID identifies a player slot. IDs start at 1 and also fix the
// deterministic tie-break order: lower IDs win simultaneous claims.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Name returns the display name used for high-score entries.
func (p PlayerID) Name() string {
	return fmt.Sprintf("Player %d", int(p))
}

func (p PlayerID) String() string {
	return fmt.Sprintf("P%d", int(p))
}
