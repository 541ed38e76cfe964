package snake

import (
	"sort"
	"sync"
	"time"
)

// HighScore is one row of a high-score table.
type HighScore struct {
	Name       string
	Score      int
	Difficulty string
	SessionID  string
	RecordedAt time.Time
}

// HighScoreStore persists high-score tables, one per mode. The machine
// treats every error as non-fatal.
type HighScoreStore interface {
	LoadHighScores(mode Mode) ([]HighScore, error)
	SaveHighScores(mode Mode, entries []HighScore) error
}

// Qualifies reports whether score earns a place in a table capped at size.
func Qualifies(table []HighScore, score, size int) bool {
	if score <= 0 || size <= 0 {
		return false
	}
	if len(table) < size {
		return true
	}
	lowest := table[0].Score
	for _, e := range table[1:] {
		lowest = min(lowest, e.Score)
	}
	return score > lowest
}

// InsertHighScore adds entry, sorts by score descending (earlier entries win
// ties) and truncates to size.
func InsertHighScore(table []HighScore, entry HighScore, size int) []HighScore {
	out := make([]HighScore, 0, len(table)+1)
	out = append(out, table...)
	out = append(out, entry)
	SortHighScores(out)
	if len(out) > size {
		out = out[:size]
	}
	return out
}

// SortHighScores orders a table by score descending, keeping insertion
// order among equal scores.
func SortHighScores(table []HighScore) {
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Score > table[j].Score
	})
}

// MemoryStore keeps tables in memory. It backs sessions that run without a
// database and lets tests inject failures.
type MemoryStore struct {
	mu      sync.Mutex
	tables  map[Mode][]HighScore
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[Mode][]HighScore)}
}

func (m *MemoryStore) LoadHighScores(mode Mode) ([]HighScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]HighScore, len(m.tables[mode]))
	copy(out, m.tables[mode])
	return out, nil
}

func (m *MemoryStore) SaveHighScores(mode Mode, entries []HighScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	table := make([]HighScore, len(entries))
	copy(table, entries)
	m.tables[mode] = table
	return nil
}
