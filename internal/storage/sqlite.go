// Package storage provides SQLite-based persistence for snake high-score tables.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// timeLayout matches SQLite's CURRENT_TIMESTAMP format.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for high-score persistence.
// Each mode owns one table of ranked rows; saving a table replaces it.
type Store struct {
	db *sql.DB
}

var _ snake.HighScoreStore = (*Store)(nil)

// ModeStats contains aggregated statistics for one mode's table.
type ModeStats struct {
	Mode       snake.Mode
	Entries    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			session_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(mode, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadHighScores returns the mode's table ordered by score descending.
// Rows with missing or negative fields are skipped.
func (s *Store) LoadHighScores(mode snake.Mode) ([]snake.HighScore, error) {
	rows, err := s.db.Query(
		`SELECT name, score, difficulty, session_id, created_at
		 FROM high_scores
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC`,
		string(mode),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	var entries []snake.HighScore
	for rows.Next() {
		var (
			name, difficulty, session sql.NullString
			score                     sql.NullInt64
			createdAt                 any
		)
		if err := rows.Scan(&name, &score, &difficulty, &session, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if !name.Valid || !score.Valid || score.Int64 < 0 {
			continue
		}
		entries = append(entries, snake.HighScore{
			Name:       name.String,
			Score:      int(score.Int64),
			Difficulty: difficulty.String,
			SessionID:  session.String,
			RecordedAt: parseTime(createdAt),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SaveHighScores replaces the mode's table with entries in one transaction.
func (s *Store) SaveHighScores(mode snake.Mode, entries []snake.HighScore) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.Exec("DELETE FROM high_scores WHERE mode = ?", string(mode)); err != nil {
		return fmt.Errorf("storage: cannot replace high scores: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO high_scores (mode, name, score, difficulty, session_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		recorded := e.RecordedAt
		if recorded.IsZero() {
			recorded = time.Now()
		}
		if _, err := stmt.Exec(
			string(mode),
			e.Name,
			e.Score,
			e.Difficulty,
			e.SessionID,
			recorded.UTC().Format(timeLayout),
		); err != nil {
			return fmt.Errorf("storage: cannot save high score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit high scores: %w", err)
	}
	return nil
}

// Clear deletes the mode's table.
func (s *Store) Clear(mode snake.Mode) error {
	_, err := s.db.Exec("DELETE FROM high_scores WHERE mode = ?", string(mode))
	if err != nil {
		return fmt.Errorf("storage: cannot clear high scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for the mode's table.
func (s *Store) Stats(mode snake.Mode) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM high_scores WHERE mode = ?`,
		string(mode),
	).Scan(&stats.Entries, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM high_scores WHERE mode = ? ORDER BY created_at DESC LIMIT 1`,
		string(mode),
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both driver-decoded times and raw SQLite timestamp text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
