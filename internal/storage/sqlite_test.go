package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	recorded := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

	entries := []snake.HighScore{
		{Name: "Player 1", Score: 200, Difficulty: "Hard", SessionID: "s-1", RecordedAt: recorded},
		{Name: "Player 2", Score: 50, Difficulty: "Easy", SessionID: "s-2", RecordedAt: recorded},
		{Name: "Player 1", Score: 100, Difficulty: "Medium", SessionID: "s-3", RecordedAt: recorded},
	}
	if err := store.SaveHighScores(snake.ModeSingle, entries); err != nil {
		t.Fatalf("SaveHighScores() failed: %v", err)
	}

	got, err := store.LoadHighScores(snake.ModeSingle)
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(got))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, want := range expected {
		if got[i].Score != want {
			t.Errorf("got[%d].Score = %d, expected %d", i, got[i].Score, want)
		}
	}

	first := got[0]
	if first.Name != "Player 1" || first.Difficulty != "Hard" || first.SessionID != "s-1" {
		t.Errorf("first entry = %+v", first)
	}
	if !first.RecordedAt.Equal(recorded) {
		t.Errorf("RecordedAt = %v, expected %v", first.RecordedAt, recorded)
	}
}

func TestStoreModesAreSeparate(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveHighScores(snake.ModeSingle, []snake.HighScore{{Name: "Player 1", Score: 10}}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHighScores(snake.ModeMulti, []snake.HighScore{{Name: "Player 2", Score: 99}}); err != nil {
		t.Fatal(err)
	}

	single, err := store.LoadHighScores(snake.ModeSingle)
	if err != nil {
		t.Fatal(err)
	}
	if len(single) != 1 || single[0].Score != 10 {
		t.Errorf("single table = %+v, expected one entry with 10", single)
	}
}

func TestStoreSaveReplacesTable(t *testing.T) {
	store := openTestStore(t)

	first := []snake.HighScore{{Name: "Player 1", Score: 30}, {Name: "Player 1", Score: 20}}
	if err := store.SaveHighScores(snake.ModeSingle, first); err != nil {
		t.Fatal(err)
	}
	second := []snake.HighScore{{Name: "Player 1", Score: 40}}
	if err := store.SaveHighScores(snake.ModeSingle, second); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadHighScores(snake.ModeSingle)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Score != 40 {
		t.Errorf("table = %+v, expected only the last save", got)
	}
}

func TestStoreSkipsMalformedRows(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveHighScores(snake.ModeSingle, []snake.HighScore{{Name: "Player 1", Score: 70}}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec(
		"INSERT INTO high_scores (mode, name, score) VALUES (?, ?, ?)",
		"single", "Player 2", -5,
	); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadHighScores(snake.ModeSingle)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 valid entry, got %d", len(got))
	}
}

func TestStoreMachineRoundTrip(t *testing.T) {
	store := openTestStore(t)

	table := snake.InsertHighScore(nil, snake.HighScore{Name: "Player 1", Score: 15, RecordedAt: time.Now()}, 10)
	if err := store.SaveHighScores(snake.ModeMulti, table); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.LoadHighScores(snake.ModeMulti)
	if err != nil {
		t.Fatal(err)
	}
	if !snake.Qualifies(loaded, 16, 1) {
		t.Error("a higher score should qualify against the stored table")
	}
	if snake.Qualifies(loaded, 15, 1) {
		t.Error("an equal score should not qualify against a full table")
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveHighScores(snake.ModeSingle, []snake.HighScore{{Name: "Player 1", Score: 5}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(snake.ModeSingle); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	got, err := store.LoadHighScores(snake.ModeSingle)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty table after Clear, got %d entries", len(got))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats(snake.ModeSingle)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Entries != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	entries := []snake.HighScore{{Name: "Player 1", Score: 30}, {Name: "Player 1", Score: 10}}
	if err := store.SaveHighScores(snake.ModeSingle, entries); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats(snake.ModeSingle)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, expected 2", stats.Entries)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, expected 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
