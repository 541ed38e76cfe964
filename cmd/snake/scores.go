package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [single|multi]",
	Short: "Show the high-score table",
	Long: `Display the high-score table for a mode (single by default).

Examples:
  snake scores
  snake scores multi
  snake scores single --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the mode's table")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := snake.ModeSingle
	if len(args) == 1 {
		m, err := snake.ParseMode(args[0])
		if err != nil {
			return err
		}
		mode = m
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared %s high scores.\n", mode.Title())
		return nil
	}

	scores, err := store.LoadHighScores(mode)
	if err != nil {
		return err
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake play --mode %s' to set the first high score!\n", mode)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %-10s  %s\n", "Rank", "Name", "Score", "Difficulty", "When")
	fmt.Printf("  %-4s  %-10s  %-8s  %-10s  %s\n", "----", "----", "-----", "----------", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %-8s  %-10s  %s\n",
			i+1,
			entry.Name,
			humanize.Comma(int64(entry.Score)),
			entry.Difficulty,
			humanize.Time(entry.RecordedAt),
		)
	}

	stats, err := store.Stats(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %s  Average: %.1f  Last: %s\n",
			humanize.Comma(int64(stats.HighScore)),
			stats.AvgScore,
			humanize.Time(stats.LastPlayed),
		)
	}
	return nil
}
