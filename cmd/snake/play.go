package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDifficulty string
	flagMode       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start the game menu, or a game directly when --mode is given.

Controls:
  W/A/S/D    - Steer player 1
  Arrows     - Steer player 2 (player 1 in single player)
  P/Esc      - Pause / resume
  R          - Restart
  M          - Back to menu
  Q/Ctrl+C   - Quit

Difficulty options:
  easy    - 8 ticks/s, x1.0 score, power-ups
  medium  - 12 ticks/s, x1.5 score, power-ups
  hard    - 18 ticks/s, x2.0 score, no power-ups

Examples:
  snake play
  snake play --difficulty easy
  snake play --mode multi
  snake play --config ./my-snake.yaml --log snake.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, medium, hard")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Start a game right away: single or multi")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	difficulty := config.DefaultDifficulty()
	if flagDifficulty != "" {
		d, err := config.LookupDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		difficulty = d
	}

	var mode snake.Mode
	if flagMode != "" {
		m, err := snake.ParseMode(flagMode)
		if err != nil {
			return err
		}
		mode = m
	}

	logger, closeLog, err := newLogger("snake", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	source, stopWatch, err := configSource(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer stopWatch()

	store := openStore(logger)
	if closer, ok := store.(*storage.Store); ok {
		defer closer.Close()
	}

	runtime := core.DefaultConfig()
	runtime.FrameRate = flagFPS
	runtime.Seed = flagSeed

	// Get terminal size
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	return tui.Run(tui.Options{
		Config:     source,
		Store:      store,
		Logger:     logger,
		Difficulty: difficulty,
		Runtime:    runtime,
		StartMode:  mode,
	})
}

// configSource loads the snake config. With --config the file is watched
// and edits apply to the next game.
func configSource(ctx context.Context, logger *log.Logger) (snake.ConfigSource, func(), error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagConfig == "" {
		return snake.StaticConfig(cfg), func() {}, nil
	}

	w, err := config.NewWatcher(flagConfig, cfg, logger)
	if err != nil {
		logger.Warn("config hot reload disabled", "err", err)
		return snake.StaticConfig(cfg), func() {}, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	go w.Run(ctx)
	return w, func() {
		cancel()
		w.Close() //nolint:errcheck
	}, nil
}

// openStore opens the scores database, falling back to an in-memory table
// so the game still works without it.
func openStore(logger *log.Logger) snake.HighScoreStore {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores kept in memory", "err", err)
		return snake.NewMemoryStore()
	}
	return store
}
