package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher keeps the latest valid SnakeConfig from a file on disk.
// Games read Current when they start, so a reload never changes a game in progress.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *log.Logger

	mu      sync.RWMutex
	current SnakeConfig
}

// NewWatcher starts watching path. initial is served until the first valid reload.
// The parent directory is watched so editors that replace the file are handled.
func NewWatcher(path string, initial SnakeConfig, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		watcher: fw,
		logger:  logger,
		current: initial,
	}, nil
}

// Current returns the most recently loaded valid configuration.
func (w *Watcher) Current() SnakeConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Run processes file events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "err", err)
		}
	}
}

// reload parses the file and swaps it in; invalid files keep the previous config.
func (w *Watcher) reload() {
	cfg, err := ParseSnakeFile(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()
	w.logger.Info("config reloaded", "path", w.path)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
