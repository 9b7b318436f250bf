package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 500 * time.Millisecond

// Handler receives the file content after each change
type Handler func(ctx context.Context, content string)

// Watcher calls a handler whenever a file changes or SIGHUP is received.
// Handler calls never overlap.
type Watcher struct {
	path     string
	handler  Handler
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// New creates a watcher for path
func New(path string, handler Handler, logger zerolog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory so editors that replace the file on save are seen
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		handler:  handler,
		logger:   logger.With().Str("component", "watch").Str("file", path).Logger(),
		watcher:  fsWatcher,
		debounce: DefaultDebounce,
	}, nil
}

// Run blocks until ctx is cancelled. The file is handled once on start.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// Setup signal handler for SIGHUP
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	w.logger.Info().Msg("Watching for changes")
	w.fire(ctx)

	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watcher stopped")
			return ctx.Err()

		case sig := <-sigChan:
			w.logger.Info().
				Str("signal", sig.String()).
				Msg("Received signal, re-running")
			w.fire(ctx)

		case <-debounce:
			debounce = nil
			w.fire(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			// Only handle Write and Create events
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				w.logger.Debug().
					Str("op", event.Op.String()).
					Msg("File changed")

				// Restart the debounce window
				debounce = time.After(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

// fire reads the file and runs the handler on this goroutine
func (w *Watcher) fire(ctx context.Context) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to read file - skipping")
		return
	}
	w.handler(ctx, string(data))
}
