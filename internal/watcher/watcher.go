// Package watcher reports changes to the AutoMute settings file.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/automute/automute/internal/config"
	"github.com/automute/automute/internal/logging"
)

// DefaultDebounce is how long a burst of writes must be quiet before an
// event is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a settings file change.
type Event struct {
	Path    string
	Removed bool
}

// Watcher watches the settings file. The containing directory is watched
// rather than the file so editors that replace the file are still seen.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	path       string
	debounce   time.Duration
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	log        zerolog.Logger

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a watcher for path.
func New(path string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		path:       filepath.Clean(path),
		debounce:   debounce,
		eventsChan: make(chan Event, 8),
		done:       make(chan struct{}),
		log:        logging.WithComponent("watcher"),
	}, nil
}

// NewSettings creates a watcher for ~/.automute/settings.yaml.
func NewSettings() (*Watcher, error) {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return New(path, DefaultDebounce)
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start starts the watcher, creating the directory if needed.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.log.Debug().Str("path", w.path).Msg("Watching settings")

	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()
	})
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// handleEvent filters events down to the settings file and debounces them.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Rename covers atomic saves (write tmp, rename over target).
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.log.Debug().Str("op", event.Op.String()).Msg("Settings file event")

	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire delivers one event for the settled file state.
func (w *Watcher) fire() {
	w.timerMu.Lock()
	w.timer = nil
	w.timerMu.Unlock()

	ev := Event{Path: w.path, Removed: !config.FileExists(w.path)}
	select {
	case w.eventsChan <- ev:
	case <-w.done:
	}
}
