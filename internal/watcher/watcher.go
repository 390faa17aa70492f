// Package watcher reports changes other programs make to the open file.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temp file over the target are still
// seen. Bursts of events are debounced, and a change is only reported when
// the file's content differs from the last content the editor read or wrote.
package watcher

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/scrawl/internal/log"
	"github.com/zjrosen/scrawl/internal/pubsub"
)

// Change is the payload of watcher events. Event types are
// pubsub.UpdatedEvent (content changed), pubsub.DeletedEvent (file gone) and
// pubsub.ErrorEvent (Err set).
type Change struct {
	Path string
	Err  error
}

// Config holds watcher configuration options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// DefaultConfig returns the defaults for watching path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: 200 * time.Millisecond,
	}
}

type fingerprint struct {
	exists bool
	sum    [sha256.Size]byte
}

// Watcher monitors one file.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[Change]
	done      chan struct{}
	stopOnce  sync.Once

	mu    sync.Mutex
	known fingerprint
}

// New creates a watcher for cfg.Path. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      path,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Change](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker watcher events are published on.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Start records the file's current content as known and begins watching.
func (w *Watcher) Start() error {
	fp, err := w.read()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.known = fp
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	log.Debug(log.CatWatcher, "Watching file", "path", w.path, "debounce", w.debounce)
	go w.loop()
	return nil
}

// Acknowledge records data as the file's content, so the events caused by
// the editor's own save are not reported back to it.
func (w *Watcher) Acknowledge(data []byte) {
	w.mu.Lock()
	w.known = fingerprint{exists: true, sum: sha256.Sum256(data)}
	w.mu.Unlock()
}

// Stop terminates the watcher and closes the broker.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var timer *time.Timer
	timerC := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		return nil
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-timerC():
			timer = nil
			w.check()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err, "path", w.path)
			w.broker.Publish(pubsub.ErrorEvent, Change{Path: w.path, Err: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// check compares the file with the known fingerprint and publishes the
// difference, if any.
func (w *Watcher) check() {
	fp, err := w.read()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Reading watched file failed", err, "path", w.path)
		w.broker.Publish(pubsub.ErrorEvent, Change{Path: w.path, Err: err})
		return
	}

	w.mu.Lock()
	changed := fp != w.known
	w.known = fp
	w.mu.Unlock()

	if !changed {
		return
	}
	if !fp.exists {
		log.Info(log.CatWatcher, "Watched file removed", "path", w.path)
		w.broker.Publish(pubsub.DeletedEvent, Change{Path: w.path})
		return
	}
	log.Info(log.CatWatcher, "Watched file changed", "path", w.path)
	w.broker.Publish(pubsub.UpdatedEvent, Change{Path: w.path})
}

func (w *Watcher) read() (fingerprint, error) {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fingerprint{}, nil
	}
	if err != nil {
		return fingerprint{}, fmt.Errorf("reading %s: %w", w.path, err)
	}
	return fingerprint{exists: true, sum: sha256.Sum256(data)}, nil
}

// isRelevantEvent reports whether event touches the watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
