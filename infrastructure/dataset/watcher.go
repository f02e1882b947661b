package dataset

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"cadence-backend/domain/core/aggregates"
)

// Watcher watches a dataset file for changes and pushes validated reloads
// to registered listeners. A reload that fails to parse or validate is
// logged and dropped; the previous snapshot stays in effect.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	onReload []func(*aggregates.Graph)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewWatcher creates a watcher for the dataset file at path.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	// Also watch the directory for atomic saves (rename operations).
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("failed to watch dataset directory", zap.Error(err))
	}

	return &Watcher{
		path:    path,
		watcher: watcher,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// OnReload registers a callback invoked with each successfully reloaded graph.
func (w *Watcher) OnReload(handler func(*aggregates.Graph)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, handler)
}

// Start begins watching for dataset changes.
func (w *Watcher) Start() {
	go w.watchLoop()
	w.logger.Info("dataset watcher started", zap.String("path", w.path))
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("dataset watcher stopped")
}

func (w *Watcher) watchLoop() {
	// Editors and atomic saves emit bursts of events; debounce them into
	// a single reload.
	var debounce *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDuration, w.handleChange)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("dataset watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleChange() {
	w.logger.Info("dataset file changed, reloading", zap.String("path", w.path))

	graph, err := Load(w.path)
	if err != nil {
		w.logger.Error("dataset reload failed, keeping current graph", zap.Error(err))
		return
	}

	w.mu.Lock()
	handlers := make([]func(*aggregates.Graph), len(w.onReload))
	copy(handlers, w.onReload)
	w.mu.Unlock()

	for _, handler := range handlers {
		handler(graph)
	}

	w.logger.Info("dataset reloaded",
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
	)
}
