package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"parsume/internal/errors"
)

// TaxonomyWatcher watches a taxonomy YAML file and pushes reloaded
// taxonomies to a callback. Events are debounced so editors that write in
// several steps trigger a single reload.
type TaxonomyWatcher struct {
	mu sync.Mutex

	path          string
	lastModTime   time.Time
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	onReload func(Taxonomy)
	logger   *errors.Logger

	running bool
}

// NewTaxonomyWatcher creates a watcher for the taxonomy file at path.
// onReload receives each successfully loaded taxonomy.
func NewTaxonomyWatcher(path string, debounceDelay time.Duration, onReload func(Taxonomy), logger *errors.Logger) *TaxonomyWatcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}
	return &TaxonomyWatcher{
		path:          path,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		onReload:      onReload,
		logger:        logger,
	}
}

// Start begins watching the taxonomy file for changes.
func (tw *TaxonomyWatcher) Start() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.running {
		return fmt.Errorf("taxonomy watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	tw.fsWatcher = watcher

	if stat, err := os.Stat(tw.path); err == nil {
		tw.lastModTime = stat.ModTime()
	}

	// Watch both the file and its directory so atomic writes (rename over
	// the original) are still seen.
	if err := tw.fsWatcher.Add(tw.path); err != nil && !os.IsNotExist(err) {
		tw.cleanupWatcher()
		return fmt.Errorf("failed to watch file %s: %w", tw.path, err)
	}
	if err := tw.fsWatcher.Add(filepath.Dir(tw.path)); err != nil {
		tw.cleanupWatcher()
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(tw.path), err)
	}

	tw.running = true
	go tw.watchLoop()

	if tw.logger != nil {
		tw.logger.Info("Taxonomy file watcher started",
			"file", tw.path,
			"debounce_delay", tw.debounceDelay)
	}
	return nil
}

// Stop stops the watcher.
func (tw *TaxonomyWatcher) Stop() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if !tw.running {
		return nil
	}

	close(tw.stopChan)

	if tw.debounceTimer != nil {
		tw.debounceTimer.Stop()
	}
	if tw.fsWatcher != nil {
		if err := tw.fsWatcher.Close(); err != nil {
			if tw.logger != nil {
				tw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	tw.running = false

	if tw.logger != nil {
		tw.logger.Info("Taxonomy file watcher stopped")
	}
	return nil
}

func (tw *TaxonomyWatcher) cleanupWatcher() {
	if tw.fsWatcher != nil {
		if closeErr := tw.fsWatcher.Close(); closeErr != nil && tw.logger != nil {
			tw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

func (tw *TaxonomyWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-tw.fsWatcher.Events:
			if !ok {
				return
			}
			if tw.shouldProcessEvent(event) {
				tw.scheduleReload()
			}

		case err, ok := <-tw.fsWatcher.Errors:
			if !ok {
				return
			}
			if tw.logger != nil {
				tw.logger.LogError(err, "File watcher error")
			}

		case <-tw.reloadChan:
			if tw.fileChanged() {
				tw.reload()
			}

		case <-tw.stopChan:
			return
		}
	}
}

func (tw *TaxonomyWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != tw.path && filepath.Base(event.Name) != filepath.Base(tw.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (tw *TaxonomyWatcher) scheduleReload() {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.debounceTimer != nil {
		tw.debounceTimer.Stop()
	}
	tw.debounceTimer = time.AfterFunc(tw.debounceDelay, func() {
		select {
		case tw.reloadChan <- struct{}{}:
		default:
		}
	})
}

func (tw *TaxonomyWatcher) fileChanged() bool {
	stat, err := os.Stat(tw.path)
	if err != nil {
		return false
	}
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if stat.ModTime().After(tw.lastModTime) {
		tw.lastModTime = stat.ModTime()
		return true
	}
	return false
}

func (tw *TaxonomyWatcher) reload() {
	taxonomy, err := LoadTaxonomyFile(tw.path)
	if err != nil {
		if tw.logger != nil {
			tw.logger.LogError(err, "Failed to reload taxonomy file", "file", tw.path)
		}
		return
	}
	if tw.logger != nil {
		tw.logger.Info("Taxonomy file reloaded",
			"file", tw.path,
			"categories", len(taxonomy))
	}
	tw.onReload(taxonomy)
}
