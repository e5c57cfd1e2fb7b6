package server

import (
	"context"
	"sync"
	"time"

	"parsume/internal/errors"
	"parsume/internal/observability"
	"parsume/internal/parser"
)

// TaxonomyReloader watches the skill taxonomy file and swaps the parser's
// taxonomy on change. Reload events are recorded as metrics.
type TaxonomyReloader struct {
	mu sync.Mutex

	path    string
	watcher *parser.TaxonomyWatcher
	om      *observability.ObservabilityManager
	logger  *errors.Logger

	reloadCount     int64
	lastReloadTime  time.Time
	lastReloadError string
}

// NewTaxonomyReloader creates a reloader for the given taxonomy file. The
// apply function receives each successfully loaded taxonomy.
func NewTaxonomyReloader(path string, debounce time.Duration, apply func(parser.Taxonomy), om *observability.ObservabilityManager, logger *errors.Logger) *TaxonomyReloader {
	tr := &TaxonomyReloader{
		path:   path,
		om:     om,
		logger: logger,
	}

	tr.watcher = parser.NewTaxonomyWatcher(path, debounce, func(taxonomy parser.Taxonomy) {
		apply(taxonomy)
		tr.recordReload(nil)
		logger.Info("Skill taxonomy reloaded",
			"file", path,
			"categories", len(taxonomy))
	}, logger)

	return tr
}

// Start begins watching the taxonomy file
func (tr *TaxonomyReloader) Start() error {
	return tr.watcher.Start()
}

// Stop stops watching the taxonomy file
func (tr *TaxonomyReloader) Stop() error {
	return tr.watcher.Stop()
}

func (tr *TaxonomyReloader) recordReload(err error) {
	tr.mu.Lock()
	tr.reloadCount++
	tr.lastReloadTime = time.Now()
	if err != nil {
		tr.lastReloadError = err.Error()
	} else {
		tr.lastReloadError = ""
	}
	tr.mu.Unlock()

	if tr.om != nil {
		tr.om.GetMetrics().RecordTaxonomyReload(context.Background(), err == nil, tr.om)
	}
}

// Status returns reload statistics for the health endpoint
func (tr *TaxonomyReloader) Status() map[string]any {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	status := map[string]any{
		"enabled":      true,
		"file":         tr.path,
		"reload_count": tr.reloadCount,
	}
	if !tr.lastReloadTime.IsZero() {
		status["last_reload_time"] = tr.lastReloadTime.Format(time.RFC3339)
	}
	if tr.lastReloadError != "" {
		status["last_reload_error"] = tr.lastReloadError
	}
	return status
}
