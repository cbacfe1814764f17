// Package watch re-runs relinking whenever a relocation manifest changes.
//
// The copy step usually appends to its manifest while assets are still being
// transferred, so events are debounced and runs are throttled with a token
// bucket. The manifest's directory is watched rather than the file itself so
// that editors and tools that save by rename are still noticed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
	"github.com/custodia-labs/prrelink/internal/logger"
)

// Loader reads a relocation manifest.
type Loader interface {
	Load(ctx context.Context, path string) ([]domain.RelocationEntry, error)
}

// Config controls a Watcher.
type Config struct {
	// ManifestPath is the relocation manifest to watch.
	ManifestPath string

	// Request is the run template. Its Relocations are replaced by the
	// manifest contents on every run.
	Request domain.RelinkRequest

	// Debounce is the quiet period after the last event before a run starts.
	Debounce time.Duration

	// RunsPerSecond and Burst configure the run throttle.
	RunsPerSecond float64
	Burst         int
}

// DefaultConfig returns a config with conservative throttling.
func DefaultConfig(manifestPath string, req domain.RelinkRequest) Config {
	return Config{
		ManifestPath:  manifestPath,
		Request:       req,
		Debounce:      500 * time.Millisecond,
		RunsPerSecond: 0.5,
		Burst:         1,
	}
}

// RunFunc is called after every triggered run.
type RunFunc func(req domain.RelinkRequest, outcome *domain.RelinkOutcome)

// Watcher drives a RelinkService from manifest change events.
type Watcher struct {
	relink  driving.RelinkService
	loader  Loader
	cfg     Config
	limiter *rate.Limiter
	onRun   RunFunc
}

// New creates a Watcher.
func New(relink driving.RelinkService, loader Loader, cfg Config) (*Watcher, error) {
	if relink == nil || loader == nil {
		return nil, errors.New("watch: relink service and loader are required")
	}
	if cfg.ManifestPath == "" {
		return nil, fmt.Errorf("watch: manifest path: %w", domain.ErrInvalidInput)
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}

	limit := rate.Inf
	if cfg.RunsPerSecond > 0 {
		limit = rate.Limit(cfg.RunsPerSecond)
	}

	return &Watcher{
		relink:  relink,
		loader:  loader,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, cfg.Burst),
	}, nil
}

// OnRun registers a callback invoked after each run.
func (w *Watcher) OnRun(fn RunFunc) {
	w.onRun = fn
}

// Run performs an initial relink, then re-runs on every manifest change until
// ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			logger.Warn("failed to close file watcher: %v", err)
		}
	}()

	manifest := filepath.Clean(w.cfg.ManifestPath)
	if err := fsw.Add(filepath.Dir(manifest)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(manifest), err)
	}
	logger.Info("Watching %s", manifest)

	w.trigger(ctx)

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != manifest || !relevant(event.Op) {
				continue
			}
			logger.Debug("Manifest event: %s", event.Op)
			debounce.Reset(w.cfg.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-debounce.C:
			w.trigger(ctx)
		}
	}
}

// trigger waits for the throttle and runs once.
func (w *Watcher) trigger(ctx context.Context) {
	if err := w.limiter.Wait(ctx); err != nil {
		return
	}
	if _, err := w.RunOnce(ctx); err != nil {
		logger.Warn("%v", err)
	}
}

// RunOnce loads the manifest and relinks with its entries.
func (w *Watcher) RunOnce(ctx context.Context) (*domain.RelinkOutcome, error) {
	entries, err := w.loader.Load(ctx, w.cfg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	req := w.cfg.Request
	req.Relocations = entries

	outcome := w.relink.Relink(ctx, req)
	if w.onRun != nil {
		w.onRun(req, outcome)
	}
	return outcome, nil
}

// relevant reports whether op may have changed the manifest contents.
func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create)
}
