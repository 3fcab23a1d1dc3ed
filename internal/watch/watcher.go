package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"ylwblog/internal/build"
	"ylwblog/internal/domain/config"
	"ylwblog/internal/ingest"
)

// Rebuilder is the load step re-run after every settled burst of changes.
type Rebuilder interface {
	Run(ctx context.Context) (*build.Result, error)
}

type Watcher struct {
	root     string
	matcher  *ingest.Matcher
	debounce time.Duration
	rb       Rebuilder
	log      *slog.Logger

	fw *fsnotify.Watcher
}

func New(cfg config.Config, rb Rebuilder, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	patterns := cfg.Watch.Patterns
	if len(patterns) == 0 {
		patterns = cfg.Posts.Include
	}
	m, err := ingest.NewMatcher(patterns, nil)
	if err != nil {
		return nil, err
	}
	debounce := cfg.Watch.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{
		root:     cfg.Posts.ContentRoot,
		matcher:  m,
		debounce: debounce,
		rb:       rb,
		log:      logger.With("component", "watch"),
	}, nil
}

func (w *Watcher) Close() error {
	if w.fw == nil {
		return nil
	}
	return w.fw.Close()
}

// Run performs an initial load, then reloads on every settled change under
// the content root until ctx is done. A failing reload is logged and the
// loop keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.rb.Run(ctx); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	w.fw = fw
	if err := w.addDirs(w.root); err != nil {
		return err
	}

	w.log.Info("watching for post changes", "root", w.root, "debounce", w.debounce.String())
	return w.loop(ctx)
}

func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fw.Add(path)
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := w.addDirs(ev.Name); err != nil {
					w.log.Warn("watch new directory", "path", ev.Name, "error", err)
				}
				timer.Reset(w.debounce)
				continue
			}
			if w.Relevant(ev) {
				w.log.Debug("change", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		case <-timer.C:
			if _, err := w.rb.Run(ctx); err != nil {
				w.log.Error("rebuild failed", "error", err)
			}
		}
	}
}

// Relevant reports whether ev touches a watched post source.
func (w *Watcher) Relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return false
	}
	return w.matcher.Match(filepath.ToSlash(rel))
}
