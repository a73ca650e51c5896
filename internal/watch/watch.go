// Package watch re-runs a tangle whenever one of the documents it read changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change
const DefaultDebounce = 200 * time.Millisecond

// RunFunc performs one tangle and returns the documents it read and the
// files it wrote
type RunFunc func() (documents, outputs []string, err error)

// Watcher watches the parent directories of a document set. fsnotify is
// pointed at directories so editors that save by rename are still seen.
type Watcher struct {
	Run      RunFunc
	Logger   *slog.Logger
	Debounce time.Duration

	fsw     *fsnotify.Watcher
	files   map[string]bool
	outputs map[string]bool
	dirs    map[string]bool
}

// New creates a watcher calling run on changes
func New(run RunFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		Run:      run,
		Logger:   logger,
		Debounce: DefaultDebounce,
	}
}

// Watch blocks until ctx is cancelled. documents and outputs come from the
// initial run and are replaced after every re-run. Changes to an output are
// ignored, even when it is also a document, so a run never retriggers itself.
func (w *Watcher) Watch(ctx context.Context, documents, outputs []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	w.fsw = fsw
	w.files = make(map[string]bool)
	w.dirs = make(map[string]bool)
	w.refresh(documents, outputs)

	w.Logger.Info("watch: started", slog.Int("documents", len(w.files)))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(w.Debounce)
			timerCh = timer.C
		} else {
			timer.Reset(w.Debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.Logger.Info("watch: stopped")
			return nil

		case <-timerCh:
			docs, outs, err := w.Run()
			if err != nil {
				w.Logger.Error("watch: tangle failed", slog.String("error", err.Error()))
				continue
			}
			w.Logger.Info("watch: tangled", slog.Int("documents", len(docs)))
			w.refresh(docs, outs)

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if !w.files[name] || w.outputs[name] {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.Logger.Debug("watch: changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Error("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}

// refresh replaces the watched document set and adjusts directory watches
func (w *Watcher) refresh(documents, outputs []string) {
	files := make(map[string]bool, len(documents))
	dirs := make(map[string]bool)
	for _, doc := range documents {
		abs, err := filepath.Abs(doc)
		if err != nil {
			continue
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range w.dirs {
		if !dirs[dir] {
			_ = w.fsw.Remove(dir)
			delete(w.dirs, dir)
		}
	}
	for dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.Logger.Warn("watch: add dir failed", slog.String("path", dir), slog.String("error", err.Error()))
			continue
		}
		w.dirs[dir] = true
	}
	w.files = files
	w.outputs = absSet(outputs)
}

func absSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			set[abs] = true
		}
	}
	return set
}
