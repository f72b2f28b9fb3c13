package serve

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// watcher turns bursts of file events into single rebuild calls.
type watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	ignore   string
}

// newWatcher watches every directory under roots. A root that is a file is
// watched through its parent directory. Missing roots are skipped. Events
// at or below ignore, the output directory, are dropped so a build never
// triggers another.
func newWatcher(roots []string, ignore string, debounce time.Duration) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	w := &watcher{fsw: fsw, debounce: debounce}
	if ignore != "" {
		if abs, err := filepath.Abs(ignore); err == nil {
			w.ignore = abs
		}
	}

	for _, root := range roots {
		if root == "" {
			continue
		}
		info, err := os.Stat(root)
		if err != nil {
			log.Debug().Str("path", root).Msg("not watching missing path")
			continue
		}
		if !info.IsDir() {
			w.add(filepath.Dir(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("walking watch dir")
				return nil
			}
			if d.IsDir() {
				if w.ignored(path) {
					return filepath.SkipDir
				}
				w.add(path)
			}
			return nil
		})
		if err != nil {
			_ = fsw.Close()
			return nil, errors.Wrapf(err, "watching %s", root)
		}
	}
	return w, nil
}

func (w *watcher) add(dir string) {
	if err := w.fsw.Add(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("failed to watch")
	}
}

func (w *watcher) ignored(name string) bool {
	if w.ignore == "" {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(w.ignore, abs)
	return err == nil && !strings.HasPrefix(rel, "..")
}

func (w *watcher) close() error {
	return w.fsw.Close()
}

// run calls rebuild once things have been quiet for the debounce period
// after a change. Rebuilds never overlap. It returns when ctx is done or the
// watcher is closed.
func (w *watcher) run(ctx context.Context, rebuild func()) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	fire := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		log.Info().Msg("rebuilding site")
		rebuild()
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.ignored(event.Name) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.add(event.Name)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, fire)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}
