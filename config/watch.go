package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/oops"
)

// Watcher reports changes to a tuning file. Events carry the file path and
// are debounced; the receiver decides when to call LoadOverrides so the
// configuration is only swapped on the simulation goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the directory holding path, since editors often
// replace files instead of writing them in place.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, oops.Code("CONFIG_WATCH_FAILED").With("path", path).Wrap(err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, oops.Code("CONFIG_WATCH_FAILED").With("path", path).Wrap(err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, oops.Code("CONFIG_WATCH_FAILED").With("path", path).Wrap(err)
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll returns true when the file changed since the last call. It never blocks.
func (w *Watcher) Poll() bool {
	changed := false
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return changed
			}
			changed = true
		default:
			return changed
		}
	}
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now
			select {
			case w.Events <- event.Name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
