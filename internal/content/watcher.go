package content

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/teamsphere/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher signals when a manifest file changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	changes  chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	log      *zap.Logger
}

// NewWatcher watches path. The parent directory is watched so that
// editors which save by rename are still seen.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		log:      logger.Named("watcher"),
	}
	w.wg.Add(1)
	go w.loop()

	w.log.Info("watching manifest", zap.String("path", abs))
	return w, nil
}

// Changes delivers one value per settled burst of writes. Pending signals
// are coalesced, so a slow reader sees at most one.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			w.log.Debug("manifest changed", zap.String("path", w.path))
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
