// Package watch notifies a callback when a fixed set of files changes.
package watch

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	defaultPollInterval = 2 * time.Second
	debounce            = 250 * time.Millisecond
)

type fingerprint struct {
	modTime time.Time
	size    int64
}

func (f fingerprint) equal(other fingerprint) bool {
	return f.size == other.size && f.modTime.Equal(other.modTime)
}

// Watcher reports changes to a fixed set of files, debounced so a burst of
// events produces one callback. It watches the files' parent directories,
// since editors that replace a file on save emit create/rename events, and
// polls as a safety net for filesystems fsnotify cannot watch.
type Watcher struct {
	files        map[string]struct{}
	pollInterval time.Duration
	onChange     func(paths []string)
	logger       zerolog.Logger

	mu           sync.Mutex
	fingerprints map[string]fingerprint
	pending      map[string]struct{}
	timer        *time.Timer
	stopped      bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// New builds a watcher for the given files. Files that exist are
// fingerprinted up front so starting the watcher does not report them as
// changed; files that do not exist yet are reported once they appear.
func New(files []string, pollInterval time.Duration, onChange func(paths []string), logger zerolog.Logger) *Watcher {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	w := &Watcher{
		files:        make(map[string]struct{}, len(files)),
		pollInterval: pollInterval,
		onChange:     onChange,
		logger:       logger,
		fingerprints: make(map[string]fingerprint),
		pending:      make(map[string]struct{}),
		stop:         make(chan struct{}),
	}
	for _, f := range files {
		path := filepath.Clean(f)
		w.files[path] = struct{}{}
		if info, err := os.Stat(path); err == nil {
			w.fingerprints[path] = fingerprint{modTime: info.ModTime(), size: info.Size()}
		}
	}
	return w
}

// Start begins watching with fsnotify + polling fallback.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn().Err(err).Msg("fsnotify unavailable, relying on polling")
	} else {
		dirs := make(map[string]struct{})
		for path := range w.files {
			dirs[filepath.Dir(path)] = struct{}{}
		}
		for dir := range dirs {
			if err := fsw.Add(dir); err != nil {
				w.logger.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory, relying on polling")
			}
		}

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case event, ok := <-fsw.Events:
					if !ok {
						return
					}
					path := filepath.Clean(event.Name)
					if _, watched := w.files[path]; !watched {
						continue
					}
					if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
						continue
					}
					w.checkFile(path)
				case err, ok := <-fsw.Errors:
					if !ok {
						return
					}
					w.logger.Warn().Err(err).Msg("watch error")
				case <-w.stop:
					fsw.Close()
					return
				}
			}
		}()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.pollAll()
			case <-w.stop:
				return
			}
		}
	}()

	return nil
}

// Stop signals goroutines to exit, cancels any pending callback, and waits.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stop)
	w.wg.Wait()
}

// checkFile marks the file dirty when its fingerprint moved since the last
// look. Events and polling share this path, so duplicate signals collapse.
func (w *Watcher) checkFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	current := fingerprint{modTime: info.ModTime(), size: info.Size()}

	w.mu.Lock()
	last, known := w.fingerprints[path]
	w.fingerprints[path] = current
	unchanged := known && last.equal(current)
	w.mu.Unlock()

	if unchanged {
		return
	}
	w.markDirty(path)
}

func (w *Watcher) markDirty(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.pending[path] = struct{}{}
	if w.timer == nil {
		w.timer = time.AfterFunc(debounce, w.flush)
		return
	}
	w.timer.Reset(debounce)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.stopped || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	w.mu.Unlock()

	sort.Strings(paths)
	w.onChange(paths)
}

func (w *Watcher) pollAll() {
	for path := range w.files {
		w.checkFile(path)
	}
}
