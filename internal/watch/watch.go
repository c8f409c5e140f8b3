// Package watch notices changes to a repository's index, HEAD and refs.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	log "github.com/rit-tui/rit/internal/log"
)

// Debounce is the minimum time between two refreshes caused by the watcher.
const Debounce = 600 * time.Millisecond

// Service watches a git directory and signals activity on a one slot
// channel. Bursts collapse into a single pending signal.
type Service struct {
	gitDir string

	started     bool
	waiting     bool
	roots       []string
	events      chan struct{}
	done        chan struct{}
	paths       map[string]struct{}
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	lastRefresh time.Time
}

// New returns a watcher for gitDir. Nothing is watched until Start.
func New(gitDir string) *Service {
	return &Service{gitDir: gitDir}
}

// Start registers the git directory and its refs tree and starts the
// forwarding goroutine. It reports false when already started or when
// there is no git directory.
func (w *Service) Start() (bool, error) {
	if w.started || w.gitDir == "" {
		return false, nil
	}
	info, err := os.Stat(w.gitDir)
	if err != nil || !info.IsDir() {
		log.Printf("watch: no git dir at %q", w.gitDir)
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.started = true
	w.watcher = watcher
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.paths = make(map[string]struct{})
	w.roots = []string{filepath.Join(w.gitDir, "refs")}
	w.addWatchDir(w.gitDir)
	for _, root := range w.roots {
		w.addWatchTree(root)
	}

	go w.run()
	log.Printf("watch: started on %s", w.gitDir)
	return true, nil
}

// Stop stops the watcher.
func (w *Service) Stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

// Started reports whether the watcher is running.
func (w *Service) Started() bool {
	return w.started
}

// NextEvent returns the event channel unless a wait is already in flight.
func (w *Service) NextEvent() <-chan struct{} {
	if w.events == nil || w.waiting {
		return nil
	}
	w.waiting = true
	return w.events
}

// Done is closed by Stop. It is nil before the first Start.
func (w *Service) Done() <-chan struct{} {
	return w.done
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *Service) ResetWaiting() {
	w.waiting = false
}

// ShouldRefresh applies the debounce window.
func (w *Service) ShouldRefresh(now time.Time) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < Debounce {
		return false
	}
	w.lastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity.
func (w *Service) Signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

// Relevant reports whether a change to path can alter branch or status.
func (w *Service) Relevant(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".lock") {
		return false
	}
	if filepath.Dir(path) == w.gitDir {
		switch base {
		case "index", "HEAD", "packed-refs", "MERGE_HEAD", "CHERRY_PICK_HEAD":
			return true
		}
	}
	return w.isUnderRoot(path)
}

func (w *Service) isUnderRoot(path string) bool {
	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Service) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 && w.isUnderRoot(event.Name) {
				w.addWatchDir(event.Name)
			}
			if !w.Relevant(event.Name) {
				continue
			}
			w.Signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Service) addWatchDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		log.Printf("watch: add %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}

func (w *Service) addWatchTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.addWatchDir(path)
		return nil
	})
}
