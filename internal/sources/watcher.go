package sources

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultSettle = 150 * time.Millisecond

// Watcher reports files dropped into a directory. A burst of events for the
// same path is folded into one report once writes have settled, and a path
// is reported at most once.
type Watcher struct {
	dir     string
	settle  time.Duration
	watcher *fsnotify.Watcher
	events  chan string
	done    chan struct{}
	sending sync.WaitGroup

	mu       sync.Mutex
	pending  map[string]*time.Timer
	reported map[string]bool
	closed   bool
}

// NewWatcher starts watching dir, creating it when needed. A settle of zero
// uses the default quiet period.
func NewWatcher(dir string, settle time.Duration) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	if settle <= 0 {
		settle = defaultSettle
	}
	w := &Watcher{
		dir:      dir,
		settle:   settle,
		watcher:  fsw,
		events:   make(chan string, 16),
		done:     make(chan struct{}),
		pending:  map[string]*time.Timer{},
		reported: map[string]bool{},
	}
	go w.loop()
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Events delivers the paths of settled files with an accepted extension.
// It is closed by Close.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// MarkReported suppresses future reports for paths that were imported by
// other means, such as a startup scan.
func (w *Watcher) MarkReported(paths ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range paths {
		w.reported[filepath.Clean(path)] = true
	}
}

// Close stops the watcher and closes Events. Pending reports are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	close(w.done)
	err := w.watcher.Close()
	w.sending.Wait()
	close(w.events)
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !Accepts(event.Name) {
				continue
			}
			w.schedule(filepath.Clean(event.Name))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[sources] watcher error: %v", err)
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.reported[path] {
		return
	}
	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() { w.emit(path) })
}

func (w *Watcher) emit(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	if w.closed || w.reported[path] {
		w.mu.Unlock()
		return
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		w.mu.Unlock()
		return
	}
	w.reported[path] = true
	w.sending.Add(1)
	w.mu.Unlock()
	defer w.sending.Done()

	select {
	case w.events <- path:
	case <-w.done:
	}
}

// ScanDir lists the importable files already present in dir, sorted by
// name. A missing directory yields no files.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !Accepts(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
