// Package reload detects changes to the configuration document for watch
// mode. Plain mtime/size polling keeps the tool free of platform-specific
// notification APIs, which matters on the build servers this runs on.
package reload

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileState struct {
	modTime time.Time
	size    int64
}

// Watcher tracks a single configuration document and detects modifications.
type Watcher struct {
	mu    sync.Mutex
	path  string
	state fileState
	known bool
}

// NewWatcher builds a watcher for the document at path and takes the
// initial snapshot.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{path: abs}
	w.snapshot()
	return w, nil
}

// Path returns the absolute path of the watched document.
func (w *Watcher) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Check reports whether the document changed since the last snapshot and,
// if so, resets the snapshot to the current state. A document that
// disappears counts as changed; the revalidation attempt will surface the
// read error.
func (w *Watcher) Check() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := os.Stat(w.path)
	if err != nil {
		changed := w.known
		w.known = false
		return changed
	}
	if info.IsDir() {
		return false
	}

	current := fileState{modTime: info.ModTime(), size: info.Size()}
	if !w.known || current.modTime.After(w.state.modTime) || current.size != w.state.size {
		w.state = current
		w.known = true
		return true
	}
	return false
}

func (w *Watcher) snapshot() {
	info, err := os.Stat(w.path)
	if err != nil || info.IsDir() {
		w.known = false
		return
	}
	w.state = fileState{modTime: info.ModTime(), size: info.Size()}
	w.known = true
}
