package scanner

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports audio files created under watched directories, feeding
// incremental ingestion without a full re-scan.
type Watcher struct {
	fsw    *fsnotify.Watcher
	onFile func(path string)
	log    *zap.Logger
	done   chan struct{}
}

// NewWatcher builds a Watcher calling onFile for each new audio file.
func NewWatcher(onFile func(path string), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:    fsw,
		onFile: onFile,
		log:    log,
		done:   make(chan struct{}),
	}, nil
}

// Add watches a directory. fsnotify does not recurse; callers add the
// directories Discover visited.
func (w *Watcher) Add(dir string) error {
	return w.fsw.Add(dir)
}

// Run processes events until Close. Call in its own goroutine.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

// handleEvent forwards newly created audio files. Only Create is acted
// on: copying a file in emits one Create followed by several Writes, and
// reacting to each would ingest the same file repeatedly.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	if !IsAudioFile(filepath.Base(event.Name)) {
		return
	}
	w.log.Debug("audio file created", zap.String("path", event.Name))
	w.onFile(event.Name)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
