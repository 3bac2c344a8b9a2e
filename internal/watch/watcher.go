// Package watch feeds filesystem events into a perf.Timeline.
//
// fsnotify delivers events on its own goroutine; Recorder drains them on the
// caller's goroutine so the Timeline keeps a single owner.
package watch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-perf-timeline/internal/util"
)

// Event is a filesystem change observed by a FileWatcher.
type Event struct {
	Path      string
	Operation string
}

// MarkName is the timeline name for an event: "<op>:<base name>".
func (e Event) MarkName() string {
	return strings.ToLower(e.Operation) + ":" + filepath.Base(e.Path)
}

type FileWatcher struct {
	watcher *fsnotify.Watcher
	paths   []string
	filter  func(path string) bool
	events  chan Event
	done    chan struct{}
}

// NewFileWatcher watches every directory under paths. When exts is non-empty
// only files with one of those extensions are reported.
func NewFileWatcher(paths []string, exts ...string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		paths:   paths,
		filter:  extensionFilter(exts),
		events:  make(chan Event, 100),
		done:    make(chan struct{}),
	}

	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func extensionFilter(exts []string) func(string) bool {
	if len(exts) == 0 {
		return func(string) bool { return true }
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[strings.ToLower(ext)] = true
	}
	return func(path string) bool {
		return allowed[strings.ToLower(filepath.Ext(path))]
	}
}

func (fw *FileWatcher) addPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.filter(event.Name) {
				continue
			}
			select {
			case fw.events <- Event{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("file monitoring error", util.Field{Key: "error", Value: err.Error()})

		case <-fw.done:
			return
		}
	}
}

// Events is closed once the watcher is closed.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	select {
	case <-fw.done:
		return nil
	default:
		close(fw.done)
	}
	return fw.watcher.Close()
}
