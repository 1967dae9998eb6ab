package assets

import (
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher flags edits to a set of files in one directory. The watch loop runs on
// its own goroutine; the render thread polls Changed once per frame.
type ShaderWatcher struct {
	w       *fsnotify.Watcher
	names   map[string]bool
	changed atomic.Bool
	done    chan struct{}
}

// WatchShaders starts watching dir for writes to any of names.
func WatchShaders(dir string, names ...string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch shaders: %w", err)
	}
	// Watch the directory, not the files: editors often replace files on save.
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch shaders %q: %w", dir, err)
	}
	sw := &ShaderWatcher{w: w, names: map[string]bool{}, done: make(chan struct{})}
	for _, n := range names {
		sw.names[n] = true
	}
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	defer close(sw.done)
	for {
		select {
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if !sw.names[filepath.Base(ev.Name)] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				sw.changed.Store(true)
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v", err)
		}
	}
}

// Changed reports whether a watched file was touched since the last call.
func (sw *ShaderWatcher) Changed() bool { return sw.changed.Swap(false) }

// Close stops the watcher and waits for its goroutine to exit.
func (sw *ShaderWatcher) Close() error {
	err := sw.w.Close()
	<-sw.done
	return err
}
