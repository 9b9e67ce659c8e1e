package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher re-parses source files below the codebase root as they change
// on disk and reports each update through OnChange.
type FileWatcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopOnce sync.Once
	stopErr  error

	// OnChange is called after a file was parsed (f non-nil) or removed
	// (f nil). It runs on the watcher goroutine.
	OnChange func(path string, f *FileInfo)
}

func NewFileWatcher(c *Codebase) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		codebase: c,
		watcher:  w,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start registers every directory below the root and begins processing
// events in the background.
func (w *FileWatcher) Start() error {
	if w.started {
		return nil
	}
	if err := w.addTree(w.codebase.RootDir()); err != nil {
		return err
	}
	w.started = true
	go w.run()
	return nil
}

// Stop ends event processing and waits for the watcher goroutine. It is
// safe to call more than once and without a successful Start.
func (w *FileWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.stopErr = w.watcher.Close()
		if w.started {
			<-w.doneCh
		}
	})
	return w.stopErr
}

// fsnotify is not recursive, so each directory is added on its own.
func (w *FileWatcher) addTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *FileWatcher) run() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				log.Warningf("watch %s: %s", ev.Name, err)
			}
			return
		}
	}
	if filepath.Ext(ev.Name) != Ext {
		return
	}

	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		log.Infof("removed %s", ev.Name)
		w.codebase.RemoveFile(ev.Name)
		w.notify(ev.Name, nil)
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		if err := w.codebase.ScanFile(ev.Name); err != nil {
			log.Warningf("scan %s: %s", ev.Name, err)
			return
		}
		log.Infof("updated %s", ev.Name)
		w.notify(ev.Name, w.codebase.GetFile(ev.Name))
	}
}

func (w *FileWatcher) notify(path string, f *FileInfo) {
	if w.OnChange != nil {
		w.OnChange(path, f)
	}
}
