package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"
)

// Watcher reloads a configuration file whenever its content changes. Writes that leave the content
// unchanged, and empty intermediate states while a file is being rewritten, are ignored.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	Events chan Config
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once

	last uint64
}

// Watch starts watching the configuration file at path. The directory holding the file is watched
// so that editors replacing the file are followed.
func Watch(path string) (*Watcher, error) {
	path = filepath.Clean(path)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		Events:  make(chan Config, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		w.last = xxh3.Hash(data)
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

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
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		w.sendErr(fmt.Errorf("config: read %s: %w", w.path, err))
		return
	}
	if len(data) == 0 {
		return
	}

	sum := xxh3.Hash(data)
	if sum == w.last {
		return
	}
	w.last = sum

	conf, err := Parse(data)
	if err != nil {
		w.sendErr(fmt.Errorf("config: parse %s: %w", w.path, err))
		return
	}
	select {
	case w.Events <- conf:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
