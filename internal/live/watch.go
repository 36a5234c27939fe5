package live

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sarchart/sarchart/internal/logger"
)

// WatchState identifies one version of the watched file. Any difference
// between two snapshots means the file was replaced, touched or removed.
type WatchState struct {
	Inode   uint64
	ModTime time.Time
	Exists  bool
}

// Snapshot stats path. A missing or unreadable file yields the zero state.
func Snapshot(path string) WatchState {
	info, err := os.Stat(path)
	if err != nil {
		return WatchState{}
	}
	return WatchState{
		Inode:   inode(info),
		ModTime: info.ModTime(),
		Exists:  true,
	}
}

// Equal reports whether both snapshots describe the same file version.
func (s WatchState) Equal(other WatchState) bool {
	return s.Exists == other.Exists && s.Inode == other.Inode && s.ModTime.Equal(other.ModTime)
}

// watcher forwards filesystem events on one path as wake-ups. It watches
// the parent directory so replacing the file is seen as well.
type watcher struct {
	fs   *fsnotify.Watcher
	path string
	wake chan struct{}
	done chan struct{}
}

func newWatcher(path string, log logger.Logger) *watcher {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("file watching unavailable, checking %s once per refresh: %v", path, err)
		return nil
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		log.Warn("can't watch %s, checking it once per refresh: %v", filepath.Dir(path), err)
		return nil
	}

	w := &watcher{
		fs:   fs,
		path: filepath.Clean(path),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go w.loop(log)
	return w
}

func (w *watcher) loop(log logger.Logger) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			select {
			case w.wake <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Debug("watch error: %v", err)
		}
	}
}

// Wake returns the wake-up channel; nil (blocks forever) without a watcher.
func (w *watcher) Wake() <-chan struct{} {
	if w == nil {
		return nil
	}
	return w.wake
}

func (w *watcher) Close() {
	if w == nil {
		return
	}
	w.fs.Close()
	<-w.done
}
