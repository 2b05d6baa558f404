// Package shaderwatch reports edits to shader sources on disk.
package shaderwatch

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long a file must stay unchanged before it is reported.
// Editors often write a file several times per save.
const debounce = 100 * time.Millisecond

type Watcher struct {
	watcher *fsnotify.Watcher
	// Events receives the path of every changed shader file. It is closed
	// after Close.
	Events  chan string
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	log.Printf("Watching %s for shader changes", strings.Join(dirs, ", "))
	return watcher, nil
}

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
	defer close(w.Events)

	// path -> time the file has been quiet long enough to report
	pending := make(map[string]time.Time)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isShaderFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now().Add(debounce)
			if fire == nil {
				timer.Reset(debounce)
				fire = timer.C
			}
		case <-fire:
			fire = nil
			now := time.Now()
			var next time.Duration
			for name, due := range pending {
				if wait := due.Sub(now); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			if next > 0 {
				timer.Reset(next)
				fire = timer.C
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Shader watcher error: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

func isShaderFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glsl", ".vert", ".frag":
		return true
	}
	return false
}
