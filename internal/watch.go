package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	tt "github.com/hackstyle/hlint/internal/types"
)

// debounce window so a burst of writes to one file is linted once.
const watchSettle = 100 * time.Millisecond

type watcherHandle struct {
	fs       *fsnotify.Watcher
	onResult func(path string, issues []tt.Issue, err error)
}

// StartWatching watches the given paths and re-lints any .py file that
// changes, reporting each result through onResult.
func (e *Engine) StartWatching(paths []string, onResult func(path string, issues []tt.Issue, err error)) error {
	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcherHandle{fs: fs, onResult: onResult}

	for _, path := range paths {
		err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fs.Add(p)
			}
			return nil
		})
		if err != nil {
			fs.Close()
			return fmt.Errorf("error adding path to watcher: %w", err)
		}
	}

	e.isWatching = true
	go e.watchLoop()
	return nil
}

func (e *Engine) StopWatching() error {
	if !e.isWatching {
		log.Println("not watching")
		return nil
	}
	e.isWatching = false
	return e.watcher.fs.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching {
		select {
		case event, ok := <-e.watcher.fs.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.fs.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".py") {
		return
	}
	// wait for a while after the change to consider multiple writes as one
	time.Sleep(watchSettle)
	issues, err := e.Run(event.Name)
	e.watcher.onResult(event.Name, issues, err)
}
