package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bassista/go_grades/internal/grades"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// FileFetcher reads the dataset from a local JSON file. It is meant for
// development and offline runs; combined with Watch it refreshes on edit.
type FileFetcher struct {
	path string
	dir  string
	base string
}

// NewFileFetcher creates a fetcher for the file at path.
func NewFileFetcher(path string) (*FileFetcher, error) {
	if path == "" {
		return nil, errors.New("grades file path is required")
	}

	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}
	return &FileFetcher{path: path, dir: dir, base: filepath.Base(path)}, nil
}

func (f *FileFetcher) Source() string { return f.path }

// Fetch reads and decodes the file.
func (f *FileFetcher) Fetch(ctx context.Context) ([]grades.GradeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: f.path, Err: err}
	}

	body, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &FetchError{Source: f.path, Err: fmt.Errorf("read grades file: %w", err)}
	}
	return decodeBytes(f.path, body)
}

// Watch calls onChange whenever the file is written, created or replaced.
// It watches the parent directory so that atomic replace sequences (temp+rename)
// are observed, filters events by basename and debounces bursts into one call.
// The goroutine stops when ctx is cancelled.
func (f *FileFetcher) Watch(ctx context.Context, onChange func()) error {
	if onChange == nil {
		return errors.New("onChange callback is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(f.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, onChange)
		}
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("watcher").Debugf("stopped watching %s", f.path)
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != f.base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					logger.WithComponent("watcher").Tracef("event %s on %s", event.Op, event.Name)
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("watcher").Warnf("watcher error: %v", err)
			}
		}
	}()

	logger.WithComponent("watcher").Infof("watching %s for changes", f.path)
	return nil
}
