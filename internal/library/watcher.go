package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	ioutils "github.com/handiism/dummy-library/internal/io"
)

// settleDelay is how long the directory must be quiet before new files are
// consumed, so that files still being written are not read half-way.
const settleDelay = 250 * time.Millisecond

// Watch drains the queue, then watches the missing tracks directory and
// consumes every descriptor file created or rewritten there.
//
// Watch returns when ctx is cancelled, or with the first materialization
// error.
func (m *Materializer) Watch(ctx context.Context, libraryRoot string) error {
	dir := m.settings.MissingTracksPath
	if err := ioutils.EnsureDir(dir); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// Files created before the watch was added produce no event.
	added, err := m.enqueueUnseen(dir)
	if err != nil {
		return err
	}
	for _, p := range added {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Queued %s", filepath.Base(p)), Level: LevelVerbose, File: p})
	}

	if _, err := m.Drain(ctx, libraryRoot); err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Watching %s", dir), Level: LevelInfo})

	var settle <-chan time.Time
	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return errors.New("watcher channel closed")
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !IsDescriptorFile(ev.Name) {
				continue
			}
			if m.push(ev.Name) {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Queued %s", filepath.Base(ev.Name)), Level: LevelVerbose, File: ev.Name})
			}
			settle = time.After(settleDelay)
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("watcher channel closed")
			}
			return err
		case <-settle:
			settle = nil
			if _, err := m.Drain(ctx, libraryRoot); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
