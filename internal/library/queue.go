package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// descriptorExt is the extension of missing track list files.
const descriptorExt = ".json"

// Queue is an ordered list of descriptor files with a cursor.
//
// The cursor starts at 0, never moves backwards and never passes Len().
// Queue is not safe for concurrent use; Materializer guards its queue.
type Queue struct {
	paths  []string
	cursor int
}

// NewQueue creates a queue over paths in the given order.
func NewQueue(paths ...string) *Queue {
	return &Queue{paths: append([]string(nil), paths...)}
}

// LoadQueue lists the descriptor files in dir, sorted by name.
//
// A missing directory gives an empty queue: the plugin creates it on its
// first import.
func LoadQueue(dir string) (*Queue, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewQueue(), nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsDescriptorFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return NewQueue(paths...), nil
}

// IsDescriptorFile reports whether name looks like a missing track list.
func IsDescriptorFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), descriptorExt)
}

// Len returns the number of files in the queue.
func (q *Queue) Len() int { return len(q.paths) }

// Cursor returns the index of the next file to consume.
func (q *Queue) Cursor() int { return q.cursor }

// Done reports whether every file has been consumed.
func (q *Queue) Done() bool { return q.cursor >= len(q.paths) }

// Current returns the file at the cursor.
func (q *Queue) Current() (string, bool) {
	if q.Done() {
		return "", false
	}
	return q.paths[q.cursor], true
}

// Advance moves the cursor past the current file.
func (q *Queue) Advance() {
	if !q.Done() {
		q.cursor++
	}
}

// Push appends path unless it is already waiting to be consumed.
// A file that was consumed before is queued again.
func (q *Queue) Push(path string) bool {
	for _, p := range q.paths[q.cursor:] {
		if p == path {
			return false
		}
	}
	q.paths = append(q.paths, path)
	return true
}

// Paths returns a copy of all queued paths, consumed ones included.
func (q *Queue) Paths() []string {
	return append([]string(nil), q.paths...)
}
