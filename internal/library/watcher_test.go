package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ConsumesNewFiles(t *testing.T) {
	f := newFixture(t)
	f.writeDescriptors(t, "a.json", `[{"Name":"Existing","AlbumName":"Y","ArtistNames":["Z"]}]`)
	m := f.materializer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx, f.root) }()

	existing := filepath.Join(f.root, "Z", "Y", "Existing.mp3")
	require.Eventually(t, func() bool {
		_, err := os.Stat(existing)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	f.writeDescriptors(t, "b.json", singleXYZ)

	placed := filepath.Join(f.root, "Z", "Y", "X.mp3")
	require.Eventually(t, func() bool {
		_, err := os.Stat(placed)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	assert.Equal(t, 2, m.Progress().FilesConsumed)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	f := newFixture(t)
	m := f.materializer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx, f.root) }()

	require.Eventually(t, func() bool { return f.hasEvent(LevelInfo) }, 5*time.Second, 10*time.Millisecond)
	f.writeDescriptors(t, "notes.txt", singleXYZ)

	err := <-done
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, m.Progress().FilesTotal)
}

func TestWatch_PicksUpFilesAddedAfterLoad(t *testing.T) {
	f := newFixture(t)
	f.writeDescriptors(t, "a.json", `[{"Name":"Existing","AlbumName":"Y","ArtistNames":["Z"]}]`)
	m := f.materializer(t)
	// Written after the queue was listed but before Watch starts.
	f.writeDescriptors(t, "b.json", singleXYZ)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx, f.root) }()

	placed := filepath.Join(f.root, "Z", "Y", "X.mp3")
	require.Eventually(t, func() bool {
		_, err := os.Stat(placed)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 2, m.Progress().FilesTotal)
	assert.Equal(t, 2, m.Progress().FilesConsumed)
}
