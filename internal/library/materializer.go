package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/handiism/dummy-library/internal/audio"
	"github.com/handiism/dummy-library/internal/config"
	ioutils "github.com/handiism/dummy-library/internal/io"
	"github.com/handiism/dummy-library/internal/missing"
	"github.com/handiism/dummy-library/internal/model"
)

// ErrNoArtist is returned for a descriptor without any track artist.
var ErrNoArtist = errors.New("descriptor has no artist")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a materialization progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	// File is the descriptor file being consumed, if any.
	File string
	// Track is the placed track path, if any.
	Track string
}

// Progress is a snapshot of the materializer's counters.
type Progress struct {
	FilesConsumed int
	FilesTotal    int
	TracksPlaced  int
	TracksSkipped int
}

// Materializer places dummy tracks into the library for each descriptor.
type Materializer struct {
	settings     *config.Settings
	parser       *missing.Parser
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	queue         *Queue
	artwork       []byte
	artworkLoaded bool

	tracksPlaced  int
	tracksSkipped int

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewMaterializer creates a Materializer consuming queue.
//
// The dummy asset at settings.DummyAudioPath must exist before any track is
// materialized; see audio.EnsureDummyAudio.
func NewMaterializer(settings *config.Settings, queue *Queue, onProgress func(ProgressEvent)) *Materializer {
	if queue == nil {
		queue = NewQueue()
	}

	return &Materializer{
		settings:     settings,
		parser:       missing.NewParser(),
		tagger:       audio.NewTagger(settings.ToTagConfig()),
		playlist:     audio.NewPlaylistCreator(model.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended, settings.ToToneConfig().Seconds()),
		imageService: ioutils.NewImageService(),
		queue:        queue,
		onProgress:   onProgress,
	}
}

// Progress returns the current counters.
func (m *Materializer) Progress() Progress {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Progress{
		FilesConsumed: m.queue.Cursor(),
		FilesTotal:    m.queue.Len(),
		TracksPlaced:  m.tracksPlaced,
		TracksSkipped: m.tracksSkipped,
	}
}

// Cursor returns the index of the next descriptor file to consume.
func (m *Materializer) Cursor() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.queue.Cursor()
}

// MaterializeOne copies the dummy asset to
// <libraryRoot>/<artist>/<album>/<name>.mp3 and tags it with d.
func (m *Materializer) MaterializeOne(ctx context.Context, libraryRoot string, d *model.Descriptor) (*model.PlacedTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(d.ArtistNames) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoArtist, d.Name)
	}

	track := model.NewPlacedTrack(libraryRoot, d)
	if err := ioutils.EnsureDir(track.Dir); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	if m.settings.Overwrite == config.OverwriteSkip {
		exists, err := ioutils.FileExists(track.Path)
		if err != nil {
			return nil, err
		}
		if exists {
			m.mu.Lock()
			m.tracksSkipped++
			m.mu.Unlock()
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", track.RelPath), Level: LevelVerbose, Track: track.Path})
			return track, nil
		}
	}

	if err := ioutils.CopyFile(ctx, m.settings.DummyAudioPath, track.Path); err != nil {
		return nil, fmt.Errorf("copy dummy audio to %s: %w", track.RelPath, err)
	}

	artwork, err := m.coverArt(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.tagger.SaveTags(track.Path, d, artwork); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.tracksPlaced++
	m.mu.Unlock()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Placed: %s", track.RelPath), Level: LevelVerbose, Track: track.Path})
	return track, nil
}

// MaterializeAll materializes descriptors in order and stops at the first error.
func (m *Materializer) MaterializeAll(ctx context.Context, libraryRoot string, descriptors []*model.Descriptor) ([]*model.PlacedTrack, error) {
	tracks := make([]*model.PlacedTrack, 0, len(descriptors))
	for _, d := range descriptors {
		track, err := m.MaterializeOne(ctx, libraryRoot, d)
		if err != nil {
			return tracks, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// ConsumeNext materializes every descriptor of the file at the cursor and
// advances the cursor by one.
//
// It returns false when the queue is exhausted, when the file cannot be read
// or holds no descriptors (the cursor stays put unless SkipMalformed is set),
// and together with an error when a track cannot be materialized.
func (m *Materializer) ConsumeNext(ctx context.Context, libraryRoot string) (bool, error) {
	m.mu.RLock()
	path, ok := m.queue.Current()
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}

	name := filepath.Base(path)
	descriptors, err := m.parser.ParseFile(path)
	if err != nil {
		if m.settings.SkipMalformed {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", name, err), Level: LevelWarning, File: path})
			m.advance()
			return true, nil
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Stopping at %s: %v", name, err), Level: LevelWarning, File: path})
		return false, nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Processing %s (%d tracks)", name, len(descriptors)), Level: LevelInfo, File: path})

	tracks, err := m.MaterializeAll(ctx, libraryRoot, descriptors)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}

	if m.settings.CreatePlaylist {
		if err := m.writePlaylist(ctx, libraryRoot, path, tracks); err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
	}

	m.advance()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s", name), Level: LevelSuccess, File: path})
	return true, nil
}

// Drain calls ConsumeNext until it returns false and reports how many files
// were consumed.
func (m *Materializer) Drain(ctx context.Context, libraryRoot string) (int, error) {
	consumed := 0
	for {
		if err := ctx.Err(); err != nil {
			return consumed, err
		}
		more, err := m.ConsumeNext(ctx, libraryRoot)
		if err != nil {
			return consumed, err
		}
		if !more {
			return consumed, nil
		}
		consumed++
	}
}

func (m *Materializer) advance() {
	m.mu.Lock()
	m.queue.Advance()
	m.mu.Unlock()
}

func (m *Materializer) push(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Push(path)
}

// enqueueUnseen queues the descriptor files in dir that the queue has never
// held, consumed ones included.
func (m *Materializer) enqueueUnseen(dir string) ([]string, error) {
	found, err := LoadQueue(dir)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	known := make(map[string]bool, m.queue.Len())
	for _, p := range m.queue.Paths() {
		known[p] = true
	}
	var added []string
	for _, p := range found.Paths() {
		if !known[p] {
			m.queue.Push(p)
			added = append(added, p)
		}
	}
	return added, nil
}

// coverArt loads the configured cover art once.
func (m *Materializer) coverArt(ctx context.Context) ([]byte, error) {
	if m.artworkLoaded || m.settings.CoverArtPath == "" {
		return m.artwork, nil
	}

	artwork, err := m.imageService.LoadCoverArt(ctx, m.settings.CoverArtPath, m.settings.CoverArtMaxSize)
	if err != nil {
		return nil, fmt.Errorf("load cover art: %w", err)
	}
	m.artwork = artwork
	m.artworkLoaded = true
	m.progress(ProgressEvent{Message: fmt.Sprintf("Loaded cover art from %s", m.settings.CoverArtPath), Level: LevelVerbose})
	return artwork, nil
}

// writePlaylist writes <libraryRoot>/<playlist name><ext> for a consumed file.
func (m *Materializer) writePlaylist(ctx context.Context, libraryRoot, descriptorPath string, tracks []*model.PlacedTrack) error {
	name := missing.PlaylistName(descriptorPath)
	fileName := model.SanitizeName(name)
	if fileName == "" {
		fileName = "playlist"
	}

	path := filepath.Join(libraryRoot, fileName+m.playlist.Extension())
	content := m.playlist.CreatePlaylist(name, tracks)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		return fmt.Errorf("write playlist: %w", err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(path)), Level: LevelSuccess, File: descriptorPath})
	return nil
}

func (m *Materializer) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
