package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/dummy-library/internal/config"
	"github.com/handiism/dummy-library/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctrlKey(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestNewModel_UsesSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.MissingTracksPath = "/srv/import"
	s.CreatePlaylist = true
	s.Overwrite = config.OverwriteSkip

	m := NewModel(s)

	assert.Equal(t, StateInput, m.state)
	assert.Equal(t, "/srv/import", m.textInput.Value())
	assert.True(t, m.playlist)
	assert.True(t, m.skipExisting)
	assert.Contains(t, m.View(), "Missing track lists directory")
}

func TestModel_ToggleOptions(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	before := m.textInput.Value()

	m = update(t, m, ctrlKey(tea.KeyCtrlP))
	m = update(t, m, ctrlKey(tea.KeyCtrlO))
	m = update(t, m, ctrlKey(tea.KeyCtrlS))
	m = update(t, m, ctrlKey(tea.KeyCtrlV))

	assert.True(t, m.playlist)
	assert.True(t, m.skipExisting)
	assert.True(t, m.skipMalformed)
	assert.True(t, m.verbose)
	assert.Equal(t, before, m.textInput.Value(), "option keys must not edit the path")

	s := m.effectiveSettings()
	assert.True(t, s.CreatePlaylist)
	assert.True(t, s.SkipMalformed)
	assert.Equal(t, config.OverwriteSkip, s.Overwrite)
}

func TestModel_FiltersVerboseLogs(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	m = update(t, m, ProgressMsg{Event: library.ProgressEvent{Message: "placed", Level: library.LevelVerbose}})
	assert.Empty(t, m.logs)

	m = update(t, m, ProgressMsg{Event: library.ProgressEvent{Message: "done", Level: library.LevelSuccess}})
	require.Len(t, m.logs, 1)
	assert.Equal(t, "done", m.logs[0].Message)
}

func TestModel_KeepsLastLogs(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: library.ProgressEvent{Message: "x", Level: library.LevelInfo}})
	}
	assert.Len(t, m.logs, maxLogs)
}

func TestModel_GenerateFailure(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateGenerating

	m = update(t, m, GenerateDoneMsg{Err: errors.New("encode failed")})
	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), "encode failed")
}

func TestModel_GenerateDoneLoadsQueue(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("[]"), 0644))

	s := config.DefaultSettings()
	s.MissingTracksPath = dir
	m := NewModel(s)
	m.state = StateGenerating

	m = update(t, m, GenerateDoneMsg{Created: true})
	defer m.cancel()

	assert.Equal(t, StateMaterializing, m.state)
	assert.Equal(t, []string{"a.json", "b.json"}, m.files)
	assert.Equal(t, 2, m.snapshot.FilesTotal)
	assert.Contains(t, m.View(), "a.json")
}

func TestModel_Complete(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateMaterializing

	m = update(t, m, MaterializeDoneMsg{
		Progress:  library.Progress{FilesConsumed: 1, FilesTotal: 2, TracksPlaced: 3},
		StoppedAt: "b.json",
	})

	assert.Equal(t, StateComplete, m.state)
	view := m.View()
	assert.Contains(t, view, "Tracks placed: 3")
	assert.Contains(t, view, "Stopped at b.json")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, StateInput, m.state)
	assert.Empty(t, m.logs)
}

func TestModel_IgnoresMessagesFromCancelledRun(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateGenerating, m.state)
	cancelled := m.run

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, StateError, m.state)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.Equal(t, StateInput, m.state)

	m = update(t, m, MaterializeDoneMsg{Run: cancelled, Err: context.Canceled})
	assert.Equal(t, StateInput, m.state)
	assert.NoError(t, m.err)

	m = update(t, m, GenerateDoneMsg{Run: cancelled, Created: true})
	assert.Equal(t, StateInput, m.state)
	assert.Nil(t, m.materializer)

	m = update(t, m, ProgressMsg{Run: cancelled, Event: library.ProgressEvent{Message: "late", Level: library.LevelInfo}})
	assert.Empty(t, m.logs)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateGenerating, m.state)
	assert.NotEqual(t, cancelled, m.run)

	m = update(t, m, GenerateDoneMsg{Run: cancelled, Err: errors.New("stale")})
	assert.Equal(t, StateGenerating, m.state)
	m.cancel()
}
