package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/dummy-library/internal/audio"
	"github.com/handiism/dummy-library/internal/config"
	"github.com/handiism/dummy-library/internal/library"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workspace holds a temp dir with an existing dummy asset, so no encoder runs.
type workspace struct {
	dir   string
	dummy string
	lib   string
	inbox string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	w := &workspace{
		dir:   dir,
		dummy: filepath.Join(dir, "sample.mp3"),
		lib:   filepath.Join(dir, "library"),
		inbox: filepath.Join(dir, "inbox"),
	}
	require.NoError(t, os.WriteFile(w.dummy, []byte("dummy mp3 frames"), 0644))
	require.NoError(t, os.MkdirAll(w.inbox, 0755))
	return w
}

func (w *workspace) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { activeSettings = nil })

	base := []string{"--dummy-audio", w.dummy, "--library", w.lib, "--missing-tracks", w.inbox, "--log-level", "error"}
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, base...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"generate", "run", "inspect", "config"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %q", name)
	}
}

func TestNewRootCmd_HasPersistentFlags(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"config", "mode", "library", "missing-tracks", "encoder"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { setupLogger("info") })

	setupLogger("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	setupLogger("not-a-level")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestRequireSettings_FailsWhenNotInitialized(t *testing.T) {
	orig := activeSettings
	t.Cleanup(func() { activeSettings = orig })
	activeSettings = nil

	_, err := requireSettings()
	assert.Error(t, err)
}

func TestLogProgress_AllLevels(t *testing.T) {
	setupLogger("debug")
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() { setupLogger("info") })

	tests := []struct {
		level library.ProgressLevel
		want  string
	}{
		{library.LevelInfo, "info"},
		{library.LevelVerbose, "debug"},
		{library.LevelWarning, "warning"},
		{library.LevelError, "error"},
		{library.LevelSuccess, "info"},
	}
	for _, tt := range tests {
		buf.Reset()
		logProgress(library.ProgressEvent{Message: "m", Level: tt.level, File: "/tmp/a.json", Track: "/lib/x.mp3"})

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, tt.want, entry["level"], "level %v", tt.level)
		assert.Equal(t, "m", entry["msg"])
		assert.Equal(t, "a.json", entry["file"])
		assert.Equal(t, "/lib/x.mp3", entry["track"])
	}
}

func TestRun_AutoMode(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(w.inbox, "Mix_missing_1.json"),
		[]byte(`[{"Name":"X","AlbumName":"Y","ArtistNames":["Z"],"AlbumArtistNames":["Z"]}]`), 0644))

	_, err := w.execute(t, "run")
	require.NoError(t, err)

	tags, err := audio.ReadTags(filepath.Join(w.lib, "Z", "Y", "X.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "X", tags.Title)
}

func TestRun_ManualFlags(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.execute(t, "run", "--name", "Ohio", "--album", "4 Way Street",
		"--artist", "Crosby, Stills, Nash & Young", "--album-artist", "Crosby, Stills, Nash & Young")
	require.NoError(t, err)

	tags, err := audio.ReadTags(filepath.Join(w.lib, "Crosby Stills Nash  Young", "4 Way Street", "Ohio.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Crosby, Stills, Nash & Young"}, tags.Artists)
}

func TestRun_ManualSampleTrack(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.execute(t, "run", "--mode", "manual")
	require.NoError(t, err)

	sample := config.SampleTrack()
	_, err = os.Stat(filepath.Join(w.lib, "Daryl Hall  John Oates", "Voices", sample.Name+".mp3"))
	assert.NoError(t, err)
}

func TestRun_NoArtistFails(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.execute(t, "run", "--name", "X", "--album", "Y")
	assert.ErrorIs(t, err, library.ErrNoArtist)
}

func TestRun_InvalidMode(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.execute(t, "run", "--mode", "sometimes")
	assert.ErrorIs(t, err, config.ErrInvalidRunMode)
}

func TestRun_EncoderFailureAborts(t *testing.T) {
	w := newWorkspace(t)
	require.NoError(t, os.Remove(w.dummy))

	_, err := w.execute(t, "run", "--mode", "manual", "--encoder", filepath.Join(w.dir, "no-such-encoder"))
	assert.ErrorIs(t, err, audio.ErrEncodeFailed)

	_, statErr := os.Stat(w.lib)
	assert.True(t, os.IsNotExist(statErr), "nothing may be materialized after an encoder failure")
}

func TestInspect(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.execute(t, "run", "--name", "X", "--album", "Y", "--artist", "Z", "--artist", "W")
	require.NoError(t, err)

	out, err := w.execute(t, "inspect", filepath.Join(w.lib, "Z", "Y", "X.mp3"))
	require.NoError(t, err)
	assert.Contains(t, out, "Title:         X")
	assert.Contains(t, out, "Artists:       Z; W")
	assert.Contains(t, out, "Cover art:     no")
}

func TestInspect_RequiresArgs(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.execute(t, "inspect")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	w := newWorkspace(t)
	path := filepath.Join(w.dir, "out.json")

	_, err := w.execute(t, "config", "init", path)
	require.NoError(t, err)

	loaded, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, w.lib, loaded.LibraryPath)
	require.Len(t, loaded.ManualTracks, 1)

	_, err = w.execute(t, "config", "init", path)
	assert.Error(t, err, "existing file must not be overwritten")

	_, err = w.execute(t, "config", "init", path, "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.execute(t, "config", "show", "--mode", "watch")
	require.NoError(t, err)
	assert.Contains(t, out, `"run_mode": "watch"`)
	assert.Contains(t, out, `"library_path": "`+w.lib+`"`)
}

func TestRunCmd_HelpMentionsEncoderAbort(t *testing.T) {
	assert.Contains(t, newRunCmd().Long, "encoder fails, run exits with an error")
}
