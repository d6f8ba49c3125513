package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")

	cfg := DefaultToneConfig()
	cfg.DurationMS = 50
	pcm := QuantizePCM16(SineWave(cfg))

	require.NoError(t, WriteWAV(path, pcm, cfg.SampleRate))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile(), "generated file is not a valid wav")
	assert.EqualValues(t, 44100, dec.SampleRate)
	assert.EqualValues(t, 1, dec.NumChans)
	assert.EqualValues(t, 16, dec.BitDepth)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, pcm, buf.Data)
}

func TestWriteWAV_InvalidSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	assert.Error(t, WriteWAV(path, []int{0}, 0))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
