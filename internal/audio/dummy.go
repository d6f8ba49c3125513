package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ioutils "github.com/handiism/dummy-library/internal/io"
)

// TempWAVName is the file name of the intermediate WAV, created next to the
// dummy asset and removed after a successful encode.
const TempWAVName = "__tmp.wav"

// EnsureDummyAudio creates the dummy audio asset at outputPath unless a file
// already exists there.
//
// The steps are:
//  1. Generate the sine tone described by tone
//  2. Write it as a mono 16-bit WAV to TempWAVName next to outputPath
//  3. Encode the WAV into outputPath with enc
//  4. Remove the WAV
//
// created reports whether the asset was generated by this call. On an encoder
// failure the WAV is left in place for inspection, no file is left at
// outputPath and the returned error wraps ErrEncodeFailed.
//
// Example:
//
//	enc := audio.NewFFmpeg("ffmpeg", "192k")
//	created, err := audio.EnsureDummyAudio(ctx, enc, "sample.mp3", audio.DefaultToneConfig())
func EnsureDummyAudio(ctx context.Context, enc Encoder, outputPath string, tone ToneConfig) (created bool, err error) {
	exists, err := ioutils.FileExists(outputPath)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := tone.Validate(); err != nil {
		return false, err
	}

	dir := filepath.Dir(outputPath)
	if err := ioutils.EnsureDir(dir); err != nil {
		return false, fmt.Errorf("create %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, TempWAVName)
	if err := WriteWAV(tmpPath, QuantizePCM16(SineWave(tone)), tone.SampleRate); err != nil {
		return false, err
	}

	if err := enc.Encode(ctx, tmpPath, outputPath, tone.SampleRate); err != nil {
		// A partial file would pass the existence check next time.
		if rmErr := os.Remove(outputPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return false, errors.Join(err, rmErr)
		}
		return false, err
	}

	if err := os.Remove(tmpPath); err != nil {
		return true, fmt.Errorf("remove %s: %w", tmpPath, err)
	}

	return true, nil
}
