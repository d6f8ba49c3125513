package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavChannels  = 1
	wavFormatPCM = 1
)

// WriteWAV writes 16-bit PCM samples as an uncompressed mono WAV file.
// An existing file at path is truncated.
func WriteWAV(path string, pcm []int, sampleRate int) (err error) {
	if sampleRate < 1 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	enc := wav.NewEncoder(file, sampleRate, wavBitDepth, wavChannels, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Data:           pcm,
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: wavChannels},
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}

	return nil
}
