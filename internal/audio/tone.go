package audio

import (
	"fmt"
	"math"
)

// ToneConfig describes the sine tone used as the dummy audio asset.
type ToneConfig struct {
	// Frequency of the tone in hertz.
	Frequency float64

	// Amplitude as a fraction of full scale. Clamped to [0, 1].
	Amplitude float64

	// SampleRate in hertz, used for both the WAV and the encoded file.
	SampleRate int

	// DurationMS is the tone length in milliseconds.
	DurationMS int

	// Bitrate is passed to the encoder verbatim, e.g. "192k".
	Bitrate string
}

// DefaultToneConfig returns a three second 440 Hz tone at half scale,
// 44.1 kHz, encoded at 192 kbit/s.
func DefaultToneConfig() ToneConfig {
	return ToneConfig{
		Frequency:  440,
		Amplitude:  0.5,
		SampleRate: 44100,
		DurationMS: 3000,
		Bitrate:    "192k",
	}
}

// Validate reports settings that cannot produce a tone.
func (c ToneConfig) Validate() error {
	if c.SampleRate < 1 {
		return fmt.Errorf("invalid sample rate: %d", c.SampleRate)
	}
	if c.DurationMS < 1 {
		return fmt.Errorf("invalid duration: %dms", c.DurationMS)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("invalid frequency: %g", c.Frequency)
	}
	return nil
}

// SampleCount returns round(sampleRate/1000 * durationMS).
func (c ToneConfig) SampleCount() int {
	return int(math.Round(float64(c.SampleRate) / 1000 * float64(c.DurationMS)))
}

// Seconds returns the tone length in seconds.
func (c ToneConfig) Seconds() float64 {
	return float64(c.DurationMS) / 1000
}

// SineWave generates the tone as samples in [-amplitude, amplitude].
func SineWave(cfg ToneConfig) []float64 {
	ampl := math.Max(0, math.Min(1, cfg.Amplitude))
	rate := float64(cfg.SampleRate)

	samples := make([]float64, cfg.SampleCount())
	for i := range samples {
		samples[i] = ampl * math.Sin(2*math.Pi*cfg.Frequency*(float64(i)/rate))
	}
	return samples
}

// QuantizePCM16 converts samples to signed 16-bit values using
// round(s * 32767). Samples are clamped to [-1, 1] first.
func QuantizePCM16(samples []float64) []int {
	pcm := make([]int, len(samples))
	for i, s := range samples {
		clamped := math.Max(-1.0, math.Min(1.0, s))
		pcm[i] = int(math.Round(clamped * math.MaxInt16))
	}
	return pcm
}
