package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrEncodeFailed is returned when the external encoder cannot be started or
// exits with a nonzero status.
var ErrEncodeFailed = errors.New("encode failed")

// Encoder transcodes an uncompressed audio file into a compressed one.
type Encoder interface {
	Encode(ctx context.Context, input, output string, sampleRate int) error
}

// FFmpeg encodes through an ffmpeg executable.
//
// The command line is fixed apart from the sample rate and bitrate:
//
//	ffmpeg -i <input> -vn -ar <rate> -ac 1 -b:a <bitrate> <output>
//
// All paths are made absolute and symlink-resolved before the call.
type FFmpeg struct {
	// Path to the executable. A bare name is looked up on PATH.
	Path string

	// Bitrate for the audio stream, e.g. "192k".
	Bitrate string

	// Stdout and Stderr receive the encoder output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// OnCommand, if set, is called with the full argv before running.
	OnCommand func(argv []string)
}

// NewFFmpeg creates an FFmpeg encoder. An empty bitrate defaults to "192k".
func NewFFmpeg(path, bitrate string) *FFmpeg {
	if bitrate == "" {
		bitrate = DefaultToneConfig().Bitrate
	}
	return &FFmpeg{Path: path, Bitrate: bitrate}
}

// Args returns the encoder arguments, excluding the executable.
func (f *FFmpeg) Args(input, output string, sampleRate int) []string {
	return []string{
		"-i", input,
		"-vn",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		"-b:a", f.Bitrate,
		output,
	}
}

// Encode runs the encoder and waits for it to finish.
func (f *FFmpeg) Encode(ctx context.Context, input, output string, sampleRate int) error {
	exe, err := resolveExecutable(f.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	in, err := resolvePath(input)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	out, err := resolvePath(output)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	args := f.Args(in, out, sampleRate)
	if f.OnCommand != nil {
		f.OnCommand(append([]string{exe}, args...))
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = f.Stdout
	cmd.Stderr = f.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodeFailed, filepath.Base(exe), err)
	}

	return nil
}

// resolveExecutable turns the configured encoder into a canonical path.
func resolveExecutable(path string) (string, error) {
	if path == "" {
		return "", errors.New("no encoder configured")
	}
	if !strings.ContainsRune(path, filepath.Separator) && !strings.ContainsRune(path, '/') {
		found, err := exec.LookPath(path)
		if err != nil {
			return "", err
		}
		path = found
	}
	return resolvePath(path)
}

// resolvePath returns an absolute path with symlinks resolved as far as the
// path exists. A missing final element (the encoder output) is kept as is.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs)), nil
	}
	return abs, nil
}
