package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestLoadCoverArt_ScalesAndConverts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	writePNG(t, path, 300, 150)

	data, err := NewImageService().LoadCoverArt(context.Background(), path, 100)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestLoadCoverArt_SmallImageKeepsSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	writePNG(t, path, 40, 30)

	data, err := NewImageService().LoadCoverArt(context.Background(), path, 500)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestLoadCoverArt_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := NewImageService().LoadCoverArt(context.Background(), path, 100)
	assert.Error(t, err)
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name                  string
		w, h, maxW, maxH      int
		wantWidth, wantHeight int
	}{
		{"already fits", 800, 600, 1000, 1000, 800, 600},
		{"wide", 1500, 1000, 1000, 1000, 1000, 666},
		{"tall", 1000, 2000, 500, 500, 250, 500},
		{"square", 2000, 2000, 500, 500, 500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitDimensions(tt.w, tt.h, tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantHeight, h)
		})
	}
}
