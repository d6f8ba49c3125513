package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"

	"golang.org/x/image/draw"
)

// ImageService prepares cover art for embedding in placed tracks.
//
// The same picture goes into every dummy file, so it is loaded, scaled and
// re-encoded exactly once per run.
//
// Example usage:
//
//	svc := NewImageService()
//	art, err := svc.LoadCoverArt(ctx, "cover.png", 500)
//	// art is JPEG data no larger than 500x500
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService encoding JPEG at quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// LoadCoverArt reads an image file (JPEG, PNG or GIF), scales it down to fit
// within maxSize x maxSize if necessary and returns it as JPEG data.
//
// A maxSize of zero or less disables scaling.
func (s *ImageService) LoadCoverArt(ctx context.Context, path string, maxSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cover art: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover art %s: %w", path, err)
	}

	if maxSize > 0 {
		img = s.scaleToFit(img, maxSize, maxSize)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, fmt.Errorf("encode cover art: %w", err)
	}

	return buf.Bytes(), nil
}

// scaleToFit returns img unchanged if it already fits, otherwise a copy scaled
// with Catmull-Rom so that the aspect ratio is preserved.
func (s *ImageService) scaleToFit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width, height := fitDimensions(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// fitDimensions computes the largest size with the same aspect ratio as
// width x height that fits within maxWidth x maxHeight.
//
//	fitDimensions(1500, 1000, 1000, 1000) // 1000, 666
//	fitDimensions(800, 600, 1000, 1000)   // 800, 600
func fitDimensions(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}
