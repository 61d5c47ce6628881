package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService decodes and scales artwork for result thumbnails.
//
// ImageService is used to:
//   - Decode downloaded artwork (JPEG, PNG, GIF)
//   - Scale it to fit the thumbnail button
//   - Re-encode thumbnails as JPEG for export
//   - Summarise a thumbnail as one colour for terminal tiles
//
// Example usage:
//
//	svc := NewImageService()
//
//	img, err := svc.Thumbnail(ctx, data, 82, 82)
//	jpegData, _ := svc.EncodeJPEG(img)
type ImageService struct {
	scaler draw.Scaler
}

// NewImageService creates a new ImageService using Catmull-Rom scaling.
func NewImageService() *ImageService {
	return &ImageService{scaler: draw.CatmullRom}
}

// Thumbnail decodes data and scales it to fit within maxWidth × maxHeight.
//
// The aspect ratio is preserved. Images that already fit are returned as
// decoded. ctx is checked before the (comparatively slow) scaling step.
//
// Returns an error if the data is not a supported image or either bound is
// not positive.
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, maxWidth, maxHeight int) (image.Image, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("invalid thumbnail bounds %dx%d", maxWidth, maxHeight)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := FitSize(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.scaler.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, nil
}

// FitSize returns the largest size with the aspect ratio of width × height
// that fits within maxWidth × maxHeight. Sizes that already fit are
// returned unchanged.
//
// Example:
//
//	FitSize(1500, 1000, 1000, 1000) // 1000, 666
//	FitSize(60, 60, 82, 82)         // 60, 60
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(int(float64(maxHeight)*ratio), 1), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(int(float64(maxWidth)/ratio), 1)
}

// EncodeJPEG encodes img as JPEG with 90% quality.
func (s *ImageService) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AverageColor returns the mean colour of img. An empty image is black.
func AverageColor(img image.Image) color.RGBA {
	bounds := img.Bounds()
	n := uint64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return color.RGBA{A: 0xff}
	}

	var r, g, b uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			b += uint64(cb >> 8)
		}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 0xff}
}
