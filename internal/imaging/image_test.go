package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/handiism/storesearch/internal/testutil"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{60, 60, 82, 82, 60, 60},
		{100, 100, 82, 82, 82, 82},
		{1500, 1000, 1000, 1000, 1000, 666},
		{1000, 1500, 1000, 1000, 666, 1000},
		{1000, 1, 82, 82, 82, 1},
	}

	for _, tt := range tests {
		gotW, gotH := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("FitSize(%d, %d, %d, %d) = %d, %d, want %d, %d",
				tt.w, tt.h, tt.maxW, tt.maxH, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestThumbnail_ScalesDown(t *testing.T) {
	svc := NewImageService()
	data := testutil.MakeTestPNG(t, 100, 50, color.RGBA{R: 200, A: 255})

	img, err := svc.Thumbnail(context.Background(), data, 82, 82)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(82, 41) {
		t.Errorf("size = %v, want 82x41", got)
	}
}

func TestThumbnail_KeepsSmallImages(t *testing.T) {
	svc := NewImageService()
	data := testutil.MakeTestPNG(t, 60, 60, color.White)

	img, err := svc.Thumbnail(context.Background(), data, 82, 82)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(60, 60) {
		t.Errorf("size = %v, want 60x60", got)
	}
}

func TestThumbnail_Errors(t *testing.T) {
	svc := NewImageService()

	if _, err := svc.Thumbnail(context.Background(), []byte("not an image"), 82, 82); err == nil {
		t.Error("expected decode error")
	}
	if _, err := svc.Thumbnail(context.Background(), testutil.MakeTestPNG(t, 4, 4, color.White), 0, 82); err == nil {
		t.Error("expected bounds error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Thumbnail(ctx, testutil.MakeTestPNG(t, 200, 200, color.White), 82, 82); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestEncodeJPEG(t *testing.T) {
	svc := NewImageService()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))

	data, err := svc.EncodeJPEG(img)
	if err != nil {
		t.Fatalf("EncodeJPEG failed: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not a JPEG: %v", err)
	}
}

func TestAverageColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})

	got := AverageColor(img)
	want := color.RGBA{R: 127, G: 0, B: 127, A: 255}
	if got != want {
		t.Errorf("AverageColor = %v, want %v", got, want)
	}

	if got := AverageColor(image.NewRGBA(image.Rect(0, 0, 0, 0))); got != (color.RGBA{A: 255}) {
		t.Errorf("AverageColor(empty) = %v, want opaque black", got)
	}
}
