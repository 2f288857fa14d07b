package img2ascii

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestAssembleGIF(t *testing.T) {
	frames := []*image.RGBA{
		solidFrame(8, 8, color.RGBA{R: 255, A: 255}),
		solidFrame(8, 8, color.RGBA{G: 255, A: 255}),
		solidFrame(8, 8, color.RGBA{B: 255, A: 255}),
	}

	g, err := AssembleGIF(frames, 10)
	if err != nil {
		t.Fatalf("AssembleGIF failed: %v", err)
	}

	if len(g.Image) != 3 {
		t.Errorf("Expected 3 frames, got %d", len(g.Image))
	}
	for i, delay := range g.Delay {
		// fps=10 means 100ms per frame, 10 centiseconds.
		if delay != 10 {
			t.Errorf("Frame %d: expected delay 10, got %d", i, delay)
		}
	}
	if g.LoopCount != 0 {
		t.Errorf("Animation should loop forever, got LoopCount %d", g.LoopCount)
	}
}

func TestAssembleGIFInvalidFPS(t *testing.T) {
	frames := []*image.RGBA{solidFrame(4, 4, color.RGBA{A: 255})}
	for _, fps := range []float64{0, -5} {
		_, err := AssembleGIF(frames, fps)
		var confErr *InvalidConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("fps=%g: expected InvalidConfigurationError, got %v", fps, err)
		}
	}
}

func TestAssembleGIFNoFrames(t *testing.T) {
	_, err := AssembleGIF(nil, 10)
	var confErr *InvalidConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("Expected InvalidConfigurationError, got %v", err)
	}
}

func TestWriteGIF(t *testing.T) {
	frames := []*image.RGBA{
		solidFrame(8, 8, color.RGBA{R: 255, A: 255}),
		solidFrame(8, 8, color.RGBA{G: 255, A: 255}),
		solidFrame(8, 8, color.RGBA{B: 255, A: 255}),
	}

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := WriteGIF(path, frames, 10); err != nil {
		t.Fatalf("WriteGIF failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open written gif: %v", err)
	}
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("Failed to decode written gif: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Errorf("Expected 3 frames in container, got %d", len(decoded.Image))
	}
	for i, delay := range decoded.Delay {
		if delay != 10 {
			t.Errorf("Frame %d: expected 100ms delay, got %dcs", i, delay)
		}
	}
}

func TestPlayValidation(t *testing.T) {
	var confErr *InvalidConfigurationError

	if err := Play(os.Stdout, []string{"x"}, 0); !errors.As(err, &confErr) {
		t.Errorf("fps=0: expected InvalidConfigurationError, got %v", err)
	}
	if err := Play(os.Stdout, nil, 10); !errors.As(err, &confErr) {
		t.Errorf("no frames: expected InvalidConfigurationError, got %v", err)
	}
}
