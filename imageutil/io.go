package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decode decodes a single image from raw bytes.
// Supports PNG, JPEG, GIF (first frame), TIFF and WebP.
func Decode(data []byte) (*RGBAImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeGIF decodes all frames of an animated GIF, composing each frame
// onto the running canvas so partial frames come out as full images.
// Frame order is preserved. Handles the background and previous disposal
// modes well enough for typical animations.
func DecodeGIF(data []byte) ([]*RGBAImage, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]*RGBAImage, 0, len(g.Image))
	for i, frame := range g.Image {
		var snapshot *image.RGBA
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			snapshot = image.NewRGBA(bounds)
			copy(snapshot.Pix, canvas.Pix)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		composed := NewRGBAImage(bounds.Dx(), bounds.Dy())
		copy(composed.Pix, canvas.Pix)
		frames = append(frames, composed)

		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				draw.Draw(canvas, frame.Bounds(), image.Transparent,
					image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				copy(canvas.Pix, snapshot.Pix)
			}
		}
	}

	return frames, nil
}

// LoadImage loads a single image from the specified path.
func LoadImage(path string) (*RGBAImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Decode(data)
}

// SaveImage saves an image to the specified path. Format is determined
// by file extension (png, jpg/jpeg); anything else falls back to PNG.
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		return png.Encode(f, img)
	}
}
