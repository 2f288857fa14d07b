package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"math"
	"testing"
)

func TestRGBHex(t *testing.T) {
	c := RGB{R: 255, G: 16, B: 0}
	if c.Hex() != "#ff1000" {
		t.Errorf("Expected #ff1000, got %s", c.Hex())
	}
}

func TestRGBFromColor(t *testing.T) {
	c := RGBFromColor(color.RGBA{R: 12, G: 34, B: 56, A: 255})
	if c != (RGB{R: 12, G: 34, B: 56}) {
		t.Errorf("Unexpected conversion result: %v", c)
	}
}

func TestLuminance(t *testing.T) {
	img := NewRGBAImage(3, 1)
	img.SetRGB(0, 0, RGB{})
	img.SetRGB(1, 0, RGB{R: 255, G: 255, B: 255})
	img.SetRGB(2, 0, RGB{G: 255})

	lum := Luminance(img)
	if lum[0][0] != 0 {
		t.Errorf("Black should have zero luminance, got %f", lum[0][0])
	}
	if lum[0][1] != 255 {
		t.Errorf("White should have luminance 255, got %f", lum[0][1])
	}
	// BT.601 green weight.
	if math.Abs(lum[0][2]-0.587*255) > 1e-9 {
		t.Errorf("Green luminance should be %f, got %f", 0.587*255, lum[0][2])
	}
}

func TestResize(t *testing.T) {
	img := NewRGBAImage(8, 4)
	resized := Resize(img, 4, 2)
	if resized.Width() != 4 || resized.Height() != 2 {
		t.Errorf("Expected 4x2, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestResizeIdentityPassthrough(t *testing.T) {
	img := NewRGBAImage(8, 4)
	if Resize(img, 8, 4) != img {
		t.Error("Same-size resize should return the input unchanged")
	}
}

func TestResizeToWidth(t *testing.T) {
	img := NewRGBAImage(100, 50)
	resized := ResizeToWidth(img, 10)
	if resized.Width() != 10 || resized.Height() != 5 {
		t.Errorf("Expected 10x5, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestSobelFields(t *testing.T) {
	// Vertical edge: left half dark, right half bright.
	lum := make([][]float64, 6)
	for y := range lum {
		lum[y] = make([]float64, 6)
		for x := 3; x < 6; x++ {
			lum[y][x] = 255
		}
	}

	gx, gy := SobelFields(lum)

	if gx[3][2] <= 0 {
		t.Errorf("Expected positive horizontal gradient at the edge, got %f", gx[3][2])
	}
	if gy[3][2] != 0 {
		t.Errorf("Expected zero vertical gradient on a vertical edge, got %f", gy[3][2])
	}
	if gx[3][0] != 0 {
		t.Errorf("Expected zero gradient in the flat region, got %f", gx[3][0])
	}
}

func TestMeanRGB(t *testing.T) {
	img := NewRGBAImage(2, 2)
	img.SetRGB(0, 0, RGB{R: 100})
	img.SetRGB(1, 0, RGB{R: 200})
	img.SetRGB(0, 1, RGB{R: 100})
	img.SetRGB(1, 1, RGB{R: 200})

	mean := img.MeanRGB(image.Rect(0, 0, 2, 2))
	if mean.R != 150 || mean.G != 0 || mean.B != 0 {
		t.Errorf("Expected mean R=150, got %v", mean)
	}

	// Clipped to bounds rather than failing.
	mean = img.MeanRGB(image.Rect(1, 0, 5, 5))
	if mean.R != 200 {
		t.Errorf("Expected clipped mean R=200, got %v", mean)
	}

	// Empty intersection comes back black.
	if img.MeanRGB(image.Rect(10, 10, 12, 12)) != (RGB{}) {
		t.Error("Expected black for an empty intersection")
	}
}

func TestSharpenPreservesUniform(t *testing.T) {
	img := NewRGBAImage(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGB(x, y, RGB{R: 120, G: 120, B: 120})
		}
	}

	sharpened := Sharpen(img)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if sharpened.RGBAt(x, y) != (RGB{R: 120, G: 120, B: 120}) {
				t.Fatalf("Sharpening changed a uniform image at (%d,%d)", x, y)
			}
		}
	}
}

func TestDecodePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width() != 3 || img.Height() != 2 {
		t.Errorf("Expected 3x2, got %dx%d", img.Width(), img.Height())
	}
	if img.RGBAt(1, 1) != (RGB{R: 9, G: 8, B: 7}) {
		t.Errorf("Pixel did not survive decoding: %v", img.RGBAt(1, 1))
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("Expected an error for garbage input")
	}
}

func TestDecodeGIF(t *testing.T) {
	palette := color.Palette{
		color.RGBA{A: 255},
		color.RGBA{R: 255, A: 255},
	}
	frame := func(idx uint8) *image.Paletted {
		p := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
		for i := range p.Pix {
			p.Pix[i] = idx
		}
		return p
	}

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image: []*image.Paletted{frame(0), frame(1)},
		Delay: []int{5, 5},
	})
	if err != nil {
		t.Fatal(err)
	}

	frames, err := DecodeGIF(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeGIF failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	if frames[0].RGBAt(0, 0) != (RGB{}) {
		t.Errorf("Frame 0 should be black, got %v", frames[0].RGBAt(0, 0))
	}
	if frames[1].RGBAt(0, 0) != (RGB{R: 255}) {
		t.Errorf("Frame 1 should be red, got %v", frames[1].RGBAt(0, 0))
	}
}

func TestFromImageNormalizesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 6, 7))
	src.SetRGBA(2, 3, color.RGBA{R: 42, A: 255})

	img := FromImage(src)
	if img.Bounds().Min != (image.Point{}) {
		t.Errorf("Expected origin bounds, got %v", img.Bounds())
	}
	if img.RGBAt(0, 0) != (RGB{R: 42}) {
		t.Errorf("Pixel should move to the origin, got %v", img.RGBAt(0, 0))
	}
}
