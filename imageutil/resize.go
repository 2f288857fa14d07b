package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize resizes an RGBA image to the specified dimensions using
// Catmull-Rom interpolation, which holds up well for the downscaling the
// tile sampler does. Returns the input unchanged when the dimensions
// already match, so an exact-size source passes through bit-identical.
func Resize(img *RGBAImage, width, height int) *RGBAImage {
	if img.Width() == width && img.Height() == height {
		return img
	}

	dst := NewRGBAImage(width, height)
	draw.CatmullRom.Scale(dst.RGBA, image.Rect(0, 0, width, height),
		img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}

// ResizeToWidth resizes an image to the specified width while maintaining
// aspect ratio.
func ResizeToWidth(img *RGBAImage, width int) *RGBAImage {
	aspectRatio := float64(img.Width()) / float64(img.Height())
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	return Resize(img, width, height)
}
