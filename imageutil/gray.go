package imageutil

// Luminance converts an RGBA image to a row-major grayscale field with
// values in [0, 255], using the BT.601 luminance formula:
// Y = 0.299*R + 0.587*G + 0.114*B.
func Luminance(img *RGBAImage) [][]float64 {
	width, height := img.Width(), img.Height()
	lum := make([][]float64, height)

	for y := 0; y < height; y++ {
		lum[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			lum[y][x] = 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		}
	}

	return lum
}

// SobelFields computes horizontal and vertical Sobel gradients over a
// luminance field. The returned fields have the same dimensions as the
// input; border pixels use edge replication.
func SobelFields(lum [][]float64) (gx, gy [][]float64) {
	sobelX := NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY := NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})

	return ConvolveFloat(lum, sobelX), ConvolveFloat(lum, sobelY)
}
