package img2ascii

import (
	"image"
	"math/rand"
	"runtime"
	"strings"
	"sync"

	"github.com/asciigen/img2ascii/imageutil"
)

// Tile is one glyph-cell-sized region of a prepared frame, sampled into
// the fields the metrics consume. Tiles are derived on demand during
// conversion and never persisted.
type Tile struct {
	Lum    []float64 // luminance 0..255 after brightness/noise adjustment
	Gx, Gy []float64 // Sobel fields; nil unless edge detection is on
	Color  imageutil.RGB
}

// Cell is one converted tile: the winning character plus the tile's mean
// source color.
type Cell struct {
	Char  rune
	Color imageutil.RGB
}

// CharGrid is the row-major character grid produced from one frame.
type CharGrid struct {
	Cells []Cell
	Cols  int
	Rows  int
}

// At returns the cell at the given row and column.
func (g *CharGrid) At(row, col int) Cell {
	return g.Cells[row*g.Cols+col]
}

// String renders the grid as plain text, rows joined by line breaks.
func (g *CharGrid) String() string {
	var b strings.Builder
	b.Grow(g.Rows * (g.Cols + 1))
	for row := 0; row < g.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.Cols; col++ {
			b.WriteRune(g.At(row, col).Char)
		}
	}
	return b.String()
}

// Converter holds the settings for image-to-character-grid conversion.
// A Converter is safe for concurrent use once built; Convert itself only
// reads it.
type Converter struct {
	Font             *Font
	Metric           Metric
	Width            int     // output column count
	BrightnessOffset float64 // additive luminance bias before matching
	NoiseScale       float64 // bounded dither perturbation magnitude
	Threads          int     // worker count for tile conversion
	EdgeDetection    bool    // bias matching toward gradient alignment
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter for the given font. Defaults: grad
// metric, width 80, one worker per CPU, edge detection on.
func NewConverter(font *Font, opts ...ConverterOption) *Converter {
	c := &Converter{
		Font:          font,
		Metric:        metrics["grad"],
		Width:         80,
		Threads:       runtime.NumCPU(),
		EdgeDetection: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMetric sets the similarity metric.
func WithMetric(m Metric) ConverterOption {
	return func(c *Converter) { c.Metric = m }
}

// WithWidth sets the output column count.
func WithWidth(width int) ConverterOption {
	return func(c *Converter) { c.Width = width }
}

// WithThreads sets the worker count for tile conversion.
func WithThreads(n int) ConverterOption {
	return func(c *Converter) { c.Threads = n }
}

// WithBrightnessOffset sets the additive luminance bias.
func WithBrightnessOffset(offset float64) ConverterOption {
	return func(c *Converter) { c.BrightnessOffset = offset }
}

// WithNoiseScale sets the dither perturbation magnitude.
func WithNoiseScale(scale float64) ConverterOption {
	return func(c *Converter) { c.NoiseScale = scale }
}

// WithEdgeDetection enables or disables gradient-biased matching.
func WithEdgeDetection(on bool) ConverterOption {
	return func(c *Converter) { c.EdgeDetection = on }
}

// Convert turns one frame into a character grid. The frame is scaled so
// that Width glyph cells span it horizontally, the row count follows
// from the aspect ratio, and every tile is matched against the full
// catalog under the configured metric.
//
// Tiles are independent: workers share only the read-only catalog and
// prepared frame, and each writes a disjoint output slot, so any thread
// count produces an identical grid. Glyph selection is deterministic;
// ties go to the glyph listed first in the catalog. Noise, when enabled,
// is seeded per tile index so it does not break either guarantee.
func (c *Converter) Convert(frame *imageutil.RGBAImage) (*CharGrid, error) {
	if frame == nil || frame.Width() == 0 || frame.Height() == 0 {
		w, h := 0, 0
		if frame != nil {
			w, h = frame.Width(), frame.Height()
		}
		return nil, &EmptyImageError{Width: w, Height: h}
	}
	if c.Width < 1 {
		return nil, &InvalidConfigurationError{
			Option: "width",
			Reason: "output column count must be >= 1",
		}
	}
	if c.Threads < 1 {
		return nil, &InvalidThreadCountError{Count: c.Threads}
	}

	cellW, cellH := c.Font.CellDims()

	// Scale the frame to an exact grid multiple: Width*cellW across,
	// with the row count chosen to preserve aspect ratio. Fractional
	// remainders are absorbed by the resample instead of padding.
	scaledW := c.Width * cellW
	scale := float64(scaledW) / float64(frame.Width())
	rows := int(float64(frame.Height())*scale/float64(cellH) + 0.5)
	if rows < 1 {
		rows = 1
	}

	scaled := imageutil.Resize(frame, scaledW, rows*cellH)
	if scaled != frame {
		scaled = imageutil.Sharpen(scaled)
	}

	lum := imageutil.Luminance(scaled)
	var gx, gy [][]float64
	if c.EdgeDetection {
		gx, gy = imageutil.SobelFields(lum)
	}

	grid := &CharGrid{
		Cells: make([]Cell, c.Width*rows),
		Cols:  c.Width,
		Rows:  rows,
	}

	// Fan out rows across workers and join before returning; a partial
	// grid never escapes.
	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < c.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				for col := 0; col < c.Width; col++ {
					idx := row*c.Width + col
					grid.Cells[idx] = c.convertTile(scaled, lum, gx, gy, row, col, idx)
				}
			}
		}()
	}
	for row := 0; row < rows; row++ {
		jobs <- row
	}
	close(jobs)
	wg.Wait()

	return grid, nil
}

// convertTile samples one tile and picks its best-matching glyph.
func (c *Converter) convertTile(
	frame *imageutil.RGBAImage,
	lum, gx, gy [][]float64,
	row, col, idx int,
) Cell {
	cellW, cellH := c.Font.CellDims()
	x0, y0 := col*cellW, row*cellH

	tile := Tile{
		Lum: make([]float64, cellW*cellH),
		Color: frame.MeanRGB(
			image.Rect(x0, y0, x0+cellW, y0+cellH)),
	}

	var rng *rand.Rand
	if c.NoiseScale != 0 {
		rng = rand.New(rand.NewSource(int64(idx)))
	}

	for y := 0; y < cellH; y++ {
		for x := 0; x < cellW; x++ {
			v := lum[y0+y][x0+x] + c.BrightnessOffset
			if rng != nil {
				v += (rng.Float64()*2 - 1) * c.NoiseScale
			}
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			tile.Lum[y*cellW+x] = v
		}
	}

	if gx != nil {
		tile.Gx = make([]float64, cellW*cellH)
		tile.Gy = make([]float64, cellW*cellH)
		for y := 0; y < cellH; y++ {
			for x := 0; x < cellW; x++ {
				tile.Gx[y*cellW+x] = gx[y0+y][x0+x]
				tile.Gy[y*cellW+x] = gy[y0+y][x0+x]
			}
		}
	}

	// Full catalog scan; strict less-than keeps the first glyph on ties.
	best := 0
	bestScore := c.Metric.Score(&tile, &c.Font.Glyphs[0])
	for i := 1; i < len(c.Font.Glyphs); i++ {
		if score := c.Metric.Score(&tile, &c.Font.Glyphs[i]); score < bestScore {
			best = i
			bestScore = score
		}
	}

	return Cell{
		Char:  c.Font.Glyphs[best].Char,
		Color: tile.Color,
	}
}
