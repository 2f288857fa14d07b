package img2ascii

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"strings"

	"github.com/asciigen/img2ascii/imageutil"
)

// The renderers below are pure functions of a character grid (plus the
// font for the bitmap variants); none keeps state across calls. Plain
// text rendering lives on CharGrid.String.

// RenderANSI renders the grid as terminal text with 24-bit ANSI color
// escapes carrying each cell's sampled color. Escape sequences are only
// emitted when the color changes from the previous cell; a single reset
// ends the string.
func RenderANSI(g *CharGrid) string {
	var b strings.Builder
	b.Grow(g.Rows * g.Cols * 8)

	var prev imageutil.RGB
	first := true
	for row := 0; row < g.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.Cols; col++ {
			cell := g.At(row, col)
			if first || cell.Color != prev {
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm",
					cell.Color.R, cell.Color.G, cell.Color.B)
				prev = cell.Color
				first = false
			}
			b.WriteRune(cell.Char)
		}
	}
	b.WriteString("\x1b[0m")
	return b.String()
}

// RenderHTML renders the grid as inline-colored HTML spans with <br>
// line breaks, suitable for embedding in a JSON payload. Consumers are
// expected to place the result in a preformatted context. Runs of
// same-colored cells share one span.
func RenderHTML(g *CharGrid) string {
	var b strings.Builder
	b.Grow(g.Rows * g.Cols * 16)

	for row := 0; row < g.Rows; row++ {
		if row > 0 {
			b.WriteString("<br>")
		}
		var run strings.Builder
		var runColor imageutil.RGB
		flush := func() {
			if run.Len() > 0 {
				fmt.Fprintf(&b, `<span style="color:%s">%s</span>`,
					runColor.Hex(), html.EscapeString(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < g.Cols; col++ {
			cell := g.At(row, col)
			if run.Len() > 0 && cell.Color != runColor {
				flush()
			}
			runColor = cell.Color
			run.WriteRune(cell.Char)
		}
		flush()
	}
	return b.String()
}

// RenderBitmap stamps each cell's glyph mask into a monochrome image,
// black ink on a white background. Cells whose character is missing from
// the catalog come out blank.
func RenderBitmap(g *CharGrid, f *Font) *image.RGBA {
	return stampGrid(g, f, func(Cell) imageutil.RGB {
		return imageutil.RGB{}
	}, imageutil.RGB{R: 255, G: 255, B: 255})
}

// RenderColorBitmap stamps each cell's glyph mask using the cell's
// sampled color as ink on a black background, matching what a color
// terminal shows.
func RenderColorBitmap(g *CharGrid, f *Font) *image.RGBA {
	return stampGrid(g, f, func(c Cell) imageutil.RGB {
		return c.Color
	}, imageutil.RGB{})
}

// stampGrid renders every cell's mask at its grid position.
func stampGrid(g *CharGrid, f *Font, ink func(Cell) imageutil.RGB, bg imageutil.RGB) *image.RGBA {
	cellW, cellH := f.CellDims()
	img := image.NewRGBA(image.Rect(0, 0, g.Cols*cellW, g.Rows*cellH))

	bgColor := bg.ToColor()
	for i := range img.Pix {
		switch i % 4 {
		case 0:
			img.Pix[i] = bgColor.R
		case 1:
			img.Pix[i] = bgColor.G
		case 2:
			img.Pix[i] = bgColor.B
		case 3:
			img.Pix[i] = 255
		}
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.At(row, col)
			glyph, ok := f.GlyphFor(cell.Char)
			if !ok {
				continue
			}
			stampGlyph(img, glyph, col*cellW, row*cellH, cellW, ink(cell).ToColor())
		}
	}

	return img
}

// stampGlyph draws one glyph mask at the given pixel position.
func stampGlyph(img *image.RGBA, glyph *Glyph, startX, startY, cellW int, ink color.RGBA) {
	for i, set := range glyph.Mask {
		if set {
			img.SetRGBA(startX+i%cellW, startY+i/cellW, ink)
		}
	}
}
