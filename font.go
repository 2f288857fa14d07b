// Package img2ascii converts raster images into grids of printable
// characters by matching fixed-cell font glyphs against image tiles, and
// renders those grids back out as text, ANSI color, HTML, or bitmaps.
package img2ascii

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"github.com/asciigen/img2ascii/imageutil"
)

// ttfPointSize is the size external TrueType fonts are rasterized at.
// Bitmap-style terminal fonts render cleanly at this size; see the
// matching cell dimensions derived from the face metrics.
const ttfPointSize = 16

// Glyph is one catalog entry: a character, its ink mask at the catalog's
// cell size, and fields derived from the mask that the metrics consume.
// Masks follow the ink convention: a set pixel is dark on a light page,
// so dense glyphs match dark tiles.
type Glyph struct {
	Char     rune
	Mask     []bool  // row-major, CellWidth*CellHeight
	Coverage float64 // fraction of mask pixels set

	lum    []float64 // ink luminance: 0 where set, 255 where clear
	gx, gy []float64 // Sobel gradients of lum
}

// Font is an immutable glyph catalog with a uniform cell size. Glyph
// order follows the alphabet the catalog was built from; the converter
// breaks score ties by this order, first glyph wins.
type Font struct {
	Name       string
	CellWidth  int
	CellHeight int
	Glyphs     []Glyph

	byChar map[rune]int
}

// builtinFaces is the closed set of named fonts, resolved before falling
// back to interpreting the source as a TrueType file path.
var builtinFaces = map[string]*basicfont.Face{
	"7x13":        basicfont.Face7x13,
	"inconsolata": inconsolata.Regular8x16,
}

// FontNames returns the built-in font names.
func FontNames() []string {
	names := make([]string, 0, len(builtinFaces))
	for name := range builtinFaces {
		names = append(names, name)
	}
	return names
}

// LoadFont builds a glyph catalog from a font source restricted to the
// given alphabet. The source is either a built-in font name or a path to
// a TrueType file. Fails with a FontLoadError if the source cannot be
// read, the font lacks a glyph for an alphabet character, or the face
// reports an unusable cell size.
func LoadFont(source string, alphabet []rune) (*Font, error) {
	if face, ok := builtinFaces[source]; ok {
		hasGlyph := func(r rune) bool { return basicHasGlyph(face, r) }
		return fontFromFace(source, face, hasGlyph, alphabet)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, &FontLoadError{Source: source, Err: err}
	}
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return nil, &FontLoadError{Source: source, Err: err}
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    ttfPointSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	hasGlyph := func(r rune) bool { return ttf.Index(r) != 0 }
	return fontFromFace(source, face, hasGlyph, alphabet)
}

// basicHasGlyph checks the face's rune ranges directly. Bitmap faces
// report a fixed advance for every rune and render U+FFFD as a fallback,
// so neither GlyphAdvance nor Glyph distinguishes a missing character.
func basicHasGlyph(f *basicfont.Face, r rune) bool {
	for _, rng := range f.Ranges {
		if r >= rng.Low && r < rng.High {
			return true
		}
	}
	return false
}

// fontFromFace rasterizes every alphabet character through the face into
// a fixed cell and assembles the catalog.
func fontFromFace(name string, face font.Face, hasGlyph func(rune) bool, alphabet []rune) (*Font, error) {
	alphabet = dedupeRunes(alphabet)
	if len(alphabet) == 0 {
		return nil, &FontLoadError{Source: name, Err: fmt.Errorf("empty alphabet")}
	}
	for _, r := range alphabet {
		if !hasGlyph(r) {
			return nil, &FontLoadError{
				Source: name,
				Err:    fmt.Errorf("no glyph for %q", r),
			}
		}
	}

	faceMetrics := face.Metrics()
	cellH := (faceMetrics.Ascent + faceMetrics.Descent).Ceil()

	// Fixed-width fonts advance every glyph by the same amount; take the
	// cell width from the first alphabet character.
	advance, ok := face.GlyphAdvance(alphabet[0])
	if !ok {
		return nil, &FontLoadError{
			Source: name,
			Err:    fmt.Errorf("no glyph for %q", alphabet[0]),
		}
	}
	cellW := advance.Ceil()
	if cellW <= 0 || cellH <= 0 {
		return nil, &FontLoadError{
			Source: name,
			Err:    fmt.Errorf("unusable cell size %dx%d", cellW, cellH),
		}
	}

	f := &Font{
		Name:       name,
		CellWidth:  cellW,
		CellHeight: cellH,
		Glyphs:     make([]Glyph, 0, len(alphabet)),
		byChar:     make(map[rune]int, len(alphabet)),
	}

	for _, r := range alphabet {
		mask := renderGlyphMask(face, r, cellW, cellH, faceMetrics.Ascent)
		f.byChar[r] = len(f.Glyphs)
		f.Glyphs = append(f.Glyphs, newGlyph(r, mask, cellW, cellH))
	}

	return f, nil
}

// renderGlyphMask rasterizes r into a cellW x cellH alpha image and
// thresholds at 25% alpha, so anti-aliased edge pixels still count as
// ink and thin strokes survive.
func renderGlyphMask(face font.Face, r rune, cellW, cellH int, ascent fixed.Int26_6) []bool {
	img := image.NewAlpha(image.Rect(0, 0, cellW, cellH))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: ascent},
	}
	d.DrawString(string(r))

	mask := make([]bool, cellW*cellH)
	for y := 0; y < cellH; y++ {
		for x := 0; x < cellW; x++ {
			if img.AlphaAt(x, y).A > 64 {
				mask[y*cellW+x] = true
			}
		}
	}
	return mask
}

// newGlyph derives the metric inputs from a raw mask: the ink luminance
// field, its coverage, and its Sobel gradients.
func newGlyph(r rune, mask []bool, cellW, cellH int) Glyph {
	lum := make([]float64, len(mask))
	field := make([][]float64, cellH)
	set := 0
	for y := 0; y < cellH; y++ {
		field[y] = make([]float64, cellW)
		for x := 0; x < cellW; x++ {
			i := y*cellW + x
			if mask[i] {
				set++
			} else {
				lum[i] = 255
			}
			field[y][x] = lum[i]
		}
	}

	gxField, gyField := imageutil.SobelFields(field)
	gx := make([]float64, len(mask))
	gy := make([]float64, len(mask))
	for y := 0; y < cellH; y++ {
		for x := 0; x < cellW; x++ {
			gx[y*cellW+x] = gxField[y][x]
			gy[y*cellW+x] = gyField[y][x]
		}
	}

	return Glyph{
		Char:     r,
		Mask:     mask,
		Coverage: float64(set) / float64(len(mask)),
		lum:      lum,
		gx:       gx,
		gy:       gy,
	}
}

// CellDims returns the shared glyph cell dimensions.
func (f *Font) CellDims() (width, height int) {
	return f.CellWidth, f.CellHeight
}

// GlyphFor returns the glyph for a character, if the catalog has one.
func (f *Font) GlyphFor(r rune) (*Glyph, bool) {
	i, ok := f.byChar[r]
	if !ok {
		return nil, false
	}
	return &f.Glyphs[i], true
}

// dedupeRunes drops repeated characters while preserving first-seen
// order, which is what fixes the catalog's tie-break order.
func dedupeRunes(runes []rune) []rune {
	seen := make(map[rune]bool, len(runes))
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
