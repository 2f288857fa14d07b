package img2ascii

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltinFont(t *testing.T) {
	alphabet := []rune(" .#@")
	font, err := LoadFont("7x13", alphabet)
	if err != nil {
		t.Fatalf("LoadFont failed: %v", err)
	}

	w, h := font.CellDims()
	if w != 7 || h != 13 {
		t.Errorf("Expected 7x13 cells, got %dx%d", w, h)
	}

	if len(font.Glyphs) != len(alphabet) {
		t.Errorf("Expected %d glyphs, got %d", len(alphabet), len(font.Glyphs))
	}
	for i, r := range alphabet {
		if font.Glyphs[i].Char != r {
			t.Errorf("Glyph %d: expected %q, got %q", i, r, font.Glyphs[i].Char)
		}
	}

	for _, g := range font.Glyphs {
		if len(g.Mask) != w*h {
			t.Errorf("Glyph %q: mask has %d pixels, expected %d", g.Char, len(g.Mask), w*h)
		}
	}
}

func TestLoadFontDeduplicatesAlphabet(t *testing.T) {
	font, err := LoadFont("7x13", []rune("aabba"))
	if err != nil {
		t.Fatalf("LoadFont failed: %v", err)
	}
	if len(font.Glyphs) != 2 {
		t.Errorf("Expected 2 glyphs after dedupe, got %d", len(font.Glyphs))
	}
	if font.Glyphs[0].Char != 'a' || font.Glyphs[1].Char != 'b' {
		t.Errorf("Dedupe broke first-seen order: %q, %q",
			font.Glyphs[0].Char, font.Glyphs[1].Char)
	}
}

func TestLoadFontMissingGlyph(t *testing.T) {
	// basicfont 7x13 has no glyph outside basic Latin.
	_, err := LoadFont("7x13", []rune("aΩ"))
	var fontErr *FontLoadError
	if !errors.As(err, &fontErr) {
		t.Fatalf("Expected FontLoadError, got %v", err)
	}
}

func TestLoadFontUnknownSource(t *testing.T) {
	_, err := LoadFont("no-such-font", []rune("ab"))
	var fontErr *FontLoadError
	if !errors.As(err, &fontErr) {
		t.Fatalf("Expected FontLoadError, got %v", err)
	}
}

func TestLoadFontEmptyAlphabet(t *testing.T) {
	_, err := LoadFont("7x13", nil)
	var fontErr *FontLoadError
	if !errors.As(err, &fontErr) {
		t.Fatalf("Expected FontLoadError, got %v", err)
	}
}

func TestGlyphCoverage(t *testing.T) {
	font, err := LoadFont("7x13", []rune(" @"))
	if err != nil {
		t.Fatalf("LoadFont failed: %v", err)
	}

	space, ok := font.GlyphFor(' ')
	if !ok {
		t.Fatal("Missing glyph for space")
	}
	if space.Coverage != 0 {
		t.Errorf("Space should have zero coverage, got %f", space.Coverage)
	}

	at, ok := font.GlyphFor('@')
	if !ok {
		t.Fatal("Missing glyph for '@'")
	}
	if at.Coverage <= 0 {
		t.Errorf("'@' should have positive coverage, got %f", at.Coverage)
	}
}

func TestGlyphForUnknownChar(t *testing.T) {
	font, err := LoadFont("inconsolata", []rune("ab"))
	if err != nil {
		t.Fatalf("LoadFont failed: %v", err)
	}
	if _, ok := font.GlyphFor('z'); ok {
		t.Error("GlyphFor should miss for characters outside the alphabet")
	}
}

func TestLoadAlphabetBuiltin(t *testing.T) {
	runes, err := LoadAlphabet("minimal")
	if err != nil {
		t.Fatalf("LoadAlphabet failed: %v", err)
	}
	if string(runes) != " .:-=+*#%@" {
		t.Errorf("Unexpected minimal alphabet: %q", string(runes))
	}
}

func TestLoadAlphabetNames(t *testing.T) {
	names := AlphabetNames()
	want := map[string]bool{
		"alphabet": false, "letters": false, "lowercase": false,
		"minimal": false, "symbols": false, "uppercase": false,
	}
	for _, n := range names {
		if _, ok := want[n]; !ok {
			t.Errorf("Unexpected alphabet name %q", n)
		}
		want[n] = true
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("Missing alphabet %q", n)
		}
	}
}

func TestLoadAlphabetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chars.txt")
	if err := os.WriteFile(path, []byte("ab\ncca\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runes, err := LoadAlphabet(path)
	if err != nil {
		t.Fatalf("LoadAlphabet failed: %v", err)
	}
	// Control characters dropped, duplicates keep first position.
	if string(runes) != "abc" {
		t.Errorf("Expected %q, got %q", "abc", string(runes))
	}
}

func TestLoadAlphabetUnknown(t *testing.T) {
	_, err := LoadAlphabet("no-such-alphabet")
	var confErr *InvalidConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("Expected InvalidConfigurationError, got %v", err)
	}
}
