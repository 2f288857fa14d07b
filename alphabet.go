package img2ascii

import (
	"embed"
	"fmt"
	"os"
	"sort"
)

// Built-in alphabets, one file per named set. Characters appear in
// matching priority order: ties in the converter go to the earlier
// character.
//
//go:embed alphabets/*.txt
var alphabetFS embed.FS

// AlphabetNames returns the built-in alphabet names, sorted.
func AlphabetNames() []string {
	entries, err := alphabetFS.ReadDir("alphabets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		names = append(names, name[:len(name)-len(".txt")])
	}
	sort.Strings(names)
	return names
}

// LoadAlphabet resolves name as a built-in alphabet or, failing that, as
// a file path whose contents are interpreted as raw bytes, one character
// per byte. Control characters are dropped; duplicates keep their first
// position.
func LoadAlphabet(name string) ([]rune, error) {
	data, err := alphabetFS.ReadFile("alphabets/" + name + ".txt")
	if err != nil {
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, &InvalidConfigurationError{
				Option: "alphabet",
				Reason: fmt.Sprintf("%q is neither a built-in alphabet nor a readable file", name),
			}
		}
	}

	runes := make([]rune, 0, len(data))
	for _, b := range data {
		if b < 0x20 || b == 0x7f {
			continue
		}
		runes = append(runes, rune(b))
	}
	runes = dedupeRunes(runes)

	if len(runes) == 0 {
		return nil, &InvalidConfigurationError{
			Option: "alphabet",
			Reason: fmt.Sprintf("%q contains no printable characters", name),
		}
	}
	return runes, nil
}
