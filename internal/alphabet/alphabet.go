// Package alphabet defines language letter sets and reference frequency tables.
package alphabet

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrUnsupportedLanguage is returned for language tags without a built-in table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Alphabet is an immutable letter set with reference letter frequencies.
type Alphabet struct {
	lang       string
	letters    []rune
	index      map[rune]int
	freqs      []float64
	expectedIC float64
}

type table struct {
	letters    string
	freqs      []float64
	expectedIC float64
}

// Reference frequencies are normalized shares of letter occurrences in large
// representative corpora. Adding a language means adding one more table here.
var tables = map[string]table{
	"ru": {
		letters: "абвгдеёжзийклмнопрстуфхцчшщъыьэюя",
		freqs: []float64{
			0.0801, 0.0159, 0.0454, 0.0170, 0.0298, 0.0845, 0.0004, 0.0094,
			0.0165, 0.0735, 0.0121, 0.0349, 0.0440, 0.0321, 0.0670, 0.1097,
			0.0281, 0.0473, 0.0547, 0.0626, 0.0262, 0.0026, 0.0097, 0.0048,
			0.0144, 0.0073, 0.0036, 0.0004, 0.0190, 0.0174, 0.0032, 0.0064,
			0.0201,
		},
		expectedIC: 0.056,
	},
	"en": {
		letters: "abcdefghijklmnopqrstuvwxyz",
		freqs: []float64{
			0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015,
			0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749,
			0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758,
			0.00978, 0.02360, 0.00150, 0.01974, 0.00074,
		},
		expectedIC: 0.065,
	},
}

// DefaultLanguage is the language assumed when none is selected.
const DefaultLanguage = "ru"

// ForLanguage returns the alphabet for a language tag.
func ForLanguage(lang string) (Alphabet, error) {
	tbl, ok := tables[lang]
	if !ok {
		return Alphabet{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	letters := []rune(tbl.letters)
	index := make(map[rune]int, len(letters))
	for i, r := range letters {
		index[r] = i
	}
	return Alphabet{
		lang:       lang,
		letters:    letters,
		index:      index,
		freqs:      tbl.freqs,
		expectedIC: tbl.expectedIC,
	}, nil
}

// Languages lists supported language tags in stable order.
func Languages() []string {
	return []string{"en", "ru"}
}

// Lang returns the language tag this alphabet was built for.
func (a Alphabet) Lang() string {
	return a.lang
}

// Len returns the alphabet size.
func (a Alphabet) Len() int {
	return len(a.letters)
}

// Index maps a rune to its alphabet index, case-insensitively.
func (a Alphabet) Index(r rune) (int, bool) {
	idx, ok := a.index[unicode.ToLower(r)]
	return idx, ok
}

// Letter returns the lower-case letter at index i.
func (a Alphabet) Letter(i int) rune {
	return a.letters[i]
}

// Freq returns the reference frequency of the letter at index i.
func (a Alphabet) Freq(i int) float64 {
	return a.freqs[i]
}

// ExpectedIC returns the index of coincidence typical for the language.
func (a Alphabet) ExpectedIC() float64 {
	return a.expectedIC
}

// MostFrequentIndex returns the index of the language's most frequent letter.
func (a Alphabet) MostFrequentIndex() int {
	best := 0
	for i, f := range a.freqs {
		if f > a.freqs[best] {
			best = i
		}
	}
	return best
}
