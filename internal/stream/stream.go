// Package stream normalizes raw text into an alphabet-index stream and
// reassembles decrypted letters back into the original layout.
package stream

import (
	"strings"
	"unicode"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
)

// Slot records how one original character is reconstructed: either a letter
// (with its original case) consuming one stream position, or a passthrough
// rune copied verbatim.
type Slot struct {
	Letter  bool
	Upper   bool
	Literal rune
}

// Stream is the index-compressed letter sequence plus the reconstruction map.
type Stream struct {
	Letters []int
	Slots   []Slot
}

// Normalize extracts alphabet letters from text, lower-cased to indices.
// Characters outside the active alphabet, including foreign letters, become
// passthrough slots and never enter the letter stream.
func Normalize(text string, a alphabet.Alphabet) Stream {
	runes := []rune(text)
	s := Stream{
		Letters: make([]int, 0, len(runes)),
		Slots:   make([]Slot, 0, len(runes)),
	}
	for _, r := range runes {
		idx, ok := a.Index(r)
		if !ok {
			s.Slots = append(s.Slots, Slot{Literal: r})
			continue
		}
		s.Letters = append(s.Letters, idx)
		s.Slots = append(s.Slots, Slot{Letter: true, Upper: unicode.IsUpper(r)})
	}
	return s
}

// Groups partitions the letter stream into length interleaved subsequences:
// group i holds the letters at stream positions congruent to i mod length.
func (s Stream) Groups(length int) [][]int {
	if length <= 0 {
		return nil
	}
	groups := make([][]int, length)
	for i := range groups {
		groups[i] = make([]int, 0, (len(s.Letters)+length-1)/length)
	}
	for i, letter := range s.Letters {
		groups[i%length] = append(groups[i%length], letter)
	}
	return groups
}

// Reassemble rebuilds the original text layout from decrypted letters. The
// letters slice must hold exactly one lower-case rune per letter slot; case is
// restored from the slot, passthrough runes are copied unchanged.
func (s Stream) Reassemble(letters []rune) string {
	var b strings.Builder
	b.Grow(len(s.Slots))
	next := 0
	for _, slot := range s.Slots {
		if !slot.Letter {
			b.WriteRune(slot.Literal)
			continue
		}
		r := letters[next]
		next++
		if slot.Upper {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
