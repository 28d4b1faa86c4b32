// Package crack applies resolved shift vectors to ciphertext and drives the
// per-position shift resolution flow.
package crack

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/stream"
)

var (
	// ErrIncompleteKey is returned when decryption is attempted before every
	// key position has a resolved shift.
	ErrIncompleteKey = errors.New("incomplete key")
	// ErrInvalidShift is returned for shifts or key letters outside the
	// active alphabet.
	ErrInvalidShift = errors.New("invalid shift")
	// ErrKeyLengthMismatch is returned when a key and a shift list disagree
	// on the key length.
	ErrKeyLengthMismatch = errors.New("key length mismatch")
)

// ShiftVector accumulates one shift per key position. Length is fixed up
// front; the vector is complete only when every position is filled.
type ShiftVector struct {
	Length int
	Shifts []int
}

// NewShiftVector creates an empty vector for a key of the given length.
func NewShiftVector(length int) *ShiftVector {
	return &ShiftVector{Length: length, Shifts: make([]int, 0, length)}
}

// Append resolves the next key position.
func (v *ShiftVector) Append(shift int) {
	v.Shifts = append(v.Shifts, shift)
}

// Complete reports whether every key position has been resolved.
func (v *ShiftVector) Complete() bool {
	return len(v.Shifts) == v.Length
}

// VectorFromShifts builds a complete vector from explicit shift values.
func VectorFromShifts(shifts []int, a alphabet.Alphabet) (*ShiftVector, error) {
	v := NewShiftVector(len(shifts))
	for _, s := range shifts {
		if s < 0 || s >= a.Len() {
			return nil, fmt.Errorf("%w: %d is outside [0, %d)", ErrInvalidShift, s, a.Len())
		}
		v.Append(s)
	}
	return v, nil
}

// VectorFromKey converts a key string to shifts, one per key letter. Every
// rune of the key must belong to the active alphabet.
func VectorFromKey(key string, a alphabet.Alphabet) (*ShiftVector, error) {
	v := NewShiftVector(utf8.RuneCountInString(key))
	for _, r := range key {
		idx, ok := a.Index(r)
		if !ok {
			return nil, fmt.Errorf("%w: key letter %q is not in the %s alphabet", ErrInvalidShift, r, a.Lang())
		}
		v.Append(idx)
	}
	return v, nil
}

// KeyString renders the key implied by a shift vector.
func KeyString(v *ShiftVector, a alphabet.Alphabet) string {
	var b strings.Builder
	for _, s := range v.Shifts {
		b.WriteRune(a.Letter(s))
	}
	return b.String()
}

// ParseShiftInput converts free-form user input into a shift: either an
// integer in [0,N) or a single key letter.
func ParseShiftInput(input string, a alphabet.Alphabet) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidShift)
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 0 || n >= a.Len() {
			return 0, fmt.Errorf("%w: %d is outside [0, %d)", ErrInvalidShift, n, a.Len())
		}
		return n, nil
	}
	runes := []rune(input)
	if len(runes) == 1 {
		if idx, ok := a.Index(runes[0]); ok {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is neither a shift in [0, %d) nor a key letter", ErrInvalidShift, input, a.Len())
}

// Decrypt shifts stream letter i back by shifts[i mod L] and rebuilds the
// original text layout. The vector must be complete; a partial key never
// produces partial output.
func Decrypt(s stream.Stream, v *ShiftVector, a alphabet.Alphabet) (string, error) {
	if !v.Complete() {
		return "", fmt.Errorf("%w: %d of %d positions resolved", ErrIncompleteKey, len(v.Shifts), v.Length)
	}
	if len(s.Letters) > 0 && v.Length == 0 {
		return "", fmt.Errorf("%w: no shifts for %d letters", ErrIncompleteKey, len(s.Letters))
	}
	n := a.Len()
	for _, shift := range v.Shifts {
		if shift < 0 || shift >= n {
			return "", fmt.Errorf("%w: %d is outside [0, %d)", ErrInvalidShift, shift, n)
		}
	}
	letters := make([]rune, len(s.Letters))
	for i, letter := range s.Letters {
		letters[i] = a.Letter((letter - v.Shifts[i%v.Length] + n) % n)
	}
	return s.Reassemble(letters), nil
}

// Encrypt applies the inverse transform: stream letter i is shifted forward
// by the key letter at position i mod L. Used by the encrypt command and as
// the round-trip counterpart of Decrypt.
func Encrypt(text, key string, a alphabet.Alphabet) (string, error) {
	v, err := VectorFromKey(key, a)
	if err != nil {
		return "", err
	}
	s := stream.Normalize(text, a)
	if len(s.Letters) > 0 && v.Length == 0 {
		return "", fmt.Errorf("%w: empty key", ErrIncompleteKey)
	}
	n := a.Len()
	letters := make([]rune, len(s.Letters))
	for i, letter := range s.Letters {
		letters[i] = a.Letter((letter + v.Shifts[i%v.Length]) % n)
	}
	return s.Reassemble(letters), nil
}
