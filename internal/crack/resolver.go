package crack

import (
	"fmt"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/analysis"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/stream"
)

// Chooser resolves the choices the cracking flow cannot make on its own: the
// key length among ranked candidates, and one shift per key position.
// Implementations may prompt a user or answer instantly from scored data.
type Chooser interface {
	ChooseKeyLength(candidates []analysis.KeyLengthCandidate) (int, error)
	ChooseShift(position, keyLength int, group []int, candidates []analysis.ShiftCandidate) (int, error)
}

// Result is a fully resolved decryption.
type Result struct {
	Vector    *ShiftVector
	Key       string
	Plaintext string
}

// Resolver walks the cracking flow: estimate key lengths, settle one, then
// resolve each position's shift through the chooser, and finally decrypt.
type Resolver struct {
	Alphabet     alphabet.Alphabet
	MaxKeyLength int
	Chooser      Chooser
}

// Resolve runs the flow on a normalized stream. An empty stream decrypts to
// its passthrough characters with no prompting at all. The shift vector grows
// by exactly one entry per position; decryption happens only once it is
// complete.
func (r *Resolver) Resolve(s stream.Stream) (Result, error) {
	if len(s.Letters) == 0 {
		v := NewShiftVector(0)
		text, err := Decrypt(s, v, r.Alphabet)
		if err != nil {
			return Result{}, err
		}
		return Result{Vector: v, Plaintext: text}, nil
	}

	candidates, err := analysis.EstimateKeyLengths(s.Letters, r.Alphabet, r.MaxKeyLength)
	if err != nil {
		return Result{}, err
	}
	length, err := r.Chooser.ChooseKeyLength(candidates)
	if err != nil {
		return Result{}, err
	}
	if length < 1 || length > len(s.Letters) {
		return Result{}, fmt.Errorf("key length %d is outside [1, %d]", length, len(s.Letters))
	}

	groups := s.Groups(length)
	v := NewShiftVector(length)
	for i, group := range groups {
		shift, err := r.Chooser.ChooseShift(i, length, group, analysis.ScoreShifts(group, r.Alphabet))
		if err != nil {
			return Result{}, err
		}
		if shift < 0 || shift >= r.Alphabet.Len() {
			return Result{}, fmt.Errorf("%w: %d is outside [0, %d)", ErrInvalidShift, shift, r.Alphabet.Len())
		}
		v.Append(shift)
	}

	text, err := Decrypt(s, v, r.Alphabet)
	if err != nil {
		return Result{}, err
	}
	return Result{Vector: v, Key: KeyString(v, r.Alphabet), Plaintext: text}, nil
}

// AutoChooser answers every choice with the top-ranked candidate. It backs
// non-interactive runs where stdin is not a terminal.
type AutoChooser struct{}

// ChooseKeyLength picks the best-ranked key length.
func (AutoChooser) ChooseKeyLength(candidates []analysis.KeyLengthCandidate) (int, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("no key length candidates")
	}
	return candidates[0].Length, nil
}

// ChooseShift picks the best-ranked shift. A group with no letters has no
// ranking to trust, and with nobody to ask that is unresolvable.
func (AutoChooser) ChooseShift(position, keyLength int, group []int, candidates []analysis.ShiftCandidate) (int, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("position %d of %d has no letters; a manual shift is required", position+1, keyLength)
	}
	return candidates[0].Shift, nil
}
