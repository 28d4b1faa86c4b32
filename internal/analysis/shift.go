package analysis

import (
	"sort"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
)

// ShiftCandidate is one possible shift for a key-position group. TopLetter is
// the ciphertext letter that would decrypt to the language's most frequent
// letter under this shift, and TopCount its occurrences in the group; both
// exist for prompt display only.
type ShiftCandidate struct {
	Shift     int
	KeyLetter rune
	ChiSq     float64
	TopLetter rune
	TopCount  int
}

// ScoreShifts ranks every shift in [0,N) for one key-position group by the
// chi-squared distance between the group's shifted letter counts and the
// expected counts from the reference frequency table. Lower chi-squared means
// a better match; ranking is ascending, ties broken by smaller shift. An empty
// group has no signal at all and yields nil: callers must fall back to manual
// shift entry instead of ranking arbitrarily.
func ScoreShifts(group []int, a alphabet.Alphabet) []ShiftCandidate {
	if len(group) == 0 {
		return nil
	}
	n := a.Len()
	counts := LetterCounts(group, n)
	size := float64(len(group))
	mostFrequent := a.MostFrequentIndex()

	candidates := make([]ShiftCandidate, 0, n)
	for shift := 0; shift < n; shift++ {
		var chi float64
		for plain := 0; plain < n; plain++ {
			observed := float64(counts[(plain+shift)%n])
			expected := a.Freq(plain) * size
			if expected <= 0 {
				continue
			}
			diff := observed - expected
			chi += diff * diff / expected
		}
		top := (mostFrequent + shift) % n
		candidates = append(candidates, ShiftCandidate{
			Shift:     shift,
			KeyLetter: a.Letter(shift),
			ChiSq:     chi,
			TopLetter: a.Letter(top),
			TopCount:  counts[top],
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].ChiSq == candidates[j].ChiSq {
			return candidates[i].Shift < candidates[j].Shift
		}
		return candidates[i].ChiSq < candidates[j].ChiSq
	})
	return candidates
}
