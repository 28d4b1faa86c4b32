package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
)

// ErrInsufficientData is returned when the letter stream is too short for IC
// estimation over the requested key-length range.
var ErrInsufficientData = errors.New("insufficient data for key length estimation")

// KeyLengthCandidate is one tested key length with its average group IC and
// the distance of that average from the language's expected IC.
type KeyLengthCandidate struct {
	Length int
	AvgIC  float64
	Diff   float64
}

// EstimateKeyLengths tests key lengths 1..min(maxLen, len/2) and ranks them by
// how close the average per-group IC comes to the language's expected IC.
// Aligned group boundaries pull each group toward single-language statistics,
// so the true period (or a multiple of it) lands near the top. Groups with
// fewer than two letters are excluded from a length's average.
func EstimateKeyLengths(letters []int, a alphabet.Alphabet, maxLen int) ([]KeyLengthCandidate, error) {
	if maxLen < 1 {
		maxLen = 1
	}
	if len(letters) < 2 {
		return nil, fmt.Errorf("%w: %d letters, need at least 2", ErrInsufficientData, len(letters))
	}
	if maxLen > len(letters)/2 {
		maxLen = len(letters) / 2
	}

	candidates := make([]KeyLengthCandidate, 0, maxLen)
	for length := 1; length <= maxLen; length++ {
		sizes := make([]int, length)
		counts := make([][]int, length)
		for i := range counts {
			counts[i] = make([]int, a.Len())
		}
		for i, letter := range letters {
			counts[i%length][letter]++
			sizes[i%length]++
		}

		var sum float64
		measured := 0
		for i := 0; i < length; i++ {
			if sizes[i] < 2 {
				continue
			}
			sum += IndexOfCoincidence(counts[i], sizes[i])
			measured++
		}
		if measured == 0 {
			continue
		}
		avg := sum / float64(measured)
		candidates = append(candidates, KeyLengthCandidate{
			Length: length,
			AvgIC:  avg,
			Diff:   math.Abs(avg - a.ExpectedIC()),
		})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %d letters", ErrInsufficientData, len(letters))
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Diff == candidates[j].Diff {
			return candidates[i].Length < candidates[j].Length
		}
		return candidates[i].Diff < candidates[j].Diff
	})
	return candidates, nil
}
