// Package analysis contains the statistical machinery for key recovery:
// index-of-coincidence key-length estimation and per-position shift scoring.
package analysis

import "github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"

// LetterCounts tallies occurrences of each alphabet index in a group.
func LetterCounts(group []int, n int) []int {
	counts := make([]int, n)
	for _, letter := range group {
		counts[letter]++
	}
	return counts
}

// IndexOfCoincidence computes the probability that two letters drawn from the
// counted sample are identical. Samples of fewer than two letters have no
// defined IC; callers must exclude them rather than treat them as zero.
func IndexOfCoincidence(counts []int, size int) float64 {
	if size < 2 {
		return 0
	}
	sum := 0
	for _, c := range counts {
		sum += c * (c - 1)
	}
	return float64(sum) / float64(size*(size-1))
}

// GroupIC computes the index of coincidence of one key-position group.
func GroupIC(group []int, a alphabet.Alphabet) float64 {
	return IndexOfCoincidence(LetterCounts(group, a.Len()), len(group))
}
