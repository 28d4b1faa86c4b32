package analysis

import (
	"errors"
	"math/rand"
	"testing"
)

func TestEstimateKeyLengthsPeriodicText(t *testing.T) {
	a := mustAlphabet(t, "en")
	r := rand.New(rand.NewSource(42))
	plain := sampleLetters(r, a, 1200)

	// Encipher with a period-5 key; all five shifts are distinct.
	keyShifts := []int{2, 17, 24, 15, 19}
	cipher := make([]int, len(plain))
	for i, letter := range plain {
		cipher[i] = (letter + keyShifts[i%len(keyShifts)]) % a.Len()
	}

	candidates, err := EstimateKeyLengths(cipher, a, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatalf("expected candidates")
	}
	best := candidates[0].Length
	if best%len(keyShifts) != 0 {
		t.Fatalf("expected a multiple of the true key length %d on top, got %d", len(keyShifts), best)
	}

	diffByLength := make(map[int]float64, len(candidates))
	for _, cand := range candidates {
		diffByLength[cand.Length] = cand.Diff
	}
	// Misaligned lengths mix all five shift distributions and drop toward
	// uniform; the aligned length must sit much closer to the expected IC.
	if diffByLength[5] >= diffByLength[3] {
		t.Fatalf("expected length 5 (diff %f) to beat length 3 (diff %f)", diffByLength[5], diffByLength[3])
	}
	if diffByLength[5] >= diffByLength[7] {
		t.Fatalf("expected length 5 (diff %f) to beat length 7 (diff %f)", diffByLength[5], diffByLength[7])
	}
}

func TestEstimateKeyLengthsInsufficientData(t *testing.T) {
	a := mustAlphabet(t, "en")
	_, err := EstimateKeyLengths([]int{4}, a, 20)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	_, err = EstimateKeyLengths(nil, a, 20)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for empty stream, got %v", err)
	}
}

func TestEstimateKeyLengthsClampsRange(t *testing.T) {
	a := mustAlphabet(t, "en")
	r := rand.New(rand.NewSource(5))
	letters := sampleLetters(r, a, 10)
	candidates, err := EstimateKeyLengths(letters, a, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, cand := range candidates {
		if cand.Length > 5 {
			t.Fatalf("expected lengths clamped to 5, got %d", cand.Length)
		}
	}
}
