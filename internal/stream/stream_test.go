package stream

import (
	"testing"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
)

func mustAlphabet(t *testing.T, lang string) alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.ForLanguage(lang)
	if err != nil {
		t.Fatalf("failed to load %s: %v", lang, err)
	}
	return a
}

func TestNormalizeTracksCaseAndPassthrough(t *testing.T) {
	a := mustAlphabet(t, "en")
	s := Normalize("Ab, c!", a)
	if len(s.Letters) != 3 {
		t.Fatalf("expected 3 letters, got %d", len(s.Letters))
	}
	want := []int{0, 1, 2}
	for i, idx := range want {
		if s.Letters[i] != idx {
			t.Fatalf("letter %d: expected index %d, got %d", i, idx, s.Letters[i])
		}
	}
	if len(s.Slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(s.Slots))
	}
	if !s.Slots[0].Letter || !s.Slots[0].Upper {
		t.Fatalf("expected slot 0 to be an upper-case letter: %+v", s.Slots[0])
	}
	if s.Slots[2].Letter || s.Slots[2].Literal != ',' {
		t.Fatalf("expected slot 2 to pass through ',': %+v", s.Slots[2])
	}
}

func TestNormalizeForeignLettersArePassthrough(t *testing.T) {
	a := mustAlphabet(t, "ru")
	s := Normalize("штаб abc Ёж", a)
	if len(s.Letters) != 6 {
		t.Fatalf("expected 6 letters (Latin excluded), got %d", len(s.Letters))
	}
	if s.Slots[5].Letter {
		t.Fatalf("expected 'a' to be passthrough under the ru alphabet")
	}
}

func TestNormalizeEmpty(t *testing.T) {
	a := mustAlphabet(t, "en")
	s := Normalize("", a)
	if len(s.Letters) != 0 || len(s.Slots) != 0 {
		t.Fatalf("expected empty stream, got %d letters, %d slots", len(s.Letters), len(s.Slots))
	}
	if got := s.Reassemble(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestGroupsPartitionStream(t *testing.T) {
	a := mustAlphabet(t, "en")
	s := Normalize("abcdefg", a)
	groups := s.Groups(3)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != len(s.Letters) {
		t.Fatalf("groups hold %d letters, stream has %d", total, len(s.Letters))
	}
	// Position 0 holds stream indices 0, 3, 6: a, d, g.
	want := []int{0, 3, 6}
	for i, idx := range want {
		if groups[0][i] != idx {
			t.Fatalf("group 0 entry %d: expected %d, got %d", i, idx, groups[0][i])
		}
	}
}

func TestGroupsLongerThanStream(t *testing.T) {
	a := mustAlphabet(t, "en")
	s := Normalize("ab", a)
	groups := s.Groups(5)
	if len(groups) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(groups))
	}
	for i := 2; i < 5; i++ {
		if len(groups[i]) != 0 {
			t.Fatalf("expected group %d to be empty, got %d letters", i, len(groups[i]))
		}
	}
}

func TestReassembleRestoresLayout(t *testing.T) {
	a := mustAlphabet(t, "en")
	original := "Hello, World! 42"
	s := Normalize(original, a)
	letters := make([]rune, len(s.Letters))
	for i, idx := range s.Letters {
		letters[i] = a.Letter(idx)
	}
	if got := s.Reassemble(letters); got != original {
		t.Fatalf("expected %q, got %q", original, got)
	}
}
