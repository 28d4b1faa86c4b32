package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/analysis"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/crack"
)

// Chooser resolves cracking choices by prompting the user with ranked
// candidates, one inline prompt per decision. MaxLength caps accepted key
// lengths at the letter-stream length; zero means no cap.
type Chooser struct {
	Alphabet   alphabet.Alphabet
	Candidates int
	MaxLength  int
}

// ChooseKeyLength presents the ranked key-length candidates and reads one.
func (c *Chooser) ChooseKeyLength(candidates []analysis.KeyLengthCandidate) (int, error) {
	top := candidates
	if len(top) > c.Candidates {
		top = top[:c.Candidates]
	}
	rows := make([][]string, 0, len(top))
	for i, cand := range top {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(cand.Length),
			fmt.Sprintf("%.4f", cand.AvgIC),
			fmt.Sprintf("%.4f", cand.Diff),
		})
	}
	body := formatTable([]string{"#", "Length", "Avg IC", "IC diff"}, rows, map[int]bool{1: true, 2: true, 3: true})
	body = append(body, "", mutedStyle.Render(fmt.Sprintf("Expected IC for %s: ~%.3f", c.Alphabet.Lang(), c.Alphabet.ExpectedIC())))

	parse := func(input string) (int, error) {
		return parseKeyLength(input, top, c.MaxLength)
	}
	return runPrompt("Key length", body,
		"Enter a key length, or press Enter to accept the best guess. Esc aborts.", parse)
}

func parseKeyLength(input string, top []analysis.KeyLengthCandidate, maxLength int) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return top[0].Length, nil
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("enter a positive key length")
	}
	if maxLength > 0 && n > maxLength {
		return 0, fmt.Errorf("key length must be at most %d", maxLength)
	}
	return n, nil
}

// ChooseShift presents the top shift candidates for one key position and
// reads a rank, a shift value, or a key letter. A position with no letters
// has nothing to rank and requires a manual shift.
func (c *Chooser) ChooseShift(position, keyLength int, group []int, candidates []analysis.ShiftCandidate) (int, error) {
	title := fmt.Sprintf("Position %d of %d", position+1, keyLength)

	if len(candidates) == 0 {
		body := []string{mutedStyle.Render("No letters fall on this position; a shift must be entered manually.")}
		parse := func(input string) (int, error) {
			return crack.ParseShiftInput(input, c.Alphabet)
		}
		return runPrompt(title, body,
			fmt.Sprintf("Enter a shift in [0, %d) or a key letter. Esc aborts.", c.Alphabet.Len()), parse)
	}

	top := candidates
	if len(top) > c.Candidates {
		top = top[:c.Candidates]
	}
	rows := make([][]string, 0, len(top))
	for i, cand := range top {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(cand.TopLetter),
			fmt.Sprintf("%dx", cand.TopCount),
			strconv.Itoa(cand.Shift),
			fmt.Sprintf("'%c'", cand.KeyLetter),
			fmt.Sprintf("%.1f", cand.ChiSq),
		})
	}
	body := formatTable([]string{"#", "Letter", "Count", "Shift", "Key", "Chi-sq"}, rows, map[int]bool{2: true, 3: true, 5: true})
	body = append(body, "",
		mutedStyle.Render(fmt.Sprintf("Group length: %d", len(group))),
		mutedStyle.Render(fmt.Sprintf("Index of coincidence: %.4f (expected ~%.3f)", analysis.GroupIC(group, c.Alphabet), c.Alphabet.ExpectedIC())))

	parse := func(input string) (int, error) {
		input = strings.TrimSpace(input)
		if input == "" {
			return top[0].Shift, nil
		}
		// Small integers select a rank; anything else is a shift value or a
		// key letter. Shifts that collide with ranks are entered as letters.
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(top) {
			return top[n-1].Shift, nil
		}
		return crack.ParseShiftInput(input, c.Alphabet)
	}
	return runPrompt(title, body,
		fmt.Sprintf("Enter a rank (1-%d), a shift, or a key letter; Enter accepts rank 1. Esc aborts.", len(top)), parse)
}
