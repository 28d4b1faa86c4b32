package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/crack"
)

func writeCipherFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cipher.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write cipher file: %v", err)
	}
	return path
}

func isolateXDG(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
}

func TestCrackWithExplicitShift(t *testing.T) {
	isolateXDG(t)
	path := writeCipherFile(t, "KHOOR ZRUOG")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{path, "--lang", "en", "-s", "3"})
	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "HELLO WORLD\n" {
		t.Fatalf("expected %q, got %q", "HELLO WORLD\n", got)
	}
}

func TestCrackRejectsMismatchedKeyAndShifts(t *testing.T) {
	isolateXDG(t)
	path := writeCipherFile(t, "KHOOR ZRUOG")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{path, "--lang", "en", "-k", "abc", "-s", "1,2"})
	err := root.Execute()
	if !errors.Is(err, crack.ErrKeyLengthMismatch) {
		t.Fatalf("expected ErrKeyLengthMismatch, got %v", err)
	}
}

func TestCrackUnsupportedLanguage(t *testing.T) {
	isolateXDG(t)
	path := writeCipherFile(t, "KHOOR")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{path, "--lang", "xx", "-s", "3"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}

func TestPreviewTruncation(t *testing.T) {
	if got := preview("abcdef", 3); got != "abc..." {
		t.Fatalf("expected %q, got %q", "abc...", got)
	}
	if got := preview("abc", 3); got != "abc" {
		t.Fatalf("expected %q, got %q", "abc", got)
	}
	if got := preview("abcdef", 0); got != "abcdef" {
		t.Fatalf("expected full text, got %q", got)
	}
}
