// Package model defines shared data structures.
package model

import "time"

// Config defines cracking settings.
type Config struct {
	Lang         string
	MaxKeyLength int
	Candidates   int
	Preview      int
}

// Session records one completed decryption for the history store.
type Session struct {
	ID         int64
	FinishedAt time.Time
	File       string
	Lang       string
	KeyLength  int
	Key        string
	Mode       string
}

// Modes a session can be resolved in.
const (
	ModeInteractive = "interactive"
	ModeAuto        = "auto"
	ModeKey         = "key"
	ModeShifts      = "shifts"
)

// HistoryConfig filters history listing.
type HistoryConfig struct {
	Lang string
	Last int
}
