// Package clues resolves clue text for lexicon words and XLSX-supplied
// answers, and caches resolved clues for reuse across runs.
package clues

import "github.com/wordgrid/crossgen/pkg/grid"

// ClueEntry is a clue paired with its answer, as supplied by XLSX mode or
// produced by clue resolution: (number, clue text, answer).
type ClueEntry struct {
	Number int
	Text   string
	Answer string
}

// PlacedEntry is a ClueEntry extended with the position it was placed at.
type PlacedEntry struct {
	ClueEntry
	Row       int
	Col       int
	Direction grid.Direction
}
