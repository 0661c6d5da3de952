package puzzle

import (
	"time"

	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/numberer"
)

// Metadata contains puzzle metadata like title, author, and timestamps
type Metadata struct {
	ID         string          // Unique identifier for the puzzle
	Title      string          // Puzzle title
	Author     string          // Puzzle author/creator
	Difficulty grid.Difficulty // Puzzle difficulty level
	Seed       int64           // Base seed of the run (attempt i uses Seed+i), for reproducibility
	CreatedAt  time.Time       // Timestamp when puzzle was created
}

// Puzzle represents a complete crossword puzzle: a filled grid, its
// numbered clue lists, and metadata.
type Puzzle struct {
	Grid      *grid.Grid          // The filled grid with all letters
	Numbering *numberer.Numbering // Across/down clue lists, numbered and resolved
	Metadata  Metadata            // Puzzle metadata
}

// NewPuzzle creates a new Puzzle instance with the provided components
func NewPuzzle(g *grid.Grid, numbering *numberer.Numbering, metadata Metadata) *Puzzle {
	return &Puzzle{
		Grid:      g,
		Numbering: numbering,
		Metadata:  metadata,
	}
}
