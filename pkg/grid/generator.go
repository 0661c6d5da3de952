package grid

import (
	"errors"
	"math/rand"
	"time"
)

// Difficulty represents the difficulty level of a crossword puzzle.
type Difficulty string

const (
	// Easy difficulty has fewer black squares (easier to fill).
	Easy Difficulty = "easy"
	// Medium difficulty has a moderate number of black squares.
	Medium Difficulty = "medium"
	// Hard difficulty has more black squares.
	Hard Difficulty = "hard"
	// Expert difficulty has the most black squares (harder to fill).
	Expert Difficulty = "expert"
)

// ErrGenerationFailed is returned when grid generation fails after max attempts.
var ErrGenerationFailed = errors.New("failed to generate valid grid after maximum attempts")

// MaxGenerationAttempts bounds how many fresh templates Generate will try
// before giving up; the retry controller may request further templates.
const MaxGenerationAttempts = 200

// maxCellSamplesPerAttempt bounds the randomized construction loop within
// a single template attempt (spec's "per-template attempt budget").
const maxCellSamplesPerAttempt = 4000

// GeneratorConfig extends GridConfig with generation parameters.
type GeneratorConfig struct {
	GridConfig
	Difficulty   Difficulty // Difficulty preset (Easy/Medium/Hard/Expert)
	BlackDensity float64    // Custom black density target (overrides difficulty if set)
	Seed         int64      // Random seed (0 = use timestamp)
}

// densityBand returns the [low, high] band Generate stops within once
// entered, centered on target (typically 15-20% of cells).
func densityBand(target float64) (low, high float64) {
	return target - 0.02, target + 0.02
}

// getDifficultyDensity maps difficulty levels to black square density targets.
func getDifficultyDensity(difficulty Difficulty) float64 {
	switch difficulty {
	case Easy:
		return 0.14
	case Medium:
		return 0.16
	case Hard:
		return 0.18
	case Expert:
		return 0.20
	default:
		return 0.16
	}
}

// Generate produces a valid N×N black/white template via randomized
// construction with repair: repeatedly sample a random cell, tentatively
// black it and its 180°-symmetric partner, and commit only if
// connectivity and no-short-slot invariants still hold; reject otherwise.
// A fresh attempt starts over when the per-attempt sample budget is
// exhausted without entering the target density band.
func Generate(config GeneratorConfig) (*Grid, error) {
	target := config.BlackDensity
	if target == 0 {
		target = getDifficultyDensity(config.Difficulty)
	}
	low, high := densityBand(target)

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for attempt := 0; attempt < MaxGenerationAttempts; attempt++ {
		r := rand.New(rand.NewSource(seed + int64(attempt)))
		g, ok := buildOneTemplate(config.GridConfig, r, low, high)
		if !ok {
			continue
		}
		ExtractSlots(g)
		return g, nil
	}
	return nil, ErrGenerationFailed
}

// buildOneTemplate runs one randomized-construction-with-repair attempt.
func buildOneTemplate(cfg GridConfig, r *rand.Rand, low, high float64) (*Grid, bool) {
	g := NewEmptyGrid(cfg)
	size := g.Size
	center := size / 2
	total := size * size

	blackCount := 0
	density := func() float64 { return float64(blackCount) / float64(total) }

	for sample := 0; sample < maxCellSamplesPerAttempt; sample++ {
		if density() >= low && density() <= high {
			if isConnected(g) && !hasShortWords(g) && isSymmetric(g) {
				return g, true
			}
		}
		if density() > high {
			return nil, false
		}

		row := r.Intn(size)
		col := r.Intn(size)
		if row == center && col == center {
			continue
		}
		if g.Cells[row][col].IsBlack {
			continue
		}

		mr, mc := size-1-row, size-1-col
		self := mr == row && mc == col

		g.Cells[row][col].IsBlack = true
		added := 1
		if !self {
			g.Cells[mr][mc].IsBlack = true
			added = 2
		}

		if !shortSlotNear(g, row, col) && !shortSlotNear(g, mr, mc) && isConnected(g) {
			blackCount += added
			continue
		}

		// Reject: undo the tentative placement.
		g.Cells[row][col].IsBlack = false
		g.Cells[mr][mc].IsBlack = false
	}

	if density() >= low && density() <= high && isConnected(g) && !hasShortWords(g) && isSymmetric(g) {
		return g, true
	}
	return nil, false
}

// shortSlotNear checks only the row and column containing a tentative
// placement for white runs shorter than MinWordLength, per spec's "scans
// only the row and column containing the tentative placements" detail.
func shortSlotNear(g *Grid, row, col int) bool {
	return rowHasShortRun(g, row) || colHasShortRun(g, col)
}
