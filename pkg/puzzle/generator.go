// Package puzzle orchestrates the full construction pipeline — template
// generation, fill, and XLSX placement — into a single finished Puzzle,
// the unit every output format (JSON, ipuz, PUZ) and the HTTP service
// consume.
package puzzle

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wordgrid/crossgen/pkg/clues"
	"github.com/wordgrid/crossgen/pkg/fill"
	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/lexicon"
	"github.com/wordgrid/crossgen/pkg/numberer"
	"github.com/wordgrid/crossgen/pkg/placer"
	"github.com/wordgrid/crossgen/pkg/retryctl"
	"github.com/wordgrid/crossgen/pkg/xlsxsource"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrConstructionFailed wraps a retryctl or placer failure that
	// survived its own retry budget.
	ErrConstructionFailed = errors.New("puzzle construction failed")
	// ErrNumberingFailed is returned when the post-fill numbering pass
	// rejects the winning grid — it should not happen given a
	// successful fill or placement, and indicates a pipeline bug.
	ErrNumberingFailed = errors.New("puzzle numbering failed")
)

// Config holds configuration for template-mode puzzle generation.
type Config struct {
	Size       int             // Grid size (e.g., 15 for 15x15)
	Difficulty grid.Difficulty // Difficulty level (Easy/Medium/Hard/Expert)
	Seed       int64           // Random seed for reproducibility (0 = random)
	Retries    int             // Retry-controller budget (0 = package default)
	Symmetry   bool            // Selects the larger default retry budget; templates are always symmetric

	Title  string // Puzzle title (optional, will use default if empty)
	Author string // Puzzle author (optional, will use default if empty)

	// OnAttempt, when set, is forwarded to retryctl.Config.OnAttempt so
	// a caller (internal/httpapi's websocket stream) can observe each
	// (template, fill) attempt as it completes.
	OnAttempt func(retryctl.Attempt)
}

// Generator orchestrates the complete puzzle generation pipeline.
type Generator struct {
	lexicon  *lexicon.Lexicon
	resolver *clues.Resolver
}

// NewGenerator creates a new puzzle generator backed by lex for fill
// candidates and resolver for clue resolution.
func NewGenerator(lex *lexicon.Lexicon, resolver *clues.Resolver) *Generator {
	return &Generator{lexicon: lex, resolver: resolver}
}

// GeneratePuzzle orchestrates the complete template-mode pipeline:
// 1. Drive the retry controller, which alternates template generation
//    and the fill engine until one attempt succeeds or the budget runs
//    out.
// 2. Number the winning grid and resolve its clues.
// 3. Assemble a complete Puzzle ready for export.
func (g *Generator) GeneratePuzzle(config Config) (*Puzzle, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	config = setDefaults(config)

	rc := retryctl.Config{
		GridConfig: grid.GeneratorConfig{
			GridConfig: grid.GridConfig{Size: config.Size},
			Difficulty: config.Difficulty,
			Seed:       config.Seed,
		},
		FillConfig: fill.Config{Seed: config.Seed},
		Lexicon:    g.lexicon,
		Budget:     config.Retries,
		Symmetry:   config.Symmetry,
		OnAttempt:  config.OnAttempt,
	}

	result, err := retryctl.Run(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstructionFailed, err)
	}

	numbering, err := numberer.Number(result.Grid, g.resolver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumberingFailed, err)
	}

	metadata := Metadata{
		ID:         uuid.New().String(),
		Title:      config.Title,
		Author:     config.Author,
		Difficulty: config.Difficulty,
		Seed:       config.Seed,
		CreatedAt:  time.Now(),
	}

	return NewPuzzle(result.Grid, numbering, metadata), nil
}

// WordListConfig holds configuration for XLSX-mode puzzle generation:
// a fixed, user-supplied word list placed greedily onto an empty grid,
// rather than a template filled from the shared lexicon.
type WordListConfig struct {
	Size     int   // Grid size (e.g., 15 for 15x15)
	Seed     int64 // Random seed for reproducibility (0 = random)
	Retries  int   // Placer retry budget (0 = package default)
	Symmetry bool

	Title  string
	Author string
}

// GenerateFromWordList loads (answer, clue) pairs from an XLSX worksheet
// at path, places them greedily onto a Size x Size grid, numbers the
// result, and assembles a complete Puzzle. Clue text comes directly from
// the worksheet, via a resolver backed by a one-off bank built from the
// loaded entries.
func GenerateFromWordList(path string, config WordListConfig) (*Puzzle, error) {
	if config.Size < 5 {
		return nil, fmt.Errorf("%w: grid size must be at least 5", ErrInvalidConfig)
	}
	if config.Title == "" {
		config.Title = fmt.Sprintf("Crossword Puzzle - %s", time.Now().Format("2006-01-02"))
	}
	if config.Author == "" {
		config.Author = "crossgen"
	}
	if config.Retries == 0 {
		config.Retries = 10
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	entries, err := xlsxsource.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	clueByWord := make(map[string]string, len(entries))
	clueEntries := make([]clues.ClueEntry, len(entries))
	for i, e := range entries {
		clueByWord[e.Answer] = e.Text
		clueEntries[i] = e.ClueEntry
	}
	bank := clues.NewBank(clueByWord)
	resolver := clues.NewResolver(bank, nil)

	attempt, err := placer.Place(clueEntries, placer.Config{
		Size:     config.Size,
		Seed:     config.Seed,
		Retries:  config.Retries,
		Symmetry: config.Symmetry,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConstructionFailed, err)
	}

	numbering, err := numberer.Number(attempt.Grid, resolver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNumberingFailed, err)
	}

	metadata := Metadata{
		ID:        uuid.New().String(),
		Title:     config.Title,
		Author:    config.Author,
		Seed:      config.Seed,
		CreatedAt: time.Now(),
	}

	return NewPuzzle(attempt.Grid, numbering, metadata), nil
}

// validateConfig validates the puzzle generation configuration
func validateConfig(config Config) error {
	if config.Size < 5 || config.Size > 25 {
		return errors.New("grid size must be between 5 and 25")
	}

	validDifficulty := false
	for _, d := range []grid.Difficulty{grid.Easy, grid.Medium, grid.Hard, grid.Expert} {
		if config.Difficulty == d {
			validDifficulty = true
			break
		}
	}
	if !validDifficulty {
		return errors.New("invalid difficulty level")
	}

	return nil
}

// setDefaults sets default values for optional configuration fields
func setDefaults(config Config) Config {
	if config.Size == 0 {
		config.Size = 15 // Standard crossword size
	}

	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	if config.Title == "" {
		config.Title = fmt.Sprintf("Crossword Puzzle - %s", time.Now().Format("2006-01-02"))
	}

	if config.Author == "" {
		config.Author = "crossgen"
	}

	return config
}
