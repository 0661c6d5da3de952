package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordgrid/crossgen/internal/models"
	"github.com/wordgrid/crossgen/pkg/clues"
	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/lexicon"
	"github.com/wordgrid/crossgen/pkg/output"
	"github.com/wordgrid/crossgen/pkg/puzzle"
)

var (
	genCount      int
	genDifficulty string
	genOutput     string
	genFormat     string
	genBank       string
	genDictionary string
	genGridSize   int
	genTitle      string
	genSeed       int64
	genRetries    int
	genSymmetry   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate crossword puzzles from the word bank",
	Long: `Generate one or more crossword puzzles using constraint satisfaction
against a curated word bank, optionally widened with a bulk dictionary
for additional fill candidates.

Examples:
  # Generate 10 easy puzzles in JSON format
  crossgen generate --bank bank.txt --count 10 --difficulty easy --format json --output ./puzzles

  # Generate a single 21x21 puzzle under full symmetry, all formats
  crossgen generate --bank bank.txt --dictionary words.txt --grid-size 21 --symmetry --format all --output ./puzzle`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of puzzles to generate")
	generateCmd.Flags().StringVarP(&genDifficulty, "difficulty", "d", "medium", "puzzle difficulty (easy, medium, hard, expert)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", ".", "output directory")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "output format (json, puz, ipuz, all)")
	generateCmd.Flags().StringVar(&genBank, "bank", "", "path to the curated word bank file, WORD:CLUE per line (required)")
	generateCmd.Flags().StringVar(&genDictionary, "dictionary", "", "path to an optional bulk dictionary file, one word per line")
	generateCmd.Flags().IntVar(&genGridSize, "grid-size", 15, "grid size (NxN)")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "puzzle title (default: CROSSWORD)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = random)")
	generateCmd.Flags().IntVar(&genRetries, "retries", 0, "retry budget (0 = package default: 20, or 35 under --symmetry)")
	generateCmd.Flags().BoolVar(&genSymmetry, "symmetry", false, "use the larger symmetry retry budget (templates are always 180-degree symmetric)")

	generateCmd.MarkFlagRequired("bank")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	difficulty, err := parseDifficulty(genDifficulty)
	if err != nil {
		return fmt.Errorf("invalid difficulty: %w", err)
	}

	formats, err := parseFormats(genFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if verbosity > 0 {
		fmt.Printf("Loading word bank from: %s\n", genBank)
	}
	lex, resolver, err := loadLexicon(genBank, genDictionary)
	if err != nil {
		return err
	}
	if verbosity > 0 {
		fmt.Printf("Loaded lexicon: %d clueable entries\n", lex.Len())
	}

	generator := puzzle.NewGenerator(lex, resolver)

	if err := os.MkdirAll(genOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	title := genTitle
	if title == "" {
		title = "CROSSWORD"
	}

	fmt.Printf("Generating %d puzzle(s) with difficulty: %s\n", genCount, genDifficulty)

	for i := 1; i <= genCount; i++ {
		startTime := time.Now()
		fmt.Printf("[%d/%d] Generating puzzle... ", i, genCount)

		seed := genSeed
		if genCount > 1 && seed != 0 {
			seed += int64(i - 1)
		}
		puzzleTitle := title
		if genCount > 1 {
			puzzleTitle = fmt.Sprintf("%s %d", title, i)
		}

		puz, err := generator.GeneratePuzzle(puzzle.Config{
			Size:       genGridSize,
			Difficulty: difficulty,
			Seed:       seed,
			Retries:    genRetries,
			Symmetry:   genSymmetry,
			Title:      puzzleTitle,
		})
		if err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to generate puzzle %d: %w", i, err)
		}

		exported := puzzle.ToModelsPuzzle(puz)
		if err := writeOutputFiles(exported, genOutput, i, formats); err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to write output files for puzzle %d: %w", i, err)
		}

		fmt.Printf("OK (%.1fs)\n", time.Since(startTime).Seconds())
	}

	fmt.Printf("\nSuccessfully generated %d puzzle(s) in %s\n", genCount, genOutput)
	return nil
}

// loadLexicon builds a clueability resolver from the bank at bankPath and,
// when dictionaryPath is non-empty, widens the fill candidate pool with
// its bulk word list.
func loadLexicon(bankPath, dictionaryPath string) (*lexicon.Lexicon, *clues.Resolver, error) {
	bank, err := clues.LoadBank(bankPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load word bank: %w", err)
	}
	resolver := clues.NewResolver(bank, nil)

	src := lexicon.Source{BankWords: bank.Words()}
	if dictionaryPath != "" {
		words, err := lexicon.LoadDictionary(dictionaryPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		src.DictionaryWords = words
	}

	lex, err := lexicon.BuildFromSource(src, resolver)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build lexicon: %w", err)
	}
	return lex, resolver, nil
}

// parseDifficulty converts string difficulty to grid.Difficulty
func parseDifficulty(diff string) (grid.Difficulty, error) {
	switch strings.ToLower(diff) {
	case "easy":
		return grid.Easy, nil
	case "medium":
		return grid.Medium, nil
	case "hard":
		return grid.Hard, nil
	case "expert":
		return grid.Expert, nil
	default:
		return grid.Medium, fmt.Errorf("invalid difficulty: %s (must be easy, medium, hard, or expert)", diff)
	}
}

// parseFormats converts format string to list of formats
func parseFormats(format string) ([]string, error) {
	format = strings.ToLower(format)
	if format == "all" {
		return []string{"json", "puz", "ipuz"}, nil
	}

	validFormats := map[string]bool{
		"json": true,
		"puz":  true,
		"ipuz": true,
	}

	if !validFormats[format] {
		return nil, fmt.Errorf("invalid format: %s (must be json, puz, ipuz, or all)", format)
	}

	return []string{format}, nil
}

// writeOutputFiles writes puz to disk in the specified formats
func writeOutputFiles(puz *models.Puzzle, outputDir string, puzzleNum int, formats []string) error {
	baseName := fmt.Sprintf("puzzle_%03d", puzzleNum)

	for _, format := range formats {
		var filePath string
		var data []byte
		var err error

		switch format {
		case "json":
			filePath = filepath.Join(outputDir, baseName+".json")
			data, err = output.ToJSON(puz)
		case "puz":
			filePath = filepath.Join(outputDir, baseName+".puz")
			data, err = output.FormatPuz(puz)
		case "ipuz":
			filePath = filepath.Join(outputDir, baseName+".ipuz")
			data, err = output.ToIPuz(puz)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return fmt.Errorf("failed to format puzzle as %s: %w", format, err)
		}

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s file: %w", format, err)
		}
	}

	return nil
}
