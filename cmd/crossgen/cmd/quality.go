package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wordgrid/crossgen/internal/puzzle"
	"github.com/wordgrid/crossgen/pkg/output"
)

var (
	qualityBank       string
	qualityDictionary string
)

var qualityCmd = &cobra.Command{
	Use:   "quality <puzzle.json>",
	Short: "Score a generated puzzle against NYT-style quality standards",
	Long: `Score a puzzle's grid construction (symmetry, connectivity, short
words, duplicate answers, obscure crossings) and clue quality, against
the same word bank used to generate it, and print the resulting report
as JSON.

Example:
  crossgen quality --bank bank.txt puzzle_001.json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)

	qualityCmd.Flags().StringVar(&qualityBank, "bank", "", "path to the curated word bank file, WORD:CLUE per line (required)")
	qualityCmd.Flags().StringVar(&qualityDictionary, "dictionary", "", "path to an optional bulk dictionary file, one word per line")

	qualityCmd.MarkFlagRequired("bank")
}

func runQuality(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read puzzle file: %w", err)
	}

	puz, err := output.FromJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse puzzle file: %w", err)
	}

	lex, _, err := loadLexicon(qualityBank, qualityDictionary)
	if err != nil {
		return err
	}

	scorer := puzzle.NewQualityScorer(puzzle.NewLexiconScorer(lex))
	report := scorer.ScorePuzzle(puz)

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode quality report: %w", err)
	}

	fmt.Println(string(encoded))
	return nil
}
