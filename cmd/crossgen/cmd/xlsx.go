package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wordgrid/crossgen/pkg/output"
	"github.com/wordgrid/crossgen/pkg/puzzle"
)

var (
	xlsxInput    string
	xlsxOutput   string
	xlsxFormat   string
	xlsxGridSize int
	xlsxTitle    string
	xlsxSeed     int64
	xlsxRetries  int
	xlsxSymmetry bool
)

var xlsxCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Build a crossword from a fixed XLSX word list",
	Long: `Place a fixed, user-supplied (word, clue) list from an XLSX worksheet
onto a crossword grid, instead of filling from the shared lexicon.

The worksheet's first row is a header; accepted columns are the simple
form (word, clue) or the richer form (Number, Direction, Row, Col, Clue,
Answer). Answers are normalized to uppercase A-Z.

Examples:
  # Place every answer in words.xlsx onto a 15x15 grid (the --grid-size
  # default; the size is not derived from the word list)
  crossgen xlsx --input words.xlsx --output puzzle.json

  # Force a 15x15 grid under symmetry
  crossgen xlsx --input words.xlsx --grid-size 15 --symmetry --output puzzle.json`,
	RunE: runXLSX,
}

func init() {
	rootCmd.AddCommand(xlsxCmd)

	xlsxCmd.Flags().StringVarP(&xlsxInput, "input", "i", "", "XLSX worksheet path (required)")
	xlsxCmd.Flags().StringVarP(&xlsxOutput, "output", "o", "", "output file path (required)")
	xlsxCmd.Flags().StringVarP(&xlsxFormat, "format", "f", "json", "output format (json, puz, ipuz)")
	xlsxCmd.Flags().IntVar(&xlsxGridSize, "grid-size", 15, "grid size (NxN)")
	xlsxCmd.Flags().StringVar(&xlsxTitle, "title", "", "puzzle title (default: CROSSWORD)")
	xlsxCmd.Flags().Int64Var(&xlsxSeed, "seed", 0, "random seed (0 = random)")
	xlsxCmd.Flags().IntVar(&xlsxRetries, "retries", 0, "placer retry budget (0 = package default)")
	xlsxCmd.Flags().BoolVar(&xlsxSymmetry, "symmetry", false, "reject placements whose new cells mirror a cell already forced black (the finished grid is not guaranteed to be symmetric)")

	xlsxCmd.MarkFlagRequired("input")
	xlsxCmd.MarkFlagRequired("output")
}

func runXLSX(cmd *cobra.Command, args []string) error {
	formats, err := parseFormats(xlsxFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	title := xlsxTitle
	if title == "" {
		title = "CROSSWORD"
	}

	if verbosity > 0 {
		fmt.Printf("Loading word list from: %s\n", xlsxInput)
	}

	puz, err := puzzle.GenerateFromWordList(xlsxInput, puzzle.WordListConfig{
		Size:     xlsxGridSize,
		Seed:     xlsxSeed,
		Retries:  xlsxRetries,
		Symmetry: xlsxSymmetry,
		Title:    title,
	})
	if err != nil {
		return fmt.Errorf("failed to build puzzle from word list: %w", err)
	}

	exported := puzzle.ToModelsPuzzle(puz)

	format := formats[0]
	var data []byte
	switch format {
	case "json":
		data, err = output.ToJSON(exported)
	case "puz":
		data, err = output.FormatPuz(exported)
	case "ipuz":
		data, err = output.ToIPuz(exported)
	}
	if err != nil {
		return fmt.Errorf("failed to format puzzle as %s: %w", format, err)
	}

	if err := os.WriteFile(xlsxOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Placed %d answers onto a %dx%d grid, wrote %s\n", len(exported.CluesAcross)+len(exported.CluesDown), exported.GridWidth, exported.GridHeight, xlsxOutput)
	return nil
}
