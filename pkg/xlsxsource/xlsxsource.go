// Package xlsxsource parses a user-supplied worksheet of (word, clue)
// pairs into clue entries the XLSX placer can consume.
package xlsxsource

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wordgrid/crossgen/pkg/clues"
	"github.com/wordgrid/crossgen/pkg/grid"
)

// ErrNoAnswerColumn is returned when neither the simple (word/clue) nor
// the richer (Answer/Clue) header set is present.
var ErrNoAnswerColumn = fmt.Errorf("xlsxsource: worksheet has no word/answer column")

// ErrEmptyAnswer is returned for a row whose answer contains no A-Z
// letters after normalization.
var ErrEmptyAnswer = fmt.Errorf("xlsxsource: answer contains no letters")

// ErrDuplicateAnswer is returned when the same normalized answer
// appears more than once.
var ErrDuplicateAnswer = fmt.Errorf("xlsxsource: duplicate answer")

// PlacementHint carries the richer format's optional pre-assigned
// position; it is discarded after placement per spec, but surfaced here
// so a caller may honor it as a starting suggestion.
type PlacementHint struct {
	Row       int
	Col       int
	Direction grid.Direction
	HasHint   bool
}

// Entry pairs a ClueEntry with its optional richer-format placement
// hint.
type Entry struct {
	clues.ClueEntry
	Hint PlacementHint
}

// Load reads the first worksheet of path, accepting either the simple
// header form (word, clue — case-insensitive) or the richer form
// (Number, Direction, Row, Col, Clue, Answer — 1-indexed). Answers are
// normalized to uppercase A-Z; rows with no letters or a duplicate
// normalized answer are rejected.
func Load(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsxsource: open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsxsource: %s has no worksheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsxsource: read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("xlsxsource: %s has no data rows", path)
	}

	cols := indexHeader(rows[0])
	if _, ok := cols["answer"]; !ok {
		if _, ok := cols["word"]; !ok {
			return nil, ErrNoAnswerColumn
		}
	}

	var entries []Entry
	seen := make(map[string]bool)
	number := 0

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		number++

		answer, clue, hint := parseRow(row, cols, number)
		norm, ok := normalizeAnswer(answer)
		if !ok {
			return nil, fmt.Errorf("%w: row %d (%q)", ErrEmptyAnswer, number, answer)
		}
		if seen[norm] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnswer, norm)
		}
		seen[norm] = true

		entries = append(entries, Entry{
			ClueEntry: clues.ClueEntry{Number: number, Text: clue, Answer: norm},
			Hint:      hint,
		})
	}

	return entries, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int, ok bool) string {
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseRow extracts (answer, clue, hint) from one data row, preferring
// the richer-format columns (Answer/Clue/Number/Direction/Row/Col) when
// present and falling back to the simple (word/clue) pair.
func parseRow(row []string, cols map[string]int, fallbackNumber int) (answer, clueText string, hint PlacementHint) {
	answerIdx, hasAnswer := cols["answer"]
	wordIdx, hasWord := cols["word"]
	clueIdx, hasClue := cols["clue"]

	if hasAnswer {
		answer = cellAt(row, answerIdx, true)
	} else if hasWord {
		answer = cellAt(row, wordIdx, true)
	}
	if hasClue {
		clueText = cellAt(row, clueIdx, true)
	}

	rowIdx, hasRow := cols["row"]
	colIdx, hasCol := cols["col"]
	dirIdx, hasDir := cols["direction"]
	if hasRow && hasCol {
		r, rErr := strconv.Atoi(strings.TrimSpace(cellAt(row, rowIdx, true)))
		c, cErr := strconv.Atoi(strings.TrimSpace(cellAt(row, colIdx, true)))
		if rErr == nil && cErr == nil {
			dir := grid.ACROSS
			if hasDir && strings.EqualFold(strings.TrimSpace(cellAt(row, dirIdx, true)), "down") {
				dir = grid.DOWN
			}
			hint = PlacementHint{Row: r - 1, Col: c - 1, Direction: dir, HasHint: true}
		}
	}

	return answer, clueText, hint
}

func normalizeAnswer(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	return out, len(out) > 0
}
