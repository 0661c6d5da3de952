// Package numberer implements the post-fill numbering pass: it walks a
// filled grid row-major and produces the across/down clue lists every
// output format (PUZ, IPUZ, JSON) and the PDF renderer consume.
package numberer

import (
	"fmt"

	"github.com/wordgrid/crossgen/pkg/clues"
	"github.com/wordgrid/crossgen/pkg/grid"
)

// Clue is one numbered entry: its sequential number, resolved clue
// text, and answer (read off the filled grid).
type Clue struct {
	Number int
	Text   string
	Answer string
}

// Numbering holds the two clue lists, each sorted by number ascending.
type Numbering struct {
	Across []Clue
	Down   []Clue
}

// ErrUnfilledCell is returned when Number is asked to number a grid
// that still has blank white cells; the numbering pass only operates
// on a completed fill, per spec.md §4.5.
var ErrUnfilledCell = fmt.Errorf("cannot number a grid with unfilled cells")

// Number scans g row-major, assigning sequential numbers to every cell
// that starts an across or down run, and resolves a clue for each
// resulting answer via resolver. A cell starts across iff its left
// neighbor is black or the grid edge and its right neighbor is white;
// it starts down iff its top neighbor is black or the edge and its
// bottom neighbor is white.
func Number(g *grid.Grid, resolver *clues.Resolver) (*Numbering, error) {
	result := &Numbering{}
	number := 1

	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			cell := g.Cells[row][col]
			if cell.IsBlack {
				continue
			}

			startsAcross := (col == 0 || g.Cells[row][col-1].IsBlack) &&
				col+1 < g.Size && !g.Cells[row][col+1].IsBlack
			startsDown := (row == 0 || g.Cells[row-1][col].IsBlack) &&
				row+1 < g.Size && !g.Cells[row+1][col].IsBlack

			if !startsAcross && !startsDown {
				continue
			}

			if startsAcross {
				answer, err := readRun(g, row, col, 0, 1)
				if err != nil {
					return nil, err
				}
				result.Across = append(result.Across, newClue(number, answer, resolver))
			}
			if startsDown {
				answer, err := readRun(g, row, col, 1, 0)
				if err != nil {
					return nil, err
				}
				result.Down = append(result.Down, newClue(number, answer, resolver))
			}
			number++
		}
	}

	return result, nil
}

func newClue(number int, answer string, resolver *clues.Resolver) Clue {
	text := answer
	if resolver != nil {
		if resolved, ok := resolver.Resolve(answer); ok {
			text = resolved
		}
	}
	return Clue{Number: number, Text: text, Answer: answer}
}

// readRun reads the run of letters starting at (row,col) stepping by
// (dRow,dCol) until a black cell or the grid edge, returning an error
// if any cell along the way is unfilled.
func readRun(g *grid.Grid, row, col, dRow, dCol int) (string, error) {
	var buf []byte
	r, c := row, col
	for r < g.Size && c < g.Size && !g.Cells[r][c].IsBlack {
		letter := g.Cells[r][c].Letter
		if letter == 0 {
			return "", ErrUnfilledCell
		}
		buf = append(buf, byte(letter))
		r += dRow
		c += dCol
	}
	return string(buf), nil
}
