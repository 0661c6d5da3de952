package grid

// ExtractSlots scans a template row-major and column-major to enumerate
// across and down word slots, assigns clue numbers, and records the
// crossing relationships between them. It populates grid.Entries in
// place; any previously-computed entries are discarded.
//
// A white cell starts an across slot iff its left neighbor is black or
// the grid edge, and there is at least one more white cell to the right.
// A white cell starts a down slot iff its top neighbor is black or the
// edge, and there is at least one more white cell below. Any cell that
// starts across or down receives the next sequential clue number.
func ExtractSlots(g *Grid) {
	g.Entries = nil

	clueNumber := 1
	numberAt := make(map[[2]int]int)

	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.Cells[row][col].IsBlack {
				continue
			}

			startsAcross := (col == 0 || g.Cells[row][col-1].IsBlack) &&
				col+1 < g.Size && !g.Cells[row][col+1].IsBlack
			startsDown := (row == 0 || g.Cells[row-1][col].IsBlack) &&
				row+1 < g.Size && !g.Cells[row+1][col].IsBlack

			if startsAcross || startsDown {
				numberAt[[2]int{row, col}] = clueNumber
				g.Cells[row][col].Number = clueNumber
				clueNumber++
			} else {
				g.Cells[row][col].Number = 0
			}
		}
	}

	across := buildAcrossEntries(g, numberAt)
	down := buildDownEntries(g, numberAt)

	g.Entries = make([]*Entry, 0, len(across)+len(down))
	g.Entries = append(g.Entries, across...)
	g.Entries = append(g.Entries, down...)

	linkCrossings(across, down)
}

func buildAcrossEntries(g *Grid, numberAt map[[2]int]int) []*Entry {
	var entries []*Entry
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.Cells[row][col].IsBlack {
				continue
			}
			if col != 0 && !g.Cells[row][col-1].IsBlack {
				continue
			}
			var cells []*Cell
			c := col
			for c < g.Size && !g.Cells[row][c].IsBlack {
				cells = append(cells, g.Cells[row][c])
				c++
			}
			if len(cells) < 2 {
				continue
			}
			entries = append(entries, &Entry{
				Number:    numberAt[[2]int{row, col}],
				Direction: ACROSS,
				StartRow:  row,
				StartCol:  col,
				Length:    len(cells),
				Cells:     cells,
			})
		}
	}
	return entries
}

func buildDownEntries(g *Grid, numberAt map[[2]int]int) []*Entry {
	var entries []*Entry
	for col := 0; col < g.Size; col++ {
		for row := 0; row < g.Size; row++ {
			if g.Cells[row][col].IsBlack {
				continue
			}
			if row != 0 && !g.Cells[row-1][col].IsBlack {
				continue
			}
			var cells []*Cell
			r := row
			for r < g.Size && !g.Cells[r][col].IsBlack {
				cells = append(cells, g.Cells[r][col])
				r++
			}
			if len(cells) < 2 {
				continue
			}
			entries = append(entries, &Entry{
				Number:    numberAt[[2]int{row, col}],
				Direction: DOWN,
				StartRow:  row,
				StartCol:  col,
				Length:    len(cells),
				Cells:     cells,
			})
		}
	}
	return entries
}

// linkCrossings records, for every across/down pair sharing a cell, a
// Crossing on each side with the offset of the shared cell within each
// entry's Cells slice, ordered by the owning entry's own offset.
func linkCrossings(across, down []*Entry) {
	byCell := make(map[*Cell]struct {
		entry  *Entry
		offset int
	})
	for _, d := range down {
		for i, c := range d.Cells {
			byCell[c] = struct {
				entry  *Entry
				offset int
			}{d, i}
		}
	}

	for _, a := range across {
		for i, c := range a.Cells {
			if hit, ok := byCell[c]; ok {
				a.Crossings = append(a.Crossings, &Crossing{Other: hit.entry, MyOffset: i, OtherOffset: hit.offset})
				hit.entry.Crossings = append(hit.entry.Crossings, &Crossing{Other: a, MyOffset: hit.offset, OtherOffset: i})
			}
		}
	}
}
