// Package placer implements the XLSX-mode alternate path: a greedy,
// partial word placer that builds a template incrementally around a
// user-supplied word list, rather than filling a pre-built template.
package placer

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/wordgrid/crossgen/pkg/clues"
	"github.com/wordgrid/crossgen/pkg/grid"
)

// ErrPlacementFailed is returned when the best of all attempts placed
// fewer than MinPlacedWords entries.
var ErrPlacementFailed = errors.New("placer: best attempt placed too few words")

// MinPlacedWords is the minimum number of placed answers required for a
// successful placement, per spec.md §4.7.
const MinPlacedWords = 30

// JitterMax bounds the uniform tie-breaking jitter added to every
// candidate score.
const JitterMax = 0.1

// Config drives one Place call.
type Config struct {
	Size     int
	Seed     int64
	Retries  int
	Symmetry bool
}

// Attempt is the outcome of one placement pass.
type Attempt struct {
	Grid          *grid.Grid
	Placed        []clues.PlacedEntry
	Skipped       []clues.ClueEntry
	Intersections int
	Compactness   float64
}

type candidate struct {
	row, col  int
	direction grid.Direction
	score     float64
	intersect int
}

// board is the placer's private working representation: a grid plus
// the bookkeeping needed to enforce the four placement-validity checks
// and, under symmetry, partner-cell consistency.
type board struct {
	g        *grid.Grid
	size     int
	symmetry bool
	// blocked holds cells explicitly required to stay black: the
	// axis-adjacent guard cells and perpendicular non-crossing
	// neighbors of every placed word.
	blocked map[[2]int]bool
}

func newBoard(size int, symmetry bool) *board {
	return &board{
		g:        grid.NewEmptyGrid(grid.GridConfig{Size: size}),
		size:     size,
		symmetry: symmetry,
		blocked:  make(map[[2]int]bool),
	}
}

func (b *board) mirror(row, col int) (int, int) {
	return b.size - 1 - row, b.size - 1 - col
}

func (b *board) inBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *board) used(row, col int) bool {
	return b.inBounds(row, col) && b.g.Cells[row][col].Letter != 0
}

func (b *board) letterAt(row, col int) rune {
	if !b.inBounds(row, col) {
		return 0
	}
	return b.g.Cells[row][col].Letter
}

// Place runs up to cfg.Retries attempts of the greedy placement
// algorithm, each with a freshly seeded RNG, and returns the attempt
// that placed the most words (ties broken by total intersections, then
// compactness). It returns ErrPlacementFailed if even the best attempt
// placed fewer than MinPlacedWords.
func Place(entries []clues.ClueEntry, cfg Config) (*Attempt, error) {
	if cfg.Retries <= 0 {
		cfg.Retries = 1
	}

	sorted := make([]clues.ClueEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Answer) > len(sorted[j].Answer)
	})

	var best *Attempt
	for i := 0; i < cfg.Retries; i++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
		attempt := placeOnce(sorted, cfg.Size, cfg.Symmetry, rng)
		if best == nil || better(attempt, best) {
			best = attempt
		}
	}

	if len(best.Placed) < MinPlacedWords {
		return best, fmt.Errorf("%w: placed %d, need %d", ErrPlacementFailed, len(best.Placed), MinPlacedWords)
	}
	return best, nil
}

// better reports whether a should replace b as the best attempt: more
// placed words wins; ties broken by total intersections, then by
// compactness.
func better(a, b *Attempt) bool {
	if len(a.Placed) != len(b.Placed) {
		return len(a.Placed) > len(b.Placed)
	}
	if a.Intersections != b.Intersections {
		return a.Intersections > b.Intersections
	}
	return a.Compactness > b.Compactness
}

func placeOnce(sorted []clues.ClueEntry, size int, symmetry bool, rng *rand.Rand) *Attempt {
	b := newBoard(size, symmetry)
	attempt := &Attempt{}

	for i, entry := range sorted {
		word := entry.Answer
		if len(word) == 0 || len(word) > size {
			attempt.Skipped = append(attempt.Skipped, entry)
			continue
		}

		if i == 0 {
			row, col := size/2, (size-len(word))/2
			if !b.tryPlaceFirst(row, col, grid.ACROSS, word) {
				attempt.Skipped = append(attempt.Skipped, entry)
				continue
			}
			placed := clues.PlacedEntry{ClueEntry: entry, Row: row, Col: col, Direction: grid.ACROSS}
			attempt.Placed = append(attempt.Placed, placed)
			continue
		}

		cands := b.enumerateCandidates(word, rng)
		if len(cands) == 0 {
			attempt.Skipped = append(attempt.Skipped, entry)
			continue
		}

		best := cands[0]
		for _, c := range cands[1:] {
			if c.score > best.score {
				best = c
			}
		}

		if !b.tryPlace(best.row, best.col, best.direction, word) {
			attempt.Skipped = append(attempt.Skipped, entry)
			continue
		}
		attempt.Intersections += best.intersect
		attempt.Placed = append(attempt.Placed, clues.PlacedEntry{
			ClueEntry: entry, Row: best.row, Col: best.col, Direction: best.direction,
		})
	}

	attempt.Grid = finalizeTemplate(b)
	attempt.Compactness = compactness(b)
	return attempt
}

// enumerateCandidates finds every position where word can cross an
// already-placed letter, scores each, and returns them all.
func (b *board) enumerateCandidates(word string, rng *rand.Rand) []candidate {
	var out []candidate
	seen := make(map[[3]int]bool) // (row, col, direction)

	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			letter := b.letterAt(row, col)
			if letter == 0 {
				continue
			}
			for pos := 0; pos < len(word); pos++ {
				if rune(word[pos]) != letter {
					continue
				}

				for _, dir := range []grid.Direction{grid.ACROSS, grid.DOWN} {
					startRow, startCol := row, col
					if dir == grid.ACROSS {
						startCol = col - pos
					} else {
						startRow = row - pos
					}
					key := [3]int{startRow, startCol, int(dir)}
					if seen[key] {
						continue
					}
					seen[key] = true

					if ok, intersect := b.validPlacement(startRow, startCol, dir, word, true); ok {
						score := scoreCandidate(b, startRow, startCol, dir, word, intersect, rng)
						out = append(out, candidate{row: startRow, col: startCol, direction: dir, score: score, intersect: intersect})
					}
				}
			}
		}
	}
	return out
}

// validPlacement implements the four placement-validity checks from
// spec.md §4.7: in-bounds, overlap letters agree, no accidental
// extension along the axis, and no accidental perpendicular word at a
// non-crossing cell. It also applies the symmetryConsistent check
// when the board was built with symmetry enabled. It
// returns the intersection count alongside the validity verdict.
func (b *board) validPlacement(row, col int, dir grid.Direction, word string, requireIntersection bool) (bool, int) {
	cells := wordCells(row, col, dir, len(word))
	for _, c := range cells {
		if !b.inBounds(c[0], c[1]) {
			return false, 0
		}
	}

	dRow, dCol := 0, 1
	if dir == grid.DOWN {
		dRow, dCol = 1, 0
	}

	// Check (iii): no accidental extension before/after the word.
	beforeRow, beforeCol := row-dRow, col-dCol
	if b.inBounds(beforeRow, beforeCol) && b.used(beforeRow, beforeCol) {
		return false, 0
	}
	afterRow, afterCol := cells[len(cells)-1][0]+dRow, cells[len(cells)-1][1]+dCol
	if b.inBounds(afterRow, afterCol) && b.used(afterRow, afterCol) {
		return false, 0
	}

	intersections := 0
	for i, c := range cells {
		r, cc := c[0], c[1]
		existing := b.letterAt(r, cc)
		if existing != 0 {
			if existing != rune(word[i]) {
				return false, 0
			}
			intersections++
			continue
		}

		// Check (iv): perpendicular neighbors at non-crossing cells
		// must be unused, to avoid forming an accidental 2-letter word.
		var n1r, n1c, n2r, n2c int
		if dir == grid.ACROSS {
			n1r, n1c = r-1, cc
			n2r, n2c = r+1, cc
		} else {
			n1r, n1c = r, cc-1
			n2r, n2c = r, cc+1
		}
		if b.inBounds(n1r, n1c) && b.used(n1r, n1c) {
			return false, 0
		}
		if b.inBounds(n2r, n2c) && b.used(n2r, n2c) {
			return false, 0
		}
	}

	if requireIntersection && intersections == 0 {
		return false, 0
	}

	if b.symmetry && !b.symmetryConsistent(cells) {
		return false, 0
	}

	return true, intersections
}

// symmetryConsistent reports whether placing word's cells is consistent
// with their symmetric partners: a cell about to become white must not
// have a mirror partner already forced black. Only the word's own cells
// are checked; the guard cells this placement forces black are not
// compared against their mirror partners.
func (b *board) symmetryConsistent(cells [][2]int) bool {
	for _, c := range cells {
		if b.used(c[0], c[1]) {
			continue // already white; consistency was checked when it was placed
		}
		mr, mc := b.mirror(c[0], c[1])
		if b.blocked[[2]int{mr, mc}] {
			return false
		}
	}
	return true
}

// tryPlace re-validates and commits a placement: writes letters into
// the grid and records the guard cells as blocked.
func (b *board) tryPlace(row, col int, dir grid.Direction, word string) bool {
	return b.commit(row, col, dir, word, true)
}

// tryPlaceFirst commits the very first word of an attempt, which by
// definition crosses nothing yet.
func (b *board) tryPlaceFirst(row, col int, dir grid.Direction, word string) bool {
	return b.commit(row, col, dir, word, false)
}

func (b *board) commit(row, col int, dir grid.Direction, word string, requireIntersection bool) bool {
	ok, _ := b.validPlacement(row, col, dir, word, requireIntersection)
	if !ok {
		return false
	}

	cells := wordCells(row, col, dir, len(word))
	for i, c := range cells {
		b.g.Cells[c[0]][c[1]].Letter = rune(word[i])
	}

	dRow, dCol := 0, 1
	if dir == grid.DOWN {
		dRow, dCol = 1, 0
	}
	guards := [][2]int{{row - dRow, col - dCol}, {cells[len(cells)-1][0] + dRow, cells[len(cells)-1][1] + dCol}}
	for _, c := range cells {
		if dir == grid.ACROSS {
			guards = append(guards, [2]int{c[0] - 1, c[1]}, [2]int{c[0] + 1, c[1]})
		} else {
			guards = append(guards, [2]int{c[0], c[1] - 1}, [2]int{c[0], c[1] + 1})
		}
	}
	for _, g := range guards {
		if b.inBounds(g[0], g[1]) && !b.used(g[0], g[1]) {
			b.blocked[g] = true
		}
	}
	return true
}

func wordCells(row, col int, dir grid.Direction, length int) [][2]int {
	cells := make([][2]int, length)
	for i := 0; i < length; i++ {
		if dir == grid.ACROSS {
			cells[i] = [2]int{row, col + i}
		} else {
			cells[i] = [2]int{row + i, col}
		}
	}
	return cells
}

// scoreCandidate implements spec.md §4.7's scoring formula:
// 2*intersections + centrality - expansion + jitter(0, 0.1).
func scoreCandidate(b *board, row, col int, dir grid.Direction, word string, intersections int, rng *rand.Rand) float64 {
	cells := wordCells(row, col, dir, len(word))

	midRow, midCol := 0.0, 0.0
	for _, c := range cells {
		midRow += float64(c[0])
		midCol += float64(c[1])
	}
	midRow /= float64(len(cells))
	midCol /= float64(len(cells))

	center := float64(b.size-1) / 2
	dist := absFloat(midRow-center) + absFloat(midCol-center)
	maxDist := float64(b.size - 1)
	centrality := 0.0
	if maxDist > 0 {
		centrality = -dist / maxDist
	}

	minR, minC, maxR, maxC := b.currentBounds()
	newMinR, newMinC, newMaxR, newMaxC := minR, minC, maxR, maxC
	for _, c := range cells {
		newMinR, newMinC = minInt(newMinR, c[0]), minInt(newMinC, c[1])
		newMaxR, newMaxC = maxInt(newMaxR, c[0]), maxInt(newMaxC, c[1])
	}
	oldArea := float64((maxR - minR + 1) * (maxC - minC + 1))
	newArea := float64((newMaxR - newMinR + 1) * (newMaxC - newMinC + 1))
	expansion := 0.0
	if newArea > oldArea {
		expansion = (newArea - oldArea) / float64(b.size*b.size)
	}

	jitter := rng.Float64() * JitterMax

	return 2*float64(intersections) + centrality - expansion + jitter
}

func (b *board) currentBounds() (minR, minC, maxR, maxC int) {
	minR, minC, maxR, maxC = b.size, b.size, -1, -1
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if !b.used(r, c) {
				continue
			}
			minR, minC = minInt(minR, r), minInt(minC, c)
			maxR, maxC = maxInt(maxR, r), maxInt(maxC, c)
		}
	}
	if maxR < 0 {
		return b.size / 2, b.size / 2, b.size / 2, b.size / 2
	}
	return minR, minC, maxR, maxC
}

// finalizeTemplate marks every cell never used by a placed word as
// black, producing the completed black/white template.
func finalizeTemplate(b *board) *grid.Grid {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if !b.used(r, c) {
				b.g.Cells[r][c].IsBlack = true
			}
		}
	}
	grid.ExtractSlots(b.g)
	return b.g
}

// compactness is white_cells / bounding_box_area, per spec.md §4.7's
// attempt-scoring tie-break.
func compactness(b *board) float64 {
	minR, minC, maxR, maxC := b.currentBounds()
	area := (maxR - minR + 1) * (maxC - minC + 1)
	if area <= 0 {
		return 0
	}
	white := 0
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.used(r, c) {
				white++
			}
		}
	}
	return float64(white) / float64(area)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
