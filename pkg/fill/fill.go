// Package fill implements the DFS backtracking engine that assigns a word
// to every slot of a template grid: most-constrained-slot-first selection,
// descending-score value ordering with optional jitter, and forward
// checking against crossing slots.
package fill

import (
	"errors"
	"math/rand"
	"time"

	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/lexicon"
)

// ErrNoValidFill is returned when the DFS search exhausts the root
// without completing an assignment, or a budget is exceeded.
var ErrNoValidFill = errors.New("no valid fill found")

// Config holds the per-attempt budgets and jitter/seed parameters.
type Config struct {
	// MaxNodes bounds the number of slot assignments attempted before
	// the attempt is declared FAILED. Zero means DefaultMaxNodes.
	MaxNodes int
	// MaxDuration bounds wall-clock time spent on one attempt. Zero
	// means DefaultMaxDuration.
	MaxDuration time.Duration
	// Seed drives value-ordering jitter. Two Fill calls with identical
	// grid, lexicon, and Seed produce identical output.
	Seed int64
	// Jitter is the maximum random amount, in [0, Jitter), added to each
	// candidate's score before ordering; candidates whose scores differ
	// by less than Jitter may swap. Zero disables jitter (pure
	// descending-score order).
	Jitter float64
}

const (
	// DefaultMaxNodes bounds slot-assignment attempts per Fill call.
	DefaultMaxNodes = 200000
	// DefaultMaxDuration bounds wall-clock time per Fill call.
	DefaultMaxDuration = 10 * time.Second
)

// state is the per-attempt mutable search state threaded through the
// recursive search; it is never shared across attempts, matching the
// attempt-private grid and RNG the search requires for determinism.
type state struct {
	lex      *lexicon.Lexicon
	cfg      Config
	rng      *rand.Rand
	used     map[string]bool
	nodes    int
	deadline time.Time
}

// Fill assigns a word to every entry in g using a depth-first,
// most-constrained-slot-first search with forward checking. On success
// every entry's cells carry letters. On failure the grid is left
// unmodified (every tentative placement is undone on backtrack) and
// ErrNoValidFill is returned.
func Fill(g *grid.Grid, lex *lexicon.Lexicon, cfg Config) error {
	if g == nil || lex == nil {
		return errors.New("grid and lexicon cannot be nil")
	}
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = DefaultMaxNodes
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultMaxDuration
	}

	st := &state{
		lex:      lex,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		used:     make(map[string]bool, len(g.Entries)),
		deadline: time.Now().Add(cfg.MaxDuration),
	}

	unassigned := make([]*grid.Entry, len(g.Entries))
	copy(unassigned, g.Entries)

	if st.search(unassigned) {
		return nil
	}
	return ErrNoValidFill
}

// search selects the most-constrained remaining slot, tries its
// candidates in value order, and recurses. It returns true on SUCCESS
// (every slot assigned) and false on FAILED (search exhausted or a
// budget was hit).
func (st *state) search(remaining []*grid.Entry) bool {
	if len(remaining) == 0 {
		return true
	}
	if st.budgetExceeded() {
		return false
	}

	idx, entry := st.selectMostConstrained(remaining)
	candidates := st.orderedCandidates(entry)

	rest := make([]*grid.Entry, 0, len(remaining)-1)
	rest = append(rest, remaining[:idx]...)
	rest = append(rest, remaining[idx+1:]...)

	for _, cand := range candidates {
		st.nodes++
		undo := st.assign(entry, cand.Word)

		if st.forwardCheckOK(entry) && st.search(rest) {
			return true
		}
		undo()

		if st.budgetExceeded() {
			return false
		}
	}

	return false
}

func (st *state) budgetExceeded() bool {
	return st.nodes >= st.cfg.MaxNodes || time.Now().After(st.deadline)
}

// selectMostConstrained returns the index (within remaining) and entry
// with the fewest lexicon candidates consistent with its current
// pattern. Ties are broken by higher crossing count, then by a stable
// identity order (start row, start col, direction) for determinism.
func (st *state) selectMostConstrained(remaining []*grid.Entry) (int, *grid.Entry) {
	bestIdx := 0
	bestEntry := remaining[0]
	bestCount := st.candidateCount(bestEntry)

	for i := 1; i < len(remaining); i++ {
		e := remaining[i]
		count := st.candidateCount(e)
		switch {
		case count < bestCount:
			bestIdx, bestEntry, bestCount = i, e, count
		case count == bestCount && moreConstrained(e, bestEntry):
			bestIdx, bestEntry, bestCount = i, e, count
		}
	}
	return bestIdx, bestEntry
}

// moreConstrained breaks slot-selection ties: more crossings wins, then
// row-major start position, then direction.
func moreConstrained(a, b *grid.Entry) bool {
	if len(a.Crossings) != len(b.Crossings) {
		return len(a.Crossings) > len(b.Crossings)
	}
	if a.StartRow != b.StartRow {
		return a.StartRow < b.StartRow
	}
	if a.StartCol != b.StartCol {
		return a.StartCol < b.StartCol
	}
	return a.Direction < b.Direction
}

func (st *state) candidateCount(e *grid.Entry) int {
	return len(st.queryUsable(e))
}

// queryUsable queries the lexicon for e's current pattern and filters
// out words already used elsewhere in this attempt.
func (st *state) queryUsable(e *grid.Entry) []lexicon.Entry {
	all := st.lex.Query(e.Length, e.Pattern())
	if len(all) == 0 {
		return nil
	}
	out := make([]lexicon.Entry, 0, len(all))
	for _, cand := range all {
		if !st.used[cand.Word] {
			out = append(out, cand)
		}
	}
	return out
}

// orderedCandidates returns e's usable candidates in descending-score
// order, with seeded jitter added to each score so near-tied candidates
// may swap order deterministically per seed.
func (st *state) orderedCandidates(e *grid.Entry) []lexicon.Entry {
	cands := st.queryUsable(e)
	if st.cfg.Jitter <= 0 || len(cands) < 2 {
		return cands
	}

	jittered := make([]lexicon.Entry, len(cands))
	copy(jittered, cands)
	scores := make([]float64, len(jittered))
	for i, c := range jittered {
		scores[i] = c.Score + st.rng.Float64()*st.cfg.Jitter
	}
	for i := 1; i < len(jittered); i++ {
		for j := i; j > 0 && scores[j] > scores[j-1]; j-- {
			jittered[j], jittered[j-1] = jittered[j-1], jittered[j]
			scores[j], scores[j-1] = scores[j-1], scores[j]
		}
	}
	return jittered
}

// forwardCheckOK re-queries every still-unassigned slot crossing entry
// after entry's tentative assignment and reports whether every one of
// them still has at least one usable candidate.
func (st *state) forwardCheckOK(entry *grid.Entry) bool {
	seen := make(map[*grid.Entry]bool, len(entry.Crossings))
	for _, c := range entry.Crossings {
		other := c.Other
		if seen[other] {
			continue
		}
		seen[other] = true
		if _, ok := other.Word(); ok {
			continue
		}
		if len(st.queryUsable(other)) == 0 {
			return false
		}
	}
	return true
}

// assign writes word into entry's cells and marks it used, returning a
// closure that undoes both when called.
func (st *state) assign(entry *grid.Entry, word string) (undo func()) {
	prev := make([]rune, len(entry.Cells))
	for i, c := range entry.Cells {
		prev[i] = c.Letter
	}
	st.used[word] = true
	for i, c := range entry.Cells {
		c.Letter = rune(word[i])
	}
	return func() {
		for i, c := range entry.Cells {
			c.Letter = prev[i]
		}
		delete(st.used, word)
	}
}
