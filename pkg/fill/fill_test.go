package fill

import (
	"testing"

	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/lexicon"
)

func allWhiteGrid(size int) *grid.Grid {
	g := grid.NewEmptyGrid(grid.GridConfig{Size: size})
	grid.ExtractSlots(g)
	return g
}

func words(words ...string) *lexicon.Lexicon {
	entries := make([]lexicon.Entry, len(words))
	for i, w := range words {
		entries[i] = lexicon.Entry{Word: w, Score: 1.0, Provenance: lexicon.Bank}
	}
	return lexicon.Build(entries)
}

func TestFill_ThreeByThreeAllWhite_Succeeds(t *testing.T) {
	// 3x3 all-white has three across and three down 3-letter slots.
	// CAT/COT/CUT crossing ACT/OCT... is awkward; use a lexicon rich
	// enough that any crossing combination is satisfiable.
	lex := words("CAT", "ARM", "TAN", "CAT", "ART", "TAN", "CAR", "AIM", "TIN", "CAB", "ARK", "TAB",
		"BAT", "ORE", "WED", "BOW", "ARE", "TED")
	g := allWhiteGrid(3)

	if err := Fill(g, lex, Config{Seed: 1}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	for _, e := range g.Entries {
		word, ok := e.Word()
		if !ok {
			t.Fatalf("entry at (%d,%d) %s left unfilled", e.StartRow, e.StartCol, e.Direction)
		}
		if got := lex.Query(len(word), word); len(got) == 0 {
			t.Errorf("filled word %q is not in the lexicon", word)
		}
	}
	assertCrossingsAgree(t, g)
	assertNoDuplicateWords(t, g)
}

func TestFill_CatOnlyLexicon_3x3_Fails(t *testing.T) {
	// Spec scenario 2: a lexicon containing only CAT cannot fill a 3x3
	// all-white grid, since no second distinct 3-letter word exists for
	// the crossing down slots once reuse is forbidden.
	lex := words("CAT")
	g := allWhiteGrid(3)

	err := Fill(g, lex, Config{Seed: 7})
	if err != ErrNoValidFill {
		t.Fatalf("Fill() error = %v, want ErrNoValidFill", err)
	}
	for _, e := range g.Entries {
		if _, ok := e.Word(); ok {
			t.Errorf("grid was left partially filled after a failed attempt: entry (%d,%d) %s", e.StartRow, e.StartCol, e.Direction)
		}
	}
}

func TestFill_Deterministic_GivenSameSeed(t *testing.T) {
	lex := words("CAT", "ARM", "TAN", "ART", "CAR", "AIM", "TIN", "CAB", "ARK", "TAB",
		"BAT", "ORE", "WED", "BOW", "ARE", "TED")

	g1 := allWhiteGrid(3)
	if err := Fill(g1, lex, Config{Seed: 42, Jitter: 0.05}); err != nil {
		t.Fatalf("first Fill() error = %v", err)
	}
	want := make(map[*grid.Entry]string)
	for i, e := range g1.Entries {
		w, _ := e.Word()
		want[g1.Entries[i]] = w
	}

	g2 := allWhiteGrid(3)
	if err := Fill(g2, lex, Config{Seed: 42, Jitter: 0.05}); err != nil {
		t.Fatalf("second Fill() error = %v", err)
	}
	for i, e := range g2.Entries {
		w, _ := e.Word()
		g1Word, _ := g1.Entries[i].Word()
		if w != g1Word {
			t.Errorf("entry %d: got %q, want %q (same seed must reproduce the same fill)", i, w, g1Word)
		}
	}
}

func TestFill_UsedWordSetPreventsReuse(t *testing.T) {
	// A one-word lexicon fills a single slot, but cannot fill a second,
	// non-crossing slot of the same length, since a word is used at most
	// once per fill.
	lex := words("CAT")
	g := &grid.Grid{Size: 3}
	g.Cells = make([][]*grid.Cell, 1)
	g.Cells[0] = []*grid.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	entryA := &grid.Entry{Direction: grid.ACROSS, Length: 3, Cells: g.Cells[0]}
	g.Entries = []*grid.Entry{entryA}

	if err := Fill(g, lex, Config{Seed: 1}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	word, _ := entryA.Word()
	if word != "CAT" {
		t.Fatalf("word = %q, want CAT", word)
	}

	g2 := &grid.Grid{Size: 3}
	g2.Cells = [][]*grid.Cell{
		{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	}
	g2.Entries = []*grid.Entry{
		{Direction: grid.ACROSS, Length: 3, Cells: g2.Cells[0]},
		{Direction: grid.ACROSS, StartRow: 2, Length: 3, Cells: g2.Cells[1]},
	}
	if err := Fill(g2, lex, Config{Seed: 1}); err != ErrNoValidFill {
		t.Fatalf("Fill() with two same-length slots error = %v, want ErrNoValidFill", err)
	}
}

func TestFill_NodeBudgetExceeded_ReturnsFailure(t *testing.T) {
	lex := words("CAT", "ARM")
	g := allWhiteGrid(3)

	err := Fill(g, lex, Config{Seed: 1, MaxNodes: 1})
	if err != ErrNoValidFill {
		t.Fatalf("Fill() error = %v, want ErrNoValidFill", err)
	}
}

func assertCrossingsAgree(t *testing.T, g *grid.Grid) {
	t.Helper()
	for _, e := range g.Entries {
		for _, c := range e.Crossings {
			if e.Cells[c.MyOffset].Letter != c.Other.Cells[c.OtherOffset].Letter {
				t.Errorf("crossing mismatch between (%d,%d) %s and (%d,%d) %s",
					e.StartRow, e.StartCol, e.Direction, c.Other.StartRow, c.Other.StartCol, c.Other.Direction)
			}
		}
	}
}

func assertNoDuplicateWords(t *testing.T, g *grid.Grid) {
	t.Helper()
	seen := make(map[string]bool)
	for _, e := range g.Entries {
		w, ok := e.Word()
		if !ok {
			continue
		}
		if seen[w] {
			t.Errorf("word %q used more than once", w)
		}
		seen[w] = true
	}
}
