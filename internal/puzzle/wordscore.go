package puzzle

import (
	"strings"

	"github.com/wordgrid/crossgen/pkg/lexicon"
)

// LexiconScorer answers the two word-quality questions QualityScorer needs
// — how good is this answer, and is it overused crosswordese — from the
// same lexicon the fill engine and XLSX placer query for candidates,
// rather than a separate scored word list.
type LexiconScorer struct {
	lex          *lexicon.Lexicon
	crosswordese map[string]bool
}

// NewLexiconScorer builds a LexiconScorer over lex.
func NewLexiconScorer(lex *lexicon.Lexicon) *LexiconScorer {
	ls := &LexiconScorer{lex: lex, crosswordese: make(map[string]bool, len(commonCrosswordese))}
	for _, word := range commonCrosswordese {
		ls.crosswordese[word] = true
	}
	return ls
}

// GetWordScore returns a 0-100 quality score for word: a lexicon.Bank
// entry (hand-curated, clued) scores 100, a lexicon.Dictionary entry
// scores 30, and a word absent from the lexicon entirely — one the fill
// engine could never have placed — scores 10.
func (ls *LexiconScorer) GetWordScore(word string) int {
	upper := strings.ToUpper(word)
	for _, e := range ls.lex.Query(len(upper), upper) {
		if e.Word == upper {
			return int(e.Score * 100)
		}
	}
	return 10
}

// IsCrosswordese reports whether word is on the list of short, overused
// fill words solvers associate with crossword grids rather than ordinary
// writing.
func (ls *LexiconScorer) IsCrosswordese(word string) bool {
	return ls.crosswordese[strings.ToUpper(word)]
}

// commonCrosswordese lists short, vowel-heavy entries that fill grids
// easily but that solvers flag as overused.
var commonCrosswordese = []string{
	"OREO", "ERIE", "ALOE", "EPEE", "ESNE", "ANOA", "UNAU",
	"ETUI", "OLEO", "OLIO", "OAST", "OGEE", "ALEE", "ASEA",
	"ARIA", "AREA", "EDEN", "EMIT", "EMIR", "ELAN", "ERNE",
	"OSSA", "OTIC", "OMIT", "ORAL", "EWER", "EASE", "EAVE",
	"APSE", "ALGA", "AGUE", "AGIO", "AGEE", "ANTE", "ANTI",
	"ATOP", "AIDE", "ACME", "ACRE", "EDNA", "ELBA", "ELMS",
	"EDDY", "EARL", "EKED", "ELHI", "ELEM",
	"EELS", "EBON", "EBBS", "ETAS", "ETCH", "ETNA", "EURO",
}
