package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/wordgrid/crossgen/pkg/clues"
)

// ErrInsufficientEntries is returned when lexicon construction yields
// fewer than MinClueableEntries, satisfying spec §7's LexiconError case.
var ErrInsufficientEntries = fmt.Errorf("lexicon construction yielded too few clueable entries")

// MinClueableEntries is the minimum number of clueable entries a lexicon
// must contain to be usable.
const MinClueableEntries = 1

// normalize uppercases word and strips every non-A-Z character, per spec
// §4.2's normalization rule. It returns ok=false for an empty result or
// a result shorter than 2 letters.
func normalize(word string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(word) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) < 2 {
		return "", false
	}
	return out, true
}

// LoadDictionary reads a newline-separated bulk dictionary file.
func LoadDictionary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dictionary: %w", err)
	}
	return words, nil
}

// Source holds the raw inputs used to build a Lexicon.
type Source struct {
	// BankWords are the curated bank's words (its clues live in the
	// clues.Bank passed to BuildFromSource, not here).
	BankWords []string
	// DictionaryWords are the bulk dictionary's raw word list.
	DictionaryWords []string
}

// BuildFromSource normalizes, deduplicates, applies the clueability
// filter (resolver), scores, and indexes a Lexicon from raw word lists.
// Entries that the resolver cannot clue are dropped entirely, per
// spec §4.2.
func BuildFromSource(src Source, resolver *clues.Resolver) (*Lexicon, error) {
	var entries []Entry

	seenBank := make(map[string]bool)
	for _, raw := range src.BankWords {
		word, ok := normalize(raw)
		if !ok || seenBank[word] {
			continue
		}
		seenBank[word] = true
		if !resolver.Clueable(word) {
			continue
		}
		entries = append(entries, Entry{Word: word, Score: BankScore, Provenance: Bank})
	}

	seenDict := make(map[string]bool)
	for _, raw := range src.DictionaryWords {
		word, ok := normalize(raw)
		if !ok || seenDict[word] {
			continue
		}
		seenDict[word] = true
		if !resolver.Clueable(word) {
			continue
		}
		entries = append(entries, Entry{Word: word, Score: DictionaryScore, Provenance: Dictionary})
	}

	lex := Build(entries)
	if lex.Len() < MinClueableEntries {
		return nil, ErrInsufficientEntries
	}
	return lex, nil
}
