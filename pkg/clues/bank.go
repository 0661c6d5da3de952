package clues

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// inflectionSuffixes are stripped, in order, when a direct bank lookup
// fails, per spec's clueability filter tier (b).
var inflectionSuffixes = []string{"ING", "ED", "ER", "LY", "S"}

// ExternalDictionary is the out-of-scope external collaborator consulted
// as the clueability filter's last tier. No implementation ships; callers
// that don't have one should pass nil, in which case tier (c) always
// misses.
type ExternalDictionary interface {
	// Define returns a clue-worthy definition for word, or ok=false if
	// the dictionary has no entry for it.
	Define(word string) (text string, ok bool)
}

// Bank is a curated word -> clue mapping (spec §4.2's "curated word
// bank"), loaded once at startup.
type Bank struct {
	clues map[string]string
}

// NewBank wraps a pre-built word->clue map.
func NewBank(clueByWord map[string]string) *Bank {
	return &Bank{clues: clueByWord}
}

// LoadBank reads a bank file where each line is WORD:CLUE TEXT. Blank
// lines are skipped. Words are normalized to uppercase.
func LoadBank(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word bank: %w", err)
	}
	defer f.Close()

	clueByWord := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			return nil, fmt.Errorf("malformed bank line %d: expected 'WORD:CLUE', got %q", lineNum, line)
		}
		word := strings.ToUpper(strings.TrimSpace(line[:idx]))
		clue := strings.TrimSpace(line[idx+1:])
		if word == "" || clue == "" {
			return nil, fmt.Errorf("malformed bank line %d: empty word or clue", lineNum)
		}
		clueByWord[word] = clue
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading word bank: %w", err)
	}
	return &Bank{clues: clueByWord}, nil
}

// Lookup returns the bank's clue for word, if any.
func (b *Bank) Lookup(word string) (string, bool) {
	if b == nil {
		return "", false
	}
	clue, ok := b.clues[word]
	return clue, ok
}

// Words returns every word the bank has a clue for, in no particular
// order — used to seed lexicon.Source.BankWords from a loaded bank.
func (b *Bank) Words() []string {
	if b == nil {
		return nil
	}
	words := make([]string, 0, len(b.clues))
	for word := range b.clues {
		words = append(words, word)
	}
	return words
}

// Len returns the number of entries in the bank.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.clues)
}

// Resolver implements spec §4.2's clueability filter: direct bank lookup,
// then inflection stripping against the bank, then an external
// dictionary. A word is "clueable" iff Resolve returns ok=true.
type Resolver struct {
	Bank       *Bank
	External   ExternalDictionary
}

// NewResolver builds a Resolver over a bank and an optional external
// dictionary (nil disables tier (c)).
func NewResolver(bank *Bank, external ExternalDictionary) *Resolver {
	return &Resolver{Bank: bank, External: external}
}

// Resolve returns a clue for word from the first tier that resolves it,
// or ok=false if no tier could resolve it.
func (r *Resolver) Resolve(word string) (text string, ok bool) {
	if clue, found := r.Bank.Lookup(word); found {
		return clue, true
	}

	for _, suffix := range inflectionSuffixes {
		if !strings.HasSuffix(word, suffix) {
			continue
		}
		stem := strings.TrimSuffix(word, suffix)
		if len(stem) < 2 {
			continue
		}
		if clue, found := r.Bank.Lookup(stem); found {
			return clue, true
		}
	}

	if r.External != nil {
		if text, found := r.External.Define(word); found {
			return text, true
		}
	}

	return "", false
}

// Clueable reports whether Resolve would succeed for word, without
// allocating the clue text.
func (r *Resolver) Clueable(word string) bool {
	_, ok := r.Resolve(word)
	return ok
}
