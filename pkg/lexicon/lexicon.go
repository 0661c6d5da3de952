// Package lexicon implements the pre-indexed word source the fill engine
// and XLSX placer both query for candidates: a single, immutable
// (length, pattern) -> ordered-by-score contract.
package lexicon

import "sort"

// Provenance records which source an Entry came from.
type Provenance int

const (
	// Bank entries come from the curated, hand-clued word bank.
	Bank Provenance = iota
	// Dictionary entries come from the bulk dictionary.
	Dictionary
)

// Score weights assigned by source, per spec §4.2.
const (
	BankScore       = 1.0
	DictionaryScore = 0.3
)

// Entry is an immutable word record: an uppercase A-Z word, a score
// (higher preferred), and its provenance.
type Entry struct {
	Word       string
	Score      float64
	Provenance Provenance
}

// Lexicon is an immutable, indexed collection of Entry values supporting
// fast pattern queries by length and known letters.
type Lexicon struct {
	byLength map[int][]Entry
	// letterIndex[length][position][letter] holds the indices into
	// byLength[length] of every entry with that letter at that position,
	// per spec §4.2's non-binding bucket+bitmap implementation guidance.
	letterIndex map[int][wordAlphabetSize][26][]int
}

const wordAlphabetSize = 32 // generous bound on supported slot length

// Build indexes a de-duplicated set of entries (the highest-scored entry
// per word wins, per spec §4.2; words are compared exactly as given, so
// callers normalize case first) into a queryable Lexicon. Each distinct
// word keeps the position of its first appearance in entries.
func Build(entries []Entry) *Lexicon {
	position := make(map[string]int, len(entries))
	dedup := make([]Entry, 0, len(entries))
	for _, e := range entries {
		i, ok := position[e.Word]
		if !ok {
			position[e.Word] = len(dedup)
			dedup = append(dedup, e)
		} else if e.Score > dedup[i].Score {
			dedup[i] = e
		}
	}

	lex := &Lexicon{
		byLength:    make(map[int][]Entry),
		letterIndex: make(map[int][wordAlphabetSize][26][]int),
	}
	for _, e := range dedup {
		lex.byLength[len(e.Word)] = append(lex.byLength[len(e.Word)], e)
	}
	for length, bucket := range lex.byLength {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Score > bucket[j].Score
		})
		lex.byLength[length] = bucket

		var idx [wordAlphabetSize][26][]int
		for i, e := range bucket {
			for pos := 0; pos < len(e.Word) && pos < wordAlphabetSize; pos++ {
				letter := e.Word[pos] - 'A'
				if letter < 26 {
					idx[pos][letter] = append(idx[pos][letter], i)
				}
			}
		}
		lex.letterIndex[length] = idx
	}
	return lex
}

// Len returns the total number of distinct entries in the lexicon.
func (l *Lexicon) Len() int {
	total := 0
	for _, bucket := range l.byLength {
		total += len(bucket)
	}
	return total
}

// LenOfLength returns the number of entries of the given length.
func (l *Lexicon) LenOfLength(length int) int {
	return len(l.byLength[length])
}

// Query returns every entry of the given length matching pattern (a
// string of the given length whose characters are either an uppercase
// letter or '.' for a wildcard), in descending-score order. Ties are
// broken by bucket order (stable, i.e. insertion/build order), matching
// the "any stable rule" tie-break spec.md allows.
func (l *Lexicon) Query(length int, pattern string) []Entry {
	bucket, ok := l.byLength[length]
	if !ok || len(bucket) == 0 {
		return nil
	}
	if len(pattern) != length {
		return nil
	}

	fixedPositions := make([]int, 0, length)
	for i := 0; i < length; i++ {
		if pattern[i] != '.' {
			fixedPositions = append(fixedPositions, i)
		}
	}
	if len(fixedPositions) == 0 {
		out := make([]Entry, len(bucket))
		copy(out, bucket)
		return out
	}

	idx := l.letterIndex[length]
	candidateSet := intersectCandidates(idx, fixedPositions, pattern)
	if candidateSet == nil {
		return nil
	}

	out := make([]Entry, 0, len(candidateSet))
	order := make([]int, 0, len(candidateSet))
	for i := range candidateSet {
		order = append(order, i)
	}
	sort.Ints(order)
	for _, i := range order {
		out = append(out, bucket[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func intersectCandidates(idx [wordAlphabetSize][26][]int, fixedPositions []int, pattern string) map[int]struct{} {
	var result map[int]struct{}
	for _, pos := range fixedPositions {
		if pos >= wordAlphabetSize {
			return nil
		}
		letter := pattern[pos] - 'A'
		if letter >= 26 {
			return nil
		}
		ids := idx[pos][letter]
		if result == nil {
			result = make(map[int]struct{}, len(ids))
			for _, id := range ids {
				result[id] = struct{}{}
			}
			continue
		}
		for id := range result {
			found := false
			for _, cand := range ids {
				if cand == id {
					found = true
					break
				}
			}
			if !found {
				delete(result, id)
			}
		}
	}
	return result
}
