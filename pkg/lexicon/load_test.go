package lexicon

import (
	"testing"

	"github.com/wordgrid/crossgen/pkg/clues"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"cat", "CAT", true},
		{"Jo-Jo", "JOJO", true},
		{"a", "", false},
		{"123", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := normalize(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("normalize(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBuildFromSource_DropsUnclueableWords(t *testing.T) {
	bank := clues.NewBank(map[string]string{"CAT": "Feline pet"})
	resolver := clues.NewResolver(bank, nil)

	lex, err := BuildFromSource(Source{
		BankWords:       []string{"cat"},
		DictionaryWords: []string{"zzzqv"},
	}, resolver)
	if err != nil {
		t.Fatalf("BuildFromSource() error = %v", err)
	}
	if lex.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (unclueable dictionary word should be dropped)", lex.Len())
	}
	if got := lex.Query(3, "..."); len(got) != 1 || got[0].Word != "CAT" {
		t.Fatalf("Query(3, \"...\") = %+v, want only CAT", got)
	}
}

func TestBuildFromSource_InsufficientEntries(t *testing.T) {
	bank := clues.NewBank(map[string]string{})
	resolver := clues.NewResolver(bank, nil)

	_, err := BuildFromSource(Source{DictionaryWords: []string{"zzzqv"}}, resolver)
	if err != ErrInsufficientEntries {
		t.Fatalf("err = %v, want ErrInsufficientEntries", err)
	}
}
