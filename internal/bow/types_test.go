package bow

import (
	"reflect"
	"testing"
)

func TestTermListingRoundTrip(t *testing.T) {
	terms := []string{"alpha", "beta", "gamma"}
	got := decodeTerms(encodeTerms(terms))
	if !reflect.DeepEqual(got, terms) {
		t.Errorf("round trip = %v, want %v", got, terms)
	}
}

func TestEncodeTermsEmpty(t *testing.T) {
	if got := encodeTerms(nil); len(got) != 0 {
		t.Errorf("encoding no terms yielded %q", got)
	}
	if got := decodeTerms(nil); got != nil {
		t.Errorf("decoding no bytes yielded %v", got)
	}
}

func TestDecodeTermsDiscardsEmptyEntries(t *testing.T) {
	got := decodeTerms([]byte("\n\na\n\nb\n"))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("decodeTerms = %v, want [a b]", got)
	}
}

func TestDecodeTermsWithoutTrailingNewline(t *testing.T) {
	got := decodeTerms([]byte("a\nb"))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("decodeTerms = %v, want [a b]", got)
	}
}

func TestVocabularyIndex(t *testing.T) {
	vocab := Vocabulary{"cat", "dog", "ran"}
	idx := vocab.Index()
	want := map[string]int{"cat": 0, "dog": 1, "ran": 2}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("Index = %v, want %v", idx, want)
	}
}

func TestLocalTermsSortedUnion(t *testing.T) {
	counts := []TermCounts{
		{"zebra": 1, "apple": 2},
		{"apple": 5, "mango": 1},
	}
	got := localTerms(counts)
	want := []string{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("localTerms = %v, want %v", got, want)
	}
}

func TestDenseRow(t *testing.T) {
	vocab := Vocabulary{"a", "b", "c"}
	row := denseRow(TermCounts{"a": 3, "c": 1}, vocab.Index(), len(vocab))
	if !reflect.DeepEqual(row, []int{3, 0, 1}) {
		t.Errorf("denseRow = %v, want [3 0 1]", row)
	}
}
