// Package bow builds the document–term frequency matrix. It contains the
// shared data model, the round-robin partitioner, the serial (baseline)
// path, the distributed path with its vocabulary synchronisation and matrix
// assembly collectives, and the CSV writer. The two paths must produce
// byte-identical output for the same corpus.
package bow

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyCorpus reports that there is nothing to process: the resolved
// document list is empty. It aborts a run before any collective phase.
var ErrEmptyCorpus = errors.New("bow: no documents to process")

// ErrNoRows reports that no worker contributed a single row, so there is no
// matrix to write. It aborts the writing step of a trial.
var ErrNoRows = errors.New("bow: no rows assembled")

// TermCounts maps each term to its occurrence count within one document. It
// is built once per document and never mutated afterwards.
type TermCounts map[string]int

// Vocabulary is the lexicographically ordered list of all distinct terms
// seen across the corpus. After synchronisation every worker holds an
// identical copy.
type Vocabulary []string

// Index returns the term -> column position lookup used for dense row
// construction. Built once per trial, after the vocabulary is final.
func (v Vocabulary) Index() map[string]int {
	idx := make(map[string]int, len(v))
	for i, term := range v {
		idx[term] = i
	}
	return idx
}

// Matrix pairs the finalized vocabulary with one dense row per document, in
// original document order.
type Matrix struct {
	Vocabulary Vocabulary
	Names      []string
	Rows       [][]int
}

// encodeTerms serializes terms newline-separated, one trailing newline per
// term. This is the wire form for vocabulary listings.
func encodeTerms(terms []string) []byte {
	if len(terms) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, term := range terms {
		sb.WriteString(term)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// decodeTerms splits a newline-separated listing, discarding empty entries.
func decodeTerms(data []byte) []string {
	var terms []string
	start := 0
	for i, b := range data {
		if b != '\n' {
			continue
		}
		if i > start {
			terms = append(terms, string(data[start:i]))
		}
		start = i + 1
	}
	if start < len(data) {
		terms = append(terms, string(data[start:]))
	}
	return terms
}

// localTerms returns the sorted distinct terms across a worker's documents.
func localTerms(counts []TermCounts) []string {
	seen := make(map[string]struct{})
	for _, tc := range counts {
		for term := range tc {
			seen[term] = struct{}{}
		}
	}
	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// denseRow projects one document's counts onto the vocabulary columns.
func denseRow(tc TermCounts, index map[string]int, width int) []int {
	row := make([]int, width)
	for term, n := range tc {
		if pos, ok := index[term]; ok {
			row[pos] = n
		}
	}
	return row
}
