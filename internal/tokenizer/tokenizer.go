// Package tokenizer provides text tokenisation for the matrix pipeline.
// It lower-cases ASCII letters and splits on any byte outside [a-z0-9_].
// There is no stemming and no stop-word removal: two runs over the same
// bytes must produce the same terms, and the term set defines the CSV
// columns, so normalisation stays byte-exact.
package tokenizer

// Tokenize breaks raw document bytes into normalised terms. A byte is
// term-forming iff it is an ASCII letter, digit, or underscore after
// lower-casing; every other byte is a separator. Empty runs are never
// emitted, and any input tokenizes successfully.
func Tokenize(data []byte) []string {
	var terms []string
	token := make([]byte, 0, 16)
	for _, b := range data {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_' {
			token = append(token, b)
			continue
		}
		if len(token) > 0 {
			terms = append(terms, string(token))
			token = token[:0]
		}
	}
	if len(token) > 0 {
		terms = append(terms, string(token))
	}
	return terms
}

// Count aggregates a document's terms into per-term occurrence counts.
func Count(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}
