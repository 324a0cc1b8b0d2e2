package bow

import (
	"fmt"
	"time"

	"github.com/asanchez-dev/bowbench/internal/corpus"
	"github.com/asanchez-dev/bowbench/pkg/logger"
)

// RunSerial executes the single-worker reference path: every document in
// list order, a direct union into the sorted vocabulary, rows in document
// order, one CSV write. Its output is the correctness oracle for the
// distributed path and its elapsed time the speedup baseline.
func (p *Pipeline) RunSerial(docs []corpus.Document, outPath string) (time.Duration, error) {
	log := logger.WithComponent("bow.serial")
	start := time.Now()

	indices := make([]int, len(docs))
	for i := range docs {
		indices[i] = i
	}
	counts, kept := p.countDocs(log, docs, indices, "baseline")
	if len(counts) == 0 {
		return time.Since(start), fmt.Errorf("serial path over %d documents: %w", len(docs), ErrNoRows)
	}

	vocab := Vocabulary(localTerms(counts))
	index := vocab.Index()

	names := make([]string, len(kept))
	rows := make([][]int, len(counts))
	for i, tc := range counts {
		names[i] = docs[kept[i]].Name
		rows[i] = denseRow(tc, index, len(vocab))
	}

	if err := WriteCSVFile(outPath, Matrix{Vocabulary: vocab, Names: names, Rows: rows}); err != nil {
		return time.Since(start), fmt.Errorf("serial path: %w", err)
	}

	elapsed := time.Since(start)
	log.Debug("serial trial complete",
		"documents", len(rows),
		"vocabulary", len(vocab),
		"elapsed", elapsed,
	)
	return elapsed, nil
}
