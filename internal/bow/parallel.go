package bow

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/asanchez-dev/bowbench/internal/cluster"
	"github.com/asanchez-dev/bowbench/internal/corpus"
	"github.com/asanchez-dev/bowbench/pkg/logger"
)

// RunDistributed executes one distributed trial on this rank. Every rank of
// the group must call it with the same document list. The returned duration
// is the max-reduced elapsed time at the root (0 elsewhere); the slowest
// rank defines the trial's perceived latency. A returned error is root-only
// and means the writing step was aborted, not that the trial desynced.
func (p *Pipeline) RunDistributed(comm *cluster.Comm, docs []corpus.Document, outPath string) (time.Duration, error) {
	log := logger.WithRank("bow.parallel", comm.Rank())
	start := time.Now()

	assigned := Assigned(len(docs), comm.Size(), comm.Rank())
	counts, kept := p.countDocs(log, docs, assigned, "distributed")

	vocab := p.syncVocabulary(comm, localTerms(counts))
	index := vocab.Index()

	// Rows are flattened row-major; with the vocabulary fixed, a rank's
	// contribution is fully described by its row count.
	flat := make([]int, 0, len(counts)*len(vocab))
	for _, tc := range counts {
		flat = append(flat, denseRow(tc, index, len(vocab))...)
	}

	rowCounts := comm.Gather(cluster.EncodeInt32s([]int{len(kept)}))
	var rowLayout cluster.Layout
	if comm.IsRoot() {
		perRank := make([]int, comm.Size())
		for r, part := range rowCounts {
			perRank[r] = cluster.DecodeInt32s(part)[0]
		}
		rowLayout = cluster.NewLayout(perRank)
	}

	idxPayload := cluster.EncodeInt32s(kept)
	p.metrics.CollectiveBytesTotal.WithLabelValues("indices").Add(float64(len(idxPayload)))
	idxBuf := comm.Exchange(rowLayout.Scale(4), idxPayload)

	valPayload := cluster.EncodeInt32s(flat)
	p.metrics.CollectiveBytesTotal.WithLabelValues("values").Add(float64(len(valPayload)))
	valBuf := comm.Exchange(rowLayout.Scale(4*len(vocab)), valPayload)

	var runErr error
	if comm.IsRoot() {
		runErr = p.assembleAndWrite(log, docs, vocab, idxBuf, valBuf, outPath)
	}

	// Everyone has sent and the root has written before the clock stops.
	comm.Barrier()
	elapsed := comm.MaxDuration(time.Since(start))
	return elapsed, runErr
}

// syncVocabulary merges every rank's locally observed terms into one
// vocabulary, identical on all ranks, in lexicographic order. Four phases:
// serialize the local listing, gather listing sizes and compute the layout,
// gather the listings at the root and union them, broadcast the sorted
// union.
func (p *Pipeline) syncVocabulary(comm *cluster.Comm, local []string) Vocabulary {
	payload := encodeTerms(local)
	p.metrics.CollectiveBytesTotal.WithLabelValues("vocabulary").Add(float64(len(payload)))

	buf, layout := comm.GatherV(payload)

	var union []byte
	if comm.IsRoot() {
		seen := make(map[string]struct{})
		for r := 0; r < comm.Size(); r++ {
			for _, term := range decodeTerms(layout.Slice(buf, r)) {
				seen[term] = struct{}{}
			}
		}
		terms := make([]string, 0, len(seen))
		for term := range seen {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		union = encodeTerms(terms)
	}

	return Vocabulary(decodeTerms(comm.Bcast(union)))
}

// assembleAndWrite pairs every gathered row with its origin document index,
// restores original document order, and writes the CSV. Arrival order is
// never relied on: ranks contribute out of order and at different rates.
func (p *Pipeline) assembleAndWrite(log *slog.Logger, docs []corpus.Document, vocab Vocabulary, idxBuf, valBuf []byte, outPath string) error {
	docIndices := cluster.DecodeInt32s(idxBuf)
	values := cluster.DecodeInt32s(valBuf)
	if len(docIndices) == 0 {
		return fmt.Errorf("distributed path over %d documents: %w", len(docs), ErrNoRows)
	}

	width := len(vocab)
	type taggedRow struct {
		doc int
		row []int
	}
	tagged := make([]taggedRow, len(docIndices))
	for i, docIdx := range docIndices {
		tagged[i] = taggedRow{doc: docIdx, row: values[i*width : (i+1)*width]}
	}
	sort.Slice(tagged, func(i, j int) bool { return tagged[i].doc < tagged[j].doc })

	names := make([]string, len(tagged))
	rows := make([][]int, len(tagged))
	for i, tr := range tagged {
		names[i] = docs[tr.doc].Name
		rows[i] = tr.row
	}

	p.metrics.VocabularySize.Set(float64(width))
	p.metrics.MatrixRows.Set(float64(len(rows)))

	if err := WriteCSVFile(outPath, Matrix{Vocabulary: vocab, Names: names, Rows: rows}); err != nil {
		return fmt.Errorf("distributed path: %w", err)
	}
	log.Debug("distributed trial assembled",
		"rows", len(rows),
		"vocabulary", width,
	)
	return nil
}
