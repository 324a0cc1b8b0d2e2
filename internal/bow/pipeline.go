package bow

import (
	"log/slog"

	"github.com/asanchez-dev/bowbench/internal/corpus"
	"github.com/asanchez-dev/bowbench/internal/tokenizer"
	"github.com/asanchez-dev/bowbench/pkg/metrics"
)

// ReadFunc reads a whole document; an error means "skip this document".
type ReadFunc func(path string) ([]byte, error)

// Pipeline runs the two execution paths over a fixed document list.
type Pipeline struct {
	read    ReadFunc
	metrics *metrics.Metrics
}

// NewPipeline wires the storage collaborator and the metric collectors.
func NewPipeline(read ReadFunc, m *metrics.Metrics) *Pipeline {
	return &Pipeline{read: read, metrics: m}
}

// countDocs tokenizes and counts the documents at the given indices.
// Unreadable documents are logged, counted as skipped, and excluded; kept
// holds the original document index of each surviving entry, in assignment
// order.
func (p *Pipeline) countDocs(log *slog.Logger, docs []corpus.Document, indices []int, mode string) (counts []TermCounts, kept []int) {
	for _, idx := range indices {
		doc := docs[idx]
		data, err := p.read(doc.Path)
		if err != nil {
			log.Warn("skipping unreadable document", "name", doc.Name, "error", err)
			p.metrics.DocsSkippedTotal.WithLabelValues(mode).Inc()
			continue
		}
		counts = append(counts, tokenizer.Count(tokenizer.Tokenize(data)))
		kept = append(kept, idx)
		p.metrics.DocsProcessedTotal.WithLabelValues(mode).Inc()
	}
	return counts, kept
}
