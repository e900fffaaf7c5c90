package docs

import (
	"github.com/sourcegraph/conc/iter"

	"github.com/roivaz/docsplit/internal/splitter"
)

// Chunker splits one document's text with a separator table.
type Chunker interface {
	Split(text string, seps []splitter.Separator) []splitter.Span
}

// splitDocuments runs the chunker over every document. With more than one
// worker documents are split concurrently; results keep the input order.
func splitDocuments(c Chunker, docs []Document, markdownAware bool, workers int) []SplitDocument {
	split := func(doc *Document) SplitDocument {
		seps := splitter.Separators(splitter.DialectFor(doc.Source, markdownAware))
		return SplitDocument{Document: *doc, Spans: c.Split(doc.Text, seps)}
	}
	if workers <= 1 || len(docs) < 2 {
		out := make([]SplitDocument, 0, len(docs))
		for i := range docs {
			out = append(out, split(&docs[i]))
		}
		return out
	}
	mapper := iter.Mapper[Document, SplitDocument]{MaxGoroutines: workers}
	return mapper.Map(docs, split)
}
