package docs

import (
	"path/filepath"

	"github.com/roivaz/docsplit/internal/splitter"
)

type ChunkMetadata struct {
	Source  string `json:"source"`
	ChunkID int    `json:"chunk_id"`
}

// ChunkRecord is one unit of output, ready to be embedded and indexed.
type ChunkRecord struct {
	Metadata ChunkMetadata `json:"metadata"`
	Content  string        `json:"content"`
}

// Assembler numbers chunks with a single counter shared by every document of
// a batch. The zero value starts at id 0.
type Assembler struct {
	next int
}

// Assemble turns the spans of doc into records, continuing the batch count.
func (a *Assembler) Assemble(doc Document, spans []splitter.Span) []ChunkRecord {
	source := filepath.ToSlash(doc.Source)
	records := make([]ChunkRecord, 0, len(spans))
	for _, sp := range spans {
		records = append(records, ChunkRecord{
			Metadata: ChunkMetadata{Source: source, ChunkID: a.next},
			Content:  sp.Text,
		})
		a.next++
	}
	return records
}

// Count is the number of records assembled so far.
func (a *Assembler) Count() int { return a.next }

// AssembleAll numbers the chunks of docs in document order, then span order.
func AssembleAll(docs []SplitDocument) []ChunkRecord {
	var a Assembler
	records := make([]ChunkRecord, 0)
	for _, d := range docs {
		records = append(records, a.Assemble(d.Document, d.Spans)...)
	}
	return records
}
