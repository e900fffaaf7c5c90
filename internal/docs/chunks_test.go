package docs

import (
	"testing"

	"github.com/roivaz/docsplit/internal/splitter"
)

func spansOf(texts ...string) []splitter.Span {
	var spans []splitter.Span
	offset := 0
	for _, t := range texts {
		spans = append(spans, splitter.Span{Text: t, Start: offset, End: offset + len(t)})
		offset += len(t) + 1
	}
	return spans
}

func TestAssembleAllNumbersAcrossDocuments(t *testing.T) {
	docs := []SplitDocument{
		{Document: Document{Source: "a.md"}, Spans: spansOf("one", "two")},
		{Document: Document{Source: "empty.txt"}},
		{Document: Document{Source: "b.txt"}, Spans: spansOf("three")},
	}

	records := AssembleAll(docs)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := []ChunkRecord{
		{Metadata: ChunkMetadata{Source: "a.md", ChunkID: 0}, Content: "one"},
		{Metadata: ChunkMetadata{Source: "a.md", ChunkID: 1}, Content: "two"},
		{Metadata: ChunkMetadata{Source: "b.txt", ChunkID: 2}, Content: "three"},
	}
	for i := range want {
		if records[i] != want[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, want[i], records[i])
		}
	}
}

func TestAssemblerContinuesCount(t *testing.T) {
	var a Assembler
	first := a.Assemble(Document{Source: "a.md"}, spansOf("x", "y"))
	second := a.Assemble(Document{Source: "b.md"}, spansOf("z"))
	if a.Count() != 3 {
		t.Fatalf("expected count 3, got %d", a.Count())
	}
	if first[1].Metadata.ChunkID != 1 || second[0].Metadata.ChunkID != 2 {
		t.Fatalf("unexpected ids %d and %d", first[1].Metadata.ChunkID, second[0].Metadata.ChunkID)
	}
}

func TestAssembleUsesForwardSlashes(t *testing.T) {
	var a Assembler
	records := a.Assemble(Document{Source: "docs/guide/intro.md"}, spansOf("hi"))
	if got := records[0].Metadata.Source; got != "docs/guide/intro.md" {
		t.Fatalf("unexpected source %s", got)
	}
}

func TestAssembleAllEmpty(t *testing.T) {
	records := AssembleAll(nil)
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", records)
	}
}
