package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	assert.Equal(t, Markdown, DialectFor("docs/README.md", true))
	assert.Equal(t, Plain, DialectFor("NOTES.MD", true))
	assert.Equal(t, Plain, DialectFor("docs/README.md", false))
	assert.Equal(t, Plain, DialectFor("notes.txt", true))
	assert.Equal(t, "markdown", Markdown.String())
	assert.Equal(t, "plain", Plain.String())
}

func TestSeparatorTables(t *testing.T) {
	plain := Separators(Plain)
	md := Separators(Markdown)

	require.Len(t, plain, 5)
	assert.Nil(t, plain[len(plain)-1].Pattern, "tables end with the code point fallback")
	assert.Nil(t, md[len(md)-1].Pattern)
	assert.Equal(t, "h1", md[0].Name)
	assert.Equal(t, plain, md[len(md)-len(plain):], "markdown falls back to the plain hierarchy")

	plain[0] = Separator{Name: "mutated"}
	assert.Equal(t, "paragraph", Separators(Plain)[0].Name)
}

func TestPiecesCoverInput(t *testing.T) {
	for _, sep := range Separators(Markdown) {
		pieces := sep.pieces(markdownDoc, 0, len(markdownDoc))
		require.NotEmpty(t, pieces, sep.Name)
		cursor := 0
		for _, p := range pieces {
			require.Equal(t, cursor, p.start, sep.Name)
			require.Greater(t, p.end, p.start, sep.Name)
			cursor = p.end
		}
		assert.Equal(t, len(markdownDoc), cursor, sep.Name)
	}
}

func TestPiecesKeepDelimiters(t *testing.T) {
	line := Separators(Plain)[1]
	doc := "a\nb\nc"
	var got []string
	for _, p := range line.pieces(doc, 0, len(doc)) {
		got = append(got, doc[p.start:p.end])
	}
	assert.Equal(t, []string{"a\n", "b\n", "c"}, got)

	h2 := Separators(Markdown)[1]
	doc = "intro\n## One\nbody\n## Two\n"
	got = nil
	for _, p := range h2.pieces(doc, 0, len(doc)) {
		got = append(got, doc[p.start:p.end])
	}
	assert.Equal(t, []string{"intro\n", "## One\nbody\n", "## Two\n"}, got)
}

func TestFallbackSplitsCodePoints(t *testing.T) {
	doc := "añb"
	var got []string
	for _, p := range fallback.pieces(doc, 0, len(doc)) {
		got = append(got, doc[p.start:p.end])
	}
	assert.Equal(t, []string{"a", "ñ", "b"}, got)
}
