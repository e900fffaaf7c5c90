package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/roivaz/docsplit/internal/length"
	"github.com/roivaz/docsplit/internal/logging"
)

const guideDoc = "# Guide\n\nDocsplit turns documents into chunks. Each chunk is embedded on its own.\n\n" +
	"## Usage\n\nPoint it at a directory. Every markdown and text file below it is read.\n"

func newIngester(t *testing.T, cfg Config) *Ingester {
	t.Helper()
	ing, err := NewIngester(cfg, logging.New(logr.Discard()))
	require.NoError(t, err)
	return ing
}

func corpusDir(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{}
	for i := 0; i < n; i++ {
		files[fmt.Sprintf("doc%02d.md", i)] = strings.Repeat(guideDoc, i%3+1)
		files[fmt.Sprintf("notes/n%02d.txt", i)] = strings.Repeat("plain words in a text file. ", i+1)
	}
	writeFiles(t, dir, files)
	return dir
}

func runConfig(input string) Config {
	cfg := validConfig()
	cfg.Input = input
	cfg.ChunkSize = 60
	cfg.ChunkOverlap = 10
	return cfg
}

func TestIngesterRunNumbersChunksAcrossBatch(t *testing.T) {
	dir := corpusDir(t, 4)
	records, err := newIngester(t, runConfig(dir)).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)

	seen := map[string]bool{}
	prevSource := ""
	for i, r := range records {
		assert.Equal(t, i, r.Metadata.ChunkID)
		assert.NotEmpty(t, strings.TrimSpace(r.Content))
		assert.LessOrEqual(t, len([]rune(r.Content)), 60)
		assert.NotContains(t, r.Metadata.Source, `\`)
		if r.Metadata.Source != prevSource {
			require.False(t, seen[r.Metadata.Source], "chunks of %s are not contiguous", r.Metadata.Source)
			seen[r.Metadata.Source] = true
			prevSource = r.Metadata.Source
		}
	}
	assert.Len(t, seen, 8)
	assert.True(t, strings.HasSuffix(records[0].Metadata.Source, "/doc00.md"))
}

func TestIngesterParallelMatchesSequential(t *testing.T) {
	dir := corpusDir(t, 6)
	sequential, err := newIngester(t, runConfig(dir)).Run(context.Background())
	require.NoError(t, err)

	cfg := runConfig(dir)
	cfg.Workers = 4
	parallel, err := newIngester(t, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestIngestIsIdempotent(t *testing.T) {
	dir := corpusDir(t, 2)
	out := filepath.Join(t.TempDir(), "document_chunks.json")
	ing := newIngester(t, runConfig(dir))

	require.NoError(t, ing.Ingest(context.Background(), out))
	first, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, ing.Ingest(context.Background(), out))
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(0), gjson.GetBytes(first, "chunks.0.metadata.chunk_id").Int())
}

func TestIngestEmptyDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chunks.json")
	require.NoError(t, newIngester(t, runConfig(t.TempDir())).Ingest(context.Background(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chunks":[]}`, string(data))
}

func TestIngestFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "ok\n", "b.html": "<p>no</p>"})
	out := filepath.Join(t.TempDir(), "chunks.json")

	err := newIngester(t, runConfig(dir)).Ingest(context.Background(), out)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestIngesterMarkdownSeparators(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":  "aa\n# B\nbb\n",
		"b.txt": "aa\n# B\nbb\n",
	})
	cfg := runConfig(dir)
	cfg.ChunkSize = 8
	cfg.ChunkOverlap = 0

	contents := func(records []ChunkRecord) []string {
		var out []string
		for _, r := range records {
			out = append(out, r.Content)
		}
		return out
	}

	records, err := newIngester(t, cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "# B\nbb", "aa\n# B", "bb"}, contents(records))

	cfg.MarkdownSeparators = false
	records, err = newIngester(t, cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"aa\n# B", "bb", "aa\n# B", "bb"}, contents(records))
}

func TestNewIngesterUnknownTokenizer(t *testing.T) {
	t.Setenv("TIKTOKEN_CACHE_DIR", t.TempDir())
	cfg := runConfig(filepath.Join(t.TempDir(), "does-not-exist"))
	cfg.SizeCountMethod = length.MethodTokens
	cfg.EmbeddingModel = "no-such-model"

	_, err := NewIngester(cfg, logging.New(logr.Discard()))
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "no-such-model")
}

func TestNewIngesterPicksSource(t *testing.T) {
	cfg := runConfig("docs")
	ing := newIngester(t, cfg)
	assert.IsType(t, &FileSource{}, ing.Source)

	cfg.GitRef = "main"
	ing = newIngester(t, cfg)
	assert.Equal(t, &GitSource{RepoPath: "docs", Ref: "main"}, ing.Source)
}
