package docs

import (
	"context"
	"fmt"
	"time"

	"github.com/roivaz/docsplit/internal/length"
	"github.com/roivaz/docsplit/internal/logging"
	"github.com/roivaz/docsplit/internal/splitter"
)

// Ingester runs one batch: load every document, split each one and number the
// chunks across the whole batch.
type Ingester struct {
	Source             Source
	Chunker            Chunker
	MarkdownSeparators bool
	Workers            int
	Log                logging.Logger
}

// NewIngester validates cfg and acquires the run's length metric. A tokenizer
// that cannot be resolved fails here, before any input is touched.
func NewIngester(cfg Config, log logging.Logger) (*Ingester, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	metric, err := length.New(cfg.SizeCountMethod, cfg.EmbeddingModel, cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if tokens, ok := metric.(length.Tokens); ok {
		if oracle, ok := tokens.Oracle.(*length.TiktokenOracle); ok {
			log.Info("tokenizer loaded", "model", cfg.EmbeddingModel, "encoding", oracle.Encoding())
		}
	}
	chunker, err := splitter.New(cfg.ChunkSize, cfg.ChunkOverlap, metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	var source Source = &FileSource{Path: cfg.Input, Exclude: cfg.Exclude}
	if cfg.GitRef != "" {
		source = &GitSource{RepoPath: cfg.Input, Ref: cfg.GitRef, Exclude: cfg.Exclude}
	}

	return &Ingester{
		Source:             source,
		Chunker:            chunker,
		MarkdownSeparators: cfg.MarkdownSeparators,
		Workers:            cfg.Workers,
		Log:                log,
	}, nil
}

// Run returns the chunk records of the batch in emission order.
func (i *Ingester) Run(ctx context.Context) ([]ChunkRecord, error) {
	start := time.Now()
	docs, err := i.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	i.Log.Debug("documents loaded", "count", len(docs), "elapsed", time.Since(start))

	split := splitDocuments(i.Chunker, docs, i.MarkdownSeparators, i.Workers)
	for _, d := range split {
		i.Log.Debug("document split",
			"source", d.Source,
			"dialect", splitter.DialectFor(d.Source, i.MarkdownSeparators).String(),
			"chunks", len(d.Spans),
		)
	}

	records := AssembleAll(split)
	i.Log.Info("documents split", "documents", len(docs), "chunks", len(records), "elapsed", time.Since(start))
	return records, nil
}

// Ingest runs the batch and writes the records to output.
func (i *Ingester) Ingest(ctx context.Context, output string) error {
	records, err := i.Run(ctx)
	if err != nil {
		return err
	}
	if err := WriteChunks(output, records); err != nil {
		return err
	}
	i.Log.Info("chunks written", "output", output, "chunks", len(records))
	return nil
}
