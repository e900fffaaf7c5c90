package docs

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/length"
)

type Config struct {
	Input              string
	Output             string
	ChunkSize          int
	ChunkOverlap       int
	SizeCountMethod    length.Method
	EmbeddingModel     string
	MarkdownSeparators bool     // markdown-aware separators for .md files
	Exclude            []string // doublestar globs, relative to Input
	GitRef             string   // read Input as a git repository at this ref
	Workers            int
	CacheDir           string // tokenizer cache
}

// LoadConfig builds the run configuration for input from flags, environment
// and defaults, and validates it.
func LoadConfig(input string) (Config, error) {
	method, err := length.ParseMethod(config.SizeCountMethod())
	if err != nil {
		return Config{}, configErrorf("%v", err)
	}
	cfg := Config{
		Input:              input,
		Output:             config.Output(),
		ChunkSize:          config.ChunkSize(),
		ChunkOverlap:       config.ChunkOverlap(),
		SizeCountMethod:    method,
		EmbeddingModel:     strings.TrimSpace(config.EmbeddingModel()),
		MarkdownSeparators: config.MarkdownSeparators(),
		Exclude:            config.Exclude(),
		GitRef:             config.GitRef(),
		Workers:            config.Workers(),
		CacheDir:           config.CacheDir(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Input) == "":
		return configErrorf("input path is required")
	case strings.TrimSpace(c.Output) == "":
		return configErrorf("output path is required")
	case c.ChunkSize <= 0:
		return configErrorf("chunk_size must be positive, got %d", c.ChunkSize)
	case c.ChunkOverlap < 0:
		return configErrorf("chunk_overlap cannot be negative, got %d", c.ChunkOverlap)
	case c.ChunkOverlap >= c.ChunkSize:
		return configErrorf("chunk_overlap %d must be smaller than chunk_size %d", c.ChunkOverlap, c.ChunkSize)
	case c.Workers < 1:
		return configErrorf("workers must be at least 1, got %d", c.Workers)
	case c.SizeCountMethod == length.MethodTokens && c.EmbeddingModel == "":
		return configErrorf("embedding_model_name is required when size_count_method is TOKENS")
	}
	if _, err := length.ParseMethod(string(c.SizeCountMethod)); err != nil {
		return configErrorf("%v", err)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return configErrorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}
