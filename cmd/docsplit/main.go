package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roivaz/docsplit/internal/config"
	"github.com/roivaz/docsplit/internal/docs"
	"github.com/roivaz/docsplit/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docsplit <input>",
		Short: "Split text and markdown documents into chunks for embedding",
		Long: "docsplit loads a .md/.txt file or every file under a directory, splits each\n" +
			"document into bounded, optionally overlapping chunks and writes them as JSON.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := root.Flags()
	flags.String(config.KeyOutput, config.DefaultOutput, "Output file for the chunks (JSON, or YAML for .yaml/.yml)")
	flags.Int(config.KeyChunkSize, config.DefaultChunkSize, "Maximum length of a single chunk")
	flags.Int(config.KeyChunkOverlap, config.DefaultChunkOverlap, "Length shared by consecutive chunks of a document")
	flags.String(config.KeySizeCountMethod, config.DefaultSizeCountMethod, "How chunk length is counted: CHARACTERS or TOKENS")
	flags.String(config.KeyEmbeddingModel, config.DefaultEmbeddingModel, "Tokenizer used when size_count_method is TOKENS")
	flags.Bool(config.KeyMarkdownSeparators, config.DefaultMarkdownSeparators, "Use markdown-aware separators for .md files")
	flags.StringSlice(config.KeyExclude, nil, "Glob of paths to skip, relative to the input directory (repeatable)")
	flags.String(config.KeyGitRef, "", "Read documents from this git ref of the input repository instead of the working tree")
	flags.Int(config.KeyWorkers, config.DefaultWorkers, "Documents split in parallel")
	flags.String(config.KeyCacheDir, config.DefaultCacheDir, "Directory for cached tokenizer files")
	flags.String(config.KeyLogLevel, config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	return root
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := docs.LoadConfig(args[0])
	if err != nil {
		return err
	}
	ing, err := docs.NewIngester(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("starting run",
		"input", cfg.Input,
		"chunk_size", cfg.ChunkSize,
		"chunk_overlap", cfg.ChunkOverlap,
		"size_count_method", cfg.SizeCountMethod,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ing.Ingest(ctx, cfg.Output)
}

func newLogger() logging.Logger {
	return logging.New(logging.LevelLogger(config.LogLevel())).WithName("docsplit")
}

func main() {
	root := newRootCmd()
	config.Init(root)

	if err := root.Execute(); err != nil {
		newLogger().Error(err, "run failed")
		os.Exit(1)
	}
}
