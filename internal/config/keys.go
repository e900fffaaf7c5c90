package config

const (
	KeyOutput             = "output"
	KeyChunkSize          = "chunk_size"
	KeyChunkOverlap       = "chunk_overlap"
	KeySizeCountMethod    = "size_count_method"
	KeyEmbeddingModel     = "embedding_model_name"
	KeyMarkdownSeparators = "markdown_separators"
	KeyExclude            = "exclude"
	KeyGitRef             = "git_ref"
	KeyWorkers            = "workers"
	KeyCacheDir           = "cache_dir"
	KeyLogLevel           = "log_level"
)
