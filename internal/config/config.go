package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "DOCSPLIT"

// Defaults shared by the CLI flags and viper.
const (
	DefaultOutput             = "document_chunks.json"
	DefaultChunkSize          = 512
	DefaultChunkOverlap       = 0
	DefaultSizeCountMethod    = "CHARACTERS"
	DefaultEmbeddingModel     = "thenlper/gte-base"
	DefaultMarkdownSeparators = true
	DefaultWorkers            = 1
	DefaultCacheDir           = "ignore/cache"
	DefaultLogLevel           = "info"
)

func Init(root *cobra.Command) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
		_ = viper.BindPFlags(root.Flags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyOutput, DefaultOutput)
	viper.SetDefault(KeyChunkSize, DefaultChunkSize)
	viper.SetDefault(KeyChunkOverlap, DefaultChunkOverlap)
	viper.SetDefault(KeySizeCountMethod, DefaultSizeCountMethod)
	viper.SetDefault(KeyEmbeddingModel, DefaultEmbeddingModel)
	viper.SetDefault(KeyMarkdownSeparators, DefaultMarkdownSeparators)
	viper.SetDefault(KeyWorkers, DefaultWorkers)
	viper.SetDefault(KeyCacheDir, DefaultCacheDir)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)
}

func Output() string           { return viper.GetString(KeyOutput) }
func ChunkSize() int           { return viper.GetInt(KeyChunkSize) }
func ChunkOverlap() int        { return viper.GetInt(KeyChunkOverlap) }
func SizeCountMethod() string  { return viper.GetString(KeySizeCountMethod) }
func EmbeddingModel() string   { return viper.GetString(KeyEmbeddingModel) }
func MarkdownSeparators() bool { return viper.GetBool(KeyMarkdownSeparators) }
func GitRef() string           { return strings.TrimSpace(viper.GetString(KeyGitRef)) }
func Workers() int             { return viper.GetInt(KeyWorkers) }
func CacheDir() string         { return viper.GetString(KeyCacheDir) }
func LogLevel() string         { return viper.GetString(KeyLogLevel) }
func Exclude() []string        { return viper.GetStringSlice(KeyExclude) }
