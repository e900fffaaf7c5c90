package length

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const tiktokenCacheEnv = "TIKTOKEN_CACHE_DIR"

// Embedding models published as HuggingFace tokenizers have no BPE table in
// tiktoken; they are counted with the closest general-purpose encoding.
var encodingAliases = map[string]string{
	"thenlper/gte-small":     "cl100k_base",
	"thenlper/gte-base":      "cl100k_base",
	"thenlper/gte-large":     "cl100k_base",
	"baai/bge-small-en-v1.5": "cl100k_base",
	"baai/bge-base-en-v1.5":  "cl100k_base",
	"baai/bge-large-en-v1.5": "cl100k_base",
	"nomic-embed-text":       "cl100k_base",
}

// TiktokenOracle counts BPE tokens. Encode calls are serialized so one oracle
// can be shared across workers.
type TiktokenOracle struct {
	mu       sync.Mutex
	enc      *tiktoken.Tiktoken
	encoding string
}

// NewTiktokenOracle resolves model to a tiktoken encoding. cacheDir, when set,
// is used for the downloaded BPE ranks.
func NewTiktokenOracle(model, cacheDir string) (*TiktokenOracle, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("embedding model name is required for token counting")
	}
	if cacheDir != "" && os.Getenv(tiktokenCacheEnv) == "" {
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("create tokenizer cache dir: %w", err)
		}
		if err := os.Setenv(tiktokenCacheEnv, cacheDir); err != nil {
			return nil, fmt.Errorf("set tokenizer cache dir: %w", err)
		}
	}
	enc, encoding, err := resolveEncoding(model)
	if err != nil {
		return nil, err
	}
	return &TiktokenOracle{enc: enc, encoding: encoding}, nil
}

func resolveEncoding(model string) (*tiktoken.Tiktoken, string, error) {
	name := strings.TrimSpace(model)
	if alias, ok := encodingAliases[strings.ToLower(name)]; ok {
		enc, err := tiktoken.GetEncoding(alias)
		if err != nil {
			return nil, "", fmt.Errorf("load encoding %s for %s: %w", alias, name, err)
		}
		return enc, alias, nil
	}
	if enc, err := tiktoken.EncodingForModel(name); err == nil {
		return enc, name, nil
	}
	encoding := strings.TrimPrefix(name, "tiktoken/")
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, "", fmt.Errorf("resolve tokenizer for %q: %w", name, err)
	}
	return enc, encoding, nil
}

// Encoding names the resolved BPE encoding.
func (o *TiktokenOracle) Encoding() string { return o.encoding }

func (o *TiktokenOracle) Count(text string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.enc.Encode(text, nil, nil))
}
