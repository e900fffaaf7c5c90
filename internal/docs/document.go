package docs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/roivaz/docsplit/internal/splitter"
)

// Document is the raw text of one input file.
type Document struct {
	Source string
	Text   string
}

// SplitDocument pairs a document with the spans the splitter produced for it.
type SplitDocument struct {
	Document
	Spans []splitter.Span
}

var supportedExtensions = map[string]struct{}{
	".md":  {},
	".txt": {},
}

func checkFormat(path string) error {
	if _, ok := supportedExtensions[filepath.Ext(path)]; !ok {
		return fmt.Errorf("%w: file path %s (supported: .md, .txt)", ErrUnsupportedFormat, path)
	}
	return nil
}

// excluded reports whether a slash-separated relative path matches any of
// the patterns, either as a whole or by its base name.
func excluded(rel string, patterns []string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
