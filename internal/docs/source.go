package docs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tmc/langchaingo/documentloaders"
)

// Source enumerates and loads the documents of a run, in a stable order.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
}

// FileSource loads a single file, or every file under a directory.
type FileSource struct {
	Path    string
	Exclude []string
}

func (s *FileSource) Load(ctx context.Context) ([]Document, error) {
	paths, err := s.discover()
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := readFile(ctx, p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Source: p, Text: text})
	}
	return docs, nil
}

func (s *FileSource) discover() ([]string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}
	if !info.IsDir() {
		if err := checkFormat(s.Path); err != nil {
			return nil, err
		}
		return []string{s.Path}, nil
	}

	var paths []string
	err = filepath.WalkDir(s.Path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk %s: %w", p, walkErr)
		}
		if p == s.Path {
			return nil
		}
		rel, err := filepath.Rel(s.Path, p)
		if err != nil {
			return err
		}
		if excluded(filepath.ToSlash(rel), s.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		regular, err := isRegularFile(p, d)
		if err != nil {
			return err
		}
		if !regular {
			return nil
		}
		if err := checkFormat(p); err != nil {
			return err
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// isRegularFile follows symlinks so linked documents are loaded like any
// other file.
func isRegularFile(p string, d fs.DirEntry) (bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular(), nil
	}
	info, err := os.Stat(p)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	return info.Mode().IsRegular(), nil
}

func readFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	text, err := loadText(ctx, f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}

func loadText(ctx context.Context, r io.Reader) (string, error) {
	loaded, err := documentloaders.NewText(r).Load(ctx)
	if err != nil {
		return "", err
	}
	if len(loaded) == 0 {
		return "", nil
	}
	return loaded[0].PageContent, nil
}
