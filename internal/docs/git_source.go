package docs

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/roivaz/docsplit/internal/gitrepo"
)

// GitSource loads the documents committed at Ref in the repository at
// RepoPath. Working tree changes are ignored. Sources are relative to RepoPath,
// which may be a subdirectory of the repository.
type GitSource struct {
	RepoPath string
	Ref      string
	Exclude  []string
}

func (s *GitSource) Load(ctx context.Context) ([]Document, error) {
	info, err := os.Stat(s.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}
	if !info.IsDir() {
		return nil, configErrorf("git_ref requires a repository directory, got file %s", s.RepoPath)
	}

	repo := gitrepo.New(gitrepo.RepoConfig{Path: s.RepoPath})
	sha, err := repo.ResolveRef(ctx, s.Ref)
	if err != nil {
		return nil, fmt.Errorf("resolve ref %s: %w", s.Ref, err)
	}
	files, err := repo.ListFiles(ctx, sha)
	if err != nil {
		return nil, fmt.Errorf("list files at %s: %w", s.Ref, err)
	}

	var selected []string
	for _, f := range files {
		if excluded(f, s.Exclude) {
			continue
		}
		if err := checkFormat(f); err != nil {
			return nil, err
		}
		selected = append(selected, f)
	}

	docs := make([]Document, 0, len(selected))
	for _, p := range selected {
		content, err := repo.ShowFile(ctx, sha, p)
		if err != nil {
			return nil, fmt.Errorf("read %s at %s: %w", p, s.Ref, err)
		}
		text, err := loadText(ctx, bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("read %s at %s: %w", p, s.Ref, err)
		}
		docs = append(docs, Document{Source: p, Text: text})
	}
	return docs, nil
}
