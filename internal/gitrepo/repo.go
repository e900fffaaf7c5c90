package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

type RepoConfig struct {
	Path string
}

// Repo reads committed content from a local git repository.
type Repo struct {
	cfg    RepoConfig
	runner Runner
}

func New(cfg RepoConfig) *Repo {
	return &Repo{cfg: cfg, runner: Runner{Timeout: 2 * time.Minute}}
}

type Runner struct {
	Timeout time.Duration
}

func (r Runner) Git(ctx context.Context, dir string, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", formatGitContextError(args, ctxErr, stderr.String())
		}
		return "", formatGitError(args, err, stderr.String())
	}
	return stdout.String(), nil
}

func formatGitError(args []string, cause error, stderr string) error {
	cmd := strings.Join(args, " ")
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("git %s: %w: %s", cmd, cause, stderr)
	}
	return fmt.Errorf("git %s: %w", cmd, cause)
}

func formatGitContextError(args []string, cause error, stderr string) error {
	if cause == nil {
		cause = errors.New("context canceled")
	}
	if errors.Is(cause, context.DeadlineExceeded) {
		cause = fmt.Errorf("command timed out: %w", cause)
	}
	return formatGitError(args, cause, stderr)
}

// ResolveRef returns the commit SHA ref points to.
func (r *Repo) ResolveRef(ctx context.Context, ref string) (string, error) {
	out, err := r.runner.Git(ctx, r.cfg.Path, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ListFiles returns the paths at ref below the repo path, relative to it, in
// git's byte-wise order.
func (r *Repo) ListFiles(ctx context.Context, ref string) ([]string, error) {
	out, err := r.runner.Git(ctx, r.cfg.Path, "ls-tree", "-r", "--name-only", "-z", ref)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, l := range strings.Split(out, "\x00") {
		if l != "" {
			files = append(files, l)
		}
	}
	return files, nil
}

// ShowFile reads the blob at ref for path, relative to the repo path like
// the ones ListFiles returns.
func (r *Repo) ShowFile(ctx context.Context, ref, path string) ([]byte, error) {
	object := fmt.Sprintf("%s:./%s", ref, path)
	out, err := r.runner.Git(ctx, r.cfg.Path, "show", object)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
