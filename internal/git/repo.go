package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/huimingz/ai-commit-go/internal/log"
)

// Repository describes the repository enclosing a working directory
type Repository struct {
	Root       string
	HasCommits bool
}

// Detect walks up from dir to the enclosing repository and reports whether
// HEAD resolves. go-git is tried first; repositories it cannot open (newer
// extensions, unusual worktree layouts) fall back to `git rev-parse`.
func Detect(ctx context.Context, dir string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, &Error{Kind: KindNotARepository, Command: "open " + dir, Err: err}
	}
	if err == nil {
		info, descErr := describe(repo)
		if descErr == nil {
			return info, nil
		}
		log.Debug("go-git could not inspect %s: %v", dir, descErr)
	} else {
		log.Debug("go-git could not open %s: %v", dir, err)
	}

	return detectWithCLI(ctx, dir)
}

func describe(repo *gogit.Repository) (*Repository, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	info := &Repository{Root: wt.Filesystem.Root()}
	_, err = repo.Head()
	switch {
	case err == nil:
		info.HasCommits = true
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		info.HasCommits = false
	default:
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return info, nil
}

func detectWithCLI(ctx context.Context, dir string) (*Repository, error) {
	e := NewExecutor(dir)
	root, err := e.runGit(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}

	info := &Repository{Root: strings.TrimSpace(root)}
	if _, err := e.runGit(ctx, "rev-parse", "--verify", "--quiet", "HEAD"); err == nil {
		info.HasCommits = true
	}
	return info, nil
}
