package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/huimingz/ai-commit-go/internal/log"
)

// Executor defines the version-control boundary used by the commit pipeline
type Executor interface {
	// StagedStatus returns one entry per staged path, in the order git reports them
	StagedStatus(ctx context.Context) ([]StatusEntry, error)

	// StagedDiff returns the unified diff of staged changes
	StagedDiff(ctx context.Context) (string, error)

	// LastCommitMessage returns the full message of HEAD
	LastCommitMessage(ctx context.Context) (string, error)

	// Commit creates a new commit with the given message
	Commit(ctx context.Context, message string) (string, error)

	// Amend replaces the message of HEAD (and folds in staged changes)
	Amend(ctx context.Context, message string) (string, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
	binary  string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir, binary: "git"}
}

// LookPath checks that the git executable is available
func LookPath() (string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return "", &Error{Kind: KindExecutableNotFound, Command: "git", Err: err}
	}
	return path, nil
}

// runGit runs a git command and returns its raw stdout
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	command := "git " + strings.Join(args, " ")
	log.DebugCommand(e.workDir, command)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Dir = e.workDir
	// Stable English output so failures can be classified from stderr.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &Error{Kind: KindExecutableNotFound, Command: command, Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%s interrupted: %w", command, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		return "", &Error{Kind: classifyStderr(msg), Command: command, Stderr: msg, Err: err}
	}

	return stdout.String(), nil
}

// StagedStatus returns the staged name-status listing with rename and copy detection
func (e *DefaultExecutor) StagedStatus(ctx context.Context) ([]StatusEntry, error) {
	out, err := e.runGit(ctx, "diff", "--cached", "--name-status", "-M", "-C", "-z")
	if err != nil {
		return nil, err
	}
	return ParseNameStatus(out)
}

// StagedDiff returns the diff of staged changes. The a/ and b/ prefixes are
// forced so diff.noprefix and diff.mnemonicPrefix cannot change the headers.
func (e *DefaultExecutor) StagedDiff(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached", "-M", "-C", "--no-color", "--no-ext-diff",
		"--src-prefix=a/", "--dst-prefix=b/")
}

// LastCommitMessage returns the message of the most recent commit
func (e *DefaultExecutor) LastCommitMessage(ctx context.Context) (string, error) {
	out, err := e.runGit(ctx, "log", "-1", "--pretty=%B")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	out, err := e.runGit(ctx, "commit", "-m", message)
	return strings.TrimSpace(out), err
}

// Amend rewrites HEAD with the given message
func (e *DefaultExecutor) Amend(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	out, err := e.runGit(ctx, "commit", "--amend", "-m", message)
	return strings.TrimSpace(out), err
}
