package agent

import (
	"errors"
	"fmt"

	"github.com/huimingz/ai-commit-go/internal/config"
	"github.com/huimingz/ai-commit-go/internal/git"
)

// Precondition sentinels, matched with errors.Is
var (
	ErrNothingStaged  = errors.New("nothing staged")
	ErrMissingAPIKey  = errors.New("API key missing")
	ErrGitNotFound    = errors.New("git executable not found")
	ErrNotARepository = errors.New("not a git repository")
	ErrNoCommits      = errors.New("no commits yet")
)

// PreconditionError is a fatal startup condition; nothing is retried
type PreconditionError struct {
	Err    error  // one of the sentinels above
	Detail string // user-facing hint, optional
	Cause  error  // underlying failure, optional
}

func (e *PreconditionError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

func (e *PreconditionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CheckAPIKey fails when the selected model needs a key that is not set
func CheckAPIKey(model *config.ModelConfig) error {
	if model.RequiresAPIKey() && model.APIKey == "" {
		return &PreconditionError{Err: ErrMissingAPIKey, Detail: "set " + model.KeySource()}
	}
	return nil
}

// CheckGit fails when the git executable cannot be found
func CheckGit() error {
	if _, err := git.LookPath(); err != nil {
		return &PreconditionError{Err: ErrGitNotFound, Detail: "install git and make sure it is on PATH", Cause: err}
	}
	return nil
}

// preconditionFromGit promotes VCS failures that describe the environment
// into preconditions and returns every other error unchanged
func preconditionFromGit(err error) error {
	switch {
	case errors.Is(err, git.ErrExecutableNotFound):
		return &PreconditionError{Err: ErrGitNotFound, Cause: err}
	case errors.Is(err, git.ErrNotARepository):
		return &PreconditionError{Err: ErrNotARepository, Cause: err}
	case errors.Is(err, git.ErrNoCommits):
		return &PreconditionError{Err: ErrNoCommits, Detail: "amend needs an existing commit", Cause: err}
	default:
		return err
	}
}
