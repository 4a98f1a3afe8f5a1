package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed git interaction
type ErrorKind int

const (
	// KindCommandFailed is any non-zero exit not covered by another kind
	KindCommandFailed ErrorKind = iota
	// KindNotARepository means the working directory is outside a repository
	KindNotARepository
	// KindExecutableNotFound means the git binary is not on PATH
	KindExecutableNotFound
	// KindNoCommits means HEAD does not resolve yet
	KindNoCommits
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNotARepository:
		return "NotARepository"
	case KindExecutableNotFound:
		return "ExecutableNotFound"
	case KindNoCommits:
		return "NoCommits"
	default:
		return "CommandFailed"
	}
}

var (
	// ErrNotARepository matches any *Error of kind KindNotARepository
	ErrNotARepository = errors.New("not a git repository")
	// ErrExecutableNotFound matches any *Error of kind KindExecutableNotFound
	ErrExecutableNotFound = errors.New("git executable not found")
	// ErrNoCommits matches any *Error of kind KindNoCommits
	ErrNoCommits = errors.New("repository has no commits yet")
	// ErrEmptyMessage is returned when committing with a blank message
	ErrEmptyMessage = errors.New("commit message cannot be empty")
)

// Error is returned by every failing VCS call
type Error struct {
	Kind    ErrorKind
	Command string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Stderr != "":
		return fmt.Sprintf("%s failed: %s", e.Command, e.Stderr)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
	default:
		return fmt.Sprintf("%s failed", e.Command)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotARepository:
		return e.Kind == KindNotARepository
	case ErrExecutableNotFound:
		return e.Kind == KindExecutableNotFound
	case ErrNoCommits:
		return e.Kind == KindNoCommits
	}
	return false
}

func classifyStderr(stderr string) ErrorKind {
	msg := strings.ToLower(stderr)
	switch {
	case strings.Contains(msg, "not a git repository"):
		return KindNotARepository
	case strings.Contains(msg, "does not have any commits yet"),
		strings.Contains(msg, "bad default revision 'head'"),
		strings.Contains(msg, "needed a single revision"),
		strings.Contains(msg, "you have nothing to amend"):
		return KindNoCommits
	default:
		return KindCommandFailed
	}
}
