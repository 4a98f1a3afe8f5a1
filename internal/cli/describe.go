package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/huimingz/ai-commit-go/internal/agent"
	"github.com/huimingz/ai-commit-go/internal/changes"
	"github.com/huimingz/ai-commit-go/internal/git"
	"github.com/huimingz/ai-commit-go/internal/suggest"
)

// Describe turns any pipeline error into one user-facing line
func Describe(err error) string {
	var (
		pe *agent.PreconditionError
		se *suggest.Error
		ge *git.Error
		ce *changes.ClassificationError
	)

	switch {
	case errors.As(err, &pe):
		if pe.Detail != "" {
			return fmt.Sprintf("%v: %s", pe.Err, pe.Detail)
		}
		return pe.Err.Error()
	case errors.As(err, &se):
		return describeSuggest(se)
	case errors.As(err, &ce):
		return ce.Error()
	case errors.As(err, &ge):
		return ge.Error()
	case errors.Is(err, changes.ErrNothingStaged):
		return "nothing staged: stage changes with git add first"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out waiting for the model"
	default:
		return err.Error()
	}
}

func describeSuggest(e *suggest.Error) string {
	switch e.Kind {
	case suggest.KindNetwork:
		return "network unreachable: could not reach the model provider"
	case suggest.KindAuth:
		return "authentication failed: check your API key"
	case suggest.KindRateLimited:
		return "rate limited by the model provider: try again later"
	case suggest.KindServer:
		return fmt.Sprintf("model provider error: %v", e.Err)
	case suggest.KindMalformedResponse:
		return "the model returned an empty or malformed response"
	case suggest.KindNoValidSuggestions:
		return "the model returned no valid commit messages"
	default:
		return e.Error()
	}
}
