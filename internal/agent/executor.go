package agent

import (
	"context"

	"github.com/huimingz/ai-commit-go/internal/git"
	"github.com/huimingz/ai-commit-go/internal/log"
	"github.com/huimingz/ai-commit-go/internal/prompt"
)

// Executor performs the final commit or amend
type Executor struct {
	git git.Executor
}

// NewExecutor creates an Executor on top of the VCS boundary
func NewExecutor(g git.Executor) *Executor {
	return &Executor{git: g}
}

// Execute commits message, amending HEAD when mode is ModeAmend, and returns git's output
func (e *Executor) Execute(ctx context.Context, message string, mode prompt.Mode) (string, error) {
	log.Debug("Executing %s commit", mode)
	if mode == prompt.ModeAmend {
		return e.git.Amend(ctx, message)
	}
	return e.git.Commit(ctx, message)
}
