package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huimingz/ai-commit-go/internal/changes"
	"github.com/huimingz/ai-commit-go/internal/git"
	"github.com/huimingz/ai-commit-go/internal/log"
	"github.com/huimingz/ai-commit-go/internal/prompt"
	"github.com/huimingz/ai-commit-go/internal/selection"
)

// DefaultInteractiveCount is the batch size of an interactive round
const DefaultInteractiveCount = 5

// CommitRequest selects the flow for one invocation
type CommitRequest struct {
	Interactive bool // present a batch and let the user choose
	Amend       bool // replace the message of HEAD
	DryRun      bool // stop after a message is chosen
}

// Outcome is how a successful run ended
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeCancelled
	OutcomeDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDryRun:
		return "dry-run"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// CommitResult describes a finished run
type CommitResult struct {
	Outcome Outcome
	Mode    prompt.Mode
	Message string // chosen message, empty when cancelled
	Output  string // git output of the commit
	Files   int    // number of staged files described
}

// CommitAgentOptions contains configuration for CommitAgent
type CommitAgentOptions struct {
	GitExecutor git.Executor        // VCS boundary
	Engine      selection.Requester // suggestion rounds
	Convention  prompt.Convention   // table for prompts and validation
	Count       int                 // interactive batch size
	Input       selection.Input     // required for interactive runs
	Progress    selection.Progress  // optional loading indicator
}

// Validate validates the options and sets defaults
func (o *CommitAgentOptions) Validate() error {
	if o.GitExecutor == nil {
		return errors.New("git executor is required")
	}
	if o.Engine == nil {
		return errors.New("suggestion engine is required")
	}
	if len(o.Convention.Types) == 0 {
		o.Convention = prompt.DefaultConvention()
	}
	if o.Count <= 0 {
		o.Count = DefaultInteractiveCount
	}
	return o.Convention.Validate()
}

// CommitAgent runs collect, classify, suggest, select and commit
type CommitAgent struct {
	opts     CommitAgentOptions
	executor *Executor
}

// NewCommitAgent creates a new CommitAgent
func NewCommitAgent(opts CommitAgentOptions) (*CommitAgent, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &CommitAgent{opts: opts, executor: NewExecutor(opts.GitExecutor)}, nil
}

// Run executes one commit flow. Cancellation by the user is a successful
// result with OutcomeCancelled; nothing is committed in that case.
func (a *CommitAgent) Run(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	start := time.Now()
	defer func() { log.DebugDuration("Commit flow", time.Since(start)) }()

	if req.Interactive && a.opts.Input == nil {
		return nil, errors.New("interactive mode needs an input")
	}

	cc, err := a.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	ctrl, err := selection.NewController(a.opts.Engine, selection.Config{
		Context:     cc,
		Table:       a.opts.Convention,
		Count:       a.opts.Count,
		Interactive: req.Interactive,
		Input:       a.opts.Input,
		Progress:    a.opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	state, err := ctrl.Run(ctx)
	if err != nil {
		return nil, err
	}

	result := &CommitResult{Mode: cc.Mode, Files: len(cc.ChangeSet.Files)}
	switch s := state.(type) {
	case selection.Cancelled:
		log.Debug("Selection cancelled, nothing committed")
		result.Outcome = OutcomeCancelled
		return result, nil
	case selection.Committed:
		result.Message = s.Message
	default:
		return nil, fmt.Errorf("selection ended in unexpected state %s", state)
	}

	if req.DryRun {
		result.Outcome = OutcomeDryRun
		return result, nil
	}

	out, err := a.executor.Execute(ctx, result.Message, cc.Mode)
	if err != nil {
		return nil, preconditionFromGit(err)
	}
	result.Outcome = OutcomeCommitted
	result.Output = out
	return result, nil
}

// collect gathers the staged changes and builds the commit context
func (a *CommitAgent) collect(ctx context.Context, req CommitRequest) (prompt.CommitContext, error) {
	cc := prompt.CommitContext{Mode: prompt.ModeNew}

	if req.Amend {
		previous, err := a.opts.GitExecutor.LastCommitMessage(ctx)
		if err != nil {
			return cc, preconditionFromGit(err)
		}
		cc.Mode = prompt.ModeAmend
		cc.PreviousMessage = previous
		log.Debug("Amending commit with message %q", previous)
	}

	status, err := a.opts.GitExecutor.StagedStatus(ctx)
	if err != nil {
		return cc, preconditionFromGit(err)
	}
	if len(status) == 0 {
		return cc, &PreconditionError{Err: ErrNothingStaged, Detail: "stage changes with git add first"}
	}

	diff, err := a.opts.GitExecutor.StagedDiff(ctx)
	if err != nil {
		return cc, preconditionFromGit(err)
	}

	cs, err := changes.Classify(status, diff)
	if err != nil {
		return cc, err
	}
	cc.ChangeSet = cs

	if err := cc.Validate(); err != nil {
		return cc, fmt.Errorf("invalid commit context: %w", err)
	}
	return cc, nil
}
