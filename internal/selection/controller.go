package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/huimingz/ai-commit-go/internal/log"
	"github.com/huimingz/ai-commit-go/internal/prompt"
	"github.com/huimingz/ai-commit-go/internal/suggest"
)

// Requester runs one suggestion round
type Requester interface {
	Request(ctx context.Context, prompt string, n int) (suggest.Batch, error)
}

// Input shows a waiting state to the user and returns their choice.
// It is only consulted in Presenting and AwaitingRetry.
type Input interface {
	Next(ctx context.Context, s State) (Event, error)
}

// Progress is a cosmetic indicator shown while a round is in flight
type Progress interface {
	Start(message string)
	Stop()
}

// Config configures a Controller
type Config struct {
	Context     prompt.CommitContext
	Table       prompt.Convention
	Count       int  // candidates per round
	Interactive bool // false: confirm the first suggestion without asking
	Input       Input
	Progress    Progress // optional
}

// Controller runs the selection machine for one invocation
type Controller struct {
	engine Requester
	cfg    Config
}

// NewController creates a controller. Auto mode always requests one candidate.
func NewController(engine Requester, cfg Config) (*Controller, error) {
	if engine == nil {
		return nil, errors.New("selection: nil requester")
	}
	if cfg.Interactive && cfg.Input == nil {
		return nil, errors.New("selection: interactive mode needs an input")
	}
	if !cfg.Interactive || cfg.Count < 1 {
		cfg.Count = 1
	}
	return &Controller{engine: engine, cfg: cfg}, nil
}

// Run drives the machine from Loading to a terminal state. The returned
// error is the cause of a Failed state and nil otherwise.
func (c *Controller) Run(ctx context.Context) (State, error) {
	var state State = Loading{}
	for !IsTerminal(state) {
		ev, err := c.next(ctx, state)
		if err != nil {
			state = Failed{Err: err}
			break
		}

		next := Transition(state, ev)
		log.DebugTransition(state.String(), next.String())
		state = next
	}

	if f, ok := state.(Failed); ok {
		return state, f.Err
	}
	return state, nil
}

func (c *Controller) next(ctx context.Context, state State) (Event, error) {
	switch s := state.(type) {
	case Loading:
		return c.load(ctx), nil
	case Presenting:
		if !c.cfg.Interactive {
			return Confirm{}, nil
		}
		return c.ask(ctx, s)
	case AwaitingRetry:
		return c.ask(ctx, s)
	default:
		return nil, fmt.Errorf("selection: no event source for state %s", state)
	}
}

func (c *Controller) ask(ctx context.Context, s State) (Event, error) {
	ev, err := c.cfg.Input.Next(ctx, s)
	if err != nil {
		if ctx.Err() != nil {
			return Cancel{}, nil
		}
		return nil, fmt.Errorf("read selection: %w", err)
	}
	return ev, nil
}

func (c *Controller) load(ctx context.Context) Event {
	if err := ctx.Err(); err != nil {
		return Interrupted{}
	}

	p := prompt.Build(c.cfg.Context, c.cfg.Table, c.cfg.Count)

	if c.cfg.Progress != nil {
		c.cfg.Progress.Start(progressMessage(c.cfg.Count))
	}
	batch, err := c.engine.Request(ctx, p, c.cfg.Count)
	if c.cfg.Progress != nil {
		c.cfg.Progress.Stop()
	}

	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return Interrupted{}
		}
		var sErr *suggest.Error
		return LoadFailed{Err: err, Recoverable: c.cfg.Interactive && errors.As(err, &sErr)}
	}
	return Loaded{Batch: batch}
}

func progressMessage(n int) string {
	if n == 1 {
		return "Generating commit message..."
	}
	return fmt.Sprintf("Generating %d commit messages...", n)
}
