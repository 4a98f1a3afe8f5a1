package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/huimingz/ai-commit-go/internal/agent"
	"github.com/huimingz/ai-commit-go/internal/config"
	"github.com/huimingz/ai-commit-go/internal/git"
	"github.com/huimingz/ai-commit-go/internal/llm"
	"github.com/huimingz/ai-commit-go/internal/log"
	"github.com/huimingz/ai-commit-go/internal/prompt"
	"github.com/huimingz/ai-commit-go/internal/suggest"
	"github.com/huimingz/ai-commit-go/internal/ui"
)

func runCommit(cmd *cobra.Command, args []string) error {
	ctx, stop := interruptContext(cmd.Context())
	defer stop()
	startTime := time.Now()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfg.Source, err)
	}

	log.DebugConfig("Configuration", cfg)

	modelConfig, err := cfg.GetModel(modelName)
	if err != nil {
		return fmt.Errorf("failed to get model config: %w", err)
	}

	// Preconditions come before any VCS or model call
	if err := agent.CheckAPIKey(modelConfig); err != nil {
		return err
	}
	if err := agent.CheckGit(); err != nil {
		return err
	}

	sc := cfg.GetSuggestionsConfig()
	n, err := suggestionCount(count, sc.Count, interactive)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	repo, err := git.Detect(ctx, cwd)
	if err != nil {
		return err
	}
	log.Debug("Repository root: %s (has commits: %v)", repo.Root, repo.HasCommits)
	if amend && !repo.HasCommits {
		return &agent.PreconditionError{Err: agent.ErrNoCommits, Detail: "amend needs an existing commit"}
	}

	gen, err := llm.NewProviderFactory().NewGenerator(ctx, *modelConfig, llm.RetryConfigFrom(cfg.GetRetryConfig()))
	if err != nil {
		return err
	}

	table := prompt.DefaultConvention().WithBounds(sc.MinLength, sc.MaxLength)
	printer := ui.NewPrinter(os.Stdout, ui.WithColor(!plain), ui.WithVerbose(debugMode))

	opts := agent.CommitAgentOptions{
		GitExecutor: git.NewExecutor(repo.Root),
		Engine:      suggest.NewEngine(gen, table),
		Convention:  table,
		Count:       n,
		Progress:    ui.NewProgress(os.Stderr, plain),
	}
	if interactive {
		opts.Input = ui.NewInput(os.Stdin, os.Stdout, plain)
	}

	commitAgent, err := agent.NewCommitAgent(opts)
	if err != nil {
		return fmt.Errorf("failed to create commit agent: %w", err)
	}

	result, err := commitAgent.Run(ctx, agent.CommitRequest{
		Interactive: interactive,
		Amend:       amend,
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}

	defer func() { _ = printer.PrintDuration(time.Since(startTime)) }()
	return report(printer, result)
}

// report prints the outcome of a finished run
func report(printer *ui.Printer, result *agent.CommitResult) error {
	switch result.Outcome {
	case agent.OutcomeCancelled:
		return printer.PrintWarning("Cancelled, nothing was committed.")
	case agent.OutcomeDryRun:
		if err := printer.ShowCommitMessage("Commit message (dry run)", result.Message); err != nil {
			return err
		}
		return printer.PrintInfo("Dry run, nothing was committed.")
	default:
		if err := printer.ShowOutput(result.Output); err != nil {
			return err
		}
		if result.Mode == prompt.ModeAmend {
			return printer.PrintSuccess("Amended: " + result.Message)
		}
		return printer.PrintSuccess("Committed: " + result.Message)
	}
}


// suggestionCount resolves the per-round candidate count. The flag wins over
// the configured value and only matters in interactive mode.
func suggestionCount(flag, configured int, interactive bool) (int, error) {
	n := configured
	if flag != 0 {
		n = flag
	}
	if !interactive {
		if flag != 0 {
			log.Warn("--count has no effect without --interactive")
		}
		return n, nil
	}
	if n < 1 || n > config.MaxSuggestionCount {
		return 0, fmt.Errorf("--count must be between 1 and %d", config.MaxSuggestionCount)
	}
	return n, nil
}
