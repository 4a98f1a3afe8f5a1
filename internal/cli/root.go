package cli

import (
	"github.com/spf13/cobra"

	"github.com/huimingz/ai-commit-go/internal/log"
)

var (
	// Global flags
	debugMode  bool
	configFile string
	modelName  string

	// Commit flags
	interactive bool
	amend       bool
	count       int
	plain       bool
	dryRun      bool

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd generates a commit message for the staged changes and commits it
var rootCmd = &cobra.Command{
	Use:   "ai-commit",
	Short: "Generate conventional commit messages for staged changes",
	Long: `ai-commit reads your staged changes, asks a language model for a
"<type>: <description>" commit message and commits with it.

By default the first valid suggestion is committed right away. Use -i to
choose from several suggestions, regenerate them, or quit without committing.

Examples:
  ai-commit
  ai-commit -i
  ai-commit -i -n 3
  ai-commit --amend
  ai-commit -m deepseek --dry-run`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runCommit,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./.ai-commit.yaml, then ~/.ai-commit.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model to use (overrides AI_COMMIT_MODEL and default_model)")

	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose from several suggestions before committing")
	rootCmd.Flags().BoolVarP(&amend, "amend", "a", false, "Replace the message of the last commit")
	rootCmd.Flags().IntVarP(&count, "count", "n", 0, "Number of suggestions per interactive round (default from config)")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "Use the line-based selector and disable colors")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the chosen message without committing")
}
