package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/huimingz/ai-commit-go/internal/config"
)

const defaultConfigTemplate = `# ai-commit configuration file
# Every setting is optional; without this file Gemini is used with GEMINI_API_KEY.

# Default model to use (must match a key in the models section).
# Overridden by AI_COMMIT_MODEL and the --model flag.
default_model: gemini

models:
  # Google Gemini (default)
  gemini:
    provider: gemini
    api_key_env: GEMINI_API_KEY
    model: gemini-2.0-flash

  # OpenAI
  # openai:
  #   provider: openai
  #   api_key: ${OPENAI_API_KEY}
  #   model: gpt-4o-mini

  # Deepseek
  # deepseek:
  #   provider: deepseek
  #   api_key: ${DEEPSEEK_API_KEY}
  #   model: deepseek-chat

  # Ollama (local, no key needed)
  # ollama:
  #   provider: ollama
  #   model: llama3.2
  #   base_url: http://localhost:11434/v1

  # xAI Grok
  # grok:
  #   provider: grok
  #   api_key: ${XAI_API_KEY}
  #   model: grok-beta

suggestions:
  count: 5        # suggestions per interactive round (1-8)
  min_length: 10  # description length bounds, in characters
  max_length: 72

retry:
  enabled: true
  max_attempts: 3
  backoff_base: 1.0  # seconds
  backoff_max: 8.0   # seconds
`

var (
	initForce bool
	initLocal bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ai-commit configuration",
	Long: `Create a configuration file (~/.ai-commit.yaml, or ./.ai-commit.yaml with --local).

The template lists every supported provider. Edit it to pick a model and to
tune the number and length of suggestions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := initPath(initLocal)
		if err != nil {
			return err
		}

		// Check if file exists
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
		}

		// Write config file
		err = os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600)
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration file created: %s\n", configPath)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Export the API key of your provider (GEMINI_API_KEY by default)")
		fmt.Fprintln(out, "  2. Stage changes with 'git add'")
		fmt.Fprintln(out, "  3. Run 'ai-commit' or 'ai-commit -i'")

		return nil
	},
}

func initPath(local bool) (string, error) {
	if local {
		return config.FileName, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, config.FileName), nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	initCmd.Flags().BoolVar(&initLocal, "local", false, "Write the file to the current directory")
	rootCmd.AddCommand(initCmd)
}
