package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in the working and home directories
	FileName = ".ai-commit.yaml"

	// ModelEnv overrides default_model when no --model flag is given
	ModelEnv = "AI_COMMIT_MODEL"

	DefaultModelName = "gemini"
	DefaultProvider  = "gemini"
	DefaultModelID   = "gemini-2.0-flash"
	DefaultKeyEnv    = "GEMINI_API_KEY"

	DefaultSuggestionCount = 5
	DefaultMinLength       = 10
	DefaultMaxLength       = 72

	// MaxSuggestionCount is the upper bound for one interactive round
	MaxSuggestionCount = 8
)

// Supported providers
var supportedProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"gemini":   true,
	"grok":     true,
}

// SupportedProviders returns a sorted list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

// Config represents the application configuration
type Config struct {
	DefaultModel string                 `yaml:"default_model" mapstructure:"default_model"`
	Models       map[string]ModelConfig `yaml:"models" mapstructure:"models"`
	Suggestions  *SuggestionsConfig     `yaml:"suggestions" mapstructure:"suggestions"`
	Retry        *RetryConfig           `yaml:"retry" mapstructure:"retry"`

	// Source is the file the configuration was read from, empty for built-in defaults
	Source string `yaml:"-" mapstructure:"-"`
}

// SuggestionsConfig controls how many candidates are requested and how they are validated
type SuggestionsConfig struct {
	Count     int `yaml:"count" mapstructure:"count"` // interactive batch size
	MinLength int `yaml:"min_length" mapstructure:"min_length"`
	MaxLength int `yaml:"max_length" mapstructure:"max_length"`
}

// DefaultSuggestionsConfig returns the default suggestion settings
func DefaultSuggestionsConfig() *SuggestionsConfig {
	return &SuggestionsConfig{
		Count:     DefaultSuggestionCount,
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// Validate validates the suggestion settings
func (s *SuggestionsConfig) Validate() error {
	if s.Count < 1 || s.Count > MaxSuggestionCount {
		return fmt.Errorf("count must be between 1 and %d", MaxSuggestionCount)
	}
	if s.MinLength < 1 {
		return fmt.Errorf("min_length must be at least 1")
	}
	if s.MaxLength < s.MinLength {
		return fmt.Errorf("max_length must be greater than or equal to min_length")
	}
	return nil
}

// RetryConfig represents the retry configuration
type RetryConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffBase float64 `yaml:"backoff_base" mapstructure:"backoff_base"` // in seconds
	BackoffMax  float64 `yaml:"backoff_max" mapstructure:"backoff_max"`   // in seconds
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Enabled:     true,
		MaxAttempts: 3,
		BackoffBase: 1.0,
		BackoffMax:  8.0,
	}
}

// Validate validates the retry configuration
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be non-negative")
	}
	if r.BackoffBase < 0 {
		return fmt.Errorf("backoff_base must be non-negative")
	}
	if r.BackoffMax < r.BackoffBase {
		return fmt.Errorf("backoff_max must be greater than or equal to backoff_base")
	}
	return nil
}

// ModelConfig represents a single model configuration
type ModelConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	APIKeyEnv string `yaml:"api_key_env" mapstructure:"api_key_env"` // environment variable holding the key
	Model     string `yaml:"model" mapstructure:"model"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
}

// Validate validates the model configuration. The key itself is checked at
// startup by the caller, because it usually lives in the environment.
func (m *ModelConfig) Validate() error {
	if m.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[m.Provider] {
		return fmt.Errorf("unsupported provider: %s", m.Provider)
	}
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

// RequiresAPIKey reports whether the provider needs a key to be called
func (m *ModelConfig) RequiresAPIKey() bool {
	return m.Provider != "ollama"
}

// KeySource names where the key is expected to come from, for error messages
func (m *ModelConfig) KeySource() string {
	if m.APIKeyEnv != "" {
		return m.APIKeyEnv
	}
	if name, ok := envReference(m.APIKey); ok {
		return name
	}
	return "api_key"
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("no models configured")
	}

	// Validate default model exists
	if c.DefaultModel != "" {
		if _, ok := c.Models[c.DefaultModel]; !ok {
			return fmt.Errorf("default model '%s' not found in models configuration", c.DefaultModel)
		}
	}

	// Validate each model
	for name, model := range c.Models {
		if err := model.Validate(); err != nil {
			return fmt.Errorf("invalid model '%s': %w", name, err)
		}
	}

	if c.Suggestions != nil {
		if err := c.Suggestions.Validate(); err != nil {
			return fmt.Errorf("invalid suggestions configuration: %w", err)
		}
	}

	// Validate retry config if present
	if c.Retry != nil {
		if err := c.Retry.Validate(); err != nil {
			return fmt.Errorf("invalid retry configuration: %w", err)
		}
	}

	return nil
}

// GetModel returns the model configuration by name with its API key resolved.
// Priority: parameter > env variable (AI_COMMIT_MODEL) > default_model
func (c *Config) GetModel(modelName string) (*ModelConfig, error) {
	if modelName == "" {
		modelName = os.Getenv(ModelEnv)
	}
	if modelName == "" {
		modelName = c.DefaultModel
	}
	if modelName == "" {
		return nil, fmt.Errorf("no model specified and no default model configured")
	}

	model, ok := c.Models[modelName]
	if !ok {
		return nil, fmt.Errorf("model '%s' not found in configuration", modelName)
	}

	// Expand environment variables in API key, then fall back to api_key_env
	model.APIKey = expandEnv(model.APIKey)
	if model.APIKey == "" && model.APIKeyEnv != "" {
		model.APIKey = os.Getenv(model.APIKeyEnv)
	}

	return &model, nil
}

// GetSuggestionsConfig returns the suggestion settings with defaults applied
func (c *Config) GetSuggestionsConfig() *SuggestionsConfig {
	if c.Suggestions == nil {
		return DefaultSuggestionsConfig()
	}
	defaults := DefaultSuggestionsConfig()
	if c.Suggestions.Count <= 0 {
		c.Suggestions.Count = defaults.Count
	}
	if c.Suggestions.MinLength <= 0 {
		c.Suggestions.MinLength = defaults.MinLength
	}
	if c.Suggestions.MaxLength <= 0 {
		c.Suggestions.MaxLength = defaults.MaxLength
	}
	return c.Suggestions
}

// GetRetryConfig returns the retry configuration with defaults applied
func (c *Config) GetRetryConfig() *RetryConfig {
	if c.Retry == nil {
		return DefaultRetryConfig()
	}
	// Apply defaults for unset values
	defaults := DefaultRetryConfig()
	if c.Retry.MaxAttempts < 0 {
		c.Retry.MaxAttempts = defaults.MaxAttempts
	}
	if c.Retry.BackoffBase < 0 {
		c.Retry.BackoffBase = defaults.BackoffBase
	}
	if c.Retry.BackoffMax < 0 {
		c.Retry.BackoffMax = defaults.BackoffMax
	}
	return c.Retry
}

// Default returns the built-in configuration used when no file exists
func Default() *Config {
	return &Config{
		DefaultModel: DefaultModelName,
		Models: map[string]ModelConfig{
			DefaultModelName: {
				Provider:  DefaultProvider,
				APIKeyEnv: DefaultKeyEnv,
				Model:     DefaultModelID,
			},
		},
		Suggestions: DefaultSuggestionsConfig(),
		Retry:       DefaultRetryConfig(),
	}
}

// envReference reports whether s is a ${VAR} or $VAR reference
func envReference(s string) (string, bool) {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return s[2 : len(s)-1], true
	}
	if strings.HasPrefix(s, "$") && len(s) > 1 {
		return s[1:], true
	}
	return "", false
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if name, ok := envReference(s); ok {
		return os.Getenv(name)
	}
	return s
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("suggestions.count", DefaultSuggestionCount)
	v.SetDefault("suggestions.min_length", DefaultMinLength)
	v.SetDefault("suggestions.max_length", DefaultMaxLength)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// A file that only tunes suggestions still gets the built-in model
	if len(cfg.Models) == 0 {
		def := Default()
		cfg.Models = def.Models
		if cfg.DefaultModel == "" {
			cfg.DefaultModel = def.DefaultModel
		}
	}
	cfg.Source = path

	return &cfg, nil
}

// Load loads configuration with the following priority:
// 1. Custom path if provided (must exist)
// 2. Current directory .ai-commit.yaml
// 3. Home directory ~/.ai-commit.yaml
// 4. Built-in defaults
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	candidates := []string{FileName}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to access config file %s: %w", path, err)
		}
		return LoadFromFile(path)
	}

	return Default(), nil
}
