package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	// DefaultMinLength is the shortest accepted description, in characters
	DefaultMinLength = 10
	// DefaultMaxLength is the longest accepted description, in characters
	DefaultMaxLength = 72
)

// CommitType is one row of the convention table
type CommitType struct {
	Name        string
	Description string
	Example     string
	Priority    int
}

// Convention is the commit-type table plus description length bounds.
// It drives both the prompt instructions and suggestion validation.
type Convention struct {
	Types     []CommitType
	MinLength int
	MaxLength int
}

var defaultTypes = []CommitType{
	{"feat", "A new feature or significant functionality addition (e.g., adding new endpoints, UI components, initial project setup).", "feat: Implement user authentication via OAuth", 9},
	{"fix", "A bug fix (e.g., correcting calculation errors, addressing crashes, security vulnerabilities).", "fix: Correct off-by-one error in pagination", 8},
	{"perf", "A code change that improves performance without adding features or fixing bugs.", "perf: Optimize image loading by using WebP format", 7},
	{"refactor", "A code change that neither fixes a bug nor adds a feature (e.g., renaming variables, improving code structure, reorganizing files).", "refactor: Extract user service from main controller", 6},
	{"build", "Changes that affect the build system or external dependencies (e.g., Webpack, NPM, package.json updates).", "build: Configure webpack for tree shaking optimization", 5},
	{"ci", "Changes to CI configuration files and scripts (e.g., GitHub Actions, Travis, deployment pipelines).", "ci: Add automated deployment step to GitHub Actions", 5},
	{"test", "Adding missing tests or correcting existing tests without changing application logic.", "test: Add unit tests for new payment_processor module", 4},
	{"docs", "Documentation only changes that don't affect code functionality (e.g., updating README, API docs, comments).", "docs: Update README with setup instructions", 3},
	{"style", "Changes that do not affect the meaning of the code (white-space, formatting, missing semi-colons, etc).", "style: Format code according to project guidelines", 2},
	{"chore", "Maintenance tasks, dependency updates, or tooling changes that don't modify application code.", "chore: Update ESLint to version 8.50.0", 3},
	{"revert", "Reverts a previous commit.", "revert: Revert commit 'abcdef12' due to critical bug", 8},
	{"readme", "Specifically for standalone changes to the README file only.", "readme: Add contribution guidelines and code of conduct", 2},
}

// DefaultConvention returns the built-in table with the default bounds
func DefaultConvention() Convention {
	types := make([]CommitType, len(defaultTypes))
	copy(types, defaultTypes)
	return Convention{
		Types:     types,
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// WithBounds returns a copy of the convention using the given length bounds
func (c Convention) WithBounds(minLen, maxLen int) Convention {
	c.Types = append([]CommitType(nil), c.Types...)
	c.MinLength = minLen
	c.MaxLength = maxLen
	return c
}

// Validate checks the bounds and that type names are unique
func (c Convention) Validate() error {
	if len(c.Types) == 0 {
		return fmt.Errorf("convention has no commit types")
	}
	if c.MinLength < 1 {
		return fmt.Errorf("min description length must be at least 1, got %d", c.MinLength)
	}
	if c.MaxLength < c.MinLength {
		return fmt.Errorf("max description length (%d) is below min (%d)", c.MaxLength, c.MinLength)
	}
	dupes := lo.FindDuplicatesBy(c.Types, func(t CommitType) string { return strings.ToLower(t.Name) })
	if len(dupes) > 0 {
		return fmt.Errorf("duplicate commit type %q", dupes[0].Name)
	}
	return nil
}

// Sorted returns the types ordered by priority (highest first), then name
func (c Convention) Sorted() []CommitType {
	sorted := append([]CommitType(nil), c.Types...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// Lookup finds a type by name, ignoring case
func (c Convention) Lookup(name string) (CommitType, bool) {
	return lo.Find(c.Types, func(t CommitType) bool {
		return strings.EqualFold(t.Name, name)
	})
}

// Names returns the type names in priority order
func (c Convention) Names() []string {
	return lo.Map(c.Sorted(), func(t CommitType, _ int) string { return t.Name })
}
