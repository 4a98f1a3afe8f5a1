// Package prompt renders the model prompt for a set of staged changes.
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/huimingz/ai-commit-go/internal/changes"
)

// Mode selects between a new commit and amending the last one
type Mode int

const (
	ModeNew Mode = iota
	ModeAmend
)

func (m Mode) String() string {
	if m == ModeAmend {
		return "amend"
	}
	return "new"
}

// CommitContext is the read-only input to prompt construction
type CommitContext struct {
	ChangeSet       *changes.ChangeSet
	Mode            Mode
	PreviousMessage string // required for ModeAmend, empty otherwise
}

// Validate checks that the context is complete for its mode
func (c CommitContext) Validate() error {
	if c.ChangeSet == nil || len(c.ChangeSet.Files) == 0 {
		return errors.New("commit context has no changed files")
	}
	switch c.Mode {
	case ModeAmend:
		if strings.TrimSpace(c.PreviousMessage) == "" {
			return errors.New("amend requires the previous commit message")
		}
	case ModeNew:
		if c.PreviousMessage != "" {
			return errors.New("previous commit message is only valid when amending")
		}
	default:
		return fmt.Errorf("unknown mode %d", c.Mode)
	}
	return nil
}

const none = "(none)"

// commitPrompt is the fixed template. Instruction order matters to the model.
const commitPrompt = `Analyze the following code changes and repository structure modifications.
Generate {{.Count}} commit {{if eq .Count 1}}message{{else}}messages{{end}}.
Each MUST follow: <type>: <description>
{{range .Types}}{{.Name}}: {{.Description}}
{{end}}Description rules: imperative mood preferred; length between {{.Min}} and {{.Max}} characters.
{{if .Amend}}The previous commit message was: '{{.Previous}}'. Generate a new, improved message.
{{end}}Diff:
---
{{.Diff}}
---
Binary file changes:
{{.Binary}}
---
Folder structure changes:
{{.Structural}}
---`

var commitTemplate = template.Must(template.New("commit_prompt").Parse(commitPrompt))

type templateData struct {
	Count      int
	Types      []CommitType
	Min        int
	Max        int
	Amend      bool
	Previous   string
	Diff       string
	Binary     string
	Structural string
}

// Build renders the prompt. It is deterministic: identical inputs always
// produce byte-identical output. Diff content is never truncated.
func Build(ctx CommitContext, table Convention, n int) string {
	data := templateData{
		Count: n,
		Types: table.Sorted(),
		Min:   table.MinLength,
		Max:   table.MaxLength,
		Amend: ctx.Mode == ModeAmend,
	}
	if data.Amend {
		data.Previous = strings.TrimSpace(ctx.PreviousMessage)
	}

	var cs changes.ChangeSet
	if ctx.ChangeSet != nil {
		cs = *ctx.ChangeSet
	}
	data.Diff = orNone(cs.RenderDiff())
	data.Binary = joinOrNone(cs.BinarySummary)
	data.Structural = joinOrNone(cs.StructuralSummary)

	var b strings.Builder
	if err := commitTemplate.Execute(&b, data); err != nil {
		// The template and its data are fixed; a failure here is a programming error.
		panic(fmt.Sprintf("render commit prompt: %v", err))
	}
	return b.String()
}

func joinOrNone(lines []string) string {
	if len(lines) == 0 {
		return none
	}
	return strings.Join(lines, "\n")
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}
