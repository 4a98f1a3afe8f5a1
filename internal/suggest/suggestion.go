// Package suggest turns raw model output into validated commit message
// suggestions.
package suggest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/huimingz/ai-commit-go/internal/prompt"
)

// Suggestion is one validated "<type>: <description>" message
type Suggestion struct {
	Type        string // canonical lower-case type from the convention table
	Description string
}

// String renders the commit message
func (s Suggestion) String() string {
	return s.Type + ": " + s.Description
}

// Batch is the non-empty, ordered result of one AI round
type Batch []Suggestion

// Messages returns the rendered messages in batch order
func (b Batch) Messages() []string {
	out := make([]string, len(b))
	for i, s := range b {
		out[i] = s.String()
	}
	return out
}

// Parse validates one line against the convention table
func Parse(line string, table prompt.Convention) (Suggestion, error) {
	typ, desc, ok := strings.Cut(line, ":")
	if !ok {
		return Suggestion{}, fmt.Errorf("missing type prefix")
	}

	typ = strings.TrimSpace(typ)
	ct, ok := table.Lookup(typ)
	if !ok {
		return Suggestion{}, fmt.Errorf("unknown type %q", typ)
	}

	desc = strings.TrimSpace(desc)
	n := utf8.RuneCountInString(desc)
	if n < table.MinLength {
		return Suggestion{}, fmt.Errorf("description too short (%d < %d)", n, table.MinLength)
	}
	if n > table.MaxLength {
		return Suggestion{}, fmt.Errorf("description too long (%d > %d)", n, table.MaxLength)
	}

	return Suggestion{Type: ct.Name, Description: desc}, nil
}
