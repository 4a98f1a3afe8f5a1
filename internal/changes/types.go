// Package changes turns raw staged status and unified diff text into an
// immutable ChangeSet describing what is about to be committed.
//
// # Ordering
// Files keep the order of the status listing. For a deterministic git
// invocation this order is stable, and every later stage preserves it.
//
// # Binary files
// Git prints "Binary files a/x and b/x differ" (or a "GIT binary patch")
// instead of hunks. Such files are marked KindBinary, carry no hunks and are
// listed in BinarySummary.
//
// # Mode-only changes
// A staged path with no diff segment (for example a permission change with
// --no-ext-diff output suppressed) is still reported as a KindText file with
// no hunks, and RenderDiff still names it.
package changes

import (
	"fmt"
	"strings"
)

// Status is the kind of change git reported for a path
type Status int

const (
	StatusAdded Status = iota
	StatusModified
	StatusDeleted
	StatusRenamed
	StatusCopied
)

// String returns the human-readable status used in summaries
func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "Added"
	case StatusModified:
		return "Modified"
	case StatusDeleted:
		return "Deleted"
	case StatusRenamed:
		return "Renamed"
	case StatusCopied:
		return "Copied"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// IsStructural reports whether the status moves content between paths
func (s Status) IsStructural() bool {
	return s == StatusRenamed || s == StatusCopied
}

// Kind tells textual and binary files apart
type Kind int

const (
	KindText Kind = iota
	KindBinary
)

func (k Kind) String() string {
	if k == KindBinary {
		return "Binary"
	}
	return "Text"
}

// Marker is the role of a line inside a hunk
type Marker int

const (
	MarkerContext Marker = iota
	MarkerAdded
	MarkerRemoved
)

// Prefix returns the unified diff prefix character for the marker
func (m Marker) Prefix() string {
	switch m {
	case MarkerAdded:
		return "+"
	case MarkerRemoved:
		return "-"
	default:
		return " "
	}
}

// Range is a (start, length) pair from a hunk header
type Range struct {
	Start int
	Len   int
}

// Line is one line of a hunk without its marker character
type Line struct {
	Marker Marker
	Text   string
}

// Hunk is a contiguous block of changed lines with surrounding context.
// Hunks are never modified after classification.
type Hunk struct {
	OldRange Range
	NewRange Range
	Lines    []Line
}

// Header renders the @@ line of the hunk
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldRange.Start, h.OldRange.Len, h.NewRange.Start, h.NewRange.Len)
}

// FileChange is one staged path
type FileChange struct {
	Path         string
	PreviousPath string // set only for renames and copies
	Status       Status
	Kind         Kind
	Hunks        []Hunk // empty for binaries and pure renames
}

// ChangeSet is everything prompt construction needs to know about the staged
// changes. It is built once per invocation and treated as read-only.
type ChangeSet struct {
	Files             []FileChange
	StructuralSummary []string
	BinarySummary     []string
}

// Paths returns the changed paths in status order
func (c *ChangeSet) Paths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// noContent marks a text file whose change has no line content, such as a
// mode change or an empty new file
const noContent = "(no content changes)"

// RenderDiff concatenates all textual hunks, one block per file. Text files
// without hunks still get their delimiter line. Binaries and pure renames are
// left to the binary and structural summaries.
func (c *ChangeSet) RenderDiff() string {
	var blocks []string
	for _, f := range c.Files {
		if len(f.Hunks) == 0 && (f.Kind == KindBinary || f.Status.IsStructural()) {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "File: %s (%s)\n", f.Path, f.Status)
		if len(f.Hunks) == 0 {
			b.WriteString(noContent)
		}
		for i, h := range f.Hunks {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(h.Header())
			for _, l := range h.Lines {
				b.WriteString("\n")
				b.WriteString(l.Marker.Prefix())
				b.WriteString(l.Text)
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
