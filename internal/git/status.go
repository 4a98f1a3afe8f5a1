package git

import (
	"fmt"
	"strings"
)

// StatusEntry is one line of a staged status listing
type StatusEntry struct {
	Code         string // raw status code, e.g. "M", "A", "R100" or porcelain "R "
	Path         string // path after the change
	PreviousPath string // source path for renames and copies
}

// String renders the entry the way `git diff --name-status` prints it
func (s StatusEntry) String() string {
	if s.PreviousPath != "" {
		return fmt.Sprintf("%s\t%s\t%s", s.Code, s.PreviousPath, s.Path)
	}
	return fmt.Sprintf("%s\t%s", s.Code, s.Path)
}

// ParseNameStatus parses NUL-separated `git diff --name-status -z` output.
// Rename and copy records carry two paths: source first, destination second.
func ParseNameStatus(out string) ([]StatusEntry, error) {
	fields := strings.Split(out, "\x00")
	// Drop the terminator and any trailing newline git may add without -z.
	for len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}

	var entries []StatusEntry
	for i := 0; i < len(fields); {
		code := strings.TrimSpace(fields[i])
		if code == "" {
			return nil, fmt.Errorf("empty status code at field %d", i)
		}
		i++

		if code[0] == 'R' || code[0] == 'C' {
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("status %q is missing its source or destination path", code)
			}
			entries = append(entries, StatusEntry{Code: code, PreviousPath: fields[i], Path: fields[i+1]})
			i += 2
			continue
		}

		if i >= len(fields) {
			return nil, fmt.Errorf("status %q is missing its path", code)
		}
		entries = append(entries, StatusEntry{Code: code, Path: fields[i]})
		i++
	}
	return entries, nil
}
