package changes

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	fileHeaderPrefix = "diff --git "
	binaryPrefix     = "Binary files "
	binaryPatch      = "GIT binary patch"
	devNull          = "/dev/null"
)

// hunkHeaderRegex matches @@ -oldStart[,oldLen] +newStart[,newLen] @@ with an optional section heading
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// segment is the parsed diff of one file
type segment struct {
	oldPath string
	newPath string
	binary  bool
	hunks   []Hunk
}

// splitSegments partitions unified diff text at every file header
func splitSegments(diff string) [][]string {
	var (
		segments [][]string
		current  []string
	)
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, fileHeaderPrefix) {
			if current != nil {
				segments = append(segments, current)
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if current != nil {
		segments = append(segments, current)
	}
	return segments
}

func parseSegment(lines []string) segment {
	var seg segment
	seg.oldPath, seg.newPath = parseFileHeader(lines[0])

	var (
		hunk          *Hunk
		oldLeft       int
		newLeft       int
		inBinaryPatch bool
	)
	flush := func() {
		if hunk != nil {
			seg.hunks = append(seg.hunks, *hunk)
			hunk = nil
		}
	}

	for _, line := range lines[1:] {
		if inBinaryPatch {
			continue
		}

		if m := hunkHeaderRegex.FindStringSubmatch(line); m != nil {
			flush()
			hunk = &Hunk{
				OldRange: Range{Start: atoi(m[1]), Len: lenOrOne(m[2])},
				NewRange: Range{Start: atoi(m[3]), Len: lenOrOne(m[4])},
			}
			oldLeft, newLeft = hunk.OldRange.Len, hunk.NewRange.Len
			continue
		}

		if hunk != nil && (oldLeft > 0 || newLeft > 0) {
			switch {
			case strings.HasPrefix(line, "+"):
				hunk.Lines = append(hunk.Lines, Line{Marker: MarkerAdded, Text: line[1:]})
				newLeft--
			case strings.HasPrefix(line, "-"):
				hunk.Lines = append(hunk.Lines, Line{Marker: MarkerRemoved, Text: line[1:]})
				oldLeft--
			case strings.HasPrefix(line, " "):
				hunk.Lines = append(hunk.Lines, Line{Marker: MarkerContext, Text: line[1:]})
				oldLeft--
				newLeft--
			case line == "":
				// some tools strip the single space from blank context lines
				hunk.Lines = append(hunk.Lines, Line{Marker: MarkerContext})
				oldLeft--
				newLeft--
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file"
		case strings.HasPrefix(line, "rename from "):
			seg.oldPath = unquote(strings.TrimPrefix(line, "rename from "))
		case strings.HasPrefix(line, "rename to "):
			seg.newPath = unquote(strings.TrimPrefix(line, "rename to "))
		case strings.HasPrefix(line, "copy from "):
			seg.oldPath = unquote(strings.TrimPrefix(line, "copy from "))
		case strings.HasPrefix(line, "copy to "):
			seg.newPath = unquote(strings.TrimPrefix(line, "copy to "))
		case strings.HasPrefix(line, "--- "):
			if p := parsePathLine(line, "--- "); p != "" {
				seg.oldPath = p
			}
		case strings.HasPrefix(line, "+++ "):
			if p := parsePathLine(line, "+++ "); p != "" {
				seg.newPath = p
			}
		case strings.HasPrefix(line, binaryPrefix) && strings.HasSuffix(line, " differ"):
			seg.binary = true
		case line == binaryPatch:
			seg.binary = true
			inBinaryPatch = true
		}
	}
	flush()

	if seg.binary {
		seg.hunks = nil
	}
	return seg
}

// parseFileHeader extracts both paths from "diff --git a/<old> b/<new>".
// Unquoted paths may contain spaces, so the split point is chosen where
// both halves agree when possible.
func parseFileHeader(line string) (oldPath, newPath string) {
	rest := strings.TrimPrefix(line, fileHeaderPrefix)

	if strings.HasPrefix(rest, `"`) {
		if first, remainder, ok := cutQuoted(rest); ok {
			return trimDiffPath(first), trimDiffPath(unquote(strings.TrimSpace(remainder)))
		}
	}

	if strings.HasPrefix(rest, "a/") {
		body := rest[2:]
		if n := len(body); n%2 == 1 {
			half := (n - 3) / 2
			if half >= 0 && body[half:half+3] == " b/" && body[:half] == body[half+3:] {
				return body[:half], body[half+3:]
			}
		}
		if idx := strings.LastIndex(body, " b/"); idx >= 0 {
			return body[:idx], body[idx+3:]
		}
	}

	parts := strings.Fields(rest)
	if len(parts) >= 2 {
		return trimDiffPath(parts[0]), trimDiffPath(parts[1])
	}
	return "", ""
}

func cutQuoted(s string) (quoted, rest string, ok bool) {
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			unq, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return "", "", false
			}
			return unq, s[i+1:], true
		}
	}
	return "", "", false
}

func parsePathLine(line, prefix string) string {
	s := strings.TrimPrefix(line, prefix)
	if idx := strings.Index(s, "\t"); idx >= 0 {
		s = s[:idx]
	}
	s = unquote(s)
	if s == devNull {
		return ""
	}
	return trimDiffPath(s)
}

func trimDiffPath(s string) string {
	if len(s) >= 2 && (s[0] == 'a' || s[0] == 'b') && s[1] == '/' {
		return s[2:]
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		if unq, err := strconv.Unquote(s); err == nil {
			return unq
		}
	}
	return s
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func lenOrOne(s string) int {
	if s == "" {
		return 1
	}
	return atoi(s)
}
