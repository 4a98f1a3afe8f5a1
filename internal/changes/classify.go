package changes

import (
	"fmt"
	"strings"

	"github.com/huimingz/ai-commit-go/internal/git"
	"github.com/huimingz/ai-commit-go/internal/log"
)

// porcelainColumns are the characters git may print in the second column of
// a two-letter porcelain status code
const porcelainColumns = " MADRCTU?"

// Classify builds a ChangeSet from the staged status listing and the staged
// unified diff. An empty status listing fails with ErrNothingStaged.
func Classify(status []git.StatusEntry, diff string) (*ChangeSet, error) {
	if len(status) == 0 {
		return nil, &ClassificationError{Reason: "nothing staged", Err: ErrNothingStaged}
	}

	files := make([]FileChange, 0, len(status))
	for _, entry := range status {
		st, err := parseStatusCode(entry.Code)
		if err != nil {
			return nil, &ClassificationError{Entry: entry.String(), Reason: err.Error()}
		}
		if entry.Path == "" {
			return nil, &ClassificationError{Entry: entry.String(), Reason: "missing path"}
		}

		fc := FileChange{Path: entry.Path, Status: st, Kind: KindText}
		if st.IsStructural() {
			if entry.PreviousPath == "" {
				return nil, &ClassificationError{Entry: entry.String(), Reason: fmt.Sprintf("%s without source path", strings.ToLower(st.String()))}
			}
			fc.PreviousPath = entry.PreviousPath
		}
		files = append(files, fc)
	}

	byNew := make(map[string]segment)
	byOld := make(map[string]segment)
	for _, lines := range splitSegments(diff) {
		seg := parseSegment(lines)
		if _, ok := byNew[seg.newPath]; !ok && seg.newPath != "" {
			byNew[seg.newPath] = seg
		}
		if _, ok := byOld[seg.oldPath]; !ok && seg.oldPath != "" {
			byOld[seg.oldPath] = seg
		}
	}

	cs := &ChangeSet{Files: files}
	for i := range cs.Files {
		f := &cs.Files[i]

		seg, ok := byNew[f.Path]
		if !ok && f.PreviousPath != "" {
			seg, ok = byOld[f.PreviousPath]
		}
		if !ok && f.Status == StatusDeleted {
			seg, ok = byOld[f.Path]
		}

		if ok {
			if seg.binary {
				f.Kind = KindBinary
			} else {
				f.Hunks = seg.hunks
			}
		} else {
			log.Debug("No diff segment for %s (%s)", f.Path, f.Status)
		}

		if f.Kind == KindBinary {
			cs.BinarySummary = append(cs.BinarySummary, fmt.Sprintf("%s %s", f.Status, f.Path))
		}
		if f.Status.IsStructural() {
			cs.StructuralSummary = append(cs.StructuralSummary, fmt.Sprintf("%s %s -> %s", f.Status, f.PreviousPath, f.Path))
		}
	}

	log.Debug("Classified %d file(s): %d binary, %d structural", len(cs.Files), len(cs.BinarySummary), len(cs.StructuralSummary))
	return cs, nil
}

// parseStatusCode accepts single-letter name-status codes, rename and copy
// codes with a similarity score (R100, C075) and two-letter porcelain codes
// whose first column is the index status.
func parseStatusCode(code string) (Status, error) {
	if code == "" {
		return 0, fmt.Errorf("empty status code")
	}

	var st Status
	switch code[0] {
	case 'A':
		st = StatusAdded
	case 'M':
		st = StatusModified
	case 'D':
		st = StatusDeleted
	case 'R':
		st = StatusRenamed
	case 'C':
		st = StatusCopied
	default:
		return 0, fmt.Errorf("unknown status code %q", code)
	}

	rest := code[1:]
	switch {
	case rest == "":
		return st, nil
	case isScore(rest):
		if !st.IsStructural() {
			return 0, fmt.Errorf("similarity score on non-rename status %q", code)
		}
		return st, nil
	case len(rest) == 1 && strings.ContainsRune(porcelainColumns, rune(rest[0])):
		return st, nil
	default:
		return 0, fmt.Errorf("unknown status code %q", code)
	}
}

func isScore(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
