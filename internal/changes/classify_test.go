package changes

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/ai-commit-go/internal/git"
)

const twoLineAddition = `diff --git a/src/a.rs b/src/a.rs
index 3b18e51..a28f5c2 100644
--- a/src/a.rs
+++ b/src/a.rs
@@ -1,2 +1,4 @@
 fn main() {
+    let x = 1;
+    println!("{}", x);
 }
`

func TestClassify_ModifiedTextFile(t *testing.T) {
	status := []git.StatusEntry{{Code: "M", Path: "src/a.rs"}}

	cs, err := Classify(status, twoLineAddition)
	require.NoError(t, err)
	require.Len(t, cs.Files, 1)

	f := cs.Files[0]
	assert.Equal(t, "src/a.rs", f.Path)
	assert.Empty(t, f.PreviousPath)
	assert.Equal(t, StatusModified, f.Status)
	assert.Equal(t, KindText, f.Kind)
	require.Len(t, f.Hunks, 1)

	h := f.Hunks[0]
	assert.Equal(t, Range{Start: 1, Len: 2}, h.OldRange)
	assert.Equal(t, Range{Start: 1, Len: 4}, h.NewRange)

	var added []string
	for _, l := range h.Lines {
		if l.Marker == MarkerAdded {
			added = append(added, l.Text)
		}
	}
	assert.Equal(t, []string{"    let x = 1;", `    println!("{}", x);`}, added)
	assert.Len(t, h.Lines, 4)
	assert.Empty(t, cs.BinarySummary)
	assert.Empty(t, cs.StructuralSummary)
}

func TestClassify_PureRename(t *testing.T) {
	status := []git.StatusEntry{{Code: "R100", Path: "src/new.rs", PreviousPath: "src/old.rs"}}
	diff := `diff --git a/src/old.rs b/src/new.rs
similarity index 100%
rename from src/old.rs
rename to src/new.rs
`

	cs, err := Classify(status, diff)
	require.NoError(t, err)
	require.Len(t, cs.Files, 1)

	assert.Equal(t, StatusRenamed, cs.Files[0].Status)
	assert.Equal(t, "src/old.rs", cs.Files[0].PreviousPath)
	assert.Empty(t, cs.Files[0].Hunks)
	assert.Equal(t, []string{"Renamed src/old.rs -> src/new.rs"}, cs.StructuralSummary)
}

func TestClassify_RenameWithEdits(t *testing.T) {
	status := []git.StatusEntry{{Code: "R087", Path: "pkg/b.go", PreviousPath: "pkg/a.go"}}
	diff := `diff --git a/pkg/a.go b/pkg/b.go
similarity index 87%
rename from pkg/a.go
rename to pkg/b.go
index 1111111..2222222 100644
--- a/pkg/a.go
+++ b/pkg/b.go
@@ -3 +3 @@ package pkg
-var name = "a"
+var name = "b"
`

	cs, err := Classify(status, diff)
	require.NoError(t, err)

	f := cs.Files[0]
	require.Len(t, f.Hunks, 1)
	assert.Equal(t, Range{Start: 3, Len: 1}, f.Hunks[0].OldRange)
	assert.Equal(t, []Line{
		{Marker: MarkerRemoved, Text: `var name = "a"`},
		{Marker: MarkerAdded, Text: `var name = "b"`},
	}, f.Hunks[0].Lines)
	assert.Equal(t, []string{"Renamed pkg/a.go -> pkg/b.go"}, cs.StructuralSummary)
}

func TestClassify_BinaryFile(t *testing.T) {
	status := []git.StatusEntry{
		{Code: "A", Path: "assets/logo.png"},
		{Code: "M", Path: "src/a.rs"},
	}
	diff := `diff --git a/assets/logo.png b/assets/logo.png
new file mode 100644
index 0000000..8f3a1c2
Binary files /dev/null and b/assets/logo.png differ
` + twoLineAddition

	cs, err := Classify(status, diff)
	require.NoError(t, err)
	require.Len(t, cs.Files, 2)

	assert.Equal(t, KindBinary, cs.Files[0].Kind)
	assert.Empty(t, cs.Files[0].Hunks)
	assert.Equal(t, KindText, cs.Files[1].Kind)
	assert.Len(t, cs.Files[1].Hunks, 1)
	assert.Equal(t, []string{"Added assets/logo.png"}, cs.BinarySummary)
}

func TestClassify_GitBinaryPatch(t *testing.T) {
	status := []git.StatusEntry{{Code: "M", Path: "data.bin"}}
	diff := `diff --git a/data.bin b/data.bin
index 1234567..89abcde 100644
GIT binary patch
literal 12
@@ -1,1 +1,1 @@
Tc$@~J&Hw-a

literal 0
HcmV?d00001
`

	cs, err := Classify(status, diff)
	require.NoError(t, err)
	assert.Equal(t, KindBinary, cs.Files[0].Kind)
	assert.Empty(t, cs.Files[0].Hunks)
	assert.Equal(t, []string{"Modified data.bin"}, cs.BinarySummary)
}

func TestClassify_MissingSegmentStaysText(t *testing.T) {
	status := []git.StatusEntry{
		{Code: "M", Path: "scripts/run.sh"},
		{Code: "M", Path: "src/a.rs"},
	}

	cs, err := Classify(status, twoLineAddition)
	require.NoError(t, err)
	require.Len(t, cs.Files, 2)

	assert.Equal(t, "scripts/run.sh", cs.Files[0].Path)
	assert.Equal(t, KindText, cs.Files[0].Kind)
	assert.Empty(t, cs.Files[0].Hunks)
	assert.Empty(t, cs.BinarySummary)
}

func TestClassify_PreservesStatusOrder(t *testing.T) {
	status := []git.StatusEntry{
		{Code: "M", Path: "z.go"},
		{Code: "A", Path: "a.go"},
		{Code: "D", Path: "m.go"},
		{Code: "C100", Path: "copy.go", PreviousPath: "orig.go"},
	}

	cs, err := Classify(status, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"z.go", "a.go", "m.go", "copy.go"}, cs.Paths())
	assert.Equal(t, []string{"Copied orig.go -> copy.go"}, cs.StructuralSummary)
}

func TestClassify_PreviousPathOnlyForStructural(t *testing.T) {
	status := []git.StatusEntry{
		{Code: "A", Path: "a"},
		{Code: "M", Path: "m"},
		{Code: "D", Path: "d"},
		{Code: "R050", Path: "r2", PreviousPath: "r1"},
		{Code: "C", Path: "c2", PreviousPath: "c1"},
	}

	cs, err := Classify(status, "")
	require.NoError(t, err)
	require.Len(t, cs.Files, len(status))
	for _, f := range cs.Files {
		if f.Status.IsStructural() {
			assert.NotEmpty(t, f.PreviousPath, f.Path)
		} else {
			assert.Empty(t, f.PreviousPath, f.Path)
		}
	}
}

func TestClassify_NothingStaged(t *testing.T) {
	cs, err := Classify(nil, twoLineAddition)
	assert.Nil(t, cs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNothingStaged))

	var ce *ClassificationError
	assert.True(t, errors.As(err, &ce))
}

func TestClassify_RejectsUnknownStatus(t *testing.T) {
	tests := []struct {
		name  string
		entry git.StatusEntry
	}{
		{"type change", git.StatusEntry{Code: "T", Path: "link"}},
		{"unknown letter", git.StatusEntry{Code: "X", Path: "x"}},
		{"unmerged", git.StatusEntry{Code: "U", Path: "conflict.go"}},
		{"score on modify", git.StatusEntry{Code: "M100", Path: "a"}},
		{"garbage suffix", git.StatusEntry{Code: "Rxyz", Path: "b", PreviousPath: "a"}},
		{"rename without source", git.StatusEntry{Code: "R100", Path: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify([]git.StatusEntry{tt.entry}, "")
			require.Error(t, err)

			var ce *ClassificationError
			require.True(t, errors.As(err, &ce))
			assert.NotEmpty(t, ce.Entry)
			assert.False(t, errors.Is(err, ErrNothingStaged))
		})
	}
}

func TestParseStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want Status
	}{
		{"A", StatusAdded},
		{"M", StatusModified},
		{"D", StatusDeleted},
		{"R100", StatusRenamed},
		{"C075", StatusCopied},
		{"M ", StatusModified},
		{"AM", StatusAdded},
		{"R ", StatusRenamed},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := parseStatusCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFileHeader(t *testing.T) {
	tests := []struct {
		line    string
		oldPath string
		newPath string
	}{
		{"diff --git a/src/a.go b/src/a.go", "src/a.go", "src/a.go"},
		{"diff --git a/dir b/x b/dir b/x", "dir b/x", "dir b/x"},
		{"diff --git a/old name.txt b/new.txt", "old name.txt", "new.txt"},
		{`diff --git "a/caf\303\251.txt" "b/caf\303\251.txt"`, "café.txt", "café.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			oldPath, newPath := parseFileHeader(tt.line)
			assert.Equal(t, tt.oldPath, oldPath)
			assert.Equal(t, tt.newPath, newPath)
		})
	}
}

func TestRenderDiff(t *testing.T) {
	cs, err := Classify([]git.StatusEntry{{Code: "M", Path: "src/a.rs"}}, twoLineAddition)
	require.NoError(t, err)

	want := "File: src/a.rs (Modified)\n" +
		"@@ -1,2 +1,4 @@\n" +
		" fn main() {\n" +
		"+    let x = 1;\n" +
		"+    println!(\"{}\", x);\n" +
		" }"
	assert.Equal(t, want, cs.RenderDiff())
}

func TestRenderDiff_FilesWithoutHunks(t *testing.T) {
	tests := []struct {
		name   string
		status []git.StatusEntry
		diff   string
		want   string
	}{
		{
			name:   "mode change",
			status: []git.StatusEntry{{Code: "M", Path: "run.sh"}},
			diff:   "diff --git a/run.sh b/run.sh\nold mode 100644\nnew mode 100755\n",
			want:   "File: run.sh (Modified)\n(no content changes)",
		},
		{
			name:   "empty new file",
			status: []git.StatusEntry{{Code: "A", Path: "empty.txt"}},
			diff:   "diff --git a/empty.txt b/empty.txt\nnew file mode 100644\nindex 0000000..e69de29\n",
			want:   "File: empty.txt (Added)\n(no content changes)",
		},
		{
			name:   "no segment at all",
			status: []git.StatusEntry{{Code: "M", Path: "mode.sh"}},
			want:   "File: mode.sh (Modified)\n(no content changes)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := Classify(tt.status, tt.diff)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cs.RenderDiff())
		})
	}
}

func TestRenderDiff_LeavesBinariesAndRenamesToSummaries(t *testing.T) {
	cs := &ChangeSet{Files: []FileChange{
		{Path: "img.png", Status: StatusAdded, Kind: KindBinary},
		{Path: "new.rs", PreviousPath: "old.rs", Status: StatusRenamed, Kind: KindText},
	}}
	assert.Empty(t, cs.RenderDiff())
}

func TestRenderDiff_MixesHunksAndEmptyFiles(t *testing.T) {
	cs, err := Classify([]git.StatusEntry{
		{Code: "M", Path: "src/a.rs"},
		{Code: "M", Path: "run.sh"},
	}, twoLineAddition+"diff --git a/run.sh b/run.sh\nold mode 100644\nnew mode 100755\n")
	require.NoError(t, err)

	out := cs.RenderDiff()
	assert.Contains(t, out, "File: src/a.rs (Modified)\n@@ -1,2 +1,4 @@")
	assert.True(t, strings.HasSuffix(out, " }\n\nFile: run.sh (Modified)\n(no content changes)"))
}
