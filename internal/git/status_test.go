package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []StatusEntry
		wantErr bool
	}{
		{
			name:  "empty output",
			input: "",
			want:  nil,
		},
		{
			name:  "single modification",
			input: "M\x00src/a.go\x00",
			want:  []StatusEntry{{Code: "M", Path: "src/a.go"}},
		},
		{
			name:  "rename carries both paths",
			input: "R100\x00src/old.go\x00src/new.go\x00",
			want:  []StatusEntry{{Code: "R100", Path: "src/new.go", PreviousPath: "src/old.go"}},
		},
		{
			name:  "mixed listing keeps order",
			input: "A\x00z.txt\x00C075\x00a.txt\x00b.txt\x00D\x00gone.txt\x00",
			want: []StatusEntry{
				{Code: "A", Path: "z.txt"},
				{Code: "C075", Path: "b.txt", PreviousPath: "a.txt"},
				{Code: "D", Path: "gone.txt"},
			},
		},
		{
			name:  "paths with spaces and tabs survive",
			input: "M\x00dir with space/file\tname.txt\x00",
			want:  []StatusEntry{{Code: "M", Path: "dir with space/file\tname.txt"}},
		},
		{
			name:    "rename without destination",
			input:   "R090\x00only-source.txt\x00",
			wantErr: true,
		},
		{
			name:    "code without path",
			input:   "M\x00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNameStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusEntry_String(t *testing.T) {
	assert.Equal(t, "M\ta.go", StatusEntry{Code: "M", Path: "a.go"}.String())
	assert.Equal(t, "R100\told.go\tnew.go", StatusEntry{Code: "R100", Path: "new.go", PreviousPath: "old.go"}.String())
}

func TestDetect(t *testing.T) {
	ctx := context.Background()

	t.Run("outside a repository", func(t *testing.T) {
		_, err := Detect(ctx, t.TempDir())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotARepository)
	})

	t.Run("fresh repository has no commits", func(t *testing.T) {
		repoDir := setupTestRepo(t)

		info, err := Detect(ctx, repoDir)
		require.NoError(t, err)
		assert.False(t, info.HasCommits)
		assert.NotEmpty(t, info.Root)
	})

	t.Run("subdirectory resolves to the root", func(t *testing.T) {
		repoDir := setupTestRepo(t)
		createAndStageFile(t, repoDir, "nested/dir/file.txt", "content")
		commitFile(t, repoDir, "chore: seed repository")

		info, err := Detect(ctx, repoDir+"/nested/dir")
		require.NoError(t, err)
		assert.True(t, info.HasCommits)
	})
}
