package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/ai-commit-go/internal/selection"
	"github.com/huimingz/ai-commit-go/internal/suggest"
)

var threeSuggestions = suggest.Batch{
	{Type: "feat", Description: "add the tokenizer"},
	{Type: "fix", Description: "handle empty input"},
	{Type: "docs", Description: "describe the parser"},
}

func TestLineSelector_Presenting(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		want   []selection.Event
	}{
		{"enter confirms cursor", "\n", 0, []selection.Event{selection.Confirm{}}},
		{"number at cursor", "1\n", 0, []selection.Event{selection.Confirm{}}},
		{"number moves then confirms", "3\n", 0, []selection.Event{selection.Move{Delta: 2}, selection.Confirm{}}},
		{"number moves backwards", "1\n", 2, []selection.Event{selection.Move{Delta: -2}, selection.Confirm{}}},
		{"regenerate", "r\n", 0, []selection.Event{selection.Regenerate{}}},
		{"quit", "q\n", 0, []selection.Event{selection.Cancel{}}},
		{"invalid then valid", "9\nabc\n2\n", 0, []selection.Event{selection.Move{Delta: 1}, selection.Confirm{}}},
		{"eof cancels", "", 0, []selection.Event{selection.Cancel{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			l := NewLineSelector(strings.NewReader(tt.input), &out, false)
			state := selection.Presenting{Batch: threeSuggestions, Cursor: tt.cursor}

			var got []selection.Event
			for range tt.want {
				ev, err := l.Next(context.Background(), state)
				require.NoError(t, err)
				got = append(got, ev)
				if _, ok := ev.(selection.Move); !ok {
					break
				}
				state = selection.Transition(state, ev).(selection.Presenting)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineSelector_RendersBatch(t *testing.T) {
	var out bytes.Buffer
	l := NewLineSelector(strings.NewReader("\n"), &out, false)

	_, err := l.Next(context.Background(), selection.Presenting{Batch: threeSuggestions, Cursor: 1})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "  1. feat: add the tokenizer\n")
	assert.Contains(t, out.String(), "> 2. fix: handle empty input\n")
	assert.Contains(t, out.String(), "Enter for 2")
}

func TestLineSelector_AwaitingRetry(t *testing.T) {
	tests := []struct {
		input string
		want  selection.Event
	}{
		{"r\n", selection.Regenerate{}},
		{"\n", selection.Regenerate{}},
		{"x\nq\n", selection.Cancel{}},
		{"", selection.Cancel{}},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			l := NewLineSelector(strings.NewReader(tt.input), &out, false)

			ev, err := l.Next(context.Background(), selection.AwaitingRetry{Err: errors.New("rate limited")})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
			assert.Contains(t, out.String(), "rate limited")
		})
	}
}

func TestLineSelector_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()
	l := NewLineSelector(r, &bytes.Buffer{}, false)

	_, err := l.Next(ctx, selection.Presenting{Batch: threeSuggestions})
	assert.ErrorIs(t, err, context.Canceled)
}
