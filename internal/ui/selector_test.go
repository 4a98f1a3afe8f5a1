package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/ai-commit-go/internal/selection"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m selectorModel, keys ...tea.KeyMsg) (selectorModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(selectorModel)
	}
	return m, cmd
}

func TestSelectorModel_Keys(t *testing.T) {
	start := selection.Presenting{Batch: threeSuggestions}

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want []selection.Event
	}{
		{"enter", []tea.KeyMsg{{Type: tea.KeyEnter}}, []selection.Event{selection.Confirm{}}},
		{"down enter", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			[]selection.Event{selection.Move{Delta: 1}, selection.Confirm{}}},
		{"j j k enter", []tea.KeyMsg{runes("j"), runes("j"), runes("k"), {Type: tea.KeyEnter}},
			[]selection.Event{selection.Move{Delta: 1}, selection.Confirm{}}},
		{"up wraps", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}},
			[]selection.Event{selection.Move{Delta: 2}, selection.Confirm{}}},
		{"digit jumps", []tea.KeyMsg{runes("3"), {Type: tea.KeyEnter}},
			[]selection.Event{selection.Move{Delta: 2}, selection.Confirm{}}},
		{"digit out of range ignored", []tea.KeyMsg{runes("9"), {Type: tea.KeyEnter}},
			[]selection.Event{selection.Confirm{}}},
		{"regenerate", []tea.KeyMsg{runes("r")}, []selection.Event{selection.Regenerate{}}},
		{"q", []tea.KeyMsg{runes("q")}, []selection.Event{selection.Cancel{}}},
		{"esc", []tea.KeyMsg{{Type: tea.KeyEsc}}, []selection.Event{selection.Cancel{}}},
		{"ctrl+c", []tea.KeyMsg{{Type: tea.KeyCtrlC}}, []selection.Event{selection.Cancel{}}},
		{"move back to start then quit", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyUp}, runes("q")},
			[]selection.Event{selection.Cancel{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(t, newSelectorModel(start), tt.keys...)
			require.NotNil(t, cmd, "last key should quit")
			assert.Equal(t, tt.want, m.events())
			assert.Empty(t, m.View())
		})
	}
}

func TestSelectorModel_MoveDoesNotQuit(t *testing.T) {
	m, cmd := press(t, newSelectorModel(selection.Presenting{Batch: threeSuggestions}), tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.Nil(t, m.result)
	assert.Equal(t, 1, m.state.(selection.Presenting).Cursor)
}

func TestSelectorModel_AwaitingRetry(t *testing.T) {
	start := selection.AwaitingRetry{Err: errors.New("rate limited")}

	m := newSelectorModel(start)
	assert.Contains(t, m.View(), "rate limited")
	assert.Contains(t, m.View(), "r retry")

	retried, _ := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []selection.Event{selection.Regenerate{}}, retried.events())

	moved, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.Equal(t, start, moved.state)

	quit, _ := press(t, m, runes("q"))
	assert.Equal(t, []selection.Event{selection.Cancel{}}, quit.events())
}

func TestSelectorModel_View(t *testing.T) {
	m := newSelectorModel(selection.Presenting{Batch: threeSuggestions, Cursor: 1})
	view := m.View()

	assert.Contains(t, view, "add the tokenizer")
	assert.Contains(t, view, "handle empty input")
	assert.Contains(t, view, "describe the parser")
	assert.Contains(t, view, "enter commit")
}

func TestSelectorModel_IgnoresOtherMessages(t *testing.T) {
	m := newSelectorModel(selection.Presenting{Batch: threeSuggestions})
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, m, next)
}

func TestSelector_DrainsPendingEvents(t *testing.T) {
	s := NewSelector(nil, nil)
	s.pending = []selection.Event{selection.Confirm{}}

	ev, err := s.Next(context.Background(), selection.Presenting{Batch: threeSuggestions})
	require.NoError(t, err)
	assert.Equal(t, selection.Confirm{}, ev)
	assert.Empty(t, s.pending)
}
