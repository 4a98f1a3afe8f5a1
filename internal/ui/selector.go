package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/huimingz/ai-commit-go/internal/selection"
)

// Selector is the terminal selector. Cursor moves are previewed locally and
// reported to the controller as one Move when the user commits to a choice.
type Selector struct {
	input   io.Reader
	output  io.Writer
	pending []selection.Event
}

// NewSelector creates a Selector reading keys from input
func NewSelector(input io.Reader, output io.Writer) *Selector {
	return &Selector{input: input, output: output}
}

// Next implements selection.Input
func (s *Selector) Next(ctx context.Context, state selection.State) (selection.Event, error) {
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		return ev, nil
	}

	switch state.(type) {
	case selection.Presenting, selection.AwaitingRetry:
	default:
		return nil, fmt.Errorf("unexpected state %s", state)
	}

	m := newSelectorModel(state)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(s.input),
		tea.WithOutput(s.output),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	events := final.(selectorModel).events()
	s.pending = append(s.pending, events[1:]...)
	return events[0], nil
}

// selectorModel previews the machine with selection.Transition and quits on
// the first event that leaves the current state
type selectorModel struct {
	start  selection.State
	state  selection.State
	result selection.Event
}

func newSelectorModel(state selection.State) selectorModel {
	return selectorModel{start: state, state: state}
}

// events returns what the controller must see to reach the user's choice
func (m selectorModel) events() []selection.Event {
	result := m.result
	if result == nil {
		result = selection.Cancel{}
	}

	start, ok1 := m.start.(selection.Presenting)
	end, ok2 := m.state.(selection.Presenting)
	if ok1 && ok2 && end.Cursor != start.Cursor {
		return []selection.Event{selection.Move{Delta: end.Cursor - start.Cursor}, result}
	}
	return []selection.Event{result}
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var ev selection.Event
	switch key.String() {
	case "up", "k", "shift+tab":
		ev = selection.Move{Delta: -1}
	case "down", "j", "tab":
		ev = selection.Move{Delta: 1}
	case "enter":
		if _, retry := m.state.(selection.AwaitingRetry); retry {
			ev = selection.Regenerate{}
		} else {
			ev = selection.Confirm{}
		}
	case "r":
		ev = selection.Regenerate{}
	case "q", "esc", "ctrl+c":
		ev = selection.Cancel{}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if p, ok := m.state.(selection.Presenting); ok {
			idx := int(key.Runes[0] - '1')
			if idx < len(p.Batch) {
				ev = selection.Move{Delta: idx - p.Cursor}
			}
		}
	}
	if ev == nil {
		return m, nil
	}

	if _, move := ev.(selection.Move); move {
		m.state = selection.Transition(m.state, ev)
		return m, nil
	}

	m.result = ev
	return m, tea.Quit
}

func (m selectorModel) View() string {
	if m.result != nil {
		return ""
	}

	var b strings.Builder
	switch st := m.state.(type) {
	case selection.Presenting:
		b.WriteString(headerStyle.Render("Choose a commit message"))
		b.WriteString("\n\n")
		for i, s := range st.Batch {
			line := typeStyle.Render(s.Type+":") + " " + s.Description
			if i == st.Cursor {
				b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("↑/↓ move • enter commit • r regenerate • q quit"))
	case selection.AwaitingRetry:
		b.WriteString(errorStyle.Render("Error: " + st.Err.Error()))
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("r retry • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}
