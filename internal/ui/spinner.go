package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows an animated indicator while a round is in flight.
// It implements selection.Progress.
type Spinner struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewSpinner creates a Spinner drawing to output
func NewSpinner(output io.Writer) *Spinner {
	return &Spinner{output: output}
}

// Start shows the spinner with message; a running spinner is replaced
func (s *Spinner) Start(message string) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	p := tea.NewProgram(newSpinnerModel(message),
		tea.WithInput(nil),
		tea.WithOutput(s.output),
		tea.WithoutSignalHandler(),
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	s.program = p
	s.done = done
}

// Stop clears the spinner and waits for it to exit
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program, s.done = nil, nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Send(stopMsg{})
	<-done
}

type stopMsg struct{}

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func newSpinnerModel(message string) spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return spinnerModel{spinner: sp, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// StaticProgress prints the message once; used when output is not a terminal
type StaticProgress struct {
	printer *Printer
}

// NewStaticProgress creates a StaticProgress
func NewStaticProgress(p *Printer) *StaticProgress {
	return &StaticProgress{printer: p}
}

// Start implements selection.Progress
func (s *StaticProgress) Start(message string) {
	_ = s.printer.PrintProgress(message)
}

// Stop implements selection.Progress
func (s *StaticProgress) Stop() {}
