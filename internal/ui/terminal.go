package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/huimingz/ai-commit-go/internal/selection"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewInput returns the key-driven selector on a terminal and the line
// selector otherwise or when plain is set
func NewInput(in *os.File, out io.Writer, plain bool) selection.Input {
	if plain || !IsTerminal(in) {
		return NewLineSelector(in, out, !plain)
	}
	return NewSelector(in, out)
}

// NewProgress returns an animated spinner on a terminal and a static line otherwise
func NewProgress(out *os.File, plain bool) selection.Progress {
	if plain || !IsTerminal(out) {
		return NewStaticProgress(NewPrinter(out, WithColor(!plain)))
	}
	return NewSpinner(out)
}
