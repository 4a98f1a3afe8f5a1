package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// PrinterOption is a functional option for Printer
type PrinterOption func(*Printer)

// WithColor enables or disables color output
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.colorEnabled = enabled
	}
}

// WithVerbose enables or disables verbose mode
func WithVerbose(verbose bool) PrinterOption {
	return func(p *Printer) {
		p.verbose = verbose
	}
}

// Printer writes status lines to the terminal
type Printer struct {
	writer       io.Writer
	colorEnabled bool
	verbose      bool
}

// NewPrinter creates a new Printer
func NewPrinter(writer io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		writer:       writer,
		colorEnabled: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Printer) printf(attr color.Attribute, format string, args ...any) error {
	if p.colorEnabled {
		_, err := color.New(attr).Fprintf(p.writer, format, args...)
		return err
	}
	_, err := fmt.Fprintf(p.writer, format, args...)
	return err
}

// PrintInfo prints an info message
func (p *Printer) PrintInfo(message string) error {
	return p.printf(color.FgCyan, "ℹ️  %s\n", message)
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	return p.printf(color.FgGreen, "✅ %s\n", message)
}

// PrintWarning prints a warning message
func (p *Printer) PrintWarning(message string) error {
	return p.printf(color.FgYellow, "⚠️  %s\n", message)
}

// PrintError prints an error message
func (p *Printer) PrintError(message string) error {
	return p.printf(color.FgRed, "❌ Error: %s\n", message)
}

// PrintProgress prints a progress message
func (p *Printer) PrintProgress(message string) error {
	return p.printf(color.FgYellow, "⏳ %s\n", message)
}

// PrintDuration prints how long the run took, only in verbose mode
func (p *Printer) PrintDuration(d time.Duration) error {
	if !p.verbose {
		return nil
	}
	return p.printf(color.FgHiBlack, "⏱  %s\n", formatDuration(d))
}

// ShowCommitMessage displays the chosen commit message
func (p *Printer) ShowCommitMessage(title, message string) error {
	rule := strings.Repeat("─", 40)

	if err := p.printf(color.Bold, "\n📝 %s:\n", title); err != nil {
		return err
	}
	if err := p.printf(color.FgCyan, "%s\n", rule); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.writer, message); err != nil {
		return err
	}
	return p.printf(color.FgCyan, "%s\n", rule)
}

// ShowOutput prints verbatim command output, skipping blank output
func (p *Printer) ShowOutput(output string) error {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return nil
	}
	_, err := fmt.Fprintln(p.writer, output)
	return err
}

// Newline prints a newline
func (p *Printer) Newline() error {
	_, err := fmt.Fprintln(p.writer)
	return err
}

// formatDuration formats a duration in a human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
