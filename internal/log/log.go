package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	debugMode           = false
	output    io.Writer = os.Stderr
)

// SetDebugMode enables or disables debug mode
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled
func IsDebugMode() bool {
	return debugMode
}

// SetOutput sets the output writer for log messages
func SetOutput(w io.Writer) {
	output = w
}

// Debug prints debug messages (only in debug mode)
func Debug(format string, args ...interface{}) {
	if debugMode {
		gray := color.New(color.FgHiBlack)
		gray.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// DebugConfig prints configuration details in debug mode
func DebugConfig(label string, config interface{}) {
	if debugMode {
		gray := color.New(color.FgHiBlack)
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			gray.Fprintf(output, "[DEBUG] %s: (failed to serialize: %v)\n", label, err)
			return
		}
		gray.Fprintf(output, "[DEBUG] %s:\n%s\n", label, string(data))
	}
}

// DebugCommand logs an external command before it runs
func DebugCommand(dir, command string) {
	if debugMode {
		cyan := color.New(color.FgCyan)
		cyan.Fprintf(output, "[DEBUG] exec (%s): %s\n", dir, command)
	}
}

// DebugPrompt logs the prompt sent to the model
func DebugPrompt(prompt string, count int) {
	if debugMode {
		yellow := color.New(color.FgYellow)
		yellow.Fprintf(output, "[DEBUG] Prompt (%d bytes, %d candidate(s) requested):\n", len(prompt), count)
		fmt.Fprintln(output, prompt)
	}
}

// Rejected is a candidate line that failed validation
type Rejected struct {
	Line   string
	Reason string
}

// DebugCandidates logs raw model output and the rejected lines in input order
func DebugCandidates(raw []string, rejected []Rejected) {
	if debugMode {
		magenta := color.New(color.FgMagenta)
		magenta.Fprintf(output, "[DEBUG] Model returned %d raw candidate(s)\n", len(raw))
		for i, r := range raw {
			fmt.Fprintf(output, "[DEBUG]   #%d %s\n", i+1, truncate(r, 200))
		}
		red := color.New(color.FgRed)
		for _, r := range rejected {
			red.Fprintf(output, "[DEBUG]   rejected %q: %s\n", truncate(r.Line, 120), r.Reason)
		}
	}
}

// DebugTransition logs a selection state change
func DebugTransition(from, to string) {
	if debugMode {
		blue := color.New(color.FgBlue)
		blue.Fprintf(output, "[DEBUG] state %s -> %s\n", from, to)
	}
}

// DebugDuration logs execution duration in debug mode
func DebugDuration(operation string, duration time.Duration) {
	if debugMode {
		blue := color.New(color.FgBlue)
		blue.Fprintf(output, "[DEBUG] %s took %v\n", operation, duration)
	}
}

// Warn prints warning messages
func Warn(format string, args ...interface{}) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(output, "Warning: "+format+"\n", args...)
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
