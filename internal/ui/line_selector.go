package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/huimingz/ai-commit-go/internal/selection"
)

// LineSelector reads choices line by line. It is used with --plain and
// whenever stdin is not a terminal.
type LineSelector struct {
	reader  *bufio.Reader
	output  io.Writer
	color   bool
	pending []selection.Event
}

// NewLineSelector creates a LineSelector
func NewLineSelector(input io.Reader, output io.Writer, colorEnabled bool) *LineSelector {
	return &LineSelector{
		reader: bufio.NewReader(input),
		output: output,
		color:  colorEnabled,
	}
}

// Next implements selection.Input
func (l *LineSelector) Next(ctx context.Context, s selection.State) (selection.Event, error) {
	if len(l.pending) > 0 {
		ev := l.pending[0]
		l.pending = l.pending[1:]
		return ev, nil
	}

	switch st := s.(type) {
	case selection.Presenting:
		return l.present(ctx, st)
	case selection.AwaitingRetry:
		return l.retry(ctx, st)
	default:
		return nil, fmt.Errorf("unexpected state %s", s)
	}
}

func (l *LineSelector) present(ctx context.Context, st selection.Presenting) (selection.Event, error) {
	l.render(st)
	for {
		l.write(color.FgHiBlack, "Select [1-%d], Enter for %d, r to regenerate, q to quit: ", len(st.Batch), st.Cursor+1)

		line, err := l.readLine(ctx)
		if err != nil {
			if err == io.EOF {
				return selection.Cancel{}, nil
			}
			return nil, err
		}

		switch answer := strings.ToLower(line); answer {
		case "":
			return selection.Confirm{}, nil
		case "r":
			return selection.Regenerate{}, nil
		case "q", "quit":
			return selection.Cancel{}, nil
		default:
			idx, err := strconv.Atoi(answer)
			if err != nil || idx < 1 || idx > len(st.Batch) {
				l.write(color.FgYellow, "Please enter a number between 1 and %d\n", len(st.Batch))
				continue
			}
			if delta := idx - 1 - st.Cursor; delta != 0 {
				l.pending = append(l.pending, selection.Confirm{})
				return selection.Move{Delta: delta}, nil
			}
			return selection.Confirm{}, nil
		}
	}
}

func (l *LineSelector) retry(ctx context.Context, st selection.AwaitingRetry) (selection.Event, error) {
	l.write(color.FgRed, "\n❌ %v\n", st.Err)
	for {
		l.write(color.FgHiBlack, "r to retry, q to quit: ")

		line, err := l.readLine(ctx)
		if err != nil {
			if err == io.EOF {
				return selection.Cancel{}, nil
			}
			return nil, err
		}

		switch strings.ToLower(line) {
		case "r", "":
			return selection.Regenerate{}, nil
		case "q", "quit":
			return selection.Cancel{}, nil
		default:
			l.write(color.FgYellow, "Please enter 'r' or 'q'\n")
		}
	}
}

func (l *LineSelector) render(st selection.Presenting) {
	l.write(color.Bold, "\n📝 Suggested commit messages:\n")
	for i, s := range st.Batch {
		marker := " "
		if i == st.Cursor {
			marker = ">"
		}
		l.write(color.Reset, "%s %d. %s\n", marker, i+1, s)
	}
}

func (l *LineSelector) write(attr color.Attribute, format string, args ...any) {
	if l.color {
		_, _ = color.New(attr).Fprintf(l.output, format, args...)
		return
	}
	_, _ = fmt.Fprintf(l.output, format, args...)
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the next trimmed line or ctx.Err() once ctx is done
func (l *LineSelector) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := l.reader.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- lineResult{line: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
