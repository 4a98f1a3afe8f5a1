package suggest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/huimingz/ai-commit-go/internal/llm"
	"github.com/huimingz/ai-commit-go/internal/log"
	"github.com/huimingz/ai-commit-go/internal/prompt"
)

const fence = "```"

// listMarkerRegex matches "- ", "* ", "1. " and "1) " bullets models like to add
var listMarkerRegex = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// Engine requests candidates from a Generator and keeps the valid ones.
// It holds no state between rounds and never retries on its own.
type Engine struct {
	gen   llm.Generator
	table prompt.Convention
}

// NewEngine creates an engine validating against table
func NewEngine(gen llm.Generator, table prompt.Convention) *Engine {
	return &Engine{gen: gen, table: table}
}

// Request runs one round: it asks for n candidates and returns at most n
// valid, de-duplicated suggestions in order of first appearance.
// A cancelled context is returned as is; every other failure is an *Error.
func (e *Engine) Request(ctx context.Context, p string, n int) (Batch, error) {
	if n < 1 {
		n = 1
	}

	log.DebugPrompt(p, n)
	start := time.Now()
	raw, err := e.gen.Generate(ctx, p, n)
	log.DebugDuration("Model request", time.Since(start))
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fromGenerator(err)
	}

	lines := lo.FlatMap(raw, func(r string, _ int) []string { return normalize(r) })
	if len(lines) == 0 {
		log.DebugCandidates(raw, nil)
		return nil, &Error{Kind: KindMalformedResponse, Err: fmt.Errorf("model returned no text")}
	}

	var (
		rejected []log.Rejected
		valid    []Suggestion
	)
	for _, line := range lines {
		s, err := Parse(line, e.table)
		if err != nil {
			rejected = append(rejected, log.Rejected{Line: line, Reason: err.Error()})
			continue
		}
		valid = append(valid, s)
	}
	log.DebugCandidates(raw, rejected)

	batch := Batch(lo.Uniq(valid))
	if len(batch) > n {
		batch = batch[:n]
	}
	if len(batch) == 0 {
		return nil, &Error{Kind: KindNoValidSuggestions, Err: fmt.Errorf("all %d candidate line(s) were rejected", len(lines))}
	}
	return batch, nil
}

// normalize strips code fences, bullets and quotes and splits a raw
// candidate into its non-empty lines
func normalize(raw string) []string {
	text := strings.TrimSpace(raw)
	if !strings.Contains(text, "\n") {
		// ```feat: add parser```
		text = strings.TrimSuffix(strings.TrimPrefix(text, fence), fence)
	}

	return lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, fence) {
			return "", false
		}
		line = listMarkerRegex.ReplaceAllString(line, "")
		line = trimQuotes(line)
		return line, line != ""
	})
}

func trimQuotes(s string) string {
	for _, q := range []string{`"`, "'", "`"} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
