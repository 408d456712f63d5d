package promote

import (
	"fmt"
	"strings"
)

// Heading is the fixed first line of the tracking comment. It is the sole
// means of recognizing the comment on later runs, so it must never change.
const Heading = "### Task status check"

// Result captures the outcome of checking one pull request.
type Result struct {
	PR PullRequest
	// TaskID is valid only when HasTask is true.
	TaskID  int
	HasTask bool
	// Status is the normalized (lowercase) task status, empty when unknown.
	Status string
	// URL is the canonical task link, empty when unknown.
	URL string
	// Passed is the promotion decision for this PR.
	Passed bool
}

// Line renders a single report line: pass/fail glyph, PR number, the title
// with its task reference rewritten to a link when one is known, and the
// status label in backticks when present.
func (r Result) Line(parser *RefParser) string {
	glyph := "❌"
	if r.Passed {
		glyph = "✅"
	}

	title := r.PR.Title
	if r.HasTask && r.URL != "" {
		title = parser.Rewrite(title, r.URL)
	}

	line := fmt.Sprintf("%s PR #%d %s", glyph, r.PR.Number, title)
	if r.HasTask && r.Status != "" {
		line += fmt.Sprintf(" `(%s)`", r.Status)
	}
	return line
}

// Render composes the tracking comment body: the heading, one line per
// result in processing order, a blank line, and a link to the workflow run
// that produced the report.
func Render(results []Result, parser *RefParser, runURL string) string {
	var b strings.Builder
	b.WriteString(Heading)
	b.WriteString("\n")
	for _, r := range results {
		b.WriteString(r.Line(parser))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if runURL != "" {
		fmt.Fprintf(&b, "[Workflow run](%s)\n", runURL)
	}
	return b.String()
}
