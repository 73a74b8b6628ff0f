// Package report contains result sinks that do not need a database:
// Markdown report files and a fan-out sink over several sinks.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

const (
	fileTimeLayout    = "20060102_150405"
	displayTimeLayout = "2006-01-02 15:04:05"
)

// MarkdownSink writes each result into its own Markdown file named after
// the session start time (quiz_YYYYMMDD_HHMMSS.md).
type MarkdownSink struct {
	dir string
}

// NewMarkdownSink creates the output directory if needed.
func NewMarkdownSink(dir string) (*MarkdownSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &MarkdownSink{dir: dir}, nil
}

// Record writes the report. A report with the same start time is overwritten.
func (s *MarkdownSink) Record(ctx context.Context, result domain.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.PathFor(result)
	if err := os.WriteFile(path, []byte(RenderMarkdown(result)), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", filepath.Base(path), err)
	}
	return nil
}

// PathFor returns the file the result is written to.
func (s *MarkdownSink) PathFor(result domain.Result) string {
	name := "quiz_" + result.StartTime.Format(fileTimeLayout) + ".md"
	return filepath.Join(s.dir, name)
}

// RenderMarkdown formats a result as a Markdown document.
func RenderMarkdown(result domain.Result) string {
	var b strings.Builder

	start := result.StartTime.Format(displayTimeLayout)
	fmt.Fprintf(&b, "# Quiz Result - %s\n\n", start)
	fmt.Fprintf(&b, "**Start Time:** %s\n\n", start)
	fmt.Fprintf(&b, "**End Time:** %s\n\n", result.EndTime.Format(displayTimeLayout))
	fmt.Fprintf(&b, "**Correct Answers:** %d\n\n", result.Correct)
	fmt.Fprintf(&b, "**Incorrect Answers:** %d\n\n", result.Incorrect)

	b.WriteString("## Correctly Answered Terms:\n\n")
	writeList(&b, result.CorrectWords)

	b.WriteString("\n## Incorrectly Answered Terms:\n\n")
	writeList(&b, result.IncorrectWords)

	return b.String()
}

func writeList(b *strings.Builder, words []string) {
	if len(words) == 0 {
		b.WriteString("None\n")
		return
	}
	for _, w := range words {
		fmt.Fprintf(b, "- %s\n", w)
	}
}
