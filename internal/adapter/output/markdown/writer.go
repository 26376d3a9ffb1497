// Package markdown renders review results into Markdown reports.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/review-assistant/internal/domain"
)

type clock func() string

// Report encapsulates the Markdown generation inputs.
type Report struct {
	OutputDir  string
	Repository string
	BaseRef    string
	Result     domain.Result
}

// Writer renders review results into Markdown files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Write persists a Markdown artifact to disk and returns its path.
func (w *Writer) Write(ctx context.Context, report Report) (string, error) {
	if err := os.MkdirAll(report.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.md",
		sanitise(report.Repository),
		sanitise(report.BaseRef),
		w.now(),
	)
	path := filepath.Join(report.OutputDir, filename)

	if err := os.WriteFile(path, []byte(Render(report)), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}

// Render builds the Markdown document for a review result. Issues are
// grouped by severity, most severe first; unrecognized severities follow
// the known tiers in first-seen order.
func Render(report Report) string {
	var builder strings.Builder
	caser := cases.Title(language.English)

	builder.WriteString("# Code Review Report\n\n")
	if report.Repository != "" {
		builder.WriteString(fmt.Sprintf("- Repository: %s\n", report.Repository))
	}
	if report.BaseRef != "" {
		builder.WriteString(fmt.Sprintf("- Base: %s\n", report.BaseRef))
	}
	builder.WriteString(fmt.Sprintf("- Issues: %s\n\n", domain.FormatIssueCount(report.Result.Issues)))

	builder.WriteString("## Summary\n\n")
	builder.WriteString(report.Result.Summary)
	builder.WriteString("\n\n")

	if len(report.Result.Issues) == 0 {
		builder.WriteString("No issues found.\n")
		return builder.String()
	}

	issues := make([]domain.Issue, len(report.Result.Issues))
	copy(issues, report.Result.Issues)
	domain.SortIssues(issues)

	builder.WriteString("## Issues\n\n")
	for _, issue := range issues {
		builder.WriteString(fmt.Sprintf("### %s\n\n", caser.String(issue.Severity)))
		builder.WriteString(issue.Message)
		builder.WriteString("\n")
		if issue.Suggestion != "" {
			builder.WriteString(fmt.Sprintf("\n> Suggestion: %s\n", issue.Suggestion))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func sanitise(value string) string {
	replacer := strings.NewReplacer("/", "-", " ", "-", ":", "-")
	cleaned := replacer.Replace(value)
	if cleaned == "" {
		return "unknown"
	}
	return cleaned
}
