package markdown_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/review-assistant/internal/adapter/output/markdown"
	"github.com/bkyoung/review-assistant/internal/domain"
)

func TestRender(t *testing.T) {
	t.Run("orders issues by severity", func(t *testing.T) {
		report := markdown.Report{
			Repository: "octocat/hello",
			BaseRef:    "main",
			Result: domain.Result{
				Summary: "Mixed findings.",
				Issues: []domain.Issue{
					{Severity: "Low", Message: "low issue", Suggestion: "tidy"},
					{Severity: "Critical", Message: "critical issue", Suggestion: "fix now"},
					{Severity: "Medium", Message: "medium issue"},
				},
			},
		}

		doc := markdown.Render(report)

		assert.Contains(t, doc, "# Code Review Report")
		assert.Contains(t, doc, "- Repository: octocat/hello")
		assert.Contains(t, doc, "- Base: main")
		assert.Contains(t, doc, "Mixed findings.")

		critical := strings.Index(doc, "critical issue")
		medium := strings.Index(doc, "medium issue")
		low := strings.Index(doc, "low issue")
		assert.True(t, critical < medium && medium < low,
			"expected severity ordering, got doc:\n%s", doc)
	})

	t.Run("title-cases severity headings", func(t *testing.T) {
		report := markdown.Report{
			Result: domain.Result{
				Summary: "s",
				Issues:  []domain.Issue{{Severity: "high", Message: "m"}},
			},
		}

		doc := markdown.Render(report)

		assert.Contains(t, doc, "### High")
	})

	t.Run("suggestions render as blockquotes", func(t *testing.T) {
		report := markdown.Report{
			Result: domain.Result{
				Summary: "s",
				Issues:  []domain.Issue{{Severity: "Low", Message: "m", Suggestion: "do this"}},
			},
		}

		assert.Contains(t, markdown.Render(report), "> Suggestion: do this")
	})

	t.Run("no issues", func(t *testing.T) {
		report := markdown.Report{
			Result: domain.Result{Summary: "All clear."},
		}

		doc := markdown.Render(report)

		assert.Contains(t, doc, "No issues found.")
		assert.NotContains(t, doc, "## Issues")
	})

	t.Run("omits blank repository and base lines", func(t *testing.T) {
		doc := markdown.Render(markdown.Report{Result: domain.Result{Summary: "s"}})

		assert.NotContains(t, doc, "- Repository:")
		assert.NotContains(t, doc, "- Base:")
	})
}

func TestWriter_Write(t *testing.T) {
	writer := markdown.NewWriter(func() string { return "20260829T120000" })

	t.Run("writes the rendered report to disk", func(t *testing.T) {
		dir := t.TempDir()
		report := markdown.Report{
			OutputDir:  dir,
			Repository: "octocat/hello",
			BaseRef:    "main",
			Result:     domain.Result{Summary: "fine"},
		}

		path, err := writer.Write(context.Background(), report)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "octocat-hello_main_20260829T120000.md"), path)

		contents, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, markdown.Render(report), string(contents))
	})

	t.Run("creates the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		report := markdown.Report{
			OutputDir: dir,
			Result:    domain.Result{Summary: "fine"},
		}

		path, err := writer.Write(context.Background(), report)

		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("blank name parts become unknown", func(t *testing.T) {
		dir := t.TempDir()
		report := markdown.Report{
			OutputDir: dir,
			Result:    domain.Result{Summary: "fine"},
		}

		path, err := writer.Write(context.Background(), report)

		require.NoError(t, err)
		assert.Equal(t, "unknown_unknown_20260829T120000.md", filepath.Base(path))
	})
}
