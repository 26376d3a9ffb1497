package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/review-assistant/internal/domain"
)

func TestSeverityRank(t *testing.T) {
	t.Run("orders known tiers most severe first", func(t *testing.T) {
		assert.Less(t, domain.SeverityRank("Critical"), domain.SeverityRank("High"))
		assert.Less(t, domain.SeverityRank("High"), domain.SeverityRank("Medium"))
		assert.Less(t, domain.SeverityRank("Medium"), domain.SeverityRank("Low"))
	})

	t.Run("is case insensitive", func(t *testing.T) {
		assert.Equal(t, domain.SeverityRank("critical"), domain.SeverityRank("CRITICAL"))
	})

	t.Run("ranks unknown severities after known tiers", func(t *testing.T) {
		assert.Greater(t, domain.SeverityRank("Blocker"), domain.SeverityRank("Low"))
		assert.Equal(t, domain.SeverityRank("Blocker"), domain.SeverityRank("Weird"))
	})
}

func TestSortIssues(t *testing.T) {
	t.Run("sorts by severity and keeps unknowns in first-seen order", func(t *testing.T) {
		issues := []domain.Issue{
			{Severity: "Banana", Message: "first unknown"},
			{Severity: "Low", Message: "low"},
			{Severity: "Apple", Message: "second unknown"},
			{Severity: "Critical", Message: "critical"},
		}

		domain.SortIssues(issues)

		assert.Equal(t, "critical", issues[0].Message)
		assert.Equal(t, "low", issues[1].Message)
		assert.Equal(t, "first unknown", issues[2].Message)
		assert.Equal(t, "second unknown", issues[3].Message)
	})
}

func TestFormatIssueCount(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, "No issues found", domain.FormatIssueCount(nil))
	})

	t.Run("counts by severity in display order", func(t *testing.T) {
		issues := []domain.Issue{
			{Severity: "High"},
			{Severity: "Low"},
			{Severity: "High"},
		}
		assert.Equal(t, "2 High, 1 Low", domain.FormatIssueCount(issues))
	})

	t.Run("appends unrecognized severities after known tiers", func(t *testing.T) {
		issues := []domain.Issue{
			{Severity: "Blocker"},
			{Severity: "Critical"},
		}
		assert.Equal(t, "1 Critical, 1 Blocker", domain.FormatIssueCount(issues))
	})

	t.Run("folds case variants of known tiers together", func(t *testing.T) {
		issues := []domain.Issue{
			{Severity: "high"},
			{Severity: "High"},
		}
		assert.Equal(t, "2 High", domain.FormatIssueCount(issues))
	})

	t.Run("labels empty severity Unknown", func(t *testing.T) {
		issues := []domain.Issue{{Severity: ""}}
		assert.Equal(t, "1 Unknown", domain.FormatIssueCount(issues))
	})
}
