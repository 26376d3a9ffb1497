package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Known severity tiers, most severe first.
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

var severityRanks = map[string]int{
	strings.ToLower(SeverityCritical): 0,
	strings.ToLower(SeverityHigh):     1,
	strings.ToLower(SeverityMedium):   2,
	strings.ToLower(SeverityLow):      3,
}

const unknownSeverityRank = 4

// SeverityRank orders severities for display: the four known tiers first,
// then everything else. Unknown values share a rank so stable sorting keeps
// them in first-seen order.
func SeverityRank(severity string) int {
	if rank, ok := severityRanks[strings.ToLower(severity)]; ok {
		return rank
	}
	return unknownSeverityRank
}

// SortIssues orders issues by severity rank, most severe first. The sort is
// stable: issues within a tier, and issues with unrecognized severities,
// keep their original order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return SeverityRank(issues[i].Severity) < SeverityRank(issues[j].Severity)
	})
}

// FormatIssueCount summarizes issues by severity, e.g. "2 Critical, 1 Low".
// Unrecognized severities are appended after the known tiers in first-seen
// order.
func FormatIssueCount(issues []Issue) string {
	if len(issues) == 0 {
		return "No issues found"
	}

	counts := make(map[string]int)
	var unknownOrder []string
	for _, issue := range issues {
		severity := canonicalSeverity(issue.Severity)
		if _, counted := counts[severity]; !counted && SeverityRank(severity) == unknownSeverityRank {
			unknownOrder = append(unknownOrder, severity)
		}
		counts[severity]++
	}

	var parts []string
	for _, severity := range []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow} {
		if n, ok := counts[severity]; ok {
			parts = append(parts, fmt.Sprintf("%d %s", n, severity))
		}
	}
	for _, severity := range unknownOrder {
		parts = append(parts, fmt.Sprintf("%d %s", counts[severity], severity))
	}

	return strings.Join(parts, ", ")
}

// canonicalSeverity folds known tiers to their display form and labels empty
// severities Unknown. Unrecognized values pass through unchanged.
func canonicalSeverity(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	case "":
		return "Unknown"
	}
	return severity
}
