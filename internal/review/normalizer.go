package review

import (
	"encoding/json"
	"strings"

	"github.com/bkyoung/review-assistant/internal/domain"
)

// Fallback result constants, returned when no extraction strategy yields
// parseable JSON. The fallback is a terminal, always-valid outcome: a
// malformed model reply can never crash or block the caller.
const (
	fallbackSummary     = "Review completed but response parsing failed."
	fallbackMessage     = "AI response could not be parsed"
	fallbackSuggestion  = "Check the raw AI output for details"
	rawResponsePreview  = 500
	labeledFenceOpening = "```json"
	fence               = "```"
)

// extractor locates the JSON candidate a strategy would parse within text.
// Strategies are exclusive: the first one that applies claims the text, and
// a claimed-but-unparseable candidate falls straight through to the
// fallback rather than trying later strategies.
type extractor func(text string) (candidate string, ok bool)

var extractors = []extractor{extractLabeledFence, extractAnyFence, extractBraceSpan}

// Normalize turns a raw model reply into a Result. It never fails: direct
// parsing is tried first, then the fenced/brace extraction strategies, and
// finally the fixed fallback carrying the first 500 characters of the reply.
// A successfully parsed document is returned as-is without shape validation.
func Normalize(raw string) domain.Result {
	if result, err := parseResult(raw); err == nil {
		return result
	}

	for _, extract := range extractors {
		candidate, ok := extract(raw)
		if !ok {
			continue
		}
		if result, err := parseResult(candidate); err == nil {
			return result
		}
		break
	}

	return fallbackResult(raw)
}

func parseResult(text string) (domain.Result, error) {
	var result domain.Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return domain.Result{}, err
	}
	return result, nil
}

// extractLabeledFence returns the content between the first ```json fence
// and the next fence after it.
func extractLabeledFence(text string) (string, bool) {
	idx := strings.Index(text, labeledFenceOpening)
	if idx == -1 {
		return "", false
	}
	return fenceContent(text, idx+len(labeledFenceOpening)), true
}

// extractAnyFence returns the content between the first unlabeled fence and
// the next fence after it.
func extractAnyFence(text string) (string, bool) {
	idx := strings.Index(text, fence)
	if idx == -1 {
		return "", false
	}
	return fenceContent(text, idx+len(fence)), true
}

func fenceContent(text string, start int) string {
	end := strings.Index(text[start:], fence)
	if end == -1 {
		return strings.TrimSpace(text[start:])
	}
	return strings.TrimSpace(text[start : start+end])
}

// extractBraceSpan returns the substring from the first '{' to the last '}'
// inclusive.
func extractBraceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func fallbackResult(raw string) domain.Result {
	return domain.Result{
		Summary: fallbackSummary,
		Issues: []domain.Issue{
			{
				Severity:   domain.SeverityLow,
				Message:    fallbackMessage,
				Suggestion: fallbackSuggestion,
			},
		},
		RawResponse: truncateRunes(raw, rawResponsePreview),
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
