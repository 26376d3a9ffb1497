// Package redaction masks secret-like substrings in free text before it is
// logged or surfaced in a response.
package redaction

import "regexp"

// rule pairs a secret-shaped pattern with its replacement text.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Engine applies an ordered list of pattern -> replacement rules. Later
// rules see the output of earlier ones, so a value caught twice stays
// masked. Sanitize is idempotent.
type Engine struct {
	rules []rule
}

// NewEngine creates a sanitizer with the default secret patterns.
func NewEngine() *Engine {
	return &Engine{rules: defaultRules()}
}

// Sanitize returns text with every recognized secret shape masked.
// Absence of a match is a no-op; Sanitize never fails.
func (e *Engine) Sanitize(text string) string {
	result := text
	for _, r := range e.rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

func defaultRules() []rule {
	specs := []struct {
		pattern     string
		replacement string
	}{
		// GitHub personal access tokens
		{`ghp_[a-zA-Z0-9]{36}`, "ghp_***REDACTED***"},
		// OpenAI API keys
		{`sk-[a-zA-Z0-9]{48}`, "sk-***REDACTED***"},
		// Generic credential assignments in key=value form
		{`(token|key|secret|password)=\S+`, "$1=***REDACTED***"},
	}

	rules := make([]rule, 0, len(specs))
	for _, spec := range specs {
		rules = append(rules, rule{
			pattern:     regexp.MustCompile(`(?i)` + spec.pattern),
			replacement: spec.replacement,
		})
	}
	return rules
}
