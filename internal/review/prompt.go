package review

import (
	"strings"
	"text/template"
)

const (
	// MaxDiffChars caps the code fragment embedded in a prompt. The cap is
	// counted in characters (runes), matching how upstream diffs are sized.
	MaxDiffChars = 10000

	// TruncationMarker is appended to a diff that was cut at MaxDiffChars.
	TruncationMarker = "\n\n[... diff truncated for length ...]"

	// SystemInstruction is sent alongside every review prompt.
	SystemInstruction = "You are an expert code reviewer. Always respond with valid JSON only."
)

var promptTemplate = template.Must(template.New("review").Parse(`You are an expert code reviewer. Analyze the following code diff and provide feedback.

## Instructions:

1. Look for these types of issues:
   - **Bugs**: Logic errors, null pointer risks, off-by-one errors
   - **Security Issues**: SQL injection, XSS, hardcoded secrets, insecure practices
   - **Performance Concerns**: N+1 queries, inefficient loops, memory leaks
   - **Code Quality**: Poor naming, missing error handling, code duplication

2. Classify each issue by severity:
   - **Critical**: Security vulnerabilities, data loss risks, system crashes
   - **High**: Bugs that will cause incorrect behavior
   - **Medium**: Performance issues, maintainability problems
   - **Low**: Style issues, minor improvements

3. Respond with ONLY valid JSON in this exact format:
{
  "summary": "A brief overall assessment of the code changes",
  "issues": [
    {
      "severity": "High",
      "message": "Description of the issue",
      "suggestion": "How to fix it"
    }
  ]
}

If the code looks good with no issues, return:
{
  "summary": "Code looks good! No significant issues found.",
  "issues": []
}

## Code Diff to Review:

` + "```" + `
{{.Diff}}
` + "```" + `

Remember: Respond with ONLY the JSON object, no additional text or markdown.
`))

// PromptBuilder renders review instructions around a code diff.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder creates a builder using the default instruction template.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{tmpl: promptTemplate}
}

// Build embeds codeDiff into the instruction template. Callers are expected
// to cap the diff with TruncateDiff first; Build itself never branches.
func (b *PromptBuilder) Build(codeDiff string) string {
	var sb strings.Builder
	// The template references a single string field; execution cannot fail.
	_ = b.tmpl.Execute(&sb, struct{ Diff string }{Diff: codeDiff})
	return sb.String()
}

// TruncateDiff deterministically caps diff at MaxDiffChars characters,
// appending TruncationMarker when anything was cut.
func TruncateDiff(diff string) string {
	runes := []rune(diff)
	if len(runes) <= MaxDiffChars {
		return diff
	}
	return string(runes[:MaxDiffChars]) + TruncationMarker
}
