// Package static provides a mock model provider that returns a canned,
// pre-determined review reply. This is useful for exercising the pipeline
// without making live API calls.
package static

import "context"

// Provider implements the orchestrator's Provider port with a fixed reply.
type Provider struct{}

// NewProvider constructs a static Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Review ignores its inputs and returns a static, well-formed JSON reply.
func (p *Provider) Review(ctx context.Context, systemInstruction, prompt string) (string, error) {
	return `{
  "summary": "This is a static review from a mock provider.",
  "issues": [
    {
      "severity": "Low",
      "message": "This is a static issue.",
      "suggestion": "No suggestion."
    }
  ]
}`, nil
}
