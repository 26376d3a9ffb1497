package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bkyoung/review-assistant/internal/domain"
	"github.com/bkyoung/review-assistant/internal/webhook"
)

// DiffFetcher retrieves the diff for a pull request. Implementations return
// an empty diff or an error on any failure; the orchestrator treats both
// uniformly as "no diff available".
type DiffFetcher interface {
	FetchDiff(ctx context.Context, repo string, number int) (string, error)
}

// Provider sends a review prompt to a model and returns the raw reply text.
type Provider interface {
	Review(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// Sanitizer masks secret-like substrings before text is logged or surfaced.
type Sanitizer interface {
	Sanitize(text string) string
}

// Status classifies the terminal outcome of one webhook transaction.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusIgnored   Status = "ignored"
	StatusError     Status = "error"
	StatusRejected  Status = "rejected"  // signature verification failed
	StatusMalformed Status = "malformed" // body not parseable as JSON
)

// EventOutcome is the well-defined result of processing one inbound event.
// Exactly one of Reason, Message or Review is meaningful, depending on
// Status.
type EventOutcome struct {
	Status      Status
	Reason      string
	Message     string
	Repository  string
	PullRequest int
	Review      *domain.Result
}

// processedActions are the actions that actually trigger a review. The
// classifier also accepts "reopened"; that wider acceptance is intentional
// and such events end up ignored here.
var processedActions = map[string]bool{"opened": true, "synchronize": true}

// Deps are the collaborators required by the Orchestrator.
type Deps struct {
	Diff      DiffFetcher
	Provider  Provider // nil when no model credential is configured
	Prompts   *PromptBuilder
	Sanitizer Sanitizer
	Logger    *slog.Logger
	// WebhookSecret authenticates inbound events. Empty disables
	// verification.
	WebhookSecret string
}

// Orchestrator composes signature verification, event classification, diff
// retrieval, prompt construction and response normalization into the
// end-to-end review flow. Every outcome, including every failure mode, is a
// data value; nothing below the orchestrator raises past it.
type Orchestrator struct {
	diff      DiffFetcher
	provider  Provider
	prompts   *PromptBuilder
	sanitizer Sanitizer
	logger    *slog.Logger
	secret    string
}

// NewOrchestrator wires an Orchestrator from its dependencies.
func NewOrchestrator(deps Deps) *Orchestrator {
	prompts := deps.Prompts
	if prompts == nil {
		prompts = NewPromptBuilder()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		diff:      deps.Diff,
		provider:  deps.Provider,
		prompts:   prompts,
		sanitizer: deps.Sanitizer,
		logger:    logger,
		secret:    deps.WebhookSecret,
	}
}

// HandleEvent runs one webhook transaction start to finish:
// Received -> Authenticated -> Classified -> DiffFetched -> Reviewed -> Done,
// with early exits for bad signatures, malformed bodies, ignorable events
// and missing diffs.
func (o *Orchestrator) HandleEvent(ctx context.Context, body []byte, signature string) EventOutcome {
	// Received -> Authenticated
	if !webhook.VerifySignature(body, signature, o.secret) {
		o.logger.Warn("webhook signature verification failed")
		return EventOutcome{Status: StatusRejected, Message: "Invalid signature"}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		o.logger.Warn("webhook body is not valid JSON", "error", err)
		return EventOutcome{Status: StatusMalformed, Message: "Invalid JSON payload"}
	}

	// Authenticated -> Classified
	action, _ := payload["action"].(string)
	if !webhook.IsReviewable(payload) {
		return EventOutcome{Status: StatusIgnored, Reason: ignoreReason(payload, action)}
	}
	if !processedActions[action] {
		o.logger.Info("ignoring pull request action", "action", action)
		return EventOutcome{Status: StatusIgnored, Reason: fmt.Sprintf("Action '%s' not processed", action)}
	}

	var event domain.PullRequestEvent
	if err := json.Unmarshal(body, &event); err != nil {
		o.logger.Warn("webhook body does not match the pull request schema", "error", err)
		return EventOutcome{Status: StatusMalformed, Message: "Invalid JSON payload"}
	}

	repo := event.Repository.FullName
	number := event.PullRequest.Number
	o.logger.Info("processing pull request",
		"repository", repo,
		"number", number,
		"title", o.sanitize(event.PullRequest.Title),
	)

	// Classified -> DiffFetched
	diff, err := o.diff.FetchDiff(ctx, repo, number)
	if err != nil {
		o.logger.Warn("diff fetch failed", "repository", repo, "number", number, "error", o.sanitize(err.Error()))
		diff = ""
	}
	if diff == "" {
		return EventOutcome{
			Status:      StatusError,
			Message:     "Could not fetch PR diff",
			Repository:  repo,
			PullRequest: number,
		}
	}
	o.logger.Info("fetched diff", "chars", len(diff))

	// DiffFetched -> Reviewed -> Done
	result := o.ReviewCode(ctx, diff)
	o.logger.Info("review complete",
		"summary", o.sanitize(result.Summary),
		"issues", domain.FormatIssueCount(result.Issues),
	)

	return EventOutcome{
		Status:      StatusSuccess,
		Repository:  repo,
		PullRequest: number,
		Review:      &result,
	}
}

// ReviewCode reviews raw code or diff text directly, bypassing the webhook
// stages. It always returns a well-formed Result: missing credentials and
// model-call failures become Critical-severity results rather than errors.
func (o *Orchestrator) ReviewCode(ctx context.Context, code string) domain.Result {
	if o.provider == nil {
		return domain.Result{
			Summary: "Review failed due to configuration error.",
			Issues: []domain.Issue{{
				Severity:   domain.SeverityCritical,
				Message:    "OPENAI_API_KEY is required",
				Suggestion: "Set OPENAI_API_KEY or configure providers.openai.apiKey",
			}},
		}
	}

	capped := TruncateDiff(code)
	if len(capped) != len(code) {
		o.logger.Info("diff truncated for prompt", "chars", len(code), "cap", MaxDiffChars)
	}

	prompt := o.prompts.Build(capped)
	text, err := o.provider.Review(ctx, SystemInstruction, prompt)
	if err != nil {
		o.logger.Warn("model call failed", "error", o.sanitize(err.Error()))
		return domain.Result{
			Summary: "Review failed due to an error.",
			Issues: []domain.Issue{{
				Severity:   domain.SeverityCritical,
				Message:    "AI review error: " + o.sanitize(err.Error()),
				Suggestion: "Check your API key and network connection",
			}},
		}
	}

	return Normalize(text)
}

func (o *Orchestrator) sanitize(text string) string {
	if o.sanitizer == nil {
		return text
	}
	return o.sanitizer.Sanitize(text)
}

// ignoreReason mirrors the classifier's checks to explain why an event was
// ignored.
func ignoreReason(payload map[string]any, action string) string {
	if _, ok := payload["pull_request"]; !ok {
		return "Not a pull request event"
	}
	if _, ok := payload["repository"]; !ok {
		return "Not a pull request event"
	}
	return fmt.Sprintf("Action '%s' not processed", action)
}
