package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bkyoung/review-assistant/internal/domain"
	"github.com/bkyoung/review-assistant/internal/review"
)

// maxBodyBytes caps inbound request bodies. GitHub webhook payloads are
// well under this.
const maxBodyBytes = 5 << 20

// signatureHeader carries the HMAC of the webhook body.
const signatureHeader = "X-Hub-Signature-256"

// Reviewer is the orchestrator port the handlers depend on.
type Reviewer interface {
	HandleEvent(ctx context.Context, body []byte, signature string) review.EventOutcome
	ReviewCode(ctx context.Context, code string) domain.Result
}

// Handlers holds the HTTP endpoint implementations.
type Handlers struct {
	reviewer Reviewer
	logger   *slog.Logger
}

// NewHandlers wires the endpoints to their orchestrator.
func NewHandlers(reviewer Reviewer, logger *slog.Logger) *Handlers {
	return &Handlers{reviewer: reviewer, logger: logger}
}

// webhookResponse is the envelope returned by the webhook endpoint.
type webhookResponse struct {
	Status      string         `json:"status"`
	Reason      string         `json:"reason,omitempty"`
	Message     string         `json:"message,omitempty"`
	Repository  string         `json:"repository,omitempty"`
	PullRequest int            `json:"pull_request,omitempty"`
	Review      *domain.Result `json:"review,omitempty"`
}

// codeReviewRequest is the body of a manual review request.
type codeReviewRequest struct {
	Code string `json:"code"`
}

// Webhook handles inbound GitHub pull request events.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("received webhook request")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	outcome := h.reviewer.HandleEvent(r.Context(), body, r.Header.Get(signatureHeader))

	switch outcome.Status {
	case review.StatusRejected:
		writeError(w, http.StatusUnauthorized, outcome.Message)
	case review.StatusMalformed:
		writeError(w, http.StatusBadRequest, outcome.Message)
	case review.StatusIgnored:
		writeJSON(w, http.StatusOK, webhookResponse{
			Status: string(outcome.Status),
			Reason: outcome.Reason,
		})
	case review.StatusError:
		writeJSON(w, http.StatusOK, webhookResponse{
			Status:  string(outcome.Status),
			Message: outcome.Message,
		})
	default:
		writeJSON(w, http.StatusOK, webhookResponse{
			Status:      string(outcome.Status),
			Repository:  outcome.Repository,
			PullRequest: outcome.PullRequest,
			Review:      outcome.Review,
		})
	}
}

// ManualReview reviews code submitted directly, without GitHub.
func (h *Handlers) ManualReview(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("received manual review request")

	var req codeReviewRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Blank input is a rejected precondition, not a pipeline failure.
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "No code provided")
		return
	}

	result := h.reviewer.ReviewCode(r.Context(), req.Code)
	writeJSON(w, http.StatusOK, result)
}

// Health confirms the server is running.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"message": "AI code review assistant is ready",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}
