package domain

// Issue is a single problem reported by the model for a change under review.
// Severity is free text at the boundary; use Rank for ordering.
type Issue struct {
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// Result is the structured verdict produced by the review pipeline.
// Every code path, including every failure mode, yields one of these.
// RawResponse is populated only when the model reply could not be parsed.
type Result struct {
	Summary     string  `json:"summary"`
	Issues      []Issue `json:"issues"`
	RawResponse string  `json:"raw_response,omitempty"`
}

// ChangedFile captures one file's change record from a pull request.
type ChangedFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch"`
}

// PullRequestEvent holds the load-bearing fields of a webhook payload.
type PullRequestEvent struct {
	Action     string `json:"action"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
	PullRequest struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
	} `json:"pull_request"`
}
