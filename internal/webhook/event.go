package webhook

// ReviewableActions are the pull-request actions the classifier accepts.
// The orchestrator triggers processing only for opened and synchronize;
// reopened classifies as reviewable but is not processed downstream.
var ReviewableActions = []string{"opened", "synchronize", "reopened"}

// IsReviewable reports whether a decoded webhook payload represents a
// pull-request change worth reviewing. It is a pure predicate: missing keys
// mean "not reviewable", never an error, and nested values are not inspected.
func IsReviewable(event map[string]any) bool {
	if event == nil {
		return false
	}
	if _, ok := event["pull_request"]; !ok {
		return false
	}
	if _, ok := event["repository"]; !ok {
		return false
	}

	action, _ := event["action"].(string)
	for _, accepted := range ReviewableActions {
		if action == accepted {
			return true
		}
	}
	return false
}
