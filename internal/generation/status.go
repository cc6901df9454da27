package generation

import "strings"

// Render status vocabulary reported by rendering collaborators. Values are
// compared case-insensitively.
const (
	StatusQueued     = "queued"
	StatusSubmitted  = "submitted"
	StatusInProgress = "in_progress"
	StatusProcessing = "processing"
	StatusRunning    = "running"

	StatusCompleted = "completed"
	StatusSucceeded = "succeeded"
	StatusDone      = "done"

	StatusFailed = "failed"
)

var completeStatuses = map[string]struct{}{
	StatusCompleted: {},
	StatusSucceeded: {},
	StatusDone:      {},
	"success":       {},
}

var failedStatuses = map[string]struct{}{
	StatusFailed: {},
	"error":      {},
	"cancelled":  {},
	"canceled":   {},
}

func normalize(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsComplete reports whether status belongs to the "complete" family.
func IsComplete(status string) bool {
	_, ok := completeStatuses[normalize(status)]
	return ok
}

// IsFailed reports whether status is an explicit failure term.
func IsFailed(status string) bool {
	_, ok := failedStatuses[normalize(status)]
	return ok
}

// IsPending reports whether status should be treated as still in flight.
// Anything that is neither complete nor failed is pending, including values
// the vocabulary does not know.
func IsPending(status string) bool {
	return !IsComplete(status) && !IsFailed(status)
}
