package model

// BatchResult aggregates the outcome of one batch run. It is produced by
// the batch orchestrator, rendered by the report writers, and then
// discarded; nothing persists it.
type BatchResult struct {
	// Total is the number of work items parsed from the list file.
	Total int `json:"total"`

	// Succeeded is the number of items that downloaded successfully.
	Succeeded int `json:"succeeded"`

	// Failed is the number of items that exhausted their retries.
	Failed int `json:"failed"`

	// Failures holds the failed items in file order.
	Failures []WorkItem `json:"failures,omitempty"`

	// Interrupted records that the run was stopped by a signal before
	// all items were attempted. The summary is still emitted.
	Interrupted bool `json:"interrupted,omitempty"`
}

// NewBatchResult creates a BatchResult for a run over total items.
func NewBatchResult(total int) *BatchResult {
	return &BatchResult{Total: total}
}

// AddSuccess records a successful item.
func (r *BatchResult) AddSuccess() {
	r.Succeeded++
}

// AddFailure records a failed item for the summary.
func (r *BatchResult) AddFailure(item WorkItem) {
	r.Failed++
	r.Failures = append(r.Failures, item)
}

// ExitCode returns the process exit code for the run: 0 iff nothing failed.
// An interrupted run with no failures still exits 0, matching the
// stop-after-current-item contract.
func (r *BatchResult) ExitCode() int {
	if r.Failed > 0 {
		return 1
	}
	return 0
}
