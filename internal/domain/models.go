package domain

// WorkflowName is the directory of a matched file relative to the reference root.
// Files directly under the root belong to the empty workflow.
type WorkflowName = string

// ProcessName labels one TriggerResults collection inside an EDM file.
type ProcessName = string

// FilePair is a reference file and its counterpart in the target tree.
type FilePair struct {
	Reference string `json:"reference"`
	Target    string `json:"target"`
}

// ListResult is the outcome of asking the content lister for process names.
type ListResult struct {
	Outcome ListOutcome
	Names   []ProcessName
	Err     error
}

// DiffStats are the two counters hltDiff reports per comparison.
type DiffStats struct {
	EventsConsidered      int `json:"events_considered"`
	EventsWithDifferences int `json:"events_with_differences"`
}

// HasDifferences reports whether any event differed.
func (s DiffStats) HasDifferences() bool {
	return s.EventsWithDifferences > 0
}

// ComparisonResult records one hltDiff invocation.
type ComparisonResult struct {
	Workflow WorkflowName     `json:"workflow"`
	Process  ProcessName      `json:"process"`
	Files    FilePair         `json:"files"`
	Stats    DiffStats        `json:"stats"`
	Status   ComparisonStatus `json:"status"`
	LogPath  string           `json:"log_path,omitempty"`
	Command  []string         `json:"command,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Summary is the structured form of a finished run.
type Summary struct {
	Results            []ComparisonResult `json:"results"`
	Workflows          int                `json:"workflows"`
	WorkflowsWithDiffs int                `json:"workflows_with_differences"`
}
