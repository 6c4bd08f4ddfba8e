package domain

// ListOutcome classifies the result of listing process names in one file.
type ListOutcome string

const (
	// ListOK means the lister ran and reported at least one process name.
	ListOK ListOutcome = "ok"
	// ListEmpty means the lister ran but the file has no trigger results.
	ListEmpty ListOutcome = "empty"
	// ListFailed means the lister could not be run or exited with an error.
	ListFailed ListOutcome = "failed"
)

func (o ListOutcome) Valid() bool {
	switch o {
	case ListOK, ListEmpty, ListFailed:
		return true
	}
	return false
}

// ComparisonStatus tracks what happened to a single (workflow, process) comparison.
type ComparisonStatus string

const (
	StatusCompared ComparisonStatus = "compared"
	StatusPlanned  ComparisonStatus = "planned"
	StatusSkipped  ComparisonStatus = "skipped"
	StatusFailed   ComparisonStatus = "failed"
)

func (s ComparisonStatus) Valid() bool {
	switch s {
	case StatusCompared, StatusPlanned, StatusSkipped, StatusFailed:
		return true
	}
	return false
}
