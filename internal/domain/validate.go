package domain

import "fmt"

// ValidateFilePair checks that both sides of a pair are set.
func ValidateFilePair(p FilePair) error {
	if p.Reference == "" {
		return fmt.Errorf("reference file is required")
	}
	if p.Target == "" {
		return fmt.Errorf("target file is required")
	}
	return nil
}

// ValidateListResult checks that the outcome agrees with the names returned.
func ValidateListResult(r ListResult) error {
	if !r.Outcome.Valid() {
		return fmt.Errorf("invalid list outcome: %q", r.Outcome)
	}
	switch r.Outcome {
	case ListOK:
		if len(r.Names) == 0 {
			return fmt.Errorf("outcome %q requires at least one process name", r.Outcome)
		}
	case ListEmpty, ListFailed:
		if len(r.Names) != 0 {
			return fmt.Errorf("outcome %q must not carry process names", r.Outcome)
		}
	}
	if r.Outcome == ListFailed && r.Err == nil {
		return fmt.Errorf("outcome %q requires an error", r.Outcome)
	}
	return nil
}

// ValidateComparisonResult checks required fields on a ComparisonResult.
func ValidateComparisonResult(r ComparisonResult) error {
	if r.Process == "" {
		return fmt.Errorf("process is required")
	}
	if err := ValidateFilePair(r.Files); err != nil {
		return fmt.Errorf("files: %w", err)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid status: %q", r.Status)
	}
	if r.Stats.EventsConsidered < 0 || r.Stats.EventsWithDifferences < 0 {
		return fmt.Errorf("stats must be non-negative, got %+v", r.Stats)
	}
	return nil
}
