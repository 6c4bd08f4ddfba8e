// Package report accumulates comparison results into the fixed-width
// summary table and the final verdict.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hltvalidation/trcompare/internal/domain"
)

// Rule separates the header and each workflow's block of rows.
var Rule = strings.Repeat("-", 100)

// Header is the column title line of the summary table.
var Header = fmt.Sprintf("| %-25s | %-15s | %-12s | %s", "Events with differences", "Input Events", "Process Name", "Workflow")

// Summary is the table being built plus the per-workflow difference count.
type Summary struct {
	rows               []string
	results            []domain.ComparisonResult
	workflows          int
	workflowsWithDiffs int
	open               bool
	openHasDiff        bool
}

// New returns a Summary holding only the header and the first rule.
func New() *Summary {
	return &Summary{rows: []string{Header, Rule}}
}

// FormatRow renders a single result line.
func FormatRow(r domain.ComparisonResult) string {
	return fmt.Sprintf("| %25d | %15d | %-12s | %s",
		r.Stats.EventsWithDifferences, r.Stats.EventsConsidered, r.Process, r.Workflow)
}

// BeginWorkflow opens a block of rows for one workflow.
func (s *Summary) BeginWorkflow() {
	s.open = true
	s.openHasDiff = false
}

// Add appends a row for r. Skipped comparisons are kept in the structured
// results but produce no table row.
func (s *Summary) Add(r domain.ComparisonResult) {
	s.results = append(s.results, r)
	if r.Status == domain.StatusSkipped {
		return
	}
	s.rows = append(s.rows, FormatRow(r))
	if r.Stats.HasDifferences() {
		s.openHasDiff = true
	}
}

// EndWorkflow closes the current block with a rule and counts the workflow
// once if any of its rows had differences.
func (s *Summary) EndWorkflow() {
	if !s.open {
		return
	}
	s.rows = append(s.rows, Rule)
	s.workflows++
	if s.openHasDiff {
		s.workflowsWithDiffs++
	}
	s.open = false
	s.openHasDiff = false
}

// Rows returns the table lines.
func (s *Summary) Rows() []string {
	out := make([]string, len(s.rows))
	copy(out, s.rows)
	return out
}

// Results returns every recorded comparison in insertion order.
func (s *Summary) Results() []domain.ComparisonResult {
	out := make([]domain.ComparisonResult, len(s.results))
	copy(out, s.results)
	return out
}

// Workflows is the number of closed workflow blocks.
func (s *Summary) Workflows() int { return s.workflows }

// WorkflowsWithDiffs is the number of workflows with at least one difference.
func (s *Summary) WorkflowsWithDiffs() int { return s.workflowsWithDiffs }

// Verdict is the one-line outcome printed at the end of a run.
func (s *Summary) Verdict() string {
	if s.workflowsWithDiffs > 0 {
		return fmt.Sprintf("TriggerResults: found differences in %d / %d workflows", s.workflowsWithDiffs, s.workflows)
	}
	return "TriggerResults: no differences found"
}

// Structured returns the summary in its JSON-serializable form.
func (s *Summary) Structured() domain.Summary {
	return domain.Summary{
		Results:            s.Results(),
		Workflows:          s.workflows,
		WorkflowsWithDiffs: s.workflowsWithDiffs,
	}
}

// WriteFile writes every table line, newline-terminated, to path.
func (s *Summary) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, row := range s.rows {
		if _, err := w.WriteString(row + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("report: write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}

// WriteJSON writes the structured summary to path.
func (s *Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s.Structured(), "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
