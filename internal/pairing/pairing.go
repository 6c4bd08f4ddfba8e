// Package pairing matches reference files with their target counterparts and
// builds the work list of (workflow, process name) comparisons.
package pairing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/hltvalidation/trcompare/internal/connectors/edmdump"
	"github.com/hltvalidation/trcompare/internal/domain"
	"github.com/hltvalidation/trcompare/internal/observability"
	"github.com/hltvalidation/trcompare/internal/scan"
)

// Input is the result of scanning both trees.
type Input struct {
	ReferenceRoot  string
	TargetRoot     string
	ReferenceFiles []string
	TargetFiles    []string
}

// Stats counts what happened to the reference files.
type Stats struct {
	Scanned        int
	Unpaired       int
	ListingFailed  int
	NoProcessNames int
	AllDuplicates  int
	Registered     int
}

// Builder resolves process names and fills a work list.
type Builder struct {
	Lister    edmdump.Lister
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	Verbosity int
}

// Locate splits a reference file into its workflow name and basename.
// Files directly under root belong to the empty workflow.
func Locate(root, file string) (domain.WorkflowName, string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", "", fmt.Errorf("pairing: %s is not under %s: %w", file, root, err)
	}
	wf := filepath.Dir(rel)
	if wf == "." {
		wf = ""
	}
	return wf, filepath.Base(rel), nil
}

// Build pairs every reference file with the target file at the same
// relative path and registers its process names. A process name already
// registered for a workflow by an earlier file is dropped.
func (b *Builder) Build(ctx context.Context, in Input) (*domain.WorkList, Stats, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	refRoot, err := filepath.Abs(in.ReferenceRoot)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("pairing: %w", err)
	}
	tgtRoot, err := filepath.Abs(in.TargetRoot)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("pairing: %w", err)
	}

	targets := scan.Set(in.TargetFiles)
	refFiles := append([]string(nil), in.ReferenceFiles...)
	sort.Strings(refFiles)

	wl := domain.NewWorkList()
	var st Stats
	for _, f1 := range refFiles {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		st.Scanned++

		wf, base, err := Locate(refRoot, f1)
		if err != nil {
			return nil, st, err
		}
		f2 := filepath.Join(tgtRoot, wf, base)
		if _, ok := targets[f2]; !ok {
			st.Unpaired++
			logger.Debug("no counterpart in target tree", "file", f1, "expected", f2)
			continue
		}

		res := b.Lister.ProcessNames(ctx, f1)
		if err := domain.ValidateListResult(res); err != nil {
			res = domain.ListResult{Outcome: domain.ListFailed, Err: fmt.Errorf("pairing: inconsistent listing: %w", err)}
		}
		switch res.Outcome {
		case domain.ListFailed:
			st.ListingFailed++
			b.Metrics.RecordListingFailure(ctx)
			if b.Verbosity > 0 {
				logger.Warn("failed to list TriggerResults process names (file skipped)", "file", f1, "error", res.Err)
			}
			continue
		case domain.ListEmpty:
			st.NoProcessNames++
			continue
		}

		added := 0
		pair := domain.FilePair{Reference: f1, Target: f2}
		for _, proc := range res.Names {
			if wl.Register(wf, proc, pair) {
				added++
			}
		}
		if added == 0 {
			st.AllDuplicates++
			continue
		}
		st.Registered++
	}

	logger.Debug("work list built",
		"workflows", wl.Len(),
		"comparisons", wl.Comparisons(),
		"scanned", st.Scanned,
		"unpaired", st.Unpaired,
		"listing_failed", st.ListingFailed,
		"no_process_names", st.NoProcessNames,
		"all_duplicates", st.AllDuplicates,
	)
	return wl, st, nil
}
