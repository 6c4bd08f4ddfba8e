// Package compare runs hltDiff for every entry of a work list and collects
// the results into a summary.
package compare

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hltvalidation/trcompare/internal/connectors/hltdiff"
	"github.com/hltvalidation/trcompare/internal/domain"
	"github.com/hltvalidation/trcompare/internal/observability"
	"github.com/hltvalidation/trcompare/internal/report"
)

// Runner executes comparisons one at a time, in work-list order.
type Runner struct {
	Differ    hltdiff.Differ
	OutputDir string
	MaxEvents int
	DryRun    bool
	Verbosity int
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	// Stdout receives the planned command lines in dry-run mode.
	Stdout io.Writer
}

// Run compares every (workflow, process) entry of wl. In dry-run mode
// nothing is created or executed and the returned summary is nil.
// Per-comparison problems are logged and recorded; only cancellation of
// ctx aborts the run.
func (r *Runner) Run(ctx context.Context, wl *domain.WorkList) (*report.Summary, error) {
	logger := r.logger()
	tracer := otel.Tracer("trcompare")
	summary := report.New()

	for _, wf := range wl.Workflows() {
		wfDir := filepath.Join(r.OutputDir, wf)
		skip := false
		if !r.DryRun {
			if err := os.MkdirAll(wfDir, 0o755); err != nil {
				logger.Warn("failed to create output directory (will skip comparisons for this workflow)", "dir", wfDir, "error", err)
				skip = true
			}
		}

		summary.BeginWorkflow()
		wfHasDiff := false
		for _, proc := range wl.Processes(wf) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			pair, _ := wl.Pair(wf, proc)
			req := hltdiff.Request{
				MaxEvents:  r.MaxEvents,
				Reference:  pair.Reference,
				Target:     pair.Target,
				Process:    proc,
				OutputBase: filepath.Join(wfDir, proc),
			}
			res := domain.ComparisonResult{
				Workflow: wf,
				Process:  proc,
				Files:    pair,
				Command:  r.Differ.Command(req),
			}

			switch {
			case skip:
				res.Status = domain.StatusSkipped
			case r.DryRun:
				res.Status = domain.StatusPlanned
				if r.Verbosity > 0 && r.Stdout != nil {
					fmt.Fprintln(r.Stdout, "> "+strings.Join(res.Command, " "))
				}
			default:
				spanCtx, span := tracer.Start(ctx, "hltdiff",
					trace.WithAttributes(
						attribute.String("workflow", wf),
						attribute.String("process", proc),
					),
				)
				res = r.compare(spanCtx, req, res, wfDir)
				if res.Status == domain.StatusFailed {
					span.SetStatus(codes.Error, res.Error)
				}
				span.SetAttributes(
					attribute.Int("events_considered", res.Stats.EventsConsidered),
					attribute.Int("events_with_differences", res.Stats.EventsWithDifferences),
				)
				span.End()
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}

			summary.Add(res)
			r.Metrics.RecordComparison(ctx, wf, string(res.Status), res.Stats.EventsWithDifferences)
			if res.Stats.HasDifferences() {
				wfHasDiff = true
			}
		}
		summary.EndWorkflow()
		if wfHasDiff {
			r.Metrics.RecordWorkflowWithDiffs(ctx)
		}
	}

	if r.DryRun {
		return nil, nil
	}
	return summary, nil
}

// compare invokes hltDiff, writes its output to <process>.log and extracts
// the statistics. A failing invocation still gets its log.
func (r *Runner) compare(ctx context.Context, req hltdiff.Request, res domain.ComparisonResult, wfDir string) domain.ComparisonResult {
	logger := r.logger().With("workflow", res.Workflow, "process", res.Process)
	logger.Info("running hltDiff", "reference", req.Reference, "target", req.Target)

	out, diffErr := r.Differ.Diff(ctx, req)
	lines := strings.Split(string(out.Stdout), "\n")

	res.LogPath = filepath.Join(wfDir, res.Process+".log")
	if err := writeLines(res.LogPath, lines); err != nil {
		logger.Warn("failed to write hltDiff log", "path", res.LogPath, "error", err)
		res.LogPath = ""
	}

	res.Stats, _ = ParseStats(lines, logger)
	res.Status = domain.StatusCompared
	if diffErr != nil {
		logger.Warn("hltDiff failed (statistics default to zero)", "error", diffErr)
		res.Status = domain.StatusFailed
		res.Error = diffErr.Error()
		res.Stats = domain.DiffStats{}
	}
	return res
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
